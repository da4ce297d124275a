// This file is part of CoreHost.
//
// CoreHost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CoreHost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CoreHost.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/lodgepole/corehost/command"
	"github.com/lodgepole/corehost/config"
	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/diag"
	"github.com/lodgepole/corehost/drivers"
	"github.com/lodgepole/corehost/gui/sdlhost"
	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/menu"
	"github.com/lodgepole/corehost/runloop"
	"github.com/lodgepole/corehost/session"
	"github.com/lodgepole/corehost/statsview"
	"github.com/lodgepole/corehost/version"
)

// #mainthread
func main() {
	// SDL and the session both insist on the main thread. locked here, for
	// the duration
	runtime.LockOSThread()

	os.Exit(launch())
}

func launch() int {
	opts := struct {
		configPath  string
		coreType    string
		headless    bool
		fullscreen  bool
		verbose     bool
		hardcore    bool
		record      string
		savePath    string
		statePath   string
		maxFrames   uint64
		netplay     string
		netplayAddr string
		netplayPort uint
		stats       bool
		diagFile    string
		showVersion bool
	}{}

	flag.StringVar(&opts.configPath, "config", "", "path to the settings file")
	flag.StringVar(&opts.coreType, "core", "", "core type to load: dummy, media or plain")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window. null video and audio")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "start in fullscreen")
	flag.BoolVar(&opts.verbose, "verbose", false, "echo the log to stderr")
	flag.BoolVar(&opts.hardcore, "hardcore", false, "disable rewind, slow motion and state loading")
	flag.StringVar(&opts.record, "record", "", "record audio to WAV file")
	flag.StringVar(&opts.savePath, "savepath", "", "directory for save data")
	flag.StringVar(&opts.statePath, "statepath", "", "directory for savestates")
	flag.Uint64Var(&opts.maxFrames, "maxframes", 0, "end the session after this many frames. zero means never")
	flag.StringVar(&opts.netplay, "netplay", "", "netplay mode: host or client")
	flag.StringVar(&opts.netplayAddr, "netplayaddr", "", "netplay address")
	flag.UintVar(&opts.netplayPort, "netplayport", 0, "netplay port")
	flag.BoolVar(&opts.stats, "statsview", false, "run stats server")
	flag.StringVar(&opts.diagFile, "diag", "", "dump session object graph to dot file on exit")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()

	if opts.showVersion {
		vers, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vers, rev)
		return 0
	}

	contentPath := flag.Arg(0)

	// the settings file is read here rather than during session init so that
	// command line values take precedence over the values on disk
	set, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	set.Verbose = set.Verbose || opts.verbose
	set.Fullscreen = set.Fullscreen || opts.fullscreen
	if opts.record != "" {
		set.RecordPath = opts.record
	}
	if opts.savePath != "" {
		set.SavePath = opts.savePath
	}
	if opts.statePath != "" {
		set.StatePath = opts.statePath
	}
	if opts.maxFrames != 0 {
		set.MaxFrames = opts.maxFrames
	}
	if opts.netplay != "" {
		set.Netplay.Mode = opts.netplay
	}
	if opts.netplayAddr != "" {
		set.Netplay.Address = opts.netplayAddr
	}
	if opts.netplayPort != 0 {
		set.Netplay.Port = uint16(opts.netplayPort)
	}

	var drv *drivers.Group
	var mnu menu.Menu
	var host *sdlhost.SdlHost

	if opts.headless {
		drv = drivers.NullGroup()
		mnu = &menu.Null{}
	} else {
		host = sdlhost.New()
		drv = host.Group()
		mnu = host.Menu()
	}

	ses := session.New(drv, mnu)
	ses.Settings = set
	ses.SetBlockConfigRead(true)

	// override bits record which settings were supplied explicitly. the
	// session keeps these through any later settings reload
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose":
			ses.Overrides().Set(session.OverrideVerbosity)
		case "savepath":
			ses.Overrides().Set(session.OverrideSavePath)
		case "statepath":
			ses.Overrides().Set(session.OverrideStatePath)
		case "netplay":
			ses.Overrides().Set(session.OverrideNetplayMode)
		case "netplayaddr":
			ses.Overrides().Set(session.OverrideNetplayAddress)
		case "netplayport":
			ses.Overrides().Set(session.OverrideNetplayPort)
		}
	})

	if opts.coreType != "" {
		typ, err := parseCoreType(opts.coreType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		ses.RequestCoreType(typ)
	}

	// the terminal command channel. the session takes ownership; a failed
	// init (stdin not a terminal) is logged and the channel discarded
	rdr := command.NewReader()
	ses.Commands = rdr

	if host != nil {
		host.SetMenuHandler(func(op sdlhost.MenuOp) {
			switch op {
			case sdlhost.MenuOpReset:
				ses.Dispatch(session.EventReset)
			case sdlhost.MenuOpSaveState:
				ses.Dispatch(session.EventSaveState)
			case sdlhost.MenuOpLoadState:
				ses.Dispatch(session.EventLoadState)
			case sdlhost.MenuOpQuit:
				ses.MainQuit()
			}
		})
	}

	if opts.stats {
		if statsview.Available() {
			ses.SetPerfEnabled(true)
			statsview.Launch(os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "statsview not available in this build. rebuild with the statsview tag")
		}
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	if err := ses.Init(opts.configPath, contentPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		ses.Destroy()
		return 1
	}

	loop := runloop.NewLoop(ses)
	loop.Hardcore = opts.hardcore

	exitVal := 0

done:
	for {
		select {
		case <-intChan:
			ses.MainQuit()
		default:
		}

		serviceCommands(ses, rdr, loop)

		verdict, wait := loop.Iterate()
		switch verdict {
		case runloop.Quit:
			break done
		case runloop.Sleep:
			time.Sleep(wait)
		case runloop.Frame:
		}
	}

	if opts.diagFile != "" {
		if err := diag.DumpToFile(opts.diagFile, ses); err != nil {
			logger.Logf("main", "%v", err)
			exitVal = 1
		}
	}

	ses.MainDeinit()
	ses.Destroy()

	return exitVal
}

func parseCoreType(s string) (core.Type, error) {
	switch s {
	case "dummy":
		return core.TypeDummy, nil
	case "media":
		return core.TypeMedia, nil
	case "plain":
		return core.TypePlain, nil
	}
	return core.TypeNone, fmt.Errorf("unknown core type: %s", s)
}

// serviceCommands drains the terminal command channel. Commands act on the
// session directly; they do not pass through the input drivers.
func serviceCommands(ses *session.Session, rdr *command.Reader, loop *runloop.Loop) {
	// the session discards the channel when its init fails
	if ses.Commands == nil {
		return
	}

	for {
		op, ok := rdr.Next()
		if !ok {
			return
		}

		switch op {
		case command.OpQuit:
			ses.MainQuit()
		case command.OpPauseToggle:
			ses.SetPaused(!ses.Paused())
		case command.OpMenuToggle:
			if ses.Menu.Alive() {
				if ses.Inited() && !ses.DummyCore() {
					ses.Menu.Close()
					loop.FlushInput(1)
				}
			} else {
				ses.Menu.Open()
				loop.FlushInput(1)
			}
		case command.OpMute:
			ses.Dispatch(session.EventMute)
		case command.OpReset:
			ses.Dispatch(session.EventReset)
		case command.OpSaveState:
			ses.Dispatch(session.EventSaveState)
		case command.OpLoadState:
			ses.Dispatch(session.EventLoadState)
		case command.OpScreenshot:
			ses.Dispatch(session.EventScreenshot)
		}
	}
}
