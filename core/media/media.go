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

// Package media is the built-in media player core. Music files handed to
// the frontend are routed here rather than to a simulation core proper.
// Supports MP3 and WAV content.
//
// The player registers a frame-time callback with its host so that audio
// progress follows real time even when the host frame rate wobbles.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
)

// the player presents itself as a fixed 60fps core
const playerFPS = 60

// IsMediaFile returns true if the file at path is content the media player
// can take.
func IsMediaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav":
		return true
	}
	return false
}

type player struct {
	env      core.Environment
	name     string
	rate     int
	channels int

	// interleaved pcm for the entire file
	samples []int16
	pos     int

	// most recent delta from the frame-time callback. the reference
	// interval until the callback fires
	delta time.Duration

	announced bool
}

// Load implements the core.Loader type.
func Load(env core.Environment, contentPath string) (core.Core, error) {
	p := &player{
		env:   env,
		name:  filepath.Base(contentPath),
		delta: time.Second / playerFPS,
	}

	f, err := os.Open(contentPath)
	if err != nil {
		return nil, fault.Errorf("media: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(contentPath)) {
	case ".mp3":
		err = p.loadMP3(f)
	case ".wav":
		err = p.loadWAV(f)
	default:
		err = fault.Errorf("media: unsupported file type: %s", filepath.Ext(contentPath))
	}
	if err != nil {
		return nil, err
	}

	logger.Logf("media", "%s: %dHz, %d channels, %.1fs",
		p.name, p.rate, p.channels,
		float64(len(p.samples))/float64(p.rate*p.channels))

	env.SetFrameTime(p.frameTime, time.Second/playerFPS)

	return p, nil
}

func (p *player) loadMP3(f *os.File) error {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fault.Errorf("media: %v", err)
	}

	// go-mp3 output is always 16bit stereo
	p.rate = dec.SampleRate()
	p.channels = 2

	b := make([]byte, 8192)
	for {
		n, err := dec.Read(b)
		for i := 0; i+1 < n; i += 2 {
			p.samples = append(p.samples, int16(uint16(b[i])|uint16(b[i+1])<<8))
		}
		if err != nil {
			break
		}
	}

	return nil
}

func (p *player) loadWAV(f *os.File) error {
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fault.Errorf("media: %v", err)
	}

	p.rate = buf.Format.SampleRate
	p.channels = buf.Format.NumChannels
	p.samples = make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		p.samples[i] = int16(s)
	}

	return nil
}

func (p *player) frameTime(delta time.Duration) {
	p.delta = delta
}

func (p *player) Info() core.Info {
	return core.Info{
		Name:       "media player",
		Version:    "v1",
		Extensions: []string{"mp3", "wav"},
	}
}

func (p *player) AVInfo() core.AVInfo {
	return core.AVInfo{FPS: playerFPS, SampleRate: p.rate, Width: 320, Height: 180}
}

func (p *player) Step() error {
	if !p.announced {
		p.env.Message(fmt.Sprintf("Playing %s", p.name))
		p.announced = true
	}

	// number of samples covered by the measured frame delta
	ct := int(float64(p.rate)*p.delta.Seconds()) * p.channels
	if ct <= 0 {
		return nil
	}

	if p.pos >= len(p.samples) {
		p.env.RequestShutdown()
		return nil
	}
	if p.pos+ct > len(p.samples) {
		ct = len(p.samples) - p.pos
	}

	chunk := p.samples[p.pos : p.pos+ct]
	p.env.QueueAudio(chunk)
	p.env.RenderFrame(p.visualise(chunk), 320, 180)
	p.pos += ct

	return nil
}

// visualise draws a simple peak meter for the chunk of samples that was just
// queued.
func (p *player) visualise(chunk []int16) []byte {
	const w, h = 320, 180

	var peak int
	for _, s := range chunk {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	bar := peak * h / 32768

	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		lit := h-y <= bar
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if lit {
				pix[i] = 0x30
				pix[i+1] = 0xd0
				pix[i+2] = 0x60
			}
			pix[i+3] = 0xff
		}
	}
	return pix
}

// Serialize records the playback position.
func (p *player) Serialize() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", p.pos)), nil
}

func (p *player) Deserialize(data []byte) error {
	var pos int
	if _, err := fmt.Sscanf(string(data), "%d", &pos); err != nil {
		return fault.Errorf("media: bad state data: %v", err)
	}
	if pos < 0 || pos > len(p.samples) {
		return fault.Errorf("media: bad state data: position out of range")
	}
	p.pos = pos
	return nil
}

func (p *player) Reset() error {
	p.pos = 0
	p.announced = false
	return nil
}

func (p *player) Deinit() error {
	return nil
}
