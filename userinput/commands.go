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

// Package userinput conceptualises the user commands sent to the frontend
// each frame. An input driver reduces whatever physical devices it services
// to a Bits value, one bit per logical Command. The Detector type converts
// those level-triggered bits into edge-triggered events.
package userinput

// Command is a logical frontend command. It says nothing about which key or
// button the command is bound to.
type Command int

// List of logical commands.
const (
	OverlayNext Command = iota
	FullscreenToggle
	GrabMouseToggle
	Quit
	MenuToggle
	GameFocusToggle
	Screenshot
	Mute
	OSK
	VolumeUp
	VolumeDown
	NetplayFlip
	NetplayWatch
	PauseToggle
	FrameAdvance
	FastForward
	FastForwardHold
	StateSlotPlus
	StateSlotMinus
	SaveState
	LoadState
	Rewind
	SlowMotion
	MovieRecordToggle
	ShaderNext
	ShaderPrev
	DiskEjectToggle
	DiskNext
	DiskPrev
	Reset
	CheatIndexPlus
	CheatIndexMinus
	CheatToggle

	// NumCommands is the extent of the Command type and not a real command.
	NumCommands
)

func (c Command) String() string {
	if c < 0 || c >= NumCommands {
		return "unknown"
	}
	return commandLabels[c]
}

var commandLabels = [NumCommands]string{
	"overlay next", "fullscreen toggle", "grab mouse toggle", "quit",
	"menu toggle", "game focus toggle", "screenshot", "mute", "osk",
	"volume up", "volume down", "netplay flip", "netplay watch",
	"pause toggle", "frame advance", "fast forward", "fast forward (hold)",
	"state slot plus", "state slot minus", "save state", "load state",
	"rewind", "slow motion", "movie record toggle", "shader next",
	"shader prev", "disk eject toggle", "disk next", "disk prev", "reset",
	"cheat index plus", "cheat index minus", "cheat toggle",
}

// Bits records which commands are pressed this frame. One bit per Command.
type Bits uint64

// IsSet returns true if the bit for Command c is set.
func (b Bits) IsSet(c Command) bool {
	return b&(1<<uint(c)) != 0
}

// Set the bit for Command c.
func (b *Bits) Set(c Command) {
	*b |= 1 << uint(c)
}

// Clear the bit for Command c.
func (b *Bits) Clear(c Command) {
	*b &^= 1 << uint(c)
}
