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

// Package core defines the contract between the frontend and a simulation
// core. The frontend steps the core once per host frame; everything the core
// needs from the host goes through the Environment interface it is given at
// load time.
package core

import (
	"time"
)

// Type identifies which kind of core is (or should be) loaded.
type Type int

// List of core types. TypeDummy is the placeholder core used when no real
// core is loaded or when a real core has failed.
const (
	TypeNone Type = iota
	TypeDummy
	TypeMedia
	TypePlain
)

func (t Type) String() string {
	switch t {
	case TypeDummy:
		return "dummy"
	case TypeMedia:
		return "media"
	case TypePlain:
		return "plain"
	}
	return "none"
}

// Info describes a loaded core.
type Info struct {
	Name       string
	Version    string
	Extensions []string
}

// AVInfo describes the timing and geometry a core wants from its host.
type AVInfo struct {
	FPS        float32
	SampleRate int
	Width      int
	Height     int
}

// Environment is the window a core has onto its host. An instance is given
// to the core's Loader and remains valid until the core is deinitialised.
type Environment interface {
	// RequestShutdown asks the host to end the session. The request is
	// honoured at the next frame boundary.
	RequestShutdown()

	// SetFrameTime registers a variable-timestep callback. The host invokes
	// it before every step with the measured frame delta. The reference
	// interval is used whenever the host cannot, or must not, measure.
	SetFrameTime(callback func(delta time.Duration), reference time.Duration)

	// Message surfaces a transient notice to the user.
	Message(msg string)

	// QueueAudio hands a block of interleaved samples to the audio driver.
	QueueAudio(samples []int16)

	// RenderFrame hands a finished RGBA frame to the video driver.
	RenderFrame(pix []byte, width int, height int)
}

// Core is one loaded simulation engine.
type Core interface {
	Info() Info
	AVInfo() AVInfo

	// Step runs the core for exactly one frame.
	Step() error

	// Serialize returns an opaque snapshot of the core's state, suitable
	// for Deserialize on the same core type.
	Serialize() ([]byte, error)
	Deserialize(data []byte) error

	Reset() error
	Deinit() error
}

// Loader creates a Core bound to the given environment and content. The
// content path may be empty for cores that need none.
type Loader func(env Environment, contentPath string) (Core, error)
