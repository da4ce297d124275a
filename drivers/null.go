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

package drivers

import (
	"github.com/lodgepole/corehost/userinput"
)

// NullVideo is a video driver that discards everything. The window is
// always alive and always focused.
type NullVideo struct{}

func (v *NullVideo) Init() error                  { return nil }
func (v *NullVideo) Deinit()                      {}
func (v *NullVideo) Render(_ []byte, _, _ int) error { return nil }
func (v *NullVideo) Service()                     {}
func (v *NullVideo) Status() (bool, bool)         { return true, true }
func (v *NullVideo) SetFullscreen(_ bool)         {}
func (v *NullVideo) Screenshot(_ string) error    { return nil }

// NullAudio is an audio driver that discards everything.
type NullAudio struct {
	mute     bool
	nonblock bool
}

func (a *NullAudio) Init() error                { return nil }
func (a *NullAudio) Deinit()                    {}
func (a *NullAudio) Queue(_ []int16) error      { return nil }
func (a *NullAudio) SetMute(on bool)            { a.mute = on }
func (a *NullAudio) Muted() bool                { return a.mute }
func (a *NullAudio) VolumeDelta(_ bool)         {}
func (a *NullAudio) SetNonblock(on bool)        { a.nonblock = on }

// NullInput is an input driver that never reports a pressed command.
type NullInput struct{}

func (i *NullInput) Init() error               { return nil }
func (i *NullInput) Deinit()                   {}
func (i *NullInput) Poll()                     {}
func (i *NullInput) Pressed() userinput.Bits   { return 0 }
func (i *NullInput) SetGrabMouse(_ bool)       {}

// NullGroup returns a Group of null drivers. Used for headless sessions and
// in tests.
func NullGroup() *Group {
	return &Group{
		Video: &NullVideo{},
		Audio: &NullAudio{},
		Input: &NullInput{},
	}
}
