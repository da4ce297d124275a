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

// Package dummy is the placeholder core. It is stepped like any other core
// but does nothing. Used for menu-only sessions and as the fallback when a
// real core cannot be loaded or has shut itself down.
package dummy

import (
	"github.com/lodgepole/corehost/core"
)

type dmy struct {
	env core.Environment
}

// Load implements the core.Loader type. The content path is ignored.
func Load(env core.Environment, _ string) (core.Core, error) {
	return &dmy{env: env}, nil
}

func (d *dmy) Info() core.Info {
	return core.Info{Name: "dummy", Version: "v0"}
}

func (d *dmy) AVInfo() core.AVInfo {
	return core.AVInfo{FPS: 60, SampleRate: 48000, Width: 320, Height: 240}
}

func (d *dmy) Step() error {
	return nil
}

func (d *dmy) Serialize() ([]byte, error) {
	return []byte{}, nil
}

func (d *dmy) Deserialize(_ []byte) error {
	return nil
}

func (d *dmy) Reset() error {
	return nil
}

func (d *dmy) Deinit() error {
	return nil
}
