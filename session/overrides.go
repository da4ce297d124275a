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

package session

// Setting identifies one overridable setting.
type Setting int

// List of overridable settings.
const (
	OverrideVerbosity Setting = iota
	OverrideCorePath
	OverrideCoreDirectory
	OverrideSavePath
	OverrideStatePath
	OverrideNetplayMode
	OverrideNetplayAddress
	OverrideNetplayPort
	OverrideNetplayStateless
	OverrideNetplayCheckFrames
	OverrideUPS
	OverrideBPS
	OverrideIPS

	// NumOverrides is the extent of the Setting type.
	NumOverrides
)

// NumDevicePorts is the number of input ports that can carry a device
// override.
const NumDevicePorts = 128

// Overrides records which settings were explicitly supplied this session,
// on the command line in practice. A set bit stops a later settings reload
// from silently replacing an explicit user choice.
//
// Device overrides are tracked separately, one bit per input port.
type Overrides struct {
	settings uint64
	devices  [2]uint64
}

// Set marks a setting as explicitly supplied.
func (o *Overrides) Set(st Setting) {
	o.settings |= 1 << uint(st)
}

// Unset removes the explicitly-supplied mark from a setting.
func (o *Overrides) Unset(st Setting) {
	o.settings &^= 1 << uint(st)
}

// IsSet returns true if the setting was explicitly supplied.
func (o *Overrides) IsSet(st Setting) bool {
	return o.settings&(1<<uint(st)) != 0
}

// SetDevice marks the input device on the given port as explicitly
// assigned. Ports beyond NumDevicePorts are ignored.
func (o *Overrides) SetDevice(port uint) {
	if port >= NumDevicePorts {
		return
	}
	o.devices[port/64] |= 1 << (port % 64)
}

// UnsetDevice removes the explicit-assignment mark from a port.
func (o *Overrides) UnsetDevice(port uint) {
	if port >= NumDevicePorts {
		return
	}
	o.devices[port/64] &^= 1 << (port % 64)
}

// IsSetDevice returns true if the device on the given port was explicitly
// assigned.
func (o *Overrides) IsSetDevice(port uint) bool {
	if port >= NumDevicePorts {
		return false
	}
	return o.devices[port/64]&(1<<(port%64)) != 0
}

// Clear forgets every override.
func (o *Overrides) Clear() {
	o.settings = 0
	o.devices[0] = 0
	o.devices[1] = 0
}
