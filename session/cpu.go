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

import (
	"runtime"

	"github.com/lodgepole/corehost/fault"
	"golang.org/x/sys/cpu"
)

// validateCPU checks that the host CPU carries the SIMD capabilities cores
// are allowed to assume. A missing capability is fatal; there is no slower
// fallback path.
func validateCPU() error {
	switch runtime.GOARCH {
	case "amd64":
		if !cpu.X86.HasSSE2 {
			return fault.Errorf("session: cpu is missing required SSE2 support")
		}
	case "arm64":
		if !cpu.ARM64.HasASIMD {
			return fault.Errorf("session: cpu is missing required ASIMD support")
		}
	}
	return nil
}
