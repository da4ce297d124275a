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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lodgepole/corehost/config"
	"github.com/lodgepole/corehost/test"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	set, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.yml"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, set.PauseWhenUnfocused)
	test.ExpectSuccess(t, set.LoadDummyOnCoreShutdown)
	test.ExpectEquality(t, set.FastForwardRatio, float32(0))
	test.ExpectEquality(t, set.SlowMotionRatio, float32(3.0))
}

func TestRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "corehost.yml")

	set := config.Defaults()
	set.FastForwardRatio = 2.0
	set.StateSlot = 3
	set.Netplay.Address = "203.0.113.7"
	set.Netplay.Port = 55435

	test.ExpectSuccess(t, set.Save(p))

	ld, err := config.Load(p)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ld.FastForwardRatio, float32(2.0))
	test.ExpectEquality(t, ld.StateSlot, 3)
	test.ExpectEquality(t, ld.Netplay.Address, "203.0.113.7")
	test.ExpectEquality(t, ld.Netplay.Port, uint16(55435))
}

func TestMalformedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "corehost.yml")
	test.ExpectSuccess(t, os.WriteFile(p, []byte("{{not yaml"), 0644))

	_, err := config.Load(p)
	test.ExpectFailure(t, err)
}
