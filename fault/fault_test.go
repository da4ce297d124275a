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

package fault_test

import (
	"errors"
	"testing"

	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/test"
)

func TestIdentity(t *testing.T) {
	e := fault.Errorf("runloop: %v", "no core")

	test.ExpectSuccess(t, fault.IsAny(e))
	test.ExpectSuccess(t, fault.Is(e, "runloop: %v"))
	test.ExpectFailure(t, fault.Is(e, "session: %v"))
	test.ExpectFailure(t, fault.IsAny(errors.New("uncurated")))
	test.ExpectFailure(t, fault.IsAny(nil))
}

func TestChain(t *testing.T) {
	e := fault.Errorf("no such slot: %d", 9)
	f := fault.Errorf("session: %v", e)
	g := fault.Errorf("runloop: %v", f)

	test.ExpectSuccess(t, fault.Has(g, "no such slot: %d"))
	test.ExpectSuccess(t, fault.Has(g, "session: %v"))
	test.ExpectFailure(t, fault.Is(g, "no such slot: %d"))
	test.ExpectEquality(t, g.Error(), "runloop: session: no such slot: 9")
}

func TestNormalisation(t *testing.T) {
	// duplicate adjacent parts are folded
	e := fault.Errorf("session: %v", fault.Errorf("session: %v", "no core"))
	test.ExpectEquality(t, e.Error(), "session: no core")

	// non-adjacent duplicates are left alone
	f := fault.Errorf("session: %v", fault.Errorf("core: %v", "bad header"))
	test.ExpectEquality(t, f.Error(), "session: core: bad header")
}
