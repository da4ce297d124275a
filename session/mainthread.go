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
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the id of the calling goroutine. Goroutine ids are
// deliberately hard to get at but the run loop's single-goroutine
// precondition needs an identity to compare against, and the header of a
// stack trace carries one.
func goroutineID() int64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]

	// the trace begins "goroutine N ["
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}

	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// captureMainGoroutine records the calling goroutine as the session's owner.
func (s *Session) captureMainGoroutine() {
	s.mainID = goroutineID()
}

// OnMainGoroutine returns true if called from the goroutine that ran Init().
// Always true before Init() has captured an owner.
func (s *Session) OnMainGoroutine() bool {
	return s.mainID == 0 || goroutineID() == s.mainID
}
