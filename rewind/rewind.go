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

// Package rewind keeps a bounded history of core snapshots and steps the
// core backwards through them while the rewind command is held.
package rewind

import (
	"github.com/lodgepole/corehost/logger"
)

// Rewind holds the snapshot ring. Capture and restore functions are supplied
// at initialisation so that the package knows nothing about the core beyond
// its serialised form.
type Rewind struct {
	capture func() ([]byte, error)
	restore func([]byte) error

	// ring of snapshots. head is the next write position, entries the
	// number of valid snapshots
	ring    [][]byte
	head    int
	entries int

	// frames since the last capture
	sinceCapture uint

	reversing bool
}

// New is the preferred method of initialisation for the Rewind type. A size
// of zero disables the rewind system entirely.
func New(size uint, capture func() ([]byte, error), restore func([]byte) error) *Rewind {
	if size == 0 {
		return nil
	}
	return &Rewind{
		capture: capture,
		restore: restore,
		ring:    make([][]byte, size),
	}
}

// Frame is called once per completed simulation step. Every granularity
// frames a snapshot is taken.
func (rw *Rewind) Frame(granularity uint) {
	if rw == nil {
		return
	}

	if granularity == 0 {
		granularity = 1
	}

	rw.sinceCapture++
	if rw.sinceCapture < granularity {
		return
	}
	rw.sinceCapture = 0

	d, err := rw.capture()
	if err != nil {
		logger.Logf("rewind", "capture: %v", err)
		return
	}

	rw.ring[rw.head] = d
	rw.head = (rw.head + 1) % len(rw.ring)
	if rw.entries < len(rw.ring) {
		rw.entries++
	}
}

// Check services the rewind command. While pressed the most recent snapshot
// is restored and a notice for the user is returned. The returned duration
// is in frames; ok is false when there is nothing to report.
func (rw *Rewind) Check(pressed bool, _ bool) (msg string, duration uint, ok bool) {
	if rw == nil {
		return "", 0, false
	}

	if !pressed {
		rw.reversing = false
		return "", 0, false
	}

	if rw.entries == 0 {
		rw.reversing = false
		return "Reached end of rewind buffer", 30, true
	}

	rw.head = (rw.head + len(rw.ring) - 1) % len(rw.ring)
	d := rw.ring[rw.head]
	rw.ring[rw.head] = nil
	rw.entries--

	if err := rw.restore(d); err != nil {
		logger.Logf("rewind", "restore: %v", err)
		return "", 0, false
	}

	rw.reversing = true
	return "Rewinding", 30, true
}

// Reversing returns true while snapshots are being consumed.
func (rw *Rewind) Reversing() bool {
	return rw != nil && rw.reversing
}

// Deinit drops all snapshots.
func (rw *Rewind) Deinit() {
	if rw == nil {
		return
	}
	for i := range rw.ring {
		rw.ring[i] = nil
	}
	rw.head = 0
	rw.entries = 0
	rw.reversing = false
}
