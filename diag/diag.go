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

// Package diag produces graphviz visualisations of the frontend's data
// structures, for debugging sessions that have wedged themselves into an
// interesting state. Render the output with:
//
//	dot -Tpng session.dot -o session.png
package diag

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/lodgepole/corehost/fault"
)

// Dump writes the object graph reachable from v to the io.Writer in dot
// format.
func Dump(w io.Writer, v interface{}) {
	memviz.Map(w, v)
}

// DumpToFile writes the object graph reachable from v to the named file.
func DumpToFile(path string, v interface{}) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fault.Errorf("diag: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fault.Errorf("diag: %v", err)
		}
	}()

	Dump(f, v)

	return nil
}
