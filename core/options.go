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

package core

import (
	"sort"
)

// Options is the set of key/value options a core has exposed to the
// frontend. The session owns one instance per loaded core.
type Options struct {
	vals map[string]string
}

// NewOptions is the preferred method of initialisation for the Options type.
func NewOptions() *Options {
	return &Options{vals: make(map[string]string)}
}

// Set an option value, creating the option if necessary.
func (o *Options) Set(key string, value string) {
	o.vals[key] = value
}

// Get an option value. The second return value is false if the option does
// not exist.
func (o *Options) Get(key string) (string, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Size returns the number of options.
func (o *Options) Size() int {
	return len(o.vals)
}

// Keys returns the option names in a stable order.
func (o *Options) Keys() []string {
	k := make([]string, 0, len(o.vals))
	for key := range o.vals {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}
