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

// Package fault is a small helper around the plain Go error type. Errors
// created with Errorf() remember the pattern they were created with and the
// pattern acts as the error's identity for the purposes of the Is() and Has()
// functions.
//
// The Error() function normalises the message chain, removing adjacent
// duplicate parts. This means packages can wrap errors freely, with their own
// package name as a prefix, without worrying about messages like
// "session: session: no core".
package fault

import (
	"fmt"
	"strings"
)

type fault struct {
	pattern string
	values  []interface{}
}

// Errorf creates a new fault error. The first argument is named pattern
// rather than format because it is used as the identity of the error in the
// Is() and Has() functions.
func Errorf(pattern string, values ...interface{}) error {
	// formatting is deferred until the Error() function is called. only the
	// arguments are stored at this point
	return fault{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Normalisation is the removal of
// duplicate adjacent parts in the message chain. Letter-case and white space
// are unaffected.
//
// Implements the error interface.
func (er fault) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// IsAny checks if the error was created by the Errorf() function in this
// package.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(fault)
	return ok
}

// Is checks if the error was created by Errorf() with the specified pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(fault); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if the specified pattern appears anywhere in the error chain.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	for _, v := range err.(fault).values {
		if e, ok := v.(fault); ok {
			if Has(e, pattern) {
				return true
			}
		}
	}

	return false
}
