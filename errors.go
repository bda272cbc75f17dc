/*
 * errors.go, part of fftool.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package fftool

import (
	"fmt"
	"strings"
)

//Error is the error type returned by the fftool package. It carries a
//message and a trail of the functions it went through, so the origin of
//a failure deep in the matching machinery can be located without a
//stack trace.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s (%s)", err.message, strings.Join(err.deco, "/"))
}

//Decorate adds dec to the trail of the error and returns the
//resulting trail.
func (err *Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err *Error) Critical() bool { return err.critical }

func newError(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), critical: true}
}

//errDecorate adds the caller's name to err if it is an *Error, and
//wraps it into one otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(*Error)
	if !ok {
		err2 = &Error{message: err.Error(), critical: true}
	}
	err2.Decorate(caller)
	return err2
}
