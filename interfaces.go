/*
 * interfaces.go, part of govib.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

//Errors

// The error kinds. Every *Error returned by the packages in this module
// wraps one of these, so they can be checked with errors.Is.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrUnknownAtom    = errors.New("unknown atom")
	ErrImaginaryMode  = errors.New("imaginary-mode sampling")
	ErrNumerical      = errors.New("numerical instability")
	ErrConfig         = errors.New("configuration error")
)

// Error is the error type for all packages in this module. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
// The decoration slice contains the functions in the calling stack, from the innermost one.
type Error struct {
	message  string
	kind     error
	deco     []string
	critical bool
}

// NewError returns a critical *Error of the given kind, produced in the function caller.
func NewError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}, critical: true}
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("%v: %s", err.kind, err.message)
	}
	return fmt.Sprintf("%s: %v: %s", strings.Join(err.deco, ": "), err.kind, err.message)
}

// Unwrap returns the kind of the error.
func (err *Error) Unwrap() error { return err.kind }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. If dec is empty, it just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	//the outermost caller goes first in the message.
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// NonCritical marks err as non-critical and returns it.
func (err *Error) NonCritical() *Error {
	err.critical = false
	return err
}

// ErrDecorate decorates err with the caller's name, if err is (or wraps) an *Error.
// Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// UnknownAtomError returns the error for a symbol that is not present in a mass or symbol table.
func UnknownAtomError(caller, symbol string) *Error {
	return NewError(ErrUnknownAtom, caller, "atom %q is not in the table", symbol)
}

// MalformedInputError returns the error for input that doesn't have the expected layout.
func MalformedInputError(caller, format string, args ...interface{}) *Error {
	return NewError(ErrMalformedInput, caller, format, args...)
}

// ImaginaryModeError returns the error for the attempt of sampling mode index, which has the
// (signed) frequency freq, in atomic units.
func ImaginaryModeError(caller string, index int, freq float64) *Error {
	return NewError(ErrImaginaryMode, caller, "mode %d has a non-positive frequency (%.2f cm-1), the Wigner distribution is undefined for it", index, freq/AuPerCmInv)
}

// NumericalError returns the error for a NaN, Inf or otherwise degenerate value in a computation.
func NumericalError(caller, format string, args ...interface{}) *Error {
	return NewError(ErrNumerical, caller, format, args...)
}
