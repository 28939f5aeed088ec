// seehuhn.de/go/ppd - read and use PostScript Printer Description files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ppd

import (
	"errors"
	"strconv"
)

var (
	// ErrNotPPD indicates that the input does not start with a PPD signature.
	ErrNotPPD = errors.New("missing *PPD-Adobe signature")

	// ErrUnterminated indicates that the input ended inside a quoted value.
	ErrUnterminated = errors.New("unterminated quoted value")

	// ErrNesting indicates that groups, sub-groups or UI options are not
	// nested correctly.
	ErrNesting = errors.New("invalid nesting")

	// ErrBadNumber is reported for malformed numbers, if
	// [ParseOptions.RejectBadNumbers] is set.
	ErrBadNumber = errors.New("malformed number")

	// ErrUnknownKeyword is reported for unsupported keywords, if
	// [ParseOptions.RejectUnknownKeywords] is set.
	ErrUnknownKeyword = errors.New("unknown keyword")

	// ErrTooLong indicates that a name or a human-readable text exceeds the
	// limits set in [ParseOptions].
	ErrTooLong = errors.New("value too long")

	// ErrNoCustomCode indicates that a custom page size was selected, but the
	// PPD file does not provide code for custom page sizes.
	ErrNoCustomCode = errors.New("no code for custom page sizes")
)

// FormatError indicates that the PPD file could not be parsed.
type FormatError struct {
	Line    int
	Keyword string
	Err     error
}

func (err *FormatError) Error() string {
	middle := ""
	if err.Keyword != "" {
		middle = ": *" + err.Keyword
	}
	if err.Err != nil {
		middle += ": " + err.Err.Error()
	}
	tail := ""
	if err.Line > 0 {
		tail = " (line " + strconv.Itoa(err.Line) + ")"
	}
	return "malformed PPD file" + middle + tail
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// ReadError indicates that the underlying reader failed.
type ReadError struct {
	Err error
}

func (err *ReadError) Error() string {
	return "cannot read PPD file: " + err.Err.Error()
}

func (err *ReadError) Unwrap() error {
	return err.Err
}

// UnknownOptionError is returned when an option keyword is not
// declared in the PPD file.
type UnknownOptionError struct {
	Keyword string
}

func (err *UnknownOptionError) Error() string {
	return "ppd: unknown option " + strconv.Quote(err.Keyword)
}

// UnknownChoiceError is returned when an option exists but does not
// have the requested choice.
type UnknownChoiceError struct {
	Keyword string
	Choice  string
}

func (err *UnknownChoiceError) Error() string {
	return "ppd: option " + strconv.Quote(err.Keyword) +
		" has no choice " + strconv.Quote(err.Choice)
}

// EmitError indicates that the code for a marked choice could not be
// generated.
type EmitError struct {
	Keyword string
	Choice  string
	Err     error
}

func (err *EmitError) Error() string {
	return "ppd: cannot emit *" + err.Keyword + " " + err.Choice + ": " + err.Err.Error()
}

func (err *EmitError) Unwrap() error {
	return err.Err
}
