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

// Package pscheck finds PostScript code fragments in PPD files which are not
// well-formed.
//
// The code for a choice is sent to the printer inside a larger PostScript
// program.  A fragment with an unbalanced brace or an unterminated string
// breaks the whole job, so it is worth checking fragments before use.
// Fragments are only scanned, not executed: the structure of a fragment is
// checked first, and only a fragment with balanced delimiters is passed to
// the interpreter, wrapped into a procedure which is then discarded.
package pscheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/postscript"

	"seehuhn.de/go/ppd"
)

// maxOps limits the work the interpreter does for a single fragment.
const maxOps = 10_000

// These errors describe structural problems in a code fragment.
var (
	ErrUnterminatedString = errors.New("unterminated string")
	ErrUnclosedProc       = errors.New("unclosed procedure")
	ErrUnexpectedClose    = errors.New("unexpected closing delimiter")
	ErrBadHexString       = errors.New("invalid hex string")
)

// SyntaxError gives the position of a structural problem.
type SyntaxError struct {
	Pos int // byte offset into the fragment
	Err error
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%v at byte %d", err.Err, err.Pos)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

// Code checks that code can be read as a sequence of PostScript tokens
// with balanced procedure braces and terminated strings.
func Code(code []byte) error {
	if len(bytes.TrimSpace(code)) == 0 {
		return nil
	}
	err := scan(code)
	if err != nil {
		return err
	}

	intp := postscript.NewInterpreter()
	intp.MaxOps = maxOps
	r := io.MultiReader(
		strings.NewReader("{\n"),
		bytes.NewReader(code),
		strings.NewReader("\n} pop\n"),
	)
	return intp.Execute(r)
}

// scan checks the nesting of procedure braces and the termination of
// string literals, skipping comments.
func scan(code []byte) error {
	var open []int // positions of unclosed '{'
	n := len(code)
	for i := 0; i < n; i++ {
		switch code[i] {
		case '%':
			for i < n && code[i] != '\n' && code[i] != '\r' {
				i++
			}
		case '(':
			end, ok := skipString(code, i)
			if !ok {
				return &SyntaxError{Pos: i, Err: ErrUnterminatedString}
			}
			i = end
		case ')':
			return &SyntaxError{Pos: i, Err: ErrUnexpectedClose}
		case '<':
			switch {
			case i+1 < n && code[i+1] == '<':
				i++
			case i+1 < n && code[i+1] == '~':
				end := bytes.Index(code[i+2:], []byte("~>"))
				if end < 0 {
					return &SyntaxError{Pos: i, Err: ErrUnterminatedString}
				}
				i += 2 + end + 1
			default:
				end, err := skipHex(code, i)
				if err != nil {
					return &SyntaxError{Pos: i, Err: err}
				}
				i = end
			}
		case '>':
			if i+1 < n && code[i+1] == '>' {
				i++
			} else {
				return &SyntaxError{Pos: i, Err: ErrUnexpectedClose}
			}
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				return &SyntaxError{Pos: i, Err: ErrUnexpectedClose}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return &SyntaxError{Pos: open[len(open)-1], Err: ErrUnclosedProc}
	}
	return nil
}

// skipString returns the position of the ')' which ends the string
// starting at code[start].  Parentheses inside the string must be balanced
// unless they are escaped with a backslash.
func skipString(code []byte, start int) (int, bool) {
	depth := 0
	for i := start; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// skipHex returns the position of the '>' which ends the hex string
// starting at code[start].
func skipHex(code []byte, start int) (int, error) {
	for i := start + 1; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '>':
			return i, nil
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		case c == ' ', c == '\t', c == '\n', c == '\r', c == '\f', c == 0:
		default:
			return 0, ErrBadHexString
		}
	}
	return 0, ErrUnterminatedString
}

// Problem describes a malformed code fragment.
type Problem struct {
	Keyword string
	Choice  string
	Err     error
}

func (p Problem) String() string {
	return fmt.Sprintf("*%s %s: %v", p.Keyword, p.Choice, p.Err)
}

// Document checks the PostScript code of all choices, the custom page size
// code and the emulator start code.  Code for JCL options is not
// PostScript and is skipped.
func Document(doc *ppd.Document) []Problem {
	var res []Problem
	for o := range doc.AllOptions() {
		if o.Section == ppd.SectionJCL {
			continue
		}
		for _, c := range o.Choices {
			if err := Code(c.Code); err != nil {
				res = append(res, Problem{Keyword: o.Keyword, Choice: c.Name, Err: err})
			}
		}
	}
	if err := Code(doc.CustomCode); err != nil {
		res = append(res, Problem{Keyword: "CustomPageSize", Choice: "True", Err: err})
	}
	for _, em := range doc.Emulations {
		if err := Code(em.Start); err != nil {
			res = append(res, Problem{Keyword: "StartEmulator_" + em.Name, Err: err})
		}
	}
	return res
}
