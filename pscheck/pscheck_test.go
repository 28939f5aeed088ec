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

package pscheck

import (
	"errors"
	"os"
	"strings"
	"testing"

	"seehuhn.de/go/ppd"
)

func TestCode(t *testing.T) {
	good := []string{
		"",
		"  \n",
		"<</PageSize [612 792]>> setpagedevice",
		"<</Duplex true /Tumble false>>\nsetpagedevice",
		"pop pop pop\n<</PageSize [5 -2 roll]>> setpagedevice",
		"userdict /foo {1 add} put % comment with a } brace",
		"(a string with a \\) paren) pop",
		"(balanced (inner) parens) pop",
		"<1B 2c> pop",
		"<</A {1 {2} if}>> pop",
	}
	for _, code := range good {
		if err := Code([]byte(code)); err != nil {
			t.Errorf("%q: %v", code, err)
		}
	}

	bad := []struct {
		code string
		want error
	}{
		{"(unterminated string", ErrUnterminatedString},
		{"<</PageSize [612 792]>> setpagedevice (oops", ErrUnterminatedString},
		{"(nested (parens) only once closed", ErrUnterminatedString},
		{"{ open", ErrUnclosedProc},
		{"{ {1 add} ", ErrUnclosedProc},
		{"} extra close", ErrUnexpectedClose},
		{"pop } { pop", ErrUnexpectedClose},
		{"text) pop", ErrUnexpectedClose},
		{"<1B2 pop", ErrBadHexString},
		{"<1B2", ErrUnterminatedString},
		{"<~abc pop", ErrUnterminatedString},
	}
	for _, c := range bad {
		err := Code([]byte(c.code))
		if !errors.Is(err, c.want) {
			t.Errorf("%q: got %v, want %v", c.code, err, c.want)
		}
	}
}

func TestScanPosition(t *testing.T) {
	err := Code([]byte("1 pop\n} 2 pop"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("got %v, want a *SyntaxError", err)
	}
	if synErr.Pos != 6 {
		t.Errorf("error at byte %d, want 6", synErr.Pos)
	}
}

func TestDocument(t *testing.T) {
	fd, err := os.Open("../testdata/laser.ppd")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	doc, err := ppd.Parse(fd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if problems := Document(doc); len(problems) != 0 {
		t.Errorf("unexpected problems: %v", problems)
	}

	broken, err := ppd.Parse(strings.NewReader(`*PPD-Adobe: "4.3"
*OpenUI *MediaType: PickOne
*MediaType Plain: "(Plain) setmediatype"
*MediaType Broken: "(Broken setmediatype"
*CloseUI: *MediaType
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	problems := Document(broken)
	if len(problems) != 1 || problems[0].Keyword != "MediaType" || problems[0].Choice != "Broken" {
		t.Errorf("unexpected problems: %v", problems)
	}
}
