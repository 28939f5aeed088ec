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

package psnum

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		x    float64
		prec int
		out  string
	}{
		{0, 2, "0"},
		{200, 2, "200"},
		{612, 0, "612"},
		{0.5, 2, ".5"},
		{-0.5, 2, "-.5"},
		{595.276, 2, "595.28"},
		{1.10, 3, "1.1"},
		{-0.001, 2, "0"},
		{100.004, 2, "100"},
	}
	for _, c := range cases {
		out := Format(c.x, c.prec)
		if out != c.out {
			t.Errorf("Format(%g, %d) = %q, want %q", c.x, c.prec, out, c.out)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in  string
		x   float64
		bad bool
	}{
		{"612", 612, false},
		{"+1.0", 1, false},
		{"-.5", -.5, false},
		{"18.", 18, false},
		{"", 0, true},
		{".", 0, true},
		{"--1", 0, true},
		{"1e3", 0, true},
		{"0x10", 0, true},
		{"NaN", 0, true},
		{"12pt", 0, true},
		{"1.2.3", 0, true},
	}
	for _, c := range cases {
		x, err := Parse(c.in)
		if c.bad {
			if err == nil {
				t.Errorf("Parse(%q) = %g, want error", c.in, x)
			}
			continue
		}
		if err != nil || x != c.x {
			t.Errorf("Parse(%q) = %g, %v, want %g", c.in, x, err, c.x)
		}
	}
}
