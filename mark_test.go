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
	"testing"
)

func TestMarkOption(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	prev, err := doc.MarkOption("PageSize", "A4")
	if err != nil {
		t.Fatal(err)
	}
	if prev != "Letter" {
		t.Errorf("previous choice = %q, want Letter", prev)
	}
	for _, c := range doc.Option("PageSize").Choices {
		if c.Marked() != (c.Name == "A4") {
			t.Errorf("choice %s: marked = %t", c.Name, c.Marked())
		}
	}

	// marking the same choice again changes nothing
	prev, err = doc.MarkOption("PageSize", "A4")
	if err != nil {
		t.Fatal(err)
	}
	if prev != "A4" || !doc.IsMarked("PageSize", "A4") || doc.IsMarked("PageSize", "Letter") {
		t.Errorf("second call: prev = %q", prev)
	}
	if c := doc.MarkedChoice("PageSize"); c == nil || c.Name != "A4" {
		t.Errorf("MarkedChoice = %v", c)
	}
}

func TestMarkPickMany(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	prev, err := doc.MarkOption("Staple", "Right")
	if err != nil {
		t.Fatal(err)
	}
	if prev != "" {
		t.Errorf("prev = %q", prev)
	}
	if !doc.IsMarked("Staple", "Left") || !doc.IsMarked("Staple", "Right") {
		t.Error("both staple positions should be marked")
	}

	prev, err = doc.MarkOption("Staple", "Left")
	if err != nil {
		t.Fatal(err)
	}
	if prev != "Left" || doc.IsMarked("Staple", "Left") || !doc.IsMarked("Staple", "Right") {
		t.Errorf("toggling Left failed, prev = %q", prev)
	}
}

func TestMarkUnknown(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	_, err := doc.MarkOption("NoSuchOption", "x")
	var optErr *UnknownOptionError
	if !errors.As(err, &optErr) || optErr.Keyword != "NoSuchOption" {
		t.Errorf("got %v, want UnknownOptionError", err)
	}

	_, err = doc.MarkOption("PageSize", "Tabloid")
	var choiceErr *UnknownChoiceError
	if !errors.As(err, &choiceErr) || choiceErr.Choice != "Tabloid" {
		t.Errorf("got %v, want UnknownChoiceError", err)
	}

	// no marks were changed
	fresh := readTestFile(t, "testdata/laser.ppd", nil)
	for o := range fresh.AllOptions() {
		for _, c := range o.Choices {
			if doc.IsMarked(o.Keyword, c.Name) != c.Marked() {
				t.Errorf("%s %s changed", o.Keyword, c.Name)
			}
		}
	}

	if doc.IsMarked("NoSuchOption", "x") || doc.IsMarked("PageSize", "Tabloid") {
		t.Error("unknown choices reported as marked")
	}
}

func TestMarkDefaults(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	for _, m := range [][2]string{
		{"PageSize", "Env10"},
		{"Duplex", "DuplexTumble"},
		{"Staple", "Right"},
		{"JCLEconomode", "True"},
	} {
		if _, err := doc.MarkOption(m[0], m[1]); err != nil {
			t.Fatal(err)
		}
	}

	doc.MarkDefaults()
	doc.MarkDefaults()

	fresh := readTestFile(t, "testdata/laser.ppd", nil)
	for o := range fresh.AllOptions() {
		for _, c := range o.Choices {
			if doc.IsMarked(o.Keyword, c.Name) != c.Marked() {
				t.Errorf("%s %s: marked = %t", o.Keyword, c.Name, !c.Marked())
			}
		}
	}
}
