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

// IsMarked reports whether the given choice of the option is currently
// selected.  Unknown options and choices are reported as not marked.
func (d *Document) IsMarked(keyword, choice string) bool {
	o := d.keywords[keyword]
	if o == nil {
		return false
	}
	c := o.Choice(choice)
	return c != nil && c.marked
}

// MarkOption selects a choice of an option.
//
// For options where only one choice can be selected, the previously marked
// choice is unmarked and its name is returned.  For PickMany options the
// marked state of the given choice is toggled; the return value is the
// choice name if the choice was marked before the call, and the empty string
// otherwise.
//
// If the option or the choice does not exist, an [*UnknownOptionError] or
// [*UnknownChoiceError] is returned and no marks are changed.
func (d *Document) MarkOption(keyword, choice string) (string, error) {
	o := d.keywords[keyword]
	if o == nil {
		return "", &UnknownOptionError{Keyword: keyword}
	}
	c := o.Choice(choice)
	if c == nil {
		return "", &UnknownChoiceError{Keyword: keyword, Choice: choice}
	}

	prev := ""
	if o.UI == UIPickMany {
		if c.marked {
			prev = c.Name
		}
		c.marked = !c.marked
		return prev, nil
	}

	for _, other := range o.Choices {
		if other.marked {
			if prev == "" {
				prev = other.Name
			}
			other.marked = false
		}
	}
	c.marked = true
	return prev, nil
}

// MarkDefaults resets the marks of all options to their default choices.
// If the default choice of an option does not exist, the first choice is
// marked.
func (d *Document) MarkDefaults() {
	for o := range d.AllOptions() {
		o.markDefault()
	}
}

func (o *Option) markDefault() {
	if len(o.Choices) == 0 {
		return
	}
	def := o.Choice(o.DefChoice)
	if def == nil {
		def = o.Choices[0]
	}
	for _, c := range o.Choices {
		c.marked = c == def
	}
}

// MarkedChoice returns the first marked choice of an option.
// If the option does not exist or has no marked choice, nil is returned.
func (d *Document) MarkedChoice(keyword string) *Choice {
	o := d.keywords[keyword]
	if o == nil {
		return nil
	}
	for _, c := range o.Choices {
		if c.marked {
			return c
		}
	}
	return nil
}
