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

// Conflicts checks all constraints against the currently marked choices
// and returns the number of violated constraints.  The conflict flags of
// all options are updated: an option is flagged if it takes part in at
// least one violated constraint.
func (d *Document) Conflicts() int {
	for o := range d.AllOptions() {
		o.conflicted = false
	}

	count := 0
	for _, c := range d.Constraints {
		o1 := d.keywords[c.Option1]
		o2 := d.keywords[c.Option2]
		if o1 == nil || o2 == nil {
			continue
		}
		if !o1.selects(c.Choice1) || !o2.selects(c.Choice2) {
			continue
		}
		count++
		o1.conflicted = true
		o2.conflicted = true
	}
	return count
}

// selects reports whether the given choice of o is marked.  The empty choice
// name matches any marked choice other than the ones which switch a feature
// off.
func (o *Option) selects(choice string) bool {
	if choice != "" {
		c := o.Choice(choice)
		return c != nil && c.marked
	}
	for _, c := range o.Choices {
		if c.marked && !isOff(c.Name) {
			return true
		}
	}
	return false
}

func isOff(choice string) bool {
	switch choice {
	case "None", "False", "Off":
		return true
	}
	return false
}
