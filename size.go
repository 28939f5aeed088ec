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

import "seehuhn.de/go/geom/rect"

// PageSize returns the page size with the given name, or nil if the PPD file
// does not describe such a size.  If name is empty, the page size
// corresponding to the marked choice of the PageSize option is returned.
func (d *Document) PageSize(name string) *PageSize {
	if name == "" {
		c := d.MarkedChoice("PageSize")
		if c == nil {
			return nil
		}
		name = c.Name
	}
	for _, s := range d.Sizes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// PageWidth returns the width of the named page size in points,
// or 0 if the size is not known.
func (d *Document) PageWidth(name string) float64 {
	if s := d.PageSize(name); s != nil {
		return s.Width
	}
	return 0
}

// PageLength returns the length of the named page size in points,
// or 0 if the size is not known.
func (d *Document) PageLength(name string) float64 {
	if s := d.PageSize(name); s != nil {
		return s.Length
	}
	return 0
}

// Media returns the full page area.
func (s *PageSize) Media() rect.Rect {
	return rect.Rect{URx: s.Width, URy: s.Length}
}

// Imageable returns the area of the page which the device can print on.
func (s *PageSize) Imageable() rect.Rect {
	return rect.Rect{LLx: s.Left, LLy: s.Bottom, URx: s.Right, URy: s.Top}
}

// Emulation returns the emulation with the given name, or nil if the
// device does not support it.
func (d *Document) Emulation(name string) *Emulation {
	for _, em := range d.Emulations {
		if em.Name == name {
			return em
		}
	}
	return nil
}
