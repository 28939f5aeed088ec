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

// Package ppd reads PostScript Printer Description (PPD) files.
//
// A PPD file describes the options a printer supports, together with the
// PostScript or job control code which selects each option.  [Parse] reads
// such a file into a [Document].  The document keeps track of which choice is
// selected ("marked") for every option, detects combinations of choices the
// printer cannot handle, and generates the code needed to configure the
// printer for the marked choices:
//
//	doc, err := ppd.Parse(r, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = doc.MarkOption("PageSize", "A4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if doc.Conflicts() > 0 {
//	    log.Fatal("conflicting options selected")
//	}
//	err = doc.Emit(w, ppd.SectionDocument, nil)
//
// A Document is not safe for concurrent use.  Marking changes state which is
// read by Conflicts and Emit, so callers sharing a document between
// goroutines must provide their own synchronisation.
package ppd
