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
	"bytes"
	"cmp"
	"io"
	"slices"

	"seehuhn.de/go/ppd/internal/psnum"
)

// Placeholders in the custom page size code, replaced by the requested
// dimensions when the code is emitted.
var (
	widthPlaceholder  = []byte("$width")
	lengthPlaceholder = []byte("$length")
)

// EmitOptions contains parameters for generating printer code.
type EmitOptions struct {
	// CustomWidth and CustomLength give the requested page size in points,
	// for use when the "Custom" page size is marked.  The values are clamped
	// to the range allowed by the PPD file.
	CustomWidth  float64
	CustomLength float64

	// FeatureComments encloses the code for each PostScript feature in
	// %%BeginFeature/%%EndFeature comments and a "stopped" context, so that
	// a failing feature does not abort the job.
	FeatureComments bool
}

// Emit writes the code for all marked choices of options which belong
// to the given section.  Options are emitted in order of increasing
// order value; options with the same order value are emitted in the order
// they are declared in the PPD file.
//
// Code for SectionAny options is included in all PostScript sections, but not
// in SectionExit and SectionJCL.  For SectionJCL, the output starts with the
// JCL begin sequence and ends with the code to enter the PostScript
// interpreter.
//
// If opt is nil, default options are used.  If an error occurs, nothing is
// written to w.
func (d *Document) Emit(w io.Writer, section Section, opt *EmitOptions) error {
	code, err := d.EmitBytes(section, opt)
	if err != nil {
		return err
	}
	_, err = w.Write(code)
	return err
}

// EmitBytes returns the code which [Document.Emit] would write.
func (d *Document) EmitBytes(section Section, opt *EmitOptions) ([]byte, error) {
	if opt == nil {
		opt = &EmitOptions{}
	}
	postScript := section != SectionJCL

	buf := &bytes.Buffer{}
	if !postScript {
		buf.Write(d.JCLBegin)
	}
	for _, o := range d.collect(section) {
		for _, c := range o.Choices {
			if !c.marked {
				continue
			}

			keyword, choice, code := o.Keyword, c.Name, c.Code
			if isCustomSize(o, c) {
				var err error
				code, err = d.customSizeCode(opt.CustomWidth, opt.CustomLength)
				if err != nil {
					return nil, &EmitError{Keyword: o.Keyword, Choice: c.Name, Err: err}
				}
				keyword, choice = "CustomPageSize", "True"
			}

			switch {
			case !postScript:
				buf.Write(code)
			case opt.FeatureComments && section != SectionExit:
				buf.WriteString("[{\n%%BeginFeature: *" + keyword + " " + choice + "\n")
				writeLine(buf, code)
				buf.WriteString("%%EndFeature\n} stopped cleartomark\n")
			default:
				writeLine(buf, code)
			}
		}
	}
	if !postScript {
		buf.Write(d.JCLToPS)
	}
	return buf.Bytes(), nil
}

// EmitJCLEnd writes the JCL sequence which ends the job.  This must be
// sent after the document body.
func (d *Document) EmitJCLEnd(w io.Writer) error {
	_, err := w.Write(d.JCLEnd)
	return err
}

// collect returns the options for the given section, sorted in emission
// order.
func (d *Document) collect(section Section) []*Option {
	var res []*Option
	for o := range d.AllOptions() {
		if o.Section == section ||
			o.Section == SectionAny && section != SectionExit && section != SectionJCL {
			res = append(res, o)
		}
	}
	slices.SortStableFunc(res, func(a, b *Option) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return res
}

func isCustomSize(o *Option, c *Choice) bool {
	return c.Name == "Custom" && (o.Keyword == "PageSize" || o.Keyword == "PageRegion")
}

// customSizeCode returns the code for a custom page size.  If the code
// template contains the placeholders $width and $length, these are replaced
// by the page dimensions.  Otherwise the dimensions are pushed on the
// operand stack before the template, as described in PPD format version 4.3.
func (d *Document) customSizeCode(width, length float64) ([]byte, error) {
	if len(d.CustomCode) == 0 {
		return nil, ErrNoCustomCode
	}
	w := []byte(psnum.Format(clamp(width, d.CustomMin.Width, d.CustomMax.Width), 2))
	l := []byte(psnum.Format(clamp(length, d.CustomMin.Length, d.CustomMax.Length), 2))

	tmpl := d.CustomCode
	if bytes.Contains(tmpl, widthPlaceholder) || bytes.Contains(tmpl, lengthPlaceholder) {
		code := bytes.ReplaceAll(tmpl, widthPlaceholder, w)
		return bytes.ReplaceAll(code, lengthPlaceholder, l), nil
	}

	code := make([]byte, 0, len(w)+len(l)+8+len(tmpl))
	code = append(code, w...)
	code = append(code, ' ')
	code = append(code, l...)
	code = append(code, " 0 0 0\n"...)
	code = append(code, tmpl...)
	return code, nil
}

// clamp restricts x to the range [lo, hi].  A non-positive upper bound
// means that there is no upper limit.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		x = lo
	}
	if hi > 0 && x > hi {
		x = hi
	}
	return x
}

// writeLine writes code to buf, adding a newline if needed.
func writeLine(buf *bytes.Buffer, code []byte) {
	if len(code) == 0 {
		return
	}
	buf.Write(code)
	if code[len(code)-1] != '\n' {
		buf.WriteByte('\n')
	}
}
