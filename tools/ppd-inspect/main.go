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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"seehuhn.de/go/ppd"
	"seehuhn.de/go/ppd/tools/internal/buildinfo"
)

var (
	showSizes       = flag.Bool("sizes", false, "list the page sizes")
	showConstraints = flag.Bool("constraints", false, "list the constraints")
	showCode        = flag.Bool("code", false, "show the code for each choice")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ppd-inspect \u2014 show the options described in a PPD file\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("ppd-inspect"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ppd-inspect [options] <file.ppd>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	for _, fname := range flag.Args() {
		err := inspect(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func inspect(fname string) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	doc, err := ppd.Parse(fd, nil)
	if err != nil {
		return err
	}
	p := &printer{doc: doc}

	fmt.Printf("%s: %s\n", fname, p.text(doc.NickName))
	fmt.Printf("  manufacturer: %s\n", p.text(doc.Manufacturer))
	fmt.Printf("  model: %s (product %q)\n", p.text(doc.ModelName), doc.Product)
	fmt.Printf("  language level %d, %s, color space %s\n",
		doc.LanguageLevel, colorText(doc.ColorDevice), doc.ColorSpace)
	fmt.Printf("  texts: %s (%s)\n", doc.Language(), doc.LanguageEncoding)
	if len(doc.Fonts) > 0 {
		fmt.Printf("  fonts: %s\n", strings.Join(doc.Fonts, " "))
	}
	for _, em := range doc.Emulations {
		fmt.Printf("  emulation: %s\n", em.Name)
	}

	for _, g := range doc.Groups {
		p.group(g, "  ")
	}
	p.options("top-level options", doc.Options)
	p.options("non-UI options", doc.NonUI)
	p.options("JCL options", doc.JCL)

	if *showSizes {
		fmt.Println("  page sizes:")
		for _, s := range doc.Sizes {
			fmt.Printf("    %-16s %gx%g imageable %v\n", s.Name, s.Width, s.Length, s.Imageable())
		}
		if doc.VariableSizes {
			fmt.Printf("    custom sizes from %gx%g to %gx%g\n",
				doc.CustomMin.Width, doc.CustomMin.Length,
				doc.CustomMax.Width, doc.CustomMax.Length)
		}
	}
	if *showConstraints {
		fmt.Println("  constraints:")
		for _, c := range doc.Constraints {
			fmt.Printf("    *%s %s / *%s %s\n", c.Option1, c.Choice1, c.Option2, c.Choice2)
		}
	}
	if n := doc.Conflicts(); n > 0 {
		fmt.Printf("  %d conflicts between the default choices\n", n)
	}
	return nil
}

type printer struct {
	doc *ppd.Document
}

func (p *printer) group(g *ppd.Group, indent string) {
	fmt.Printf("%sgroup %s %q\n", indent, g.Name, p.text(g.Text))
	for _, o := range g.Options {
		p.option(o, indent+"  ")
	}
	for _, sub := range g.Subgroups {
		p.group(sub, indent+"  ")
	}
}

func (p *printer) options(title string, opts []*ppd.Option) {
	if len(opts) == 0 {
		return
	}
	fmt.Printf("  %s\n", title)
	for _, o := range opts {
		p.option(o, "    ")
	}
}

func (p *printer) option(o *ppd.Option, indent string) {
	fmt.Printf("%s*%s %q (%s, %s %g)\n",
		indent, o.Keyword, p.text(o.Text), o.UI, o.Section, o.Order)
	for _, c := range o.Choices {
		mark := " "
		if c.Marked() {
			mark = "*"
		}
		fmt.Printf("%s  %s %s %q\n", indent, mark, c.Name, p.text(c.Text))
		if *showCode && len(c.Code) > 0 {
			fmt.Printf("%s      %q\n", indent, c.Code)
		}
	}
}

// text converts a text from the PPD file to UTF-8 for display.
func (p *printer) text(s string) string {
	out, err := p.doc.DecodeText(s)
	if err != nil {
		return s
	}
	return out
}

func colorText(color bool) string {
	if color {
		return "color"
	}
	return "grayscale"
}
