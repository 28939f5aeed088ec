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
	"fmt"
	"iter"
	"strings"
)

// UIType describes how the choices of an option can be selected.
type UIType int

// These are the supported UI types.
const (
	UIBoolean  UIType = iota // either true or false
	UIPickOne                // exactly one of the choices
	UIPickMany               // zero or more of the choices
)

func (ui UIType) String() string {
	switch ui {
	case UIBoolean:
		return "Boolean"
	case UIPickOne:
		return "PickOne"
	case UIPickMany:
		return "PickMany"
	default:
		return fmt.Sprintf("UIType(%d)", int(ui))
	}
}

// Section describes where in a print job the code for an option must be
// placed.
type Section int

// These are the sections recognised in *OrderDependency entries.
const (
	SectionAny      Section = iota // AnySetup
	SectionDocument                // DocumentSetup
	SectionExit                    // ExitServer
	SectionJCL                     // JCLSetup
	SectionPage                    // PageSetup
	SectionProlog                  // Prolog
)

var sectionNames = []string{
	SectionAny:      "AnySetup",
	SectionDocument: "DocumentSetup",
	SectionExit:     "ExitServer",
	SectionJCL:      "JCLSetup",
	SectionPage:     "PageSetup",
	SectionProlog:   "Prolog",
}

func (s Section) String() string {
	if s >= 0 && int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return fmt.Sprintf("Section(%d)", int(s))
}

// ParseSection converts a section name, as used in *OrderDependency
// entries, into a Section.
func ParseSection(name string) (Section, error) {
	for i, s := range sectionNames {
		if strings.EqualFold(s, name) {
			return Section(i), nil
		}
	}
	return SectionAny, fmt.Errorf("unknown section %q", name)
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (s *Section) UnmarshalText(text []byte) error {
	sec, err := ParseSection(string(text))
	if err != nil {
		return err
	}
	*s = sec
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ColorSpace is the default colour space of a device.
type ColorSpace int

// These are the colour spaces which can be given in *DefaultColorSpace.
const (
	ColorSpaceCMYK ColorSpace = -4
	ColorSpaceCMY  ColorSpace = -3
	ColorSpaceGray ColorSpace = 1
	ColorSpaceRGB  ColorSpace = 3
)

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceCMYK:
		return "CMYK"
	case ColorSpaceCMY:
		return "CMY"
	case ColorSpaceGray:
		return "Gray"
	case ColorSpaceRGB:
		return "RGB"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

// Choice is one of the possible values of an option.
type Choice struct {
	// Name is the machine-readable name of the choice, e.g. "Letter".
	Name string

	// Text is the human-readable name of the choice, in the encoding given
	// by the *LanguageEncoding of the file.
	Text string

	// Code is sent to the device to select this choice.
	Code []byte

	// Keyword is the keyword of the option this choice belongs to.
	Keyword string

	marked bool
}

// Marked reports whether the choice is currently selected.
func (c *Choice) Marked() bool {
	return c.marked
}

// Option is a configurable device setting.
type Option struct {
	Keyword   string // e.g. "PageSize"
	Text      string // human-readable text
	DefChoice string // name of the default choice

	UI      UIType
	Section Section
	Order   float64

	Choices []*Choice

	conflicted bool
	seq        int
}

// Choice returns the choice with the given name, or nil if the option has no
// such choice.
func (o *Option) Choice(name string) *Choice {
	for _, c := range o.Choices {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Conflicted reports whether the option took part in a violated constraint,
// the last time [Document.Conflicts] was called.
func (o *Option) Conflicted() bool {
	return o.conflicted
}

// Group is a group of related options.  Sub-groups cannot contain
// further sub-groups.
type Group struct {
	Name      string
	Text      string
	Options   []*Option
	Subgroups []*Group
}

// Constraint describes two choices which cannot be selected at the same time.
// An empty choice name stands for any choice of the option.
type Constraint struct {
	Option1, Choice1 string
	Option2, Choice2 string
}

// PageSize describes a media size.  All values are in PostScript points.
type PageSize struct {
	Name   string
	Width  float64
	Length float64

	// The printable area of the page.
	Left, Bottom, Right, Top float64
}

// Emulation is an alternative printer language supported by the device.
type Emulation struct {
	Name  string
	Start []byte // code to switch to the emulation
	Stop  []byte // code to stop the emulation
}

// Document is the in-memory representation of a PPD file.
//
// The structure of a Document is fixed after parsing.  Only the marks
// and the conflict flags change, through the methods MarkOption,
// MarkDefaults and Conflicts.
type Document struct {
	FormatVersion   string
	LanguageLevel   int
	ColorDevice     bool
	VariableSizes   bool
	AccurateScreens bool
	ContoneOnly     bool
	Landscape       int // 90 or -90
	ColorSpace      ColorSpace

	Patches []byte

	Emulations []*Emulation

	JCLBegin []byte // start of a JCL block
	JCLToPS  []byte // enter the PostScript interpreter
	JCLEnd   []byte // end of the job
	JCL      []*Option

	LanguageEncoding string
	LanguageVersion  string
	ModelName        string
	TTRasterizer     string
	Manufacturer     string
	Product          string
	NickName         string
	ShortNickName    string
	PCFileName       string

	// Groups contains the UI options which belong to a group.
	Groups []*Group

	// Options contains the UI options which are not part of a group.
	Options []*Option

	// NonUI contains options which are not meant to be presented to users.
	NonUI []*Option

	Sizes      []*PageSize
	CustomMin  PageSize
	CustomMax  PageSize
	CustomCode []byte

	Constraints []Constraint

	// Fonts lists the names of the fonts resident on the device.
	Fonts []string

	keywords map[string]*Option
}

// Option returns the option with the given keyword, or nil if no such
// option exists.  Options from all groups, the top-level options, the non-UI
// options and the JCL options are searched.
func (d *Document) Option(keyword string) *Option {
	return d.keywords[keyword]
}

// ChoiceOption returns the option which c belongs to.
func (d *Document) ChoiceOption(c *Choice) *Option {
	return d.keywords[c.Keyword]
}

// AllOptions iterates over all options of the document: first the options in
// groups and sub-groups, then the top-level options, the non-UI options and
// finally the JCL options.
func (d *Document) AllOptions() iter.Seq[*Option] {
	return func(yield func(*Option) bool) {
		for _, g := range d.Groups {
			if !yieldGroup(g, yield) {
				return
			}
		}
		for _, list := range [][]*Option{d.Options, d.NonUI, d.JCL} {
			for _, o := range list {
				if !yield(o) {
					return
				}
			}
		}
	}
}

func yieldGroup(g *Group, yield func(*Option) bool) bool {
	for _, o := range g.Options {
		if !yield(o) {
			return false
		}
	}
	for _, sub := range g.Subgroups {
		if !yieldGroup(sub, yield) {
			return false
		}
	}
	return true
}
