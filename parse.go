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
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"seehuhn.de/go/ppd/internal/psnum"
)

// defaultOrder is the order value of options without an
// *OrderDependency entry.
const defaultOrder = 10

// ParseOptions controls how strictly a PPD file is checked while parsing.
// The zero value gives the lenient behaviour which is appropriate for
// third-party PPD files.
type ParseOptions struct {
	// RejectUnknownKeywords makes Parse fail on keywords which are neither
	// part of the supported vocabulary nor a standard keyword which is
	// deliberately ignored.  By default such entries are skipped.
	RejectUnknownKeywords bool

	// RejectBadNumbers makes Parse fail on malformed numbers.  By default
	// malformed numbers are replaced by zero.
	RejectBadNumbers bool

	// MaxNameLength, if positive, is the maximum length in bytes of option
	// keywords and choice names.  Use 40 to enforce the historical limit.
	MaxNameLength int

	// MaxTextLength, if positive, is the maximum length in bytes of
	// human-readable texts.  Use 80 to enforce the historical limit.
	MaxTextLength int

	// Logger, if set, receives a debug message whenever an entry is
	// skipped or a value is replaced by a default.
	Logger *slog.Logger
}

var errMissingKeyword = errors.New("missing option keyword")

type orderDep struct {
	keyword string
	order   float64
	section Section
	line    int
}

type parser struct {
	lines *lineReader
	opt   *ParseOptions
	log   *slog.Logger
	doc   *Document

	group    *Group
	subgroup *Group
	option   *Option

	defaults      map[string]string
	orders        []orderDep
	colorSpaceSet bool
	seq           int
}

// Parse reads a PPD file and returns the corresponding Document.
// The default choice of every option is marked.
//
// If opt is nil, default options are used.
func Parse(r io.Reader, opt *ParseOptions) (*Document, error) {
	if opt == nil {
		opt = &ParseOptions{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &parser{
		lines: newLineReader(r),
		opt:   opt,
		log:   logger,
		doc: &Document{
			Landscape: 90,
			keywords:  make(map[string]*Option),
		},
		defaults: make(map[string]string),
	}

	err := p.readSignature()
	if err != nil {
		return nil, err
	}
	for {
		e, err := p.lines.readEntry()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		err = p.handle(e)
		if err != nil {
			return nil, err
		}
	}
	p.finish()

	return p.doc, nil
}

func (p *parser) readSignature() error {
	line, err := p.lines.next()
	if err == io.EOF {
		return &FormatError{Err: ErrNotPPD}
	} else if err != nil {
		return err
	}
	line = strings.TrimPrefix(line, "\ufeff")
	if !strings.HasPrefix(line, "*PPD-Adobe:") {
		return &FormatError{Line: 1, Err: ErrNotPPD}
	}
	e, err := p.lines.splitEntry(line)
	if err != nil {
		return err
	}
	p.doc.FormatVersion = e.value
	return nil
}

func (p *parser) handle(e *entry) error {
	d := p.doc
	var err error

	switch e.keyword {
	case "OpenGroup":
		return p.openGroup(e)
	case "CloseGroup":
		if p.group == nil || p.subgroup != nil || p.option != nil {
			return p.nestingError(e)
		}
		p.group = nil
	case "OpenSubGroup":
		return p.openSubGroup(e)
	case "CloseSubGroup":
		if p.subgroup == nil || p.option != nil {
			return p.nestingError(e)
		}
		p.subgroup = nil
	case "OpenUI", "JCLOpenUI":
		return p.openUI(e, e.keyword == "JCLOpenUI")
	case "CloseUI", "JCLCloseUI":
		kw := strings.TrimPrefix(strings.TrimSpace(e.value), "*")
		if p.option == nil || kw != "" && kw != p.option.Keyword {
			return p.nestingError(e)
		}
		p.option = nil

	case "OrderDependency", "NonUIOrderDependency":
		return p.orderDependency(e)
	case "UIConstraints", "NonUIConstraints":
		p.constraint(e)

	case "PaperDimension":
		var x []float64
		x, err = p.numbers(e, 2)
		if err == nil {
			s := p.size(e.option)
			s.Width, s.Length = x[0], x[1]
		}
	case "ImageableArea":
		var x []float64
		x, err = p.numbers(e, 4)
		if err == nil {
			s := p.size(e.option)
			s.Left, s.Bottom, s.Right, s.Top = x[0], x[1], x[2], x[3]
		}
	case "HWMargins":
		var x []float64
		x, err = p.numbers(e, 4)
		if err == nil {
			for _, s := range []*PageSize{&d.CustomMin, &d.CustomMax} {
				s.Left, s.Bottom, s.Right, s.Top = x[0], x[1], x[2], x[3]
			}
		}
	case "MaxMediaWidth":
		d.CustomMax.Width, err = p.number(e, e.value)
	case "MaxMediaHeight":
		d.CustomMax.Length, err = p.number(e, e.value)
	case "ParamCustomPageSize":
		err = p.customParam(e)
	case "CustomPageSize":
		if e.option == "True" {
			d.CustomCode = []byte(e.value)
		}

	case "VariablePaperSize":
		d.VariableSizes = isTrue(e.value)
	case "ColorDevice":
		d.ColorDevice = isTrue(e.value)
	case "AccurateScreensSupport":
		d.AccurateScreens = isTrue(e.value)
	case "ContoneOnly":
		d.ContoneOnly = isTrue(e.value)
	case "LanguageLevel":
		var level float64
		level, err = p.number(e, e.value)
		d.LanguageLevel = int(level)
	case "LandscapeOrientation":
		if e.value == "Minus90" {
			d.Landscape = -90
		} else {
			d.Landscape = 90
		}
	case "DefaultColorSpace":
		p.colorSpace(e)
	case "JobPatchFile":
		d.Patches = append(d.Patches, e.value...)

	case "Emulators":
		for _, name := range strings.Fields(e.value) {
			p.emulation(name)
		}

	case "JCLBegin":
		d.JCLBegin = []byte(decodeHex(e.value))
	case "JCLToPSInterpreter":
		d.JCLToPS = []byte(decodeHex(e.value))
	case "JCLEnd":
		d.JCLEnd = []byte(decodeHex(e.value))

	case "LanguageEncoding":
		d.LanguageEncoding = e.value
	case "LanguageVersion":
		d.LanguageVersion = e.value
	case "ModelName":
		d.ModelName = decodeHex(e.value)
	case "TTRasterizer":
		d.TTRasterizer = e.value
	case "Manufacturer":
		d.Manufacturer = decodeHex(e.value)
	case "Product":
		d.Product = strings.TrimSuffix(strings.TrimPrefix(decodeHex(e.value), "("), ")")
	case "NickName":
		d.NickName = decodeHex(e.value)
	case "ShortNickName":
		d.ShortNickName = decodeHex(e.value)
	case "PCFileName":
		d.PCFileName = e.value

	case "Font":
		if e.option != "" && !slices.Contains(d.Fonts, e.option) {
			d.Fonts = append(d.Fonts, e.option)
		}

	default:
		switch {
		case strings.HasPrefix(e.keyword, "StartEmulator_"):
			p.emulation(e.keyword[len("StartEmulator_"):]).Start = []byte(e.value)
		case strings.HasPrefix(e.keyword, "StopEmulator_"):
			p.emulation(e.keyword[len("StopEmulator_"):]).Stop = []byte(e.value)
		case strings.HasPrefix(e.keyword, "Default") && len(e.keyword) > len("Default"):
			p.defaults[e.keyword[len("Default"):]] = strings.TrimSpace(e.value)
		case strings.HasPrefix(e.keyword, "?"):
			// query code is not used
		case e.option != "":
			return p.addChoice(e)
		default:
			return p.unknown(e)
		}
	}
	return err
}

func (p *parser) openGroup(e *entry) error {
	if p.group != nil || p.option != nil {
		return p.nestingError(e)
	}
	g, err := p.newGroup(e)
	if err != nil {
		return err
	}
	p.doc.Groups = append(p.doc.Groups, g)
	p.group = g
	return nil
}

func (p *parser) openSubGroup(e *entry) error {
	if p.group == nil || p.subgroup != nil || p.option != nil {
		return p.nestingError(e)
	}
	g, err := p.newGroup(e)
	if err != nil {
		return err
	}
	p.group.Subgroups = append(p.group.Subgroups, g)
	p.subgroup = g
	return nil
}

func (p *parser) newGroup(e *entry) (*Group, error) {
	name, text := splitTranslation(e.value)
	err := p.checkLength(e, text, p.opt.MaxTextLength)
	if err != nil {
		return nil, err
	}
	return &Group{Name: name, Text: text}, nil
}

func (p *parser) openUI(e *entry, jcl bool) error {
	if p.option != nil {
		return p.nestingError(e)
	}
	kw := strings.TrimPrefix(e.option, "*")
	if kw == "" {
		return &FormatError{Line: e.line, Keyword: e.keyword, Err: errMissingKeyword}
	}
	text := e.text
	if text == "" {
		text = kw
	}
	err := p.checkLength(e, kw, p.opt.MaxNameLength)
	if err != nil {
		return err
	}
	err = p.checkLength(e, text, p.opt.MaxTextLength)
	if err != nil {
		return err
	}

	var ui UIType
	switch e.value {
	case "Boolean":
		ui = UIBoolean
	case "PickMany":
		ui = UIPickMany
	case "PickOne":
		ui = UIPickOne
	default:
		p.log.Debug("unknown UI type, using PickOne",
			"line", e.line, "option", kw, "ui", e.value)
		ui = UIPickOne
	}

	o := p.doc.keywords[kw]
	if o == nil {
		o = p.newOption(kw)
		switch {
		case jcl:
			o.Section = SectionJCL
			p.doc.JCL = append(p.doc.JCL, o)
		case p.subgroup != nil:
			p.subgroup.Options = append(p.subgroup.Options, o)
		case p.group != nil:
			p.group.Options = append(p.group.Options, o)
		default:
			p.doc.Options = append(p.doc.Options, o)
		}
	} else {
		p.log.Debug("option declared twice", "line", e.line, "option", kw)
	}
	o.Text = text
	o.UI = ui
	p.option = o
	return nil
}

func (p *parser) newOption(keyword string) *Option {
	o := &Option{
		Keyword: keyword,
		Text:    keyword,
		UI:      UIPickOne,
		Section: SectionAny,
		Order:   defaultOrder,
		seq:     p.seq,
	}
	p.seq++
	p.doc.keywords[keyword] = o
	return o
}

// addChoice handles main keywords with an option part, e.g.
//
//	*PageSize Letter/US Letter: "<</PageSize [612 792]>> setpagedevice"
//
// The choice is added to the open UI option, to an option declared earlier
// with the same keyword, or else to a new non-UI option.
func (p *parser) addChoice(e *entry) error {
	kw := e.keyword
	o := p.option
	if o == nil || o.Keyword != kw {
		o = p.doc.keywords[kw]
	}
	if o == nil {
		err := p.checkLength(e, kw, p.opt.MaxNameLength)
		if err != nil {
			return err
		}
		o = p.newOption(kw)
		p.doc.NonUI = append(p.doc.NonUI, o)
	}

	if o.Choice(e.option) != nil {
		p.log.Debug("duplicate choice ignored",
			"line", e.line, "option", kw, "choice", e.option)
		return nil
	}
	text := e.text
	if text == "" {
		text = e.option
	}
	err := p.checkLength(e, e.option, p.opt.MaxNameLength)
	if err != nil {
		return err
	}
	err = p.checkLength(e, text, p.opt.MaxTextLength)
	if err != nil {
		return err
	}

	code := e.value
	if o.Section == SectionJCL {
		code = decodeHex(code)
	}
	o.Choices = append(o.Choices, &Choice{
		Name:    e.option,
		Text:    text,
		Code:    []byte(code),
		Keyword: kw,
	})
	return nil
}

// orderDependency handles entries of the form
//
//	*OrderDependency: 10 AnySetup *PageSize
//
// The main keyword may be omitted inside an open UI option.  Entries are
// applied after parsing, so that they may precede the option they refer to.
func (p *parser) orderDependency(e *entry) error {
	ff := strings.Fields(e.value)
	if len(ff) < 2 {
		p.log.Debug("incomplete order dependency", "line", e.line, "value", e.value)
		return nil
	}
	order, err := p.number(e, ff[0])
	if err != nil {
		return err
	}
	section, err := ParseSection(ff[1])
	if err != nil {
		p.log.Debug("unknown section, using AnySetup", "line", e.line, "section", ff[1])
	}

	var kw string
	if len(ff) > 2 {
		kw = strings.TrimPrefix(ff[2], "*")
	} else if p.option != nil {
		kw = p.option.Keyword
	} else {
		p.log.Debug("order dependency without option", "line", e.line)
		return nil
	}
	p.orders = append(p.orders, orderDep{
		keyword: kw,
		order:   order,
		section: section,
		line:    e.line,
	})
	return nil
}

// constraint handles entries of the form
//
//	*UIConstraints: *Option1 choice1 *Option2 choice2
//
// where either choice may be missing.
func (p *parser) constraint(e *entry) {
	var parts [][2]string
	for _, f := range strings.Fields(e.value) {
		if strings.HasPrefix(f, "*") {
			parts = append(parts, [2]string{f[1:], ""})
		} else if n := len(parts); n > 0 && parts[n-1][1] == "" {
			parts[n-1][1] = f
		} else {
			parts = nil
			break
		}
	}
	if len(parts) != 2 || parts[0][0] == "" || parts[1][0] == "" {
		p.log.Debug("malformed constraint ignored", "line", e.line, "value", e.value)
		return
	}
	if parts[0][0] == parts[1][0] && (parts[0][1] == "" || parts[1][1] == "") {
		p.log.Debug("constraint between an option and itself ignored",
			"line", e.line, "value", e.value)
		return
	}
	p.doc.Constraints = append(p.doc.Constraints, Constraint{
		Option1: parts[0][0],
		Choice1: parts[0][1],
		Option2: parts[1][0],
		Choice2: parts[1][1],
	})
}

// customParam handles entries of the form
//
//	*ParamCustomPageSize Width: 1 points 72 1008
func (p *parser) customParam(e *entry) error {
	ff := strings.Fields(e.value)
	if len(ff) < 4 {
		p.log.Debug("incomplete custom page size parameter", "line", e.line, "value", e.value)
		return nil
	}
	lo, err := p.number(e, ff[2])
	if err != nil {
		return err
	}
	hi, err := p.number(e, ff[3])
	if err != nil {
		return err
	}
	switch e.option {
	case "Width":
		p.doc.CustomMin.Width, p.doc.CustomMax.Width = lo, hi
	case "Height":
		p.doc.CustomMin.Length, p.doc.CustomMax.Length = lo, hi
	}
	return nil
}

func (p *parser) colorSpace(e *entry) {
	switch e.value {
	case "CMYK":
		p.doc.ColorSpace = ColorSpaceCMYK
	case "CMY":
		p.doc.ColorSpace = ColorSpaceCMY
	case "Gray":
		p.doc.ColorSpace = ColorSpaceGray
	case "RGB":
		p.doc.ColorSpace = ColorSpaceRGB
	default:
		p.log.Debug("unknown colour space", "line", e.line, "value", e.value)
		return
	}
	p.colorSpaceSet = true
}

func (p *parser) size(name string) *PageSize {
	for _, s := range p.doc.Sizes {
		if s.Name == name {
			return s
		}
	}
	s := &PageSize{Name: name}
	p.doc.Sizes = append(p.doc.Sizes, s)
	return s
}

func (p *parser) emulation(name string) *Emulation {
	for _, em := range p.doc.Emulations {
		if em.Name == name {
			return em
		}
	}
	em := &Emulation{Name: name}
	p.doc.Emulations = append(p.doc.Emulations, em)
	return em
}

// number parses a numeric value.  Unless RejectBadNumbers is set,
// malformed numbers are replaced by zero.
func (p *parser) number(e *entry, s string) (float64, error) {
	x, err := psnum.Parse(s)
	if err != nil {
		if p.opt.RejectBadNumbers {
			return 0, &FormatError{
				Line:    e.line,
				Keyword: e.keyword,
				Err:     fmt.Errorf("%w %q", ErrBadNumber, s),
			}
		}
		p.log.Debug("malformed number replaced by zero",
			"line", e.line, "keyword", e.keyword, "value", s)
		return 0, nil
	}
	return x, nil
}

// numbers parses the first n space-separated numbers of e.value.
// Missing numbers are treated like malformed ones.
func (p *parser) numbers(e *entry, n int) ([]float64, error) {
	ff := strings.Fields(e.value)
	res := make([]float64, n)
	for i := range res {
		var f string
		if i < len(ff) {
			f = ff[i]
		}
		x, err := p.number(e, f)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

func (p *parser) checkLength(e *entry, s string, limit int) error {
	if limit > 0 && len(s) > limit {
		return &FormatError{
			Line:    e.line,
			Keyword: e.keyword,
			Err:     fmt.Errorf("%w: %q", ErrTooLong, s),
		}
	}
	return nil
}

func (p *parser) nestingError(e *entry) error {
	return &FormatError{Line: e.line, Keyword: e.keyword, Err: ErrNesting}
}

func (p *parser) unknown(e *entry) error {
	if ignoredKeywords[e.keyword] {
		return nil
	}
	if p.opt.RejectUnknownKeywords {
		return &FormatError{Line: e.line, Keyword: e.keyword, Err: ErrUnknownKeyword}
	}
	p.log.Debug("unknown keyword ignored", "line", e.line, "keyword", e.keyword)
	return nil
}

// finish applies the information which can only be resolved once the whole
// file has been read, and marks the default choices.
func (p *parser) finish() {
	d := p.doc

	if p.option != nil {
		p.log.Debug("missing *CloseUI at end of file", "option", p.option.Keyword)
	}
	if p.group != nil {
		p.log.Debug("missing *CloseGroup at end of file", "group", p.group.Name)
	}

	for _, dep := range p.orders {
		o := d.keywords[dep.keyword]
		if o == nil {
			p.log.Debug("order dependency for unknown option",
				"line", dep.line, "option", dep.keyword)
			continue
		}
		o.Order = dep.order
		o.Section = dep.section
	}
	for kw, def := range p.defaults {
		if o := d.keywords[kw]; o != nil {
			o.DefChoice = def
		}
	}

	if d.VariableSizes && len(d.CustomCode) > 0 {
		if o := d.keywords["PageSize"]; o != nil && o.Choice("Custom") == nil {
			o.Choices = append(o.Choices, &Choice{
				Name:    "Custom",
				Text:    "Custom",
				Keyword: o.Keyword,
			})
		}
	}

	if !p.colorSpaceSet {
		if d.ColorDevice {
			d.ColorSpace = ColorSpaceRGB
		} else {
			d.ColorSpace = ColorSpaceGray
		}
	}

	p.dropEmptyOptions()

	d.MarkDefaults()
}

// dropEmptyOptions removes options which have no choices, so that every
// remaining option has a marked choice after MarkDefaults.
func (p *parser) dropEmptyOptions() {
	d := p.doc
	empty := func(o *Option) bool {
		if len(o.Choices) > 0 {
			return false
		}
		p.log.Debug("option without choices dropped", "option", o.Keyword)
		delete(d.keywords, o.Keyword)
		return true
	}

	var dropFromGroup func(g *Group)
	dropFromGroup = func(g *Group) {
		g.Options = slices.DeleteFunc(g.Options, empty)
		for _, sub := range g.Subgroups {
			dropFromGroup(sub)
		}
	}
	for _, g := range d.Groups {
		dropFromGroup(g)
	}
	d.Options = slices.DeleteFunc(d.Options, empty)
	d.NonUI = slices.DeleteFunc(d.NonUI, empty)
	d.JCL = slices.DeleteFunc(d.JCL, empty)
}

func isTrue(value string) bool {
	return value == "True"
}

// ignoredKeywords lists standard keywords which carry no information
// used by this package.  These are accepted even if
// RejectUnknownKeywords is set.
var ignoredKeywords = map[string]bool{
	"FileVersion":          true,
	"FormatVersion":        true,
	"PSVersion":            true,
	"FreeVM":               true,
	"VMOption":             true,
	"Throughput":           true,
	"Password":             true,
	"ExitServer":           true,
	"Reset":                true,
	"SuggestedJobTimeout":  true,
	"SuggestedWaitTimeout": true,
	"PrintPSErrors":        true,
	"FileSystem":           true,
	"Protocols":            true,
	"PageStackOrder":       true,
	"RequiresPageRegion":   true,
	"ColorSeparation":      true,
	"ScreenFreq":           true,
	"ScreenAngle":          true,
	"SymbolValue":          true,
	"Include":              true,
	"CenterRegistered":     true,
	"LeadingEdge":          true,
	"cupsFilter":           true,
	"cupsVersion":          true,
	"cupsModelNumber":      true,
	"cupsManualCopies":     true,
}
