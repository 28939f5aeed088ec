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
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func readTestFile(t *testing.T, name string, opt *ParseOptions) *Document {
	t.Helper()
	fd, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	doc, err := Parse(fd, opt)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func parseString(t *testing.T, body string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader("*PPD-Adobe: \"4.3\"\n"+body), nil)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// keywords returns the keywords of the given options.
func keywords(opts []*Option) []string {
	var res []string
	for _, o := range opts {
		res = append(res, o.Keyword)
	}
	return res
}

func TestParseAttributes(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	type attrs struct {
		FormatVersion, LanguageVersion, LanguageEncoding  string
		Manufacturer, Product, ModelName, NickName, Short string
		PCFileName, TTRasterizer                          string
		LanguageLevel, Landscape                          int
		ColorDevice, VariableSizes                        bool
		ColorSpace                                        ColorSpace
		Fonts                                             []string
	}
	got := attrs{
		FormatVersion:    doc.FormatVersion,
		LanguageVersion:  doc.LanguageVersion,
		LanguageEncoding: doc.LanguageEncoding,
		Manufacturer:     doc.Manufacturer,
		Product:          doc.Product,
		ModelName:        doc.ModelName,
		NickName:         doc.NickName,
		Short:            doc.ShortNickName,
		PCFileName:       doc.PCFileName,
		TTRasterizer:     doc.TTRasterizer,
		LanguageLevel:    doc.LanguageLevel,
		Landscape:        doc.Landscape,
		ColorDevice:      doc.ColorDevice,
		VariableSizes:    doc.VariableSizes,
		ColorSpace:       doc.ColorSpace,
		Fonts:            doc.Fonts,
	}
	want := attrs{
		FormatVersion:    "4.3",
		LanguageVersion:  "English",
		LanguageEncoding: "ISOLatin1",
		Manufacturer:     "Example",
		Product:          "Example LaserWriter",
		ModelName:        "Example LaserWriter 12",
		NickName:         "Example LaserWriter 12 (v2)",
		Short:            "Example LW 12",
		PCFileName:       "LASER.PPD",
		TTRasterizer:     "Type42",
		LanguageLevel:    2,
		Landscape:        -90,
		ColorDevice:      false,
		VariableSizes:    true,
		ColorSpace:       ColorSpaceGray,
		Fonts:            []string{"Courier", "Helvetica"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("attributes differ (-want +got):\n%s", d)
	}

	if !bytes.Equal(doc.JCLBegin, []byte("\x1b%-12345X@PJL JOB\n")) {
		t.Errorf("JCLBegin = %q", doc.JCLBegin)
	}
	if !bytes.Equal(doc.JCLEnd, []byte("\x1b%-12345X@PJL EOJ\n\x1b%-12345X")) {
		t.Errorf("JCLEnd = %q", doc.JCLEnd)
	}

	em := doc.Emulation("hpgl")
	if em == nil || string(em.Start) != "0 startemulator" || string(em.Stop) != "<1B>%0A" {
		t.Errorf("unexpected emulation %v", em)
	}
	if doc.Emulation("pcl") != nil {
		t.Error("unexpected emulation pcl")
	}
}

func TestParseStructure(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)

	if len(doc.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(doc.Groups))
	}
	g := doc.Groups[0]
	if g.Name != "General" || g.Text != "General Options" {
		t.Errorf("group = %q/%q", g.Name, g.Text)
	}
	if d := cmp.Diff([]string{"PageSize", "InputSlot"}, keywords(g.Options)); d != "" {
		t.Errorf("group options (-want +got):\n%s", d)
	}
	if len(g.Subgroups) != 1 || g.Subgroups[0].Text != "Finishing Options" {
		t.Fatalf("unexpected subgroups %v", g.Subgroups)
	}
	if d := cmp.Diff([]string{"Duplex", "Staple"}, keywords(g.Subgroups[0].Options)); d != "" {
		t.Errorf("subgroup options (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"Collate"}, keywords(doc.Options)); d != "" {
		t.Errorf("top-level options (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"Password"}, keywords(doc.NonUI)); d != "" {
		t.Errorf("non-UI options (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"JCLEconomode"}, keywords(doc.JCL)); d != "" {
		t.Errorf("JCL options (-want +got):\n%s", d)
	}

	pageSize := doc.Option("PageSize")
	if pageSize.Text != "Page Size" || pageSize.UI != UIPickOne ||
		pageSize.Section != SectionAny || pageSize.Order != 30 ||
		pageSize.DefChoice != "Letter" {
		t.Errorf("unexpected PageSize option %+v", pageSize)
	}
	var names []string
	for _, c := range pageSize.Choices {
		names = append(names, c.Name)
		if c.Keyword != "PageSize" || doc.ChoiceOption(c) != pageSize {
			t.Errorf("choice %s does not point back to its option", c.Name)
		}
	}
	if d := cmp.Diff([]string{"Letter", "A4", "Env10", "Custom"}, names); d != "" {
		t.Errorf("PageSize choices (-want +got):\n%s", d)
	}
	if text := pageSize.Choice("Env10").Text; text != "Envelope #10" {
		t.Errorf("Env10 text = %q", text)
	}

	duplex := doc.Option("Duplex")
	if duplex.Section != SectionDocument || duplex.Order != 50 {
		t.Errorf("Duplex section/order = %s/%g", duplex.Section, duplex.Order)
	}
	long := string(duplex.Choice("DuplexNoTumble").Code)
	if long != "\n<</Duplex true /Tumble false>>\nsetpagedevice" {
		t.Errorf("multi-line code = %q", long)
	}
	if doc.Option("Staple").UI != UIPickMany || doc.Option("Collate").UI != UIBoolean {
		t.Error("wrong UI types")
	}

	jcl := doc.Option("JCLEconomode")
	if jcl.Section != SectionJCL || string(jcl.Choice("True").Code) != "@PJL SET ECONOMODE=ON\n" {
		t.Errorf("unexpected JCL option %+v", jcl)
	}
	password := doc.Option("Password")
	if password.Section != SectionExit || password.Order != 5 {
		t.Errorf("Password section/order = %s/%g", password.Section, password.Order)
	}

	wantConstraints := []Constraint{
		{"Duplex", "", "InputSlot", "Manual"},
		{"InputSlot", "Manual", "Duplex", ""},
		{"PageSize", "Env10", "Duplex", "DuplexTumble"},
		{"Staple", "Left", "Staple", "Right"},
	}
	if d := cmp.Diff(wantConstraints, doc.Constraints); d != "" {
		t.Errorf("constraints (-want +got):\n%s", d)
	}

	wantMin := PageSize{Width: 100, Length: 100, Left: 18, Bottom: 36, Right: 18, Top: 36}
	wantMax := PageSize{Width: 612, Length: 1008, Left: 18, Bottom: 36, Right: 18, Top: 36}
	if d := cmp.Diff(wantMin, doc.CustomMin); d != "" {
		t.Errorf("custom min (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantMax, doc.CustomMax); d != "" {
		t.Errorf("custom max (-want +got):\n%s", d)
	}
	if string(doc.CustomCode) != "pop pop pop\n<</PageSize [5 -2 roll]>> setpagedevice" {
		t.Errorf("custom code = %q", doc.CustomCode)
	}
}

func TestParseSizes(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)
	want := []*PageSize{
		{Name: "Letter", Width: 612, Length: 792, Left: 18, Bottom: 36, Right: 594, Top: 756},
		{Name: "A4", Width: 595, Length: 842, Left: 18, Bottom: 36, Right: 577, Top: 806},
		{Name: "Env10", Width: 297, Length: 684, Left: 18.5, Bottom: 36, Right: 278.5, Top: 648},
	}
	if d := cmp.Diff(want, doc.Sizes); d != "" {
		t.Errorf("sizes (-want +got):\n%s", d)
	}
}

// TestDefaultMarks checks that after parsing every option has exactly one
// marked choice.
func TestDefaultMarks(t *testing.T) {
	doc := readTestFile(t, "testdata/laser.ppd", nil)
	for o := range doc.AllOptions() {
		n := 0
		for _, c := range o.Choices {
			if c.Marked() {
				n++
			}
		}
		if n != 1 {
			t.Errorf("option %s has %d marked choices", o.Keyword, n)
		}
	}

	want := map[string]string{
		"PageSize":     "Letter",
		"InputSlot":    "Tray1",
		"Duplex":       "None",
		"Staple":       "Left",
		"Collate":      "False",
		"JCLEconomode": "False",
		"Password":     "Zero",
	}
	for kw, choice := range want {
		if !doc.IsMarked(kw, choice) {
			t.Errorf("%s %s is not marked", kw, choice)
		}
	}
}

func TestDefaultFallsBackToFirstChoice(t *testing.T) {
	doc := parseString(t, `*OpenUI *MediaType/Media Type: PickOne
*DefaultMediaType: Transparency
*MediaType Plain/Plain Paper: "(Plain) setmediatype"
*MediaType Glossy/Glossy Paper: "(Glossy) setmediatype"
*CloseUI: *MediaType
*OpenUI *Resolution: PickOne
*Resolution 300dpi: "300"
*Resolution 600dpi: "600"
*CloseUI: *Resolution
`)
	if !doc.IsMarked("MediaType", "Plain") || doc.IsMarked("MediaType", "Glossy") {
		t.Error("missing default did not fall back to the first choice")
	}
	if !doc.IsMarked("Resolution", "300dpi") {
		t.Error("option without default did not mark the first choice")
	}
}

// TestEmptyOptionsDropped checks that options without choices are removed,
// so that every option has a marked choice after parsing.
func TestEmptyOptionsDropped(t *testing.T) {
	doc := parseString(t, `*OpenGroup: General
*OpenUI *Empty: PickOne
*DefaultEmpty: Nothing
*CloseUI: *Empty
*OpenUI *Resolution: PickOne
*Resolution 300dpi: "300"
*CloseUI: *Resolution
*CloseGroup: General
*OpenUI *AlsoEmpty: Boolean
*CloseUI: *AlsoEmpty
*JCLOpenUI *JCLEmpty: PickOne
*JCLCloseUI: *JCLEmpty
`)
	for _, kw := range []string{"Empty", "AlsoEmpty", "JCLEmpty"} {
		if doc.Option(kw) != nil {
			t.Errorf("option %q without choices was kept", kw)
		}
	}
	if d := cmp.Diff([]string{"Resolution"}, keywords(doc.Groups[0].Options)); d != "" {
		t.Errorf("group options (-want +got):\n%s", d)
	}
	if len(doc.Options) != 0 || len(doc.JCL) != 0 {
		t.Errorf("unexpected options: %v %v", keywords(doc.Options), keywords(doc.JCL))
	}

	for o := range doc.AllOptions() {
		marked := 0
		for _, c := range o.Choices {
			if c.Marked() {
				marked++
			}
		}
		if marked != 1 {
			t.Errorf("option %q has %d marked choices", o.Keyword, marked)
		}
	}
}

// TestMultiLineCodeWithComment checks that line breaks in multi-line values
// are kept, so that a PostScript comment does not swallow the next line.
func TestMultiLineCodeWithComment(t *testing.T) {
	doc := parseString(t, `*OpenUI *Smoothing: Boolean
*Smoothing True: "% enable smoothing
true setsmoothing"
*CloseUI: *Smoothing
`)
	code, err := doc.EmitBytes(SectionAny, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(code), "% enable smoothing\ntrue setsmoothing\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		err  error
		line int
	}{
		{"empty", "", ErrNotPPD, 0},
		{"no signature", "*PPD-Foo: \"1\"\n", ErrNotPPD, 1},
		{"not ppd", "%!PS-Adobe-3.0\n", ErrNotPPD, 1},
		{"unterminated", "*PPD-Adobe: \"4.3\"\n*JCLBegin: \"abc\n\ndef\n", ErrUnterminated, 2},
		{"nested group", "*PPD-Adobe: \"4.3\"\n*OpenGroup: A\n*OpenGroup: B\n", ErrNesting, 3},
		{"deep subgroup", "*PPD-Adobe: \"4.3\"\n*OpenGroup: A\n*OpenSubGroup: B\n*OpenSubGroup: C\n", ErrNesting, 4},
		{"subgroup outside group", "*PPD-Adobe: \"4.3\"\n*OpenSubGroup: B\n", ErrNesting, 2},
		{"nested UI", "*PPD-Adobe: \"4.3\"\n*OpenUI *A: PickOne\n*OpenUI *B: PickOne\n", ErrNesting, 3},
		{"stray CloseUI", "*PPD-Adobe: \"4.3\"\n*CloseUI: *A\n", ErrNesting, 2},
		{"wrong CloseUI", "*PPD-Adobe: \"4.3\"\n*OpenUI *A: PickOne\n*A x: \"\"\n*CloseUI: *B\n", ErrNesting, 4},
		{"stray CloseGroup", "*PPD-Adobe: \"4.3\"\n*CloseGroup: A\n", ErrNesting, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.in), nil)
			if !errors.Is(err, c.err) {
				t.Fatalf("got error %v, want %v", err, c.err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a FormatError", err)
			}
			if fe.Line != c.line {
				t.Errorf("error reported for line %d, want %d", fe.Line, c.line)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(failingReader{}, nil)
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want a ReadError", err)
	}
}

func TestLineEndings(t *testing.T) {
	for _, nl := range []string{"\n", "\r", "\r\n"} {
		body := strings.Join([]string{
			`*PPD-Adobe: "4.3"`,
			`*OpenUI *A: PickOne`,
			`*A x: "line1`,
			`line2"`,
			`*A y: "y"`,
			`*CloseUI: *A`,
			``,
		}, nl)
		doc, err := Parse(strings.NewReader(body), nil)
		if err != nil {
			t.Fatalf("%q: %v", nl, err)
		}
		o := doc.Option("A")
		if o == nil || len(o.Choices) != 2 {
			t.Fatalf("%q: unexpected option %v", nl, o)
		}
		if code := string(o.Choices[0].Code); code != "line1\nline2" {
			t.Errorf("%q: code = %q", nl, code)
		}
	}
}

func TestLenientNumbers(t *testing.T) {
	body := "*PPD-Adobe: \"4.3\"\n" +
		"*PaperDimension Odd: \"612 abc\"\n" +
		"*ImageableArea Odd: \"1 2 3\"\n"

	doc, err := Parse(strings.NewReader(body), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &PageSize{Name: "Odd", Width: 612, Left: 1, Bottom: 2, Right: 3}
	if d := cmp.Diff(want, doc.PageSize("Odd")); d != "" {
		t.Errorf("page size (-want +got):\n%s", d)
	}

	_, err = Parse(strings.NewReader(body), &ParseOptions{RejectBadNumbers: true})
	if !errors.Is(err, ErrBadNumber) {
		t.Errorf("strict parsing: got %v, want ErrBadNumber", err)
	}
}

func TestUnknownKeywords(t *testing.T) {
	body := "*PPD-Adobe: \"4.3\"\n" +
		"*PSVersion: \"(3010) 1\"\n" +
		"*MadeUpKeyword: True\n"

	_, err := Parse(strings.NewReader(body), nil)
	if err != nil {
		t.Errorf("lenient parsing: %v", err)
	}

	_, err = Parse(strings.NewReader(body), &ParseOptions{RejectUnknownKeywords: true})
	var fe *FormatError
	if !errors.Is(err, ErrUnknownKeyword) || !errors.As(err, &fe) || fe.Keyword != "MadeUpKeyword" {
		t.Errorf("strict parsing: got %v", err)
	}
}

func TestLengthLimits(t *testing.T) {
	long := strings.Repeat("x", 41)
	body := "*PPD-Adobe: \"4.3\"\n*Foo " + long + ": \"\"\n"

	_, err := Parse(strings.NewReader(body), nil)
	if err != nil {
		t.Errorf("unlimited: %v", err)
	}
	_, err = Parse(strings.NewReader(body), &ParseOptions{MaxNameLength: 40})
	if !errors.Is(err, ErrTooLong) {
		t.Errorf("limited: got %v, want ErrTooLong", err)
	}
}

func TestStrayChoicesBecomeNonUI(t *testing.T) {
	doc := parseString(t, `*OpenUI *InputSlot: PickOne
*InputSlot Upper: "0"
*CloseUI: *InputSlot
*InputSlot Lower: "1"
*Resolution 600dpi/600 DPI: "600"
*?Resolution: "query"
`)
	if d := cmp.Diff([]string{"Upper", "Lower"}, choiceNames(doc.Option("InputSlot"))); d != "" {
		t.Errorf("InputSlot choices (-want +got):\n%s", d)
	}
	if len(doc.NonUI) != 1 || doc.NonUI[0].Keyword != "Resolution" {
		t.Fatalf("unexpected non-UI options %v", doc.NonUI)
	}
	if text := doc.NonUI[0].Choices[0].Text; text != "600 DPI" {
		t.Errorf("text = %q", text)
	}
}

func TestMalformedConstraintsIgnored(t *testing.T) {
	doc := parseString(t, `*UIConstraints: *A
*UIConstraints: a b
*UIConstraints: *A x y *B
*UIConstraints: *A *A x
*NonUIConstraints: *A *B
`)
	want := []Constraint{{Option1: "A", Option2: "B"}}
	if d := cmp.Diff(want, doc.Constraints, cmpopts.EquateEmpty()); d != "" {
		t.Errorf("constraints (-want +got):\n%s", d)
	}
}

func TestDecodeHex(t *testing.T) {
	cases := []struct{ in, out string }{
		{"plain", "plain"},
		{"<41>", "A"},
		{"a<41 42>b", "aABb"},
		{"<1B>%-12345X", "\x1b%-12345X"},
		{"<<", "<<"},
		{"<zz> x", "<zz> x"},
		{"<414>", "<414>"},
		{"a <41> <42", "a A <42"},
	}
	for _, c := range cases {
		if out := decodeHex(c.in); out != c.out {
			t.Errorf("decodeHex(%q) = %q, want %q", c.in, out, c.out)
		}
	}
}

func choiceNames(o *Option) []string {
	var res []string
	for _, c := range o.Choices {
		res = append(res, c.Name)
	}
	return res
}
