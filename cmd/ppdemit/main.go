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

// Ppdemit writes the printer code for one section of a print job,
// using the options described in a PPD file.
//
// Usage:
//
//	ppdemit [options] file.ppd
//
// Options can be selected using repeated -mark Keyword=Choice flags, or in a
// YAML configuration file:
//
//	section: DocumentSetup
//	feature_comments: true
//	custom:
//	  width: 300
//	  length: 400
//	marks:
//	  PageSize: Custom
//	  Duplex: DuplexNoTumble
//
// If standard output is a terminal, a hex dump is shown instead of the raw
// code.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/ppd"
)

type config struct {
	Section         ppd.Section       `yaml:"section"`
	FeatureComments bool              `yaml:"feature_comments"`
	JCLEnd          bool              `yaml:"jcl_end"`
	Custom          customSize        `yaml:"custom"`
	Marks           map[string]string `yaml:"marks"`
}

type customSize struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
}

// options holds the command line flags.
type options struct {
	fs *flag.FlagSet

	configFile string
	section    ppd.Section
	width      float64
	length     float64
	comments   bool
	jclEnd     bool
	strict     bool
	verbose    bool
	marks      [][2]string
}

func newOptions(name string) *options {
	o := &options{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	fs := o.fs
	fs.StringVar(&o.configFile, "config", "", "read settings from this YAML `file`")
	fs.TextVar(&o.section, "section", ppd.SectionDocument, "emit code for this `section`")
	fs.Float64Var(&o.width, "width", 0, "width of a custom page size, in points")
	fs.Float64Var(&o.length, "length", 0, "length of a custom page size, in points")
	fs.BoolVar(&o.comments, "comments", false, "enclose features in %%BeginFeature comments")
	fs.BoolVar(&o.jclEnd, "jcl-end", false, "append the JCL end-of-job sequence")
	fs.BoolVar(&o.strict, "strict", false, "reject unknown keywords and malformed numbers")
	fs.BoolVar(&o.verbose, "v", false, "log details about the PPD file")
	fs.Func("mark", "select a choice, as `Keyword=Choice` (repeatable)", func(s string) error {
		kw, choice, ok := strings.Cut(s, "=")
		if !ok {
			return errors.New("expected Keyword=Choice")
		}
		o.marks = append(o.marks, [2]string{kw, choice})
		return nil
	})
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] file.ppd\n", name)
		fs.PrintDefaults()
	}
	return o
}

// config reads the configuration file, if any, and applies the command
// line flags on top of it.
func (o *options) config() (*config, error) {
	conf, err := readConfig(o.configFile)
	if err != nil {
		return nil, err
	}

	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "section":
			conf.Section = o.section
		case "width":
			conf.Custom.Width = o.width
		case "length":
			conf.Custom.Length = o.length
		case "comments":
			conf.FeatureComments = o.comments
		case "jcl-end":
			conf.JCLEnd = o.jclEnd
		}
	})
	for _, m := range o.marks {
		conf.Marks[m[0]] = m[1]
	}
	return conf, nil
}

func (o *options) parseOptions() *ppd.ParseOptions {
	opt := &ppd.ParseOptions{
		RejectUnknownKeywords: o.strict,
		RejectBadNumbers:      o.strict,
	}
	if o.verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opt
}

func main() {
	o := newOptions(os.Args[0])
	o.fs.Parse(os.Args[1:])

	if o.fs.NArg() != 1 {
		o.fs.Usage()
		os.Exit(1)
	}

	conf, err := o.config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	err = run(o.fs.Arg(0), conf, o.parseOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readConfig returns the settings from a YAML file.  If fname is empty,
// the default settings are returned.
func readConfig(fname string) (*config, error) {
	conf := &config{
		Section: ppd.SectionDocument,
	}
	if fname != "" {
		body, err := os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(body, conf)
		if err != nil {
			return nil, err
		}
	}
	// an empty "marks:" entry decodes to a nil map
	if conf.Marks == nil {
		conf.Marks = make(map[string]string)
	}
	return conf, nil
}

func run(fname string, conf *config, opt *ppd.ParseOptions) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	doc, err := ppd.Parse(fd, opt)
	if err != nil {
		return err
	}

	code, err := generate(doc, conf, os.Stderr)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if term.IsTerminal(int(os.Stdout.Fd())) {
		dumper := hex.Dumper(os.Stdout)
		defer dumper.Close()
		out = dumper
	}
	_, err = out.Write(code)
	return err
}

// generate marks the configured choices and returns the code for the
// configured section.  Conflicts are reported to warn.
func generate(doc *ppd.Document, conf *config, warn io.Writer) ([]byte, error) {
	keys := maps.Keys(conf.Marks)
	slices.Sort(keys)
	for _, kw := range keys {
		_, err := doc.MarkOption(kw, conf.Marks[kw])
		if err != nil {
			return nil, err
		}
	}
	if n := doc.Conflicts(); n > 0 {
		var names []string
		for o := range doc.AllOptions() {
			if o.Conflicted() {
				names = append(names, o.Keyword)
			}
		}
		fmt.Fprintf(warn, "warning: %d conflicts between %s\n", n, strings.Join(names, ", "))
	}

	code, err := doc.EmitBytes(conf.Section, &ppd.EmitOptions{
		CustomWidth:     conf.Custom.Width,
		CustomLength:    conf.Custom.Length,
		FeatureComments: conf.FeatureComments,
	})
	if err != nil {
		return nil, err
	}
	if conf.JCLEnd {
		code = append(code, doc.JCLEnd...)
	}
	return code, nil
}
