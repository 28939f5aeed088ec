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
	"log/slog"
	"os"

	"seehuhn.de/go/ppd"
	"seehuhn.de/go/ppd/pscheck"
	"seehuhn.de/go/ppd/tools/internal/buildinfo"
)

var (
	strict  = flag.Bool("strict", false, "reject unknown keywords and malformed numbers")
	limits  = flag.Bool("limits", false, "enforce the historical 40/80 byte limits for names and texts")
	verbose = flag.Bool("v", false, "report entries which were skipped while parsing")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ppd-check \u2014 find problems in PPD files\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("ppd-check"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ppd-check [options] <file.ppd>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	opt := &ppd.ParseOptions{
		RejectUnknownKeywords: *strict,
		RejectBadNumbers:      *strict,
	}
	if *limits {
		opt.MaxNameLength = 40
		opt.MaxTextLength = 80
	}
	if *verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	failed := false
	for _, fname := range flag.Args() {
		n, err := check(fname, opt)
		if err != nil {
			fmt.Printf("%s: %v\n", fname, err)
			failed = true
		} else if n > 0 {
			failed = true
		} else {
			fmt.Printf("%s: ok\n", fname)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// check prints the problems found in one file and returns their number.
func check(fname string, opt *ppd.ParseOptions) (int, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	logger := opt.Logger
	if logger != nil {
		opt.Logger = logger.With("file", fname)
		defer func() { opt.Logger = logger }()
	}
	doc, err := ppd.Parse(fd, opt)
	if err != nil {
		return 0, err
	}

	problems := pscheck.Document(doc)
	for _, p := range problems {
		fmt.Printf("%s: %s\n", fname, p)
	}

	n := doc.Conflicts()
	if n > 0 {
		fmt.Printf("%s: %d constraints violated by the default choices\n", fname, n)
	}
	return len(problems) + n, nil
}
