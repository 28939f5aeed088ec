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

// Package psnum converts between numbers and their textual form in PPD
// files and PostScript code.
package psnum

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Format formats x with at most precision digits after the decimal point.
// Trailing zeros, and a leading zero before the decimal point, are
// omitted.  The result is a valid PostScript number.
func Format(x float64, precision int) string {
	out := strconv.FormatFloat(x, 'f', precision, 64)
	if m := tailRegexp.FindStringSubmatchIndex(out); m != nil {
		if m[2] > 0 {
			out = out[:m[2]]
		} else if m[4] > 0 {
			out = out[:m[4]]
		}
	}
	switch {
	case out == "-0":
		out = "0"
	case strings.HasPrefix(out, "0."):
		out = out[1:]
	case strings.HasPrefix(out, "-0."):
		out = "-" + out[2:]
	}
	return out
}

var tailRegexp = regexp.MustCompile(`(?:\..*[1-9](0+)|(\.0+))$`)

// ErrSyntax is returned by Parse for strings which are not numbers.
var ErrSyntax = errors.New("invalid number")

// Parse parses a decimal number as found in PPD files, e.g. "612",
// "-.5" or "+1.0".  Exponents, hexadecimal numbers, infinities and NaN
// are not accepted.
func Parse(s string) (float64, error) {
	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 || body == "" || body == "." {
		return 0, ErrSyntax
	}
	seenDot := false
	for _, c := range body {
		switch {
		case c == '.' && !seenDot:
			seenDot = true
		case c < '0' || c > '9':
			return 0, ErrSyntax
		}
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrSyntax
	}
	return x, nil
}
