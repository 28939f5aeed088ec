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
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
)

// maxLineLength is the longest physical line the reader accepts.
const maxLineLength = 1 << 20

// entry is one logical line of a PPD file:
//
//	*Keyword option/text: value
type entry struct {
	line    int
	keyword string
	option  string
	text    string
	value   string
	quoted  bool
}

type lineReader struct {
	s    *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineLength)
	s.Split(scanLines)
	return &lineReader{s: s}
}

// next returns the next physical line, without the line terminator.
// At the end of input, io.EOF is returned.
func (lr *lineReader) next() (string, error) {
	if !lr.s.Scan() {
		err := lr.s.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return "", &FormatError{Line: lr.line + 1, Err: ErrTooLong}
		} else if err != nil {
			return "", &ReadError{Err: err}
		}
		return "", io.EOF
	}
	lr.line++
	return lr.s.Text(), nil
}

// scanLines is a bufio.SplitFunc which accepts LF, CR and CR LF as
// line terminators.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// need one more byte to tell CR from CR LF
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// readEntry returns the next logical line of the file.
// Comments and lines which do not start with '*' are skipped.
func (lr *lineReader) readEntry() (*entry, error) {
	for {
		line, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(line, "*") || strings.HasPrefix(line, "*%") || line == "*End" {
			continue
		}
		return lr.splitEntry(line)
	}
}

// splitEntry breaks a line into its keyword, option, translation string and
// value.  Quoted values which are not terminated on the same line are
// continued on the following lines.
func (lr *lineReader) splitEntry(line string) (*entry, error) {
	e := &entry{line: lr.line}

	rest := line[1:]
	k := strings.IndexAny(rest, " \t:")
	if k < 0 {
		e.keyword = rest
		return e, nil
	}
	e.keyword = rest[:k]
	rest = rest[k:]

	if rest[0] != ':' {
		rest = strings.TrimLeft(rest, " \t")
		head := rest
		if colon := strings.IndexByte(rest, ':'); colon >= 0 {
			head = rest[:colon]
			rest = rest[colon:]
		} else {
			rest = ""
		}
		if slash := strings.IndexByte(head, '/'); slash >= 0 {
			e.text = decodeHex(strings.TrimSpace(head[slash+1:]))
			head = head[:slash]
		}
		e.option = strings.TrimSpace(head)
	}
	if rest == "" {
		return e, nil
	}

	rest = strings.TrimLeft(rest[1:], " \t")
	if !strings.HasPrefix(rest, `"`) {
		e.value = strings.TrimRight(rest, " \t")
		return e, nil
	}

	e.quoted = true
	body := rest[1:]
	var buf strings.Builder
	for {
		if j := strings.IndexByte(body, '"'); j >= 0 {
			buf.WriteString(body[:j])
			break
		}
		buf.WriteString(body)
		// keep the line break, code may contain % comments
		buf.WriteByte('\n')

		next, err := lr.next()
		if err == io.EOF {
			return nil, &FormatError{Line: e.line, Keyword: e.keyword, Err: ErrUnterminated}
		} else if err != nil {
			return nil, err
		}
		body = next
	}
	e.value = buf.String()
	return e, nil
}

// decodeHex replaces hexadecimal substrings like "<1B>" by the bytes they
// represent.  Angle brackets which do not enclose an even number of hex
// digits are copied unchanged.
func decodeHex(s string) string {
	if strings.IndexByte(s, '<') < 0 {
		return s
	}

	var buf strings.Builder
	for {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], '>')
		if end < 0 {
			break
		}
		end += start

		digits := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\n' {
				return -1
			}
			return r
		}, s[start+1:end])
		decoded, err := hex.DecodeString(digits)
		if err != nil {
			buf.WriteString(s[:end+1])
		} else {
			buf.WriteString(s[:start])
			buf.Write(decoded)
		}
		s = s[end+1:]
	}
	buf.WriteString(s)
	return buf.String()
}

// splitTranslation splits "name/text" into its two parts.  If no translation
// string is given, the name is used as the text.
func splitTranslation(s string) (name, text string) {
	s = strings.TrimSpace(s)
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		return strings.TrimSpace(s[:slash]), decodeHex(strings.TrimSpace(s[slash+1:]))
	}
	return s, s
}
