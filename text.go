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
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/language"
)

// DecodeText converts a human-readable text from the PPD file, for example
// [Choice.Text], into UTF-8.  The encoding is determined by the
// *LanguageEncoding entry; ISOLatin1 is assumed if the entry is missing.
func (d *Document) DecodeText(s string) (string, error) {
	enc := textEncoding(d.LanguageEncoding)
	if enc == nil {
		return s, nil
	}
	return enc.NewDecoder().String(s)
}

func textEncoding(name string) encoding.Encoding {
	switch name {
	case "", "ISOLatin1":
		return charmap.ISO8859_1
	case "WindowsANSI":
		return charmap.Windows1252
	case "MacStandard":
		return charmap.Macintosh
	case "JIS83-RKSJ":
		return japanese.ShiftJIS
	default: // "None", "UTF-8", "Unicode"
		return nil
	}
}

// Language returns the language of the human-readable texts, as given by
// the *LanguageVersion entry.  If the entry is missing or not recognised,
// language.Und is returned.
func (d *Document) Language() language.Tag {
	if tag, ok := languages[d.LanguageVersion]; ok {
		return tag
	}
	return language.Und
}

var languages = map[string]language.Tag{
	"Chinese":    language.Chinese,
	"Danish":     language.Danish,
	"Dutch":      language.Dutch,
	"English":    language.English,
	"Finnish":    language.Finnish,
	"French":     language.French,
	"German":     language.German,
	"Italian":    language.Italian,
	"Japanese":   language.Japanese,
	"Korean":     language.Korean,
	"Norwegian":  language.Norwegian,
	"Portuguese": language.Portuguese,
	"Russian":    language.Russian,
	"Spanish":    language.Spanish,
	"Swedish":    language.Swedish,
}
