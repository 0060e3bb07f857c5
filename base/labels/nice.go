// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labels provides functions for creating user-friendly labels
// from member names and types.
package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.English, cases.NoLower)
	lowerCaser = cases.Lower(language.English)
)

// Words splits the given identifier into its words. Underscores and
// spaces separate words, as do transitions from lower case to upper
// case, between letters and digits, and from an acronym to a
// capitalized word ("HTTPServer" is "HTTP" and "Server").
func Words(s string) []string {
	var words []string
	rs := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}
	for i, r := range rs {
		if r == '_' || r == ' ' || r == '-' || r == '.' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := rs[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			flush(i)
			start = i
		case unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}

// isAcronym returns whether the word is an all upper case
// word of more than one letter.
func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// NiceName returns the label shown for a member with the given name,
// in Title Case with acronyms preserved. A leading "m_" or "_" prefix
// and a "k" constant prefix followed by an upper case letter are
// removed, so "m_maxHP" becomes "Max HP". Element names like "[3]"
// are returned unchanged.
func NiceName(name string) string {
	if strings.HasPrefix(name, "[") {
		return name
	}
	name = strings.TrimPrefix(name, "m_")
	name = strings.TrimLeft(name, "_")
	if len(name) > 1 && name[0] == 'k' && unicode.IsUpper(rune(name[1])) {
		name = name[1:]
	}
	words := Words(name)
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}

// Sentence returns the given identifier in Sentence case: words
// separated by spaces, with the first word capitalized and the rest
// in lower case except for acronyms.
func Sentence(s string) string {
	words := Words(s)
	for i, w := range words {
		switch {
		case isAcronym(w):
		case i == 0:
			words[i] = titleCaser.String(lowerCaser.String(w))
		default:
			words[i] = lowerCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}
