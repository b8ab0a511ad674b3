// Package naming provides the key case conversions used by model rewriting.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToSnakeCase converts a key to snake_case. Words break at lower-to-upper
// transitions, between letters and digits, at the end of an upper-case run
// followed by a capitalized word, and at any non-alphanumeric rune.
// Example: "field1One10" -> "field_1_one_10"
// Example: "fieldONETwo" -> "field_one_two"
func ToSnakeCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return s
	}
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// ToCamelCase converts a snake_case key to camelCase. The first segment is
// kept as is; every following segment gets an upper-case first letter and
// keeps the rest of its runes.
// Example: "field_1_one_10" -> "field1One10"
// Example: "field_ONE_Two" -> "fieldONETwo"
func ToCamelCase(s string) string {
	var b strings.Builder
	first := true
	title := cases.Title(language.Und, cases.NoLower)
	for _, seg := range strings.Split(s, "_") {
		if seg == "" {
			continue
		}
		if first {
			b.WriteString(seg)
			first = false
			continue
		}
		if r := []rune(seg)[0]; unicode.IsLetter(r) {
			seg = title.String(seg)
		}
		b.WriteString(seg)
	}
	if first {
		return s
	}
	return b.String()
}

type runeClass int

const (
	classOther runeClass = iota
	classLower
	classUpper
	classDigit
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r):
		return classLower
	case unicode.IsDigit(r):
		return classDigit
	}
	return classOther
}

func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}
	for i, r := range rs {
		c := classify(r)
		if c == classOther {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := classify(rs[i-1])
		switch {
		case prev == classDigit && c != classDigit,
			prev != classDigit && c == classDigit,
			prev == classLower && c == classUpper:
			flush(i)
			start = i
		case prev == classUpper && c == classUpper && i+1 < len(rs) && classify(rs[i+1]) == classLower:
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}
