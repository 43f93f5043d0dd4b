package rules

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r counts as part of a word for phrase matching.
// Unlike regexp's \b this is Unicode aware, so accented words such as "né"
// have boundaries on both sides.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// LeadingBoundary reports whether a match starting at byte offset start of s
// begins on a word boundary.
func LeadingBoundary(s string, start int) bool {
	r, _ := utf8.DecodeRuneInString(s[start:])
	if !IsWordRune(r) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:start])
	return !IsWordRune(prev)
}

// TrailingBoundary reports whether a match ending at byte offset end of s
// stops on a word boundary.
func TrailingBoundary(s string, end int) bool {
	if end == 0 || end >= len(s) {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(s[:end])
	if !IsWordRune(last) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(s[end:])
	return !IsWordRune(next)
}

// ContainsWord reports whether phrase occurs in text as a whole word or
// phrase, ignoring case.
func ContainsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return false
		}
		start, end := pos+loc[0], pos+loc[1]
		if LeadingBoundary(text, start) && TrailingBoundary(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return false
}
