package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/maastricht-university/edmo-transcript/rules"
)

// wordEnd requires the next rune to be a non-word rune or end of input.
// It is appended to alternatives whose last rune is a word rune, so the
// regexp engine moves on to the next alternative instead of accepting a
// match that stops mid-word.
const wordEnd = `(?:[^\p{L}\p{N}_]|$)`

// alternation compiles ordered fragments into one leftmost-first regexp
// and remembers which capture group belongs to which fragment.
type alternation struct {
	re     *regexp.Regexp
	groups []int
}

type match struct {
	rule       int
	start, end int
}

func compileAlternation(fragments []string, literal bool) (*alternation, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	var b strings.Builder
	b.WriteString(`(?i)(?:`)
	groups := make([]int, len(fragments))
	next := 1
	for i, f := range fragments {
		if literal {
			f = regexp.QuoteMeta(f)
		}
		sub, err := regexp.Compile(f)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", f, err)
		}
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString("(" + f + ")")
		if endsWithWord(f) {
			b.WriteString(wordEnd)
		}
		groups[i] = next
		next += 1 + sub.NumSubexp()
	}
	b.WriteByte(')')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	return &alternation{re: re, groups: groups}, nil
}

// find returns non-overlapping matches that start on a word boundary, in
// order. At each position the earliest fragment that matches wins.
func (a *alternation) find(s string) []match {
	if a == nil {
		return nil
	}
	var out []match
	pos := 0
	for pos <= len(s) {
		loc := a.re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		m := match{rule: -1}
		for i, g := range a.groups {
			if loc[2*g] >= 0 {
				m = match{rule: i, start: pos + loc[2*g], end: pos + loc[2*g+1]}
				break
			}
		}
		if m.rule < 0 || m.end == m.start || !rules.LeadingBoundary(s, m.start) {
			_, size := utf8.DecodeRuneInString(s[pos+loc[0]:])
			if size == 0 {
				break
			}
			pos += loc[0] + size
			continue
		}
		out = append(out, m)
		pos = m.end
	}
	return out
}

// endsWithWord reports whether a pattern's final element is a literal word
// rune, as opposed to an escape, class or quantifier.
func endsWithWord(f string) bool {
	r, size := utf8.DecodeLastRuneInString(f)
	if size == 0 || !rules.IsWordRune(r) {
		return false
	}
	rest := f[:len(f)-size]
	return !strings.HasSuffix(rest, `\`) || strings.HasSuffix(rest, `\\`)
}
