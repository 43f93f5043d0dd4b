// Package normalize rewrites utterance text: known misrecognitions become
// their canonical term and filler speech is removed according to a
// cleanliness level.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/maastricht-university/edmo-transcript/rules"
	"github.com/maastricht-university/edmo-transcript/transcript"
)

// maxPasses bounds the fixpoint loop in Normalize.
const maxPasses = 8

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	spaceBeforeP  = regexp.MustCompile(`\s+([,.!?;:])`)
	commaRun      = regexp.MustCompile(`,(\s*,)+`)
	periodRun     = regexp.MustCompile(`\.{2,}`)
	questionRun   = regexp.MustCompile(`\?{2,}`)
	bangRun       = regexp.MustCompile(`!{2,}`)
	sentenceJoin  = regexp.MustCompile(`([.!?])(\p{L})`)
	leadingPunct  = regexp.MustCompile(`^[\s,;:.!?]+`)
	trailingComma = regexp.MustCompile(`[\s,;:]+$`)
	commaBefore   = regexp.MustCompile(`,\s*$`)
	commaAfter    = regexp.MustCompile(`^\s*,`)
)

// Normalizer is immutable after New and safe for concurrent use.
type Normalizer struct {
	level      rules.Level
	canonicals []string
	vocab      *alternation
	fillers    *alternation
}

func New(set *rules.Set, level rules.Level) (*Normalizer, error) {
	if set == nil {
		set = rules.Default()
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	pairs := set.Vocabulary.Pairs()
	variants := make([]string, len(pairs))
	canonicals := make([]string, len(pairs))
	for i, p := range pairs {
		variants[i] = norm.NFC.String(p.Variant)
		canonicals[i] = norm.NFC.String(p.Canonical)
	}
	vocab, err := compileAlternation(variants, true)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	patterns := set.Fillers.Patterns(level)
	for i := range patterns {
		patterns[i] = norm.NFC.String(patterns[i])
	}
	fillers, err := compileAlternation(patterns, false)
	if err != nil {
		return nil, fmt.Errorf("fillers (%s): %w", level, err)
	}
	n := &Normalizer{level: level, canonicals: canonicals, vocab: vocab, fillers: fillers}
	for _, r := range set.Vocabulary {
		c := norm.NFC.String(r.Canonical)
		if got := n.canonicalize(c); got != c {
			return nil, fmt.Errorf("vocabulary: canonical term %q is not stable, it rewrites to %q", r.Canonical, got)
		}
	}
	return n, nil
}

func (n *Normalizer) Level() rules.Level { return n.level }

// Normalize canonicalizes vocabulary, removes fillers and tidies spacing and
// punctuation. It repeats until the text stops changing, so
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	cur := norm.NFC.String(text)
	for i := 0; i < maxPasses; i++ {
		next := n.pass(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}

// Apply normalizes every utterance in place. Utterances left without
// content get empty text.
func (n *Normalizer) Apply(utts []transcript.Utterance) {
	for i := range utts {
		utts[i].Text = n.Normalize(utts[i].Text)
	}
}

func (n *Normalizer) pass(text string) string {
	return cleanup(n.removeFillers(n.canonicalize(text)))
}

func (n *Normalizer) canonicalize(text string) string {
	matches := n.vocab.find(text)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.start])
		b.WriteString(n.canonicals[m.rule])
		last = m.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// removeFillers drops filler matches. A filler set off by commas takes the
// commas with it, and so does one at the edge of a sentence.
func (n *Normalizer) removeFillers(text string) string {
	matches := n.fillers.find(text)
	if len(matches) == 0 {
		return text
	}
	out := ""
	last := 0
	for _, m := range matches {
		if m.start < last {
			continue
		}
		out += text[last:m.start]
		rest := text[m.end:]
		leftComma := commaBefore.MatchString(out)
		rightComma := commaAfter.MatchString(rest)
		leftEdge := atSentenceStart(out)
		rightEdge := atSentenceEnd(rest)
		if leftComma && (rightComma || rightEdge) {
			out = commaBefore.ReplaceAllString(out, "")
		}
		last = m.end
		if rightComma && (leftComma || leftEdge) {
			last += len(commaAfter.FindString(rest))
		}
		out += " "
	}
	return out + text[last:]
}

func atSentenceStart(s string) bool {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == '.' || r == '!' || r == '?'
}

func atSentenceEnd(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune(".!?;:", r)
}

func cleanup(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = spaceBeforeP.ReplaceAllString(s, "$1")
	s = commaRun.ReplaceAllString(s, ",")
	s = periodRun.ReplaceAllString(s, ".")
	s = questionRun.ReplaceAllString(s, "?")
	s = bangRun.ReplaceAllString(s, "!")
	s = sentenceJoin.ReplaceAllString(s, "$1 $2")
	s = leadingPunct.ReplaceAllString(s, "")
	s = trailingComma.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.ContainsRune(".!?", lastRune(s)) {
		s += "."
	}
	return s
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
