// Package topic assigns one taxonomy topic to every utterance by keyword
// scoring and splits the sequence into contiguous topic segments.
package topic

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/maastricht-university/edmo-transcript/rules"
	"github.com/maastricht-university/edmo-transcript/transcript"
)

const (
	DefaultTopic    = "General"
	DefaultMaxChars = 600
)

type Options struct {
	DefaultTopic string
	MaxChars     int
}

type entry struct {
	name     string
	keywords []string
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	topics   []entry
	fallback string
	maxChars int
}

func New(tax rules.Taxonomy, opts Options) *Classifier {
	c := &Classifier{fallback: opts.DefaultTopic, maxChars: opts.MaxChars}
	if c.fallback == "" {
		c.fallback = DefaultTopic
	}
	if c.maxChars <= 0 {
		c.maxChars = DefaultMaxChars
	}
	for _, t := range tax {
		e := entry{name: t.Name}
		for _, kw := range t.Keywords {
			if kw = fold(strings.TrimSpace(kw)); kw != "" {
				e.keywords = append(e.keywords, kw)
			}
		}
		c.topics = append(c.topics, e)
	}
	return c
}

// fold uses a fresh Caser per call; Casers keep state.
func fold(s string) string { return cases.Fold().String(s) }

// Score counts, per topic, how many keywords occur in text and returns the
// best topic. Ties go to the earlier topic; no hits returns "".
func (c *Classifier) Score(text string) (string, int) {
	folded := fold(text)
	best, bestHits := "", 0
	for _, t := range c.topics {
		hits := 0
		for _, kw := range t.keywords {
			if strings.Contains(folded, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = t.name, hits
		}
	}
	return best, bestHits
}

// Assign sets Topic on every utterance. An utterance without keyword hits
// inherits its predecessor's topic, or the default topic when it is first.
func (c *Classifier) Assign(utts []transcript.Utterance) {
	prev := c.fallback
	for i := range utts {
		topic, hits := c.Score(utts[i].Text)
		if hits == 0 {
			topic = prev
		}
		utts[i].Topic = topic
		prev = topic
	}
}

// Segment is a contiguous run of utterances sharing a topic. First and Last
// are inclusive indices. Heavy flags a run with an utterance longer than
// the character budget; it is advisory and never splits a run.
type Segment struct {
	Topic string `json:"topic"`
	First int    `json:"first"`
	Last  int    `json:"last"`
	Chars int    `json:"chars"`
	Heavy bool   `json:"heavy"`
}

func (c *Classifier) Segments(utts []transcript.Utterance) []Segment {
	var out []Segment
	for i, u := range utts {
		n := utf8.RuneCountInString(u.Text)
		if len(out) == 0 || out[len(out)-1].Topic != u.Topic {
			out = append(out, Segment{Topic: u.Topic, First: i, Last: i})
		}
		s := &out[len(out)-1]
		s.Last = i
		s.Chars += n
		if n > c.maxChars {
			s.Heavy = true
		}
	}
	return out
}

func (c *Classifier) DefaultTopic() string { return c.fallback }
