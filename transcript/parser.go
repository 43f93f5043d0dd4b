package transcript

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultSectionMarker       = "TRANSCRIÇÃO"
	DefaultPlaceholderDuration = 10.0
)

// DefaultReservedPrefixes mark decorative and metadata lines.
var DefaultReservedPrefixes = []string{"=", "📁", "🤖", "📊", "🎤", "🔧", "📑", "📝", "✨", "🚀", "📄", "💾"}

var (
	headerRe = regexp.MustCompile(`^\[(\d+):(\d{2}):(\d{2})\]\s*(?i:speaker)\s+(\d+)\s*:?\s*(.*)$`)
	rulerRe  = regexp.MustCompile(`^[-=_]+$`)
)

type ParserOptions struct {
	SectionMarker       string
	ReservedPrefixes    []string
	PlaceholderDuration float64
}

type Parser struct {
	marker      string
	prefixes    []string
	placeholder float64
}

func NewParser(opts ParserOptions) *Parser {
	p := &Parser{
		marker:      opts.SectionMarker,
		prefixes:    opts.ReservedPrefixes,
		placeholder: opts.PlaceholderDuration,
	}
	if p.marker == "" {
		p.marker = DefaultSectionMarker
	}
	p.marker = norm.NFC.String(p.marker)
	if len(p.prefixes) == 0 {
		p.prefixes = DefaultReservedPrefixes
	}
	if p.placeholder <= 0 {
		p.placeholder = DefaultPlaceholderDuration
	}
	return p
}

type lineKind int

const (
	lineContent lineKind = iota
	lineDecorative
	lineMarker
	lineHeader
	lineMalformed
)

// Parse splits doc into utterances with placeholder end times. Lines before
// the first section-marker line are discarded; a document without any
// marker line is parsed from its first line. Inside the body the marker is
// only recognized until the first utterance header; after that a line
// mentioning it is continuation text. Stats count non-blank lines.
func (p *Parser) Parse(doc string) ([]Utterance, ParseStats) {
	doc = norm.NFC.String(doc)
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var stats ParseStats
	inBody := !strings.Contains(doc, p.marker)
	seenHeader := false
	var out []Utterance
	var open *Utterance

	closeOpen := func() {
		if open != nil && open.Text != "" {
			out = append(out, *open)
		}
		open = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		stats.Lines++
		kind, u := p.classify(line)
		if kind == lineMarker && seenHeader {
			kind = lineContent
			if p.decorative(line) {
				kind = lineDecorative
			}
		}
		if !inBody {
			if kind == lineMarker {
				inBody = true
			} else {
				stats.Discarded++
			}
			continue
		}
		switch kind {
		case lineDecorative, lineMarker:
		case lineMalformed:
			stats.Malformed++
		case lineHeader:
			seenHeader = true
			closeOpen()
			open = &u
		case lineContent:
			if open == nil {
				stats.Discarded++
				continue
			}
			open.Text = joinText(open.Text, line)
		}
	}
	closeOpen()
	return out, stats
}

func (p *Parser) classify(line string) (lineKind, Utterance) {
	if m := headerRe.FindStringSubmatch(line); m != nil {
		start, ok := parseClock(m[1], m[2], m[3])
		if !ok {
			return lineMalformed, Utterance{}
		}
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return lineMalformed, Utterance{}
		}
		return lineHeader, Utterance{
			Start:   start,
			End:     start + p.placeholder,
			Speaker: SpeakerLabel(n),
			Text:    strings.TrimSpace(m[5]),
		}
	}
	if strings.Contains(line, p.marker) {
		return lineMarker, Utterance{}
	}
	if p.decorative(line) {
		return lineDecorative, Utterance{}
	}
	return lineContent, Utterance{}
}

func (p *Parser) decorative(line string) bool {
	return p.reservedPrefix(line) != "" || rulerRe.MatchString(line)
}

func parseClock(h, m, s string) (float64, bool) {
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins > 59 {
		return 0, false
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs > 59 {
		return 0, false
	}
	// keep h*3600 inside int range
	if hours > (1<<31)/3600 {
		return 0, false
	}
	return float64(hours*3600 + mins*60 + secs), true
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

// ParseReader reads the whole document from r.
func (p *Parser) ParseReader(r io.Reader) ([]Utterance, ParseStats, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrMissingSource, err)
	}
	utts, stats := p.Parse(string(b))
	return utts, stats, nil
}

func (p *Parser) ParseFile(path string) ([]Utterance, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %s: %v", ErrMissingSource, path, err)
	}
	defer f.Close()
	return p.ParseReader(f)
}
