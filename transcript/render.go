package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	rulerWidth = 70

	OrganizedTitle = "TRANSCRIÇÃO ORGANIZADA POR TÓPICOS"
	CleanedTitle   = "TRANSCRIÇÃO CORRIGIDA"
)

var ruler = strings.Repeat("=", rulerWidth)

// Entry is an utterance placed in a rendered section. SpeakerChange marks a
// blank line before it.
type Entry struct {
	Utterance
	SpeakerChange bool `json:"speaker_change"`
}

// Section is one titled block of the output document.
type Section struct {
	Title   string
	Entries []Entry
}

// Document is everything Render writes. Title doubles as the body marker,
// so it should contain the parser's section marker for the output to
// re-parse.
type Document struct {
	Icon     string
	Title    string
	Metadata []Field
	Sections []Section
}

// Entries wraps utts, flagging every speaker change after the first entry.
func Entries(utts []Utterance) []Entry {
	out := make([]Entry, len(utts))
	for i, u := range utts {
		out[i] = Entry{Utterance: u, SpeakerChange: i > 0 && utts[i-1].Speaker != u.Speaker}
	}
	return out
}

// Render writes the document. A section with an empty title is written
// without its own header, which is how a flat transcript is rendered.
func Render(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ruler)
	fmt.Fprintln(bw, strings.TrimSpace(doc.Icon+" "+doc.Title))
	fmt.Fprintln(bw, ruler)
	fmt.Fprintln(bw)
	for _, f := range doc.Metadata {
		fmt.Fprintln(bw, f.String())
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, ruler)
	fmt.Fprintln(bw, doc.Title)
	fmt.Fprintln(bw, ruler)

	for _, s := range doc.Sections {
		fmt.Fprintln(bw)
		if s.Title != "" {
			fmt.Fprintln(bw, ruler)
			fmt.Fprintln(bw, "📑 "+strings.ToUpper(s.Title))
			fmt.Fprintln(bw, ruler)
			fmt.Fprintln(bw)
		}
		for _, e := range s.Entries {
			if e.SpeakerChange {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "[%s] %s: %s\n", Timestamp(e.Start), e.Speaker, e.Text)
		}
	}
	return bw.Flush()
}

// RenderFlat writes a cleaned transcript without topic sections.
func RenderFlat(w io.Writer, meta []Field, utts []Utterance) error {
	return Render(w, Document{
		Icon:     "🔧",
		Title:    CleanedTitle,
		Metadata: meta,
		Sections: []Section{{Entries: Entries(utts)}},
	})
}
