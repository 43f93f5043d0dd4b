package orchestrator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maastricht-university/edmo-transcript/transcript"
)

func readDoc(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", transcript.ErrMissingSource, path, err)
	}
	return string(b), nil
}

// header carries over the input's file and model fields and adds the
// run's own settings and counts.
func (r *Result) header(organized bool) []transcript.Field {
	file, ok := transcript.Lookup(r.Metadata, "Arquivo original")
	if !ok {
		file, ok = transcript.Lookup(r.Metadata, "Arquivo")
	}
	if !ok {
		file = filepath.Base(r.Source)
	}
	model, ok := transcript.Lookup(r.Metadata, "Modelo")
	if !ok {
		model = "N/A"
	}
	fields := []transcript.Field{
		{Marker: "📁", Key: "Arquivo original", Value: file},
		{Marker: "🤖", Key: "Modelo", Value: model},
		{Marker: "🔧", Key: "Modo limpeza", Value: string(r.Level)},
		{Marker: "📊", Key: "Segmentos", Value: strconv.Itoa(len(r.Utterances))},
		{Marker: "🎤", Key: "Speakers", Value: strconv.Itoa(r.Speakers())},
	}
	if organized {
		fields = append(fields, transcript.Field{Marker: "📑", Key: "Tópicos", Value: strconv.Itoa(len(r.Groups))})
	}
	return fields
}

// Render writes the organized transcript, or the flat cleaned one when the
// result was never organized.
func (r *Result) Render(w io.Writer) error {
	if !r.Organized {
		return transcript.RenderFlat(w, r.header(false), r.Utterances)
	}
	return transcript.Render(w, r.Document())
}

// Document lays the organized result out with one section per topic group.
func (r *Result) Document() transcript.Document {
	doc := transcript.Document{
		Icon:     "📑",
		Title:    transcript.OrganizedTitle,
		Metadata: r.header(true),
	}
	for _, g := range r.Groups {
		doc.Sections = append(doc.Sections, transcript.Section{Title: g.Topic, Entries: g.Entries})
	}
	return doc
}
