package orchestrator

import (
	"context"

	"github.com/maastricht-university/edmo-transcript/rules"
	"github.com/maastricht-university/edmo-transcript/topic"
	"github.com/maastricht-university/edmo-transcript/transcript"
)

// Corrector revises normalized text. Implementations live in clients.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Group is one topic bucket of the organized transcript.
type Group struct {
	Topic   string             `json:"topic"`
	T0      float64            `json:"t0"` // first start
	T1      float64            `json:"t1"` // last end
	Entries []transcript.Entry `json:"entries"`
	// Aggregates
	SpeakingShare map[string]float64 `json:"speaking_share"` // per speaker, fraction of bucket speech
	// OverlapRate is the fraction of the bucket span with more than one
	// utterance active. Nil when timings were estimated, since reconciled
	// utterances never overlap.
	OverlapRate *float64 `json:"overlap_rate,omitempty"`
}

// Result is everything one run produced.
type Result struct {
	Source     string                 `json:"source"`
	Level      rules.Level            `json:"level"`
	Metadata   []transcript.Field     `json:"metadata,omitempty"`
	Stats      transcript.ParseStats  `json:"stats"`
	Utterances []transcript.Utterance `json:"utterances"`
	Segments   []topic.Segment        `json:"segments,omitempty"`
	Groups     []Group                `json:"groups,omitempty"`
	Corrected  int                    `json:"corrected"`
	Organized  bool                   `json:"organized"`
	// MeasuredTiming is set when times come from ASR rather than from the
	// reconciler's estimate.
	MeasuredTiming bool `json:"measured_timing"`
}

// Speakers counts distinct speaker labels.
func (r *Result) Speakers() int {
	seen := map[string]struct{}{}
	for _, u := range r.Utterances {
		seen[u.Speaker] = struct{}{}
	}
	return len(seen)
}
