package speaker

import (
	"sort"

	"github.com/maastricht-university/edmo-transcript/transcript"
)

// Turn is one diarization interval.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// External labels utterances from diarization turns instead of the
// heuristic. Diarization ids are renamed to "Speaker N" in order of first
// appearance, so rendered output keeps the transcript line grammar.
type External struct {
	turns  []Turn
	labels map[string]string
}

func NewExternal(turns []Turn) *External {
	sorted := append([]Turn(nil), turns...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	labels := map[string]string{}
	for _, t := range sorted {
		if _, ok := labels[t.Speaker]; !ok {
			labels[t.Speaker] = transcript.SpeakerLabel(len(labels) + 1)
		}
	}
	return &External{turns: sorted, labels: labels}
}

// Assign gives each utterance the speaker of the turn overlapping it most,
// or of the nearest turn when none overlaps.
func (e *External) Assign(utts []transcript.Utterance) []transcript.Utterance {
	out := make([]transcript.Utterance, len(utts))
	for i, u := range utts {
		u.Speaker = transcript.SpeakerLabel(1)
		if t, ok := e.best(u); ok {
			u.Speaker = e.labels[t.Speaker]
		}
		out[i] = u
	}
	return out
}

func (e *External) best(u transcript.Utterance) (Turn, bool) {
	if len(e.turns) == 0 {
		return Turn{}, false
	}
	bestIdx, bestOverlap := -1, 0.0
	nearIdx, nearDist := 0, -1.0
	for i, t := range e.turns {
		ov := min(u.End, t.End) - max(u.Start, t.Start)
		if ov > bestOverlap {
			bestIdx, bestOverlap = i, ov
		}
		dist := 0.0
		switch {
		case t.End < u.Start:
			dist = u.Start - t.End
		case t.Start > u.End:
			dist = t.Start - u.End
		}
		if nearDist < 0 || dist < nearDist {
			nearIdx, nearDist = i, dist
		}
	}
	if bestIdx >= 0 {
		return e.turns[bestIdx], true
	}
	return e.turns[nearIdx], true
}

// Speakers returns the number of distinct diarization speakers.
func (e *External) Speakers() int { return len(e.labels) }
