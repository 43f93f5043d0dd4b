package speaker

import "github.com/maastricht-university/edmo-transcript/transcript"

// Merger joins runs of adjacent utterances from the same speaker. With a
// positive MaxGap a pause of MaxGap seconds or more keeps the two apart.
type Merger struct {
	MaxGap float64
}

// Merge returns the consolidated sequence. Utterances with empty text are
// dropped.
func (m Merger) Merge(utts []transcript.Utterance) []transcript.Utterance {
	out := make([]transcript.Utterance, 0, len(utts))
	for _, u := range utts {
		if u.Text == "" {
			continue
		}
		if n := len(out); n > 0 && m.joins(out[n-1], u) {
			last := &out[n-1]
			last.End = u.End
			last.Text = last.Text + " " + u.Text
			continue
		}
		out = append(out, u)
	}
	return out
}

func (m Merger) joins(prev, cur transcript.Utterance) bool {
	if prev.Speaker != cur.Speaker {
		return false
	}
	return m.MaxGap <= 0 || cur.Start-prev.End < m.MaxGap
}
