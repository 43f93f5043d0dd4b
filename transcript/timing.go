package transcript

import (
	"math"
	"strings"
)

const (
	MinUtteranceSeconds = 5.0
	SecondsPerWord      = 0.5
)

// EstimateDuration is the speaking-rate estimate used when a true end time
// is unknown: half a second per word with a five second floor.
func EstimateDuration(text string) float64 {
	return math.Max(MinUtteranceSeconds, float64(len(strings.Fields(text)))*SecondsPerWord)
}

// Reconcile rewrites start and end times in place so that every utterance
// starts where the previous one ended. The last utterance keeps its end
// unless that end now precedes its start.
func Reconcile(utts []Utterance) {
	for i := range utts {
		u := &utts[i]
		if i > 0 {
			u.Start = utts[i-1].End
		}
		if i < len(utts)-1 || u.End < u.Start {
			u.End = u.Start + EstimateDuration(u.Text)
		}
	}
}
