// Package speaker infers speaker turn boundaries and consolidates adjacent
// utterances from the same turn. It never re-identifies a speaker across
// non-adjacent turns.
package speaker

import (
	"math"

	"github.com/maastricht-university/edmo-transcript/transcript"
)

const (
	DefaultPauseThreshold          = 2.5
	DefaultEnergyThreshold         = 0.5
	DefaultSecondaryPauseThreshold = 1.5
	// DefaultMergeGap exceeds DefaultPauseThreshold, so two turns the
	// heuristic gives the same speaker are always close enough to merge.
	DefaultMergeGap = 3.0
)

// Detector labels each utterance with a speaker.
type Detector interface {
	Assign(utts []transcript.Utterance) []transcript.Utterance
}

type Thresholds struct {
	PauseThreshold          float64
	EnergyThreshold         float64
	SecondaryPauseThreshold float64
	// MinDuration drops shorter utterances as noise when positive.
	MinDuration float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PauseThreshold:          DefaultPauseThreshold,
		EnergyThreshold:         DefaultEnergyThreshold,
		SecondaryPauseThreshold: DefaultSecondaryPauseThreshold,
	}
}

// Heuristic infers boundaries from pauses and from jumps in the ASR
// no-speech probability.
type Heuristic struct {
	Thresholds
}

func NewHeuristic(t Thresholds) *Heuristic { return &Heuristic{Thresholds: t} }

func (h *Heuristic) Assign(utts []transcript.Utterance) []transcript.Utterance {
	out := make([]transcript.Utterance, 0, len(utts))
	current := 1
	for _, u := range utts {
		if h.MinDuration > 0 && u.Duration() < h.MinDuration {
			continue
		}
		if n := len(out); n > 0 && h.boundary(out[n-1], u) {
			current++
		}
		u.Speaker = transcript.SpeakerLabel(current)
		out = append(out, u)
	}
	return out
}

func (h *Heuristic) boundary(prev, cur transcript.Utterance) bool {
	pause := cur.Start - prev.End
	if pause > h.PauseThreshold {
		return true
	}
	if prev.NoSpeechProb == nil || cur.NoSpeechProb == nil {
		return false
	}
	jump := math.Abs(*cur.NoSpeechProb - *prev.NoSpeechProb)
	return jump > h.EnergyThreshold && pause > h.SecondaryPauseThreshold
}
