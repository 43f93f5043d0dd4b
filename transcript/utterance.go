package transcript

import (
	"fmt"
	"strings"
)

type Utterance struct {
	Start        float64  `json:"start"` // sec
	End          float64  `json:"end"`   // sec
	Speaker      string   `json:"speaker"`
	Text         string   `json:"text"`
	Topic        string   `json:"topic,omitempty"`
	NoSpeechProb *float64 `json:"no_speech_prob,omitempty"`
}

func (u Utterance) Duration() float64 { return u.End - u.Start }

// Words counts whitespace-separated tokens.
func (u Utterance) Words() int { return len(strings.Fields(u.Text)) }

// SpeakerLabel is the canonical label for a numeric speaker id.
func SpeakerLabel(n int) string { return fmt.Sprintf("Speaker %d", n) }

// Timestamp formats seconds as H:MM:SS with unpadded hours.
func Timestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	s := int(sec)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
