package clients

import (
	"context"
	"strings"

	"github.com/maastricht-university/edmo-transcript/transcript"
)

type TransSeg struct {
	Start        float64  `json:"start"`
	End          float64  `json:"end"`
	Text         string   `json:"text"`
	NoSpeechProb *float64 `json:"no_speech_prob,omitempty"`
}
type ASRResp struct {
	Segments []TransSeg `json:"segments"`
	Language string     `json:"language"`
}

// ASR uploads the audio file to the transcription service (/transcribe).
func (h *HTTP) ASR(ctx context.Context, url, audioPath string) (*ASRResp, error) {
	var out ASRResp
	if err := h.postFile(ctx, "asr", endpoint(url, "/transcribe"), audioPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Utterances converts segments into pipeline seeds. Speakers are left for a
// detector to assign and blank segments are skipped.
func (r *ASRResp) Utterances() []transcript.Utterance {
	utts := make([]transcript.Utterance, 0, len(r.Segments))
	for _, s := range r.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		end := s.End
		if end < s.Start {
			end = s.Start
		}
		utts = append(utts, transcript.Utterance{Start: s.Start, End: end, Text: text, NoSpeechProb: s.NoSpeechProb})
	}
	return utts
}
