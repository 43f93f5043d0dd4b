package clients

import (
	"context"

	"github.com/maastricht-university/edmo-transcript/speaker"
)

// --- Diarization (/diarize) ---
type DiarResp struct {
	Turns []speaker.Turn `json:"turns"`
}

func (h *HTTP) Diarize(ctx context.Context, url, audioPath string) (*DiarResp, error) {
	var out DiarResp
	if err := h.postFile(ctx, "diarization", endpoint(url, "/diarize"), audioPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
