package clients

import (
	"context"
	"errors"
)

// --- Correction (/correct) ---
type CorrectReq struct {
	Text string `json:"text"`
}
type CorrectResp struct {
	Text string `json:"text"`
}

// ServiceCorrector sends text to an HTTP correction service.
type ServiceCorrector struct {
	http *HTTP
	url  string
}

func NewServiceCorrector(h *HTTP, url string) *ServiceCorrector {
	return &ServiceCorrector{http: h, url: url}
}

func (s *ServiceCorrector) Correct(ctx context.Context, text string) (string, error) {
	var out CorrectResp
	if err := s.http.postJSON(ctx, "correction", endpoint(s.url, "/correct"), CorrectReq{Text: text}, &out); err != nil {
		return "", err
	}
	if out.Text == "" {
		return "", errors.New("correction: empty response")
	}
	return out.Text, nil
}
