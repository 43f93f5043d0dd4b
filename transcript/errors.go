package transcript

import "errors"

// ErrMissingSource is returned when the input document cannot be read at all.
var ErrMissingSource = errors.New("transcript source missing or unreadable")

// ParseStats counts what the parser recovered from. None of these are fatal.
type ParseStats struct {
	Lines     int `json:"lines"`
	Malformed int `json:"malformed"` // header-shaped lines with an invalid timestamp
	Discarded int `json:"discarded"` // content lines with no utterance open, or before the body
}
