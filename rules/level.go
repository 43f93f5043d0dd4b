package rules

import (
	"fmt"
	"strings"
)

// Level is a cleanliness tier controlling how much filler speech is removed.
type Level string

const (
	Light      Level = "light"
	Medium     Level = "medium"
	Aggressive Level = "aggressive"
)

// ParseLevel accepts the English level names and the Portuguese aliases
// (leve, medio, agressivo) used by older transcripts.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "leve":
		return Light, nil
	case "medium", "medio", "médio", "":
		return Medium, nil
	case "aggressive", "agressivo":
		return Aggressive, nil
	default:
		return "", fmt.Errorf("cleanliness level: unsupported value %q", s)
	}
}

func (l Level) String() string { return string(l) }
