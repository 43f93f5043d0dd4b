package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Fillers lists filler-speech regex fragments per cleanliness level. Each
// level holds only its additions to the level below it, so the superset
// relation between levels holds by construction.
//
// Fragments are matched case-insensitively at Unicode word boundaries and
// should not carry their own \b anchors; anchors at either end are stripped.
type Fillers struct {
	Light      []string `yaml:"light"`
	Medium     []string `yaml:"medium"`
	Aggressive []string `yaml:"aggressive"`
}

// Patterns returns the ordered fragments active at level.
func (f Fillers) Patterns(level Level) []string {
	var out []string
	out = append(out, f.Light...)
	if level == Medium || level == Aggressive {
		out = append(out, f.Medium...)
	}
	if level == Aggressive {
		out = append(out, f.Aggressive...)
	}
	for i, p := range out {
		out[i] = stripAnchors(p)
	}
	return out
}

func (f Fillers) Validate() error {
	levels := []struct {
		name string
		list []string
	}{{"light", f.Light}, {"medium", f.Medium}, {"aggressive", f.Aggressive}}
	for _, lv := range levels {
		name := lv.name
		for i, p := range lv.list {
			p = stripAnchors(p)
			if p == "" {
				return fmt.Errorf("fillers.%s[%d] is empty", name, i)
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("fillers.%s[%d] %q: %w", name, i, p, err)
			}
			if re.MatchString("") {
				return fmt.Errorf("fillers.%s[%d] %q matches the empty string", name, i, p)
			}
		}
	}
	return nil
}

func stripAnchors(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, `\b`)
	if strings.HasSuffix(p, `\b`) && !strings.HasSuffix(p, `\\b`) {
		p = strings.TrimSuffix(p, `\b`)
	}
	return p
}
