package rules

import (
	"fmt"
	"strings"
)

// Topic is one taxonomy category with its keyword cues.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is ordered; earlier topics win score ties.
type Taxonomy []Topic

// Names returns the topic names in declaration order.
func (t Taxonomy) Names() []string {
	out := make([]string, len(t))
	for i, tp := range t {
		out[i] = tp.Name
	}
	return out
}

// Validate requires unique, non-empty names. An empty keyword list is
// allowed; such a topic simply never scores.
func (t Taxonomy) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for i, tp := range t {
		name := strings.TrimSpace(tp.Name)
		if name == "" {
			return fmt.Errorf("topics[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("topics[%d]: duplicate topic %q", i, tp.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
