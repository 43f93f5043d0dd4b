package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// VocabularyRule maps known misrecognitions of a term to its canonical form.
type VocabularyRule struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// Vocabulary is an ordered rule list. Configuration order is match priority.
type Vocabulary []VocabularyRule

// Pair is one flattened (variant, canonical) entry.
type Pair struct {
	Variant   string
	Canonical string
}

// Pairs flattens the vocabulary in priority order.
func (v Vocabulary) Pairs() []Pair {
	var out []Pair
	for _, r := range v {
		for _, variant := range r.Variants {
			out = append(out, Pair{Variant: variant, Canonical: r.Canonical})
		}
	}
	return out
}

// Validate checks that every rule is complete and that the ordering contract
// holds: a variant occurring as a whole word inside a later variant would
// shadow it, so the longer one has to be listed first.
func (v Vocabulary) Validate() error {
	pairs := v.Pairs()
	for i, r := range v {
		if strings.TrimSpace(r.Canonical) == "" {
			return fmt.Errorf("vocabulary[%d].canonical is required", i)
		}
		if len(r.Variants) == 0 {
			return fmt.Errorf("vocabulary[%d] (%s): at least one variant is required", i, r.Canonical)
		}
		for j, variant := range r.Variants {
			if strings.TrimSpace(variant) == "" {
				return fmt.Errorf("vocabulary[%d].variants[%d] (%s) is empty", i, j, r.Canonical)
			}
		}
	}
	for i := range pairs {
		for j := i + 1; j < len(pairs); j++ {
			a, b := pairs[i], pairs[j]
			if strings.EqualFold(a.Variant, b.Variant) {
				return fmt.Errorf("vocabulary: variant %q listed twice (%s, %s)", a.Variant, a.Canonical, b.Canonical)
			}
			if len(b.Variant) > len(a.Variant) && ContainsWord(b.Variant, a.Variant) {
				return fmt.Errorf("vocabulary: variant %q (%s) must come after the longer variant %q (%s)",
					a.Variant, a.Canonical, b.Variant, b.Canonical)
			}
		}
	}
	return nil
}

// UnmarshalYAML accepts either a list of {canonical, variants} objects or an
// ordered mapping of canonical term to variants. Mapping order is kept.
func (v *Vocabulary) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []VocabularyRule
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = list
		return nil
	case yaml.MappingNode:
		out := make(Vocabulary, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			var variants []string
			if err := val.Decode(&variants); err != nil {
				return fmt.Errorf("vocabulary %q (line %d): %w", key.Value, key.Line, err)
			}
			out = append(out, VocabularyRule{Canonical: key.Value, Variants: variants})
		}
		*v = out
		return nil
	default:
		return fmt.Errorf("vocabulary (line %d): expected a list or a mapping", node.Line)
	}
}
