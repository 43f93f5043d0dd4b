package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Set bundles the rule data one pipeline runs with.
type Set struct {
	Vocabulary Vocabulary `yaml:"vocabulary"`
	Fillers    Fillers    `yaml:"fillers"`
	Topics     Taxonomy   `yaml:"topics"`
}

func (s *Set) Validate() error {
	if s == nil {
		return errors.New("rules: nil set")
	}
	if err := s.Vocabulary.Validate(); err != nil {
		return err
	}
	if err := s.Fillers.Validate(); err != nil {
		return err
	}
	return s.Topics.Validate()
}

// Load decodes a YAML rule file on top of the defaults. Sections absent from
// the file keep their default value.
func Load(r io.Reader) (*Set, error) {
	set := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(set); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadFile is Load for a path. An empty path returns the defaults.
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules %s: %w", path, err)
	}
	defer f.Close()
	set, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return set, nil
}
