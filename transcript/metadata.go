package transcript

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field is one "<marker> Key: Value" metadata line.
type Field struct {
	Marker string `json:"marker"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func (f Field) String() string {
	return strings.TrimSpace(f.Marker+" "+f.Key) + ": " + f.Value
}

// ReadMetadata collects the reserved-prefix "key: value" lines of the
// document preamble, stopping at the first utterance header. Rulers are
// ignored and a repeated key keeps its first value.
func (p *Parser) ReadMetadata(doc string) []Field {
	doc = norm.NFC.String(doc)
	var out []Field
	seen := map[string]bool{}
	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		if headerRe.MatchString(line) {
			break
		}
		if rulerRe.MatchString(line) {
			continue
		}
		prefix := p.reservedPrefix(line)
		if prefix == "" || prefix == "=" {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, prefix)), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Field{Marker: prefix, Key: key, Value: value})
	}
	return out
}

func (p *Parser) reservedPrefix(line string) string {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(line, prefix) {
			return prefix
		}
	}
	return ""
}

// Lookup returns the value stored under key.
func Lookup(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}
