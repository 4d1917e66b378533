package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/eringen/folio/markdown"
	"gopkg.in/yaml.v3"
)

//go:embed thoughts.yaml
var defaultThoughts []byte

// LoadThoughts decodes a YAML list of thoughts and fills in their slugs.
func LoadThoughts(r io.Reader) ([]Thought, error) {
	var thoughts []Thought
	if err := yaml.NewDecoder(r).Decode(&thoughts); err != nil && err != io.EOF {
		return nil, fmt.Errorf("content: decode thoughts: %w", err)
	}
	for i := range thoughts {
		thoughts[i].Slug = markdown.Slugify(thoughts[i].Title)
	}
	return thoughts, nil
}

// DefaultThoughts returns the built-in thoughts.
func DefaultThoughts() []Thought {
	thoughts, err := LoadThoughts(bytes.NewReader(defaultThoughts))
	if err != nil {
		panic(err)
	}
	return thoughts
}
