package folio

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/views"
)

//go:embed profile.yaml
var defaultProfile []byte

// LoadProfile decodes landing page data from YAML.
func LoadProfile(r io.Reader) (views.Profile, error) {
	var p views.Profile
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return views.Profile{}, fmt.Errorf("folio: decode profile: %w", err)
	}
	return p, nil
}

// LoadProfileFile reads a profile YAML file.
func LoadProfileFile(path string) (views.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return views.Profile{}, fmt.Errorf("folio: open profile: %w", err)
	}
	defer f.Close()
	return LoadProfile(f)
}

// DefaultProfile returns the built-in landing page data.
func DefaultProfile() views.Profile {
	p, err := LoadProfile(bytes.NewReader(defaultProfile))
	if err != nil {
		panic(err)
	}
	return p
}

// WithProfile replaces the built-in landing page data.
func WithProfile(p views.Profile) Option {
	return func(a *App) {
		a.Profile = p
	}
}
