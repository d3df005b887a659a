package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one source document family: the quiz metadata written
// into the output and the banner lines its pages carry.
type Profile struct {
	Title        string   `yaml:"title"`
	Subtitle     string   `yaml:"subtitle"`
	SkipPrefixes []string `yaml:"skip_prefixes"`
}

// LoadProfile reads a YAML profile from disk.
func LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", filename, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", filename, err)
	}

	for i, prefix := range p.SkipPrefixes {
		if strings.TrimSpace(prefix) == "" {
			return nil, fmt.Errorf("profile %s: skip_prefixes[%d] is blank", filename, i)
		}
	}

	return &p, nil
}

// Apply overlays the non-empty profile fields onto cfg.
func (p *Profile) Apply(cfg *Config) {
	if p.Title != "" {
		cfg.Title = p.Title
	}
	if p.Subtitle != "" {
		cfg.Subtitle = p.Subtitle
	}
	if len(p.SkipPrefixes) > 0 {
		cfg.SkipPrefixes = append([]string(nil), p.SkipPrefixes...)
	}
}
