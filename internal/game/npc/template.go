// Package npc provides the bestiary: enemy templates a GM can drop into an encounter.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a reusable enemy stat block.
type Template struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
	HPMax       int    `yaml:"hp_max" json:"hp_max"`
	Stamina     int    `yaml:"stamina" json:"stamina"`
	Speed       int    `yaml:"speed" json:"speed"`
	Damage      int    `yaml:"damage" json:"damage"`
	Defense     int    `yaml:"defense" json:"defense"`
	CritBonus   int    `yaml:"crit_bonus" json:"crit_bonus"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, HPMax >= 1, and
// Stamina, Speed, Damage, Defense are >= 0; returns an error on the first
// violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.HPMax < 1 {
		return fmt.Errorf("enemy template %q: hp_max must be >= 1", t.ID)
	}
	for field, v := range map[string]int{
		"stamina": t.Stamina, "speed": t.Speed, "damage": t.Damage, "defense": t.Defense,
	} {
		if v < 0 {
			return fmt.Errorf("enemy template %q: %s must be >= 0", t.ID, field)
		}
	}
	return nil
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure, including a repeated id.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading bestiary dir %q: %w", dir, err)
	}

	var templates []*Template
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if seen[tmpl.ID] {
			return nil, fmt.Errorf("loading %q: duplicate template id %q", path, tmpl.ID)
		}
		seen[tmpl.ID] = true
		templates = append(templates, tmpl)
	}
	return templates, nil
}
