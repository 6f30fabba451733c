package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stats a skill modifier may target.
const (
	StatDamage         = "damage"
	StatDefense        = "defense"
	StatSpeed          = "speed"
	StatMaxLoad        = "max_load"
	StatHPMax          = "hp_max"
	StatStamina        = "stamina"
	StatCriticalDamage = "critical_damage"
)

var knownStats = map[string]bool{
	StatDamage: true, StatDefense: true, StatSpeed: true, StatMaxLoad: true,
	StatHPMax: true, StatStamina: true, StatCriticalDamage: true,
}

// ConditionAlways applies a modifier unconditionally. An empty condition means the same.
const ConditionAlways = "always"

// conditionEquipPrefix applies a modifier only while an item of the named type is equipped.
const conditionEquipPrefix = "equip:"

// GenericTiers is the tier count of the generic skill tree.
const GenericTiers = 10

// Modifier is a conditional stat adjustment granted by a skill choice.
type Modifier struct {
	Stat      string `yaml:"stat" json:"stat"`
	Value     int    `yaml:"value" json:"value"`
	Condition string `yaml:"condition" json:"condition"`
}

// EquipType returns the item type named by an "equip:<type>" condition.
//
// Postcondition: ok is false for "always", empty, and malformed conditions.
func (m Modifier) EquipType() (string, bool) {
	if !strings.HasPrefix(m.Condition, conditionEquipPrefix) {
		return "", false
	}
	t := strings.TrimPrefix(m.Condition, conditionEquipPrefix)
	return t, t != ""
}

// Unconditional reports whether the modifier always applies.
func (m Modifier) Unconditional() bool {
	return m.Condition == "" || m.Condition == ConditionAlways
}

// Choice is one option at a tier.
type Choice struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Modifiers   []Modifier `yaml:"modifiers" json:"modifiers,omitempty"`
}

// Tier is one level of a skill tree.
type Tier struct {
	Tier                 int      `yaml:"tier" json:"tier"`
	RequiredAttributeVal int      `yaml:"required_attribute_val" json:"required_attribute_val"`
	Choices              []Choice `yaml:"choices" json:"choices"`
}

// SkillTree is the YAML document describing one skill's progression.
type SkillTree struct {
	Skill string `yaml:"skill"`
	Tiers []Tier `yaml:"tiers"`
}

// Validate checks the tree's invariants and fills in default tier requirements.
//
// Postcondition: on nil return, tiers are sorted ascending, unique, >= 1, each
// has at least one choice, every RequiredAttributeVal is set, and every
// modifier targets a known stat with a well-formed condition.
func (s *SkillTree) Validate() error {
	if _, ok := AttributeOf(s.Skill); !ok {
		return fmt.Errorf("skill tree: unknown skill %q", s.Skill)
	}
	seen := make(map[int]bool, len(s.Tiers))
	for i := range s.Tiers {
		t := &s.Tiers[i]
		if t.Tier < 1 {
			return fmt.Errorf("skill tree %q: tier must be >= 1, got %d", s.Skill, t.Tier)
		}
		if seen[t.Tier] {
			return fmt.Errorf("skill tree %q: duplicate tier %d", s.Skill, t.Tier)
		}
		seen[t.Tier] = true
		if len(t.Choices) == 0 {
			return fmt.Errorf("skill tree %q: tier %d has no choices", s.Skill, t.Tier)
		}
		if t.RequiredAttributeVal == 0 {
			t.RequiredAttributeVal = TierRequirement(t.Tier)
		}
		for _, c := range t.Choices {
			for _, m := range c.Modifiers {
				if !knownStats[m.Stat] {
					return fmt.Errorf("skill tree %q: tier %d choice %q: unknown stat %q", s.Skill, t.Tier, c.ID, m.Stat)
				}
				if _, ok := m.EquipType(); !m.Unconditional() && !ok {
					return fmt.Errorf("skill tree %q: tier %d choice %q: bad condition %q", s.Skill, t.Tier, c.ID, m.Condition)
				}
			}
		}
	}
	sort.Slice(s.Tiers, func(i, j int) bool { return s.Tiers[i].Tier < s.Tiers[j].Tier })
	return nil
}

// GenericTree builds the placeholder tree used by every skill without a
// dedicated definition: tiers 1-9 offer two techniques, tier 10 offers three.
//
// Postcondition: len(result) == GenericTiers; no choice carries modifiers.
func GenericTree() []Tier {
	tiers := make([]Tier, 0, GenericTiers)
	for i := 1; i <= GenericTiers; i++ {
		n := 2
		if i == GenericTiers {
			n = 3
		}
		choices := make([]Choice, 0, n)
		for c := 1; c <= n; c++ {
			choices = append(choices, Choice{
				ID:          fmt.Sprintf("choice_%d", c),
				Name:        fmt.Sprintf("Technique %c", 'A'+c-1),
				Description: "Effect placeholder.",
			})
		}
		tiers = append(tiers, Tier{Tier: i, RequiredAttributeVal: TierRequirement(i), Choices: choices})
	}
	return tiers
}

// Catalog is the read-only skill tree lookup. The zero value serves the
// generic tree for every known skill.
type Catalog struct {
	trees map[string][]Tier
}

// NewCatalog builds a Catalog from validated trees.
//
// Precondition: every tree must have passed Validate.
func NewCatalog(trees ...*SkillTree) *Catalog {
	c := &Catalog{trees: make(map[string][]Tier, len(trees))}
	for _, t := range trees {
		c.trees[t.Skill] = t.Tiers
	}
	return c
}

// Len reports how many skills have a dedicated tree.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.trees)
}

// SkillTree returns the tiers of skill: the dedicated tree when one is
// loaded, the generic tree for other known skills, and nil for unknown names.
func (c *Catalog) SkillTree(skill string) []Tier {
	if c != nil {
		if tiers, ok := c.trees[skill]; ok {
			return tiers
		}
	}
	if _, ok := AttributeOf(skill); ok {
		return GenericTree()
	}
	return nil
}

// Choice returns the choice at (skill, tier, index).
//
// Postcondition: ok is false when any coordinate does not exist.
func (c *Catalog) Choice(skill string, tier, index int) (Choice, bool) {
	for _, t := range c.SkillTree(skill) {
		if t.Tier != tier {
			continue
		}
		if index < 0 || index >= len(t.Choices) {
			return Choice{}, false
		}
		return t.Choices[index], true
	}
	return Choice{}, false
}

// LoadSkillTrees reads all *.yaml files in dir as SkillTree documents.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns validated trees or an error naming the first bad file.
func LoadSkillTrees(dir string) ([]*SkillTree, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	trees := make([]*SkillTree, 0, len(files))
	seen := make(map[string]string)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var t SkillTree
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing skill tree file %s: %w", path, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := seen[t.Skill]; dup {
			return nil, fmt.Errorf("%s: skill %q already defined in %s", path, t.Skill, prev)
		}
		seen[t.Skill] = path
		trees = append(trees, &t)
	}
	return trees, nil
}

// LoadCatalog loads dir into a Catalog. An empty dir yields the generic-only catalog.
func LoadCatalog(dir string) (*Catalog, error) {
	if dir == "" {
		return NewCatalog(), nil
	}
	trees, err := LoadSkillTrees(dir)
	if err != nil {
		return nil, err
	}
	return NewCatalog(trees...), nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
