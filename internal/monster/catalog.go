package monster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"monstercollector/internal/dice"

	"gopkg.in/yaml.v3"
)

// ErrSpeciesNotFound is returned when a species key is not in the catalog.
var ErrSpeciesNotFound = errors.New("species not found")

// MoveDefinition is one learnset entry as written in the catalog YAML.
type MoveDefinition struct {
	Name     string   `yaml:"name"`
	Power    *int     `yaml:"power"`
	Accuracy *float64 `yaml:"accuracy"`
	Kind     string   `yaml:"kind,omitempty"`
}

// SpeciesDefinition holds one species entry from YAML. Battle-relevant
// numbers are pointers so a missing field can be told apart from zero.
type SpeciesDefinition struct {
	Name                  string                 `yaml:"name"`
	Element               string                 `yaml:"element"`
	BaseHP                *int                   `yaml:"base_hp"`
	BaseAtk               *int                   `yaml:"base_atk"`
	BaseDef               *int                   `yaml:"base_def"`
	BaseSpd               *int                   `yaml:"base_spd"`
	CatchRate             *int                   `yaml:"catch_rate"`
	Icon                  string                 `yaml:"icon,omitempty"`
	Learnset              []MoveDefinition       `yaml:"learnset"`
	EvolvesTo             string                 `yaml:"evolves_to,omitempty"`
	EvolutionLevel        *int                   `yaml:"evolution_level,omitempty"`
	EvolutionRequirements map[string]interface{} `yaml:"evolution_requirements,omitempty"`
}

// CatalogDocument is the on-disk layout of the species catalog.
type CatalogDocument struct {
	Monsters map[string]SpeciesDefinition `yaml:"monsters"`
}

// Catalog is the read-only species table.
type Catalog struct {
	species map[string]*Species
	keys    []string
}

// LoadCatalog loads and validates the species catalog from a YAML file
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster catalog: %w", err)
	}
	return ParseCatalog(data)
}

// MustLoadCatalog loads the catalog and panics on error
func MustLoadCatalog(filename string) *Catalog {
	catalog, err := LoadCatalog(filename)
	if err != nil {
		panic("Failed to load monster catalog: " + err.Error())
	}
	return catalog
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse monster catalog YAML: %w", err)
	}
	return NewCatalog(doc)
}

// EnsureDefaultCatalog writes the default species set to filename when the
// file does not exist yet. It reports whether a file was created.
func EnsureDefaultCatalog(filename string) (bool, error) {
	if _, err := os.Stat(filename); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat monster catalog: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	data, err := yaml.Marshal(DefaultCatalogDocument())
	if err != nil {
		return false, fmt.Errorf("failed to encode default catalog: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write default catalog: %w", err)
	}
	return true, nil
}

// NewCatalog validates a document and builds the species table. Every
// problem is reported; no battle-relevant field is defaulted.
func NewCatalog(doc CatalogDocument) (*Catalog, error) {
	if len(doc.Monsters) == 0 {
		return nil, errors.New("monster catalog is empty")
	}

	var problems []string
	report := func(key, format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("%s: %s", key, fmt.Sprintf(format, args...)))
	}

	c := &Catalog{species: make(map[string]*Species, len(doc.Monsters))}
	for key, def := range doc.Monsters {
		if def.Name == "" {
			report(key, "missing name")
		}
		element := Element(def.Element)
		if !element.Valid() {
			report(key, "unknown element %q", def.Element)
		}
		stats := map[string]*int{
			"base_hp":  def.BaseHP,
			"base_atk": def.BaseAtk,
			"base_def": def.BaseDef,
			"base_spd": def.BaseSpd,
		}
		for _, field := range []string{"base_hp", "base_atk", "base_def", "base_spd"} {
			if stats[field] == nil {
				report(key, "missing %s", field)
			}
		}
		if def.CatchRate == nil {
			report(key, "missing catch_rate")
		} else if *def.CatchRate < 0 || *def.CatchRate > 255 {
			report(key, "catch_rate %d outside [0,255]", *def.CatchRate)
		}
		if def.EvolutionLevel != nil && *def.EvolutionLevel < 1 {
			report(key, "evolution_level must be at least 1")
		}
		if def.EvolvesTo != "" {
			if _, ok := doc.Monsters[def.EvolvesTo]; !ok {
				report(key, "evolves_to %q is not in the catalog", def.EvolvesTo)
			}
		}

		learnset := make([]Move, 0, len(def.Learnset))
		for i, md := range def.Learnset {
			switch {
			case md.Name == "":
				report(key, "learnset[%d] missing name", i)
				continue
			case md.Power == nil:
				report(key, "move %q missing power", md.Name)
				continue
			case md.Accuracy == nil:
				report(key, "move %q missing accuracy", md.Name)
				continue
			}
			if *md.Power < 0 {
				report(key, "move %q has negative power", md.Name)
			}
			if *md.Accuracy < 0 || *md.Accuracy > 1 {
				report(key, "move %q accuracy %.2f outside [0,1]", md.Name, *md.Accuracy)
			}
			kind := md.Kind
			if kind == "" {
				kind = MoveKindPhysical
			}
			learnset = append(learnset, Move{Name: md.Name, Power: *md.Power, Accuracy: *md.Accuracy, Kind: kind})
		}

		if len(problems) > 0 {
			continue
		}
		sp := &Species{
			Key:                   key,
			Name:                  def.Name,
			Element:               element,
			BaseHP:                *def.BaseHP,
			BaseAttack:            *def.BaseAtk,
			BaseDefense:           *def.BaseDef,
			BaseSpeed:             *def.BaseSpd,
			CatchRate:             *def.CatchRate,
			Icon:                  def.Icon,
			Learnset:              learnset,
			EvolvesTo:             def.EvolvesTo,
			EvolutionRequirements: def.EvolutionRequirements,
		}
		if def.EvolutionLevel != nil {
			sp.EvolutionLevel = *def.EvolutionLevel
		}
		c.species[key] = sp
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("monster catalog is invalid:\n%s", strings.Join(problems, "\n"))
	}

	c.keys = make([]string, 0, len(c.species))
	for key := range c.species {
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)
	return c, nil
}

// Get returns the species for a key.
func (c *Catalog) Get(key string) (*Species, error) {
	sp, ok := c.species[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSpeciesNotFound, key)
	}
	return sp, nil
}

// Keys returns all species keys in sorted order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// All returns every species sorted by key, for catalog browsing.
func (c *Catalog) All() []*Species {
	out := make([]*Species, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.species[key])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.keys)
}

// Random picks a species uniformly.
func (c *Catalog) Random(src dice.Source) *Species {
	return c.species[c.keys[src.Intn(len(c.keys))]]
}
