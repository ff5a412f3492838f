// Package feeds turns open-data GeoJSON feeds into sensor registration
// records. Every feed is described by a Definition in an embedded YAML
// catalog and parsed by the same engine.
package feeds

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
)

//go:embed feeds.yaml
var catalogYAML []byte

var ErrUnknownFeed = errors.New("unknown feed")

type Owner struct {
	Organisation string `yaml:"organisation"`
	Email        string `yaml:"email"`
	Telephone    string `yaml:"telephone"`
	Website      string `yaml:"website"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
}

// Filter accepts features whose Property is one of Values. An empty
// filter accepts every feature.
type Filter struct {
	Property string   `yaml:"property"`
	Values   []string `yaml:"values"`
}

// Reference tells where a feature's reference comes from. With
// PrefixFeatureID the reference is the feed name followed by the feature id.
type Reference struct {
	Property        string `yaml:"property"`
	PrefixFeatureID bool   `yaml:"prefix_feature_id"`
}

// Goal describes the observation goals of a feed's sensors. TextsProperty
// names a list property holding one goal text per element.
type Goal struct {
	Text               string `yaml:"text"`
	TextsProperty      string `yaml:"texts_property"`
	LegalGround        string `yaml:"legal_ground"`
	PrivacyDeclaration string `yaml:"privacy_declaration"`
	PrivacyProperty    string `yaml:"privacy_property"`
}

type Definition struct {
	Name               string    `yaml:"name"`
	URL                string    `yaml:"url"`
	Owner              Owner     `yaml:"owner"`
	Filter             Filter    `yaml:"filter"`
	Reference          Reference `yaml:"reference"`
	SkipWithoutPrivacy bool      `yaml:"skip_without_privacy_declaration"`
	Type               string    `yaml:"type"`
	Themes             string    `yaml:"themes"`
	ContainsPiData     string    `yaml:"contains_pi_data"`
	ActiveUntil        string    `yaml:"active_until"`
	Goal               Goal      `yaml:"goal"`
}

// Catalog is the set of known feeds.
type Catalog struct {
	Defaults Definition   `yaml:"defaults"`
	Feeds    []Definition `yaml:"feeds"`
}

// Load parses a catalog and applies its defaults to every feed.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse feed catalog: %w", err)
	}
	seen := map[string]bool{}
	for i, f := range c.Feeds {
		if f.Name == "" {
			return nil, fmt.Errorf("feed %d has no name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("feed %q defined twice", f.Name)
		}
		if f.Reference.Property == "" && !f.Reference.PrefixFeatureID {
			return nil, fmt.Errorf("feed %q has no reference", f.Name)
		}
		seen[f.Name] = true
		c.Feeds[i] = withDefaults(f, c.Defaults)
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(catalogYAML)
}

func (c *Catalog) Lookup(name string) (Definition, error) {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s", ErrUnknownFeed, name)
}

// Names lists the feeds in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		names = append(names, f.Name)
	}
	return names
}

func (c *Catalog) Has(name string) bool {
	return slices.Contains(c.Names(), name)
}

func withDefaults(f, d Definition) Definition {
	or := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	or(&f.Owner.Organisation, d.Owner.Organisation)
	or(&f.Owner.Email, d.Owner.Email)
	or(&f.Owner.Telephone, d.Owner.Telephone)
	or(&f.Owner.Website, d.Owner.Website)
	or(&f.Owner.FirstName, d.Owner.FirstName)
	or(&f.Owner.LastName, d.Owner.LastName)
	or(&f.Type, d.Type)
	or(&f.Themes, d.Themes)
	or(&f.ContainsPiData, d.ContainsPiData)
	or(&f.ActiveUntil, d.ActiveUntil)
	return f
}
