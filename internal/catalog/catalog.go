// Package catalog is the single authoritative list of practices. Every
// caller depends on it by reference; nothing else redefines exercise content.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

//go:embed practices.yaml
var defaultContent []byte

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	ID    domain.Category `yaml:"id" json:"id"`
	Label string          `yaml:"label" json:"label"`
	Icon  string          `yaml:"icon" json:"icon"`
}

type document struct {
	Categories []CategoryInfo    `yaml:"categories"`
	Practices  []domain.Practice `yaml:"practices"`
	Anchors    []string          `yaml:"anchors"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	categories []CategoryInfo
	practices  []domain.Practice
	byID       map[string]int
	anchors    []string
}

// Parse decodes a YAML catalog and validates every practice in it.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		categories: doc.Categories,
		practices:  doc.Practices,
		byID:       make(map[string]int, len(doc.Practices)),
		anchors:    doc.Anchors,
	}

	for i, p := range doc.Practices {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, &domain.ConfigurationError{PracticeID: p.ID, Reason: "duplicate id"}
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, loaded once per process. Broken
// embedded content is a build defect, so it panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultContent)
		if err != nil {
			panic(fmt.Sprintf("embedded practice catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// GetByID returns a copy of the practice with the given id.
func (c *Catalog) GetByID(id string) (domain.Practice, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Practice{}, fmt.Errorf("%w: %q", domain.ErrPracticeNotFound, id)
	}
	return c.practices[i], nil
}

// ListByCategory returns practices listed under category, in catalog order.
func (c *Catalog) ListByCategory(category domain.Category) []domain.Practice {
	var out []domain.Practice
	for _, p := range c.practices {
		if p.InCategory(category) {
			out = append(out, p)
		}
	}
	return out
}

// All returns every practice in catalog order.
func (c *Catalog) All() []domain.Practice {
	out := make([]domain.Practice, len(c.practices))
	copy(out, c.practices)
	return out
}

func (c *Catalog) Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(c.categories))
	copy(out, c.categories)
	return out
}

// Anchor picks a grounding phrase shown during the SOS exercise.
// A nil rnd uses the global source.
func (c *Catalog) Anchor(rnd *rand.Rand) string {
	if len(c.anchors) == 0 {
		return ""
	}
	if rnd == nil {
		return c.anchors[rand.IntN(len(c.anchors))]
	}
	return c.anchors[rnd.IntN(len(c.anchors))]
}
