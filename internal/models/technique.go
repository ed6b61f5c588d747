// internal/models/technique.go
package models

import (
	"fmt"
	"strings"
)

// Technique categories with a fixed position in a study roadmap.
const (
	CategoryExploratory   = "exploratory"
	CategoryStructural    = "structural"
	CategoryParticipatory = "participatory"
	CategoryValidation    = "validation"
)

// Tags the heuristic scorer looks at.
const (
	TagParticipatory = "participatory"
	TagWorkshop      = "workshop"
)

const (
	MinComplexity = 1
	MaxComplexity = 5
)

type TechniqueDescriptor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Complexity   int      `json:"complexity"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags,omitempty"`
	Objectives   []string `json:"objectives,omitempty"`
	Applications []string `json:"applications,omitempty"`
	TimeHorizon  string   `json:"timeHorizon,omitempty"`
	Participants string   `json:"participants,omitempty"`
}

// HasTag matches tags case-insensitively.
func (t TechniqueDescriptor) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if strings.EqualFold(tg, tag) {
			return true
		}
	}
	return false
}

// IsParticipatory is true for the participatory category or an explicit tag.
func (t TechniqueDescriptor) IsParticipatory() bool {
	return t.Category == CategoryParticipatory || t.HasTag(TagParticipatory)
}

// IsWorkshop is true when the technique is run as a facilitated workshop.
func (t TechniqueDescriptor) IsWorkshop() bool {
	return t.HasTag(TagWorkshop)
}

func (t TechniqueDescriptor) validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("technique id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("technique %s: name is required", t.ID)
	}
	if t.Complexity < MinComplexity || t.Complexity > MaxComplexity {
		return fmt.Errorf("technique %s: complexity %d outside %d-%d", t.ID, t.Complexity, MinComplexity, MaxComplexity)
	}
	return nil
}

// Catalog is the read-only set of techniques an analysis chooses from.
// It is built once and never mutated, so concurrent readers need no locking.
type Catalog struct {
	techniques []TechniqueDescriptor
	byID       map[string]int
}

// NewCatalog validates descriptors and keeps their order. Duplicate ids are
// rejected.
func NewCatalog(techniques []TechniqueDescriptor) (*Catalog, error) {
	c := &Catalog{
		techniques: make([]TechniqueDescriptor, 0, len(techniques)),
		byID:       make(map[string]int, len(techniques)),
	}
	for _, t := range techniques {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate technique id %q", t.ID)
		}
		t.Tags = append([]string(nil), t.Tags...)
		t.Objectives = append([]string(nil), t.Objectives...)
		t.Applications = append([]string(nil), t.Applications...)
		c.byID[t.ID] = len(c.techniques)
		c.techniques = append(c.techniques, t)
	}
	return c, nil
}

// Len is safe on a nil catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.techniques)
}

// All returns a copy of the techniques in catalog order.
func (c *Catalog) All() []TechniqueDescriptor {
	if c == nil {
		return nil
	}
	out := make([]TechniqueDescriptor, len(c.techniques))
	copy(out, c.techniques)
	return out
}

func (c *Catalog) Lookup(id string) (TechniqueDescriptor, bool) {
	if c == nil {
		return TechniqueDescriptor{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return TechniqueDescriptor{}, false
	}
	return c.techniques[i], true
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}
