package schema

import (
	"fmt"
)

// Catalog aggregates every loaded archetype, template, and stage definition
// into the lookup tables generation reads from. Build one with NewCatalog and
// treat it as immutable afterwards.
type Catalog struct {
	archetypes map[string]*LayoutArchetype
	templates  map[string]*RoomTemplate
	stages     map[string]*StageDefinition

	defaultTemplate *RoomTemplate
}

// NewCatalog indexes the given definitions by id. Duplicate ids within a kind
// are an error.
func NewCatalog(archetypes []*LayoutArchetype, templates []*RoomTemplate, stages []*StageDefinition) (*Catalog, error) {
	c := &Catalog{
		archetypes:      make(map[string]*LayoutArchetype, len(archetypes)),
		templates:       make(map[string]*RoomTemplate, len(templates)),
		stages:          make(map[string]*StageDefinition, len(stages)),
		defaultTemplate: DefaultTemplate(),
	}
	for _, a := range archetypes {
		if _, ok := c.archetypes[a.ID]; ok {
			return nil, fmt.Errorf("duplicate archetype id %q", a.ID)
		}
		c.archetypes[a.ID] = a
	}
	for _, t := range templates {
		if _, ok := c.templates[t.ID]; ok {
			return nil, fmt.Errorf("duplicate room template id %q", t.ID)
		}
		c.templates[t.ID] = t
	}
	for _, s := range stages {
		if _, ok := c.stages[s.ID]; ok {
			return nil, fmt.Errorf("duplicate stage id %q", s.ID)
		}
		c.stages[s.ID] = s
	}
	return c, nil
}

// Archetype returns the archetype with the given id, or nil if the catalog
// does not contain it.
func (c *Catalog) Archetype(id string) *LayoutArchetype {
	return c.archetypes[id]
}

// Template returns the room template with the given id. Unknown ids return
// the default template so generation can proceed with degraded content.
func (c *Catalog) Template(id string) *RoomTemplate {
	if t, ok := c.templates[id]; ok {
		return t
	}
	return c.defaultTemplate
}

// HasTemplate reports whether the catalog contains a template with the given
// id, without falling back to the default.
func (c *Catalog) HasTemplate(id string) bool {
	_, ok := c.templates[id]
	return ok
}

// Stage returns the stage definition with the given id, or nil if the catalog
// does not contain it.
func (c *Catalog) Stage(id string) *StageDefinition {
	return c.stages[id]
}

// StageIDs returns the ids of all stage definitions in the catalog, in
// unspecified order.
func (c *Catalog) StageIDs() []string {
	ids := make([]string, 0, len(c.stages))
	for id := range c.stages {
		ids = append(ids, id)
	}
	return ids
}

// ArchetypeCount returns the number of archetypes in the catalog.
func (c *Catalog) ArchetypeCount() int {
	return len(c.archetypes)
}

// TemplateCount returns the number of room templates in the catalog, not
// counting the built-in default.
func (c *Catalog) TemplateCount() int {
	return len(c.templates)
}

// StageCount returns the number of stage definitions in the catalog.
func (c *Catalog) StageCount() int {
	return len(c.stages)
}

// Validate cross-checks the catalog's references, returning an error
// describing the first violation found. Only references that generation
// cannot recover from are violations; unknown template ids and anchor
// position keys degrade softly at generation time instead.
func (c *Catalog) Validate() error {
	for id, s := range c.stages {
		a := c.Archetype(s.ArchetypeID)
		if a == nil {
			return fmt.Errorf("stage %q references unknown archetype %q", id, s.ArchetypeID)
		}
		for i := range s.Levels {
			if a.Level(s.Levels[i].Index) == nil {
				return fmt.Errorf("stage %q level %d: archetype %q has no such level",
					id, s.Levels[i].Index, a.ID)
			}
		}
	}
	return nil
}
