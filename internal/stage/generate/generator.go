// Package generate turns stage layout definitions into positioned, connected,
// prop-dressed stage layouts. Generation is deterministic: the same catalog,
// stage id, and seed string always produce the same layout.
package generate

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/rng"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// cellSize is the world-space spacing between adjacent grid cells, in meters.
const cellSize = 10.0

// Generator produces stage layouts from the definitions in a catalog.
// Safe for concurrent use; each Generate call owns its own random source.
type Generator struct {
	catalog    *schema.Catalog
	logger     *zap.Logger
	traceDraws bool
}

// An Option adjusts how a Generator works.
type Option func(*Generator)

// WithDrawTracing logs every random draw at debug level during generation.
// Draws pass through unchanged, so traced and untraced generations of the
// same stage and seed produce identical layouts.
func WithDrawTracing() Option {
	return func(g *Generator) { g.traceDraws = true }
}

// NewGenerator creates a Generator reading from catalog and logging to
// logger.
//
// Precondition: catalog and logger must be non-nil.
func NewGenerator(catalog *schema.Catalog, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{catalog: catalog, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateByID looks up the stage definition with the given id and generates
// a layout from it.
func (g *Generator) GenerateByID(stageID, seed string) (*layout.Layout, error) {
	def := g.catalog.Stage(stageID)
	if def == nil {
		return nil, fmt.Errorf("unknown stage %q", stageID)
	}
	return g.Generate(def, seed)
}

// Generate produces the layout for a stage definition and seed string.
//
// Generation degrades softly on authoring mistakes: unknown template ids fall
// back to the default template, unknown anchor position keys fall back to a
// free cell, and unfillable levels simply end up with fewer rooms. The only
// hard failure is a stage whose archetype the catalog does not contain.
//
// Postcondition: the returned layout has every declared anchor room, and the
// same inputs always return an identical layout.
func (g *Generator) Generate(def *schema.StageDefinition, seed string) (*layout.Layout, error) {
	arch := g.catalog.Archetype(def.ArchetypeID)
	if arch == nil {
		return nil, fmt.Errorf("stage %q references unknown archetype %q", def.ID, def.ArchetypeID)
	}

	src := rng.New(rng.StageSeed(def.ID, seed))
	if g.traceDraws {
		src = rng.NewLoggedSource(src, g.logger.With(
			zap.String("stage", def.ID),
			zap.String("seed", seed),
		))
	}
	ctx := newGenContext(src)
	out := &layout.Layout{
		ID:          layout.NewLayoutID(def.ID, seed),
		StageID:     def.ID,
		Seed:        seed,
		Rooms:       make(map[string]*layout.Room),
		EntryRoomID: def.EntryRoomID,
		ExitRoomID:  def.ExitRoomID,
	}

	for _, archLevel := range sortedLevels(arch) {
		lvl := g.placeLevel(ctx, out, archLevel, def.Level(archLevel.Index))
		out.Levels = append(out.Levels, lvl)
	}

	rules := effectiveRules(arch, def)
	explicit, secret := declaredPairs(def)
	for i := range out.Levels {
		g.synthesizeConnections(ctx, out, &out.Levels[i], arch, def, rules, explicit, secret)
	}
	g.copyVerticalConnections(ctx, out, arch, def)

	g.logger.Debug("generated stage layout",
		zap.String("stage", def.ID),
		zap.String("seed", seed),
		zap.Int("rooms", out.RoomCount()),
		zap.Int("connections", len(out.Connections)),
		zap.Int("vertical_connections", len(out.VerticalConnections)),
	)
	return out, nil
}

// sortedLevels returns the archetype's levels ordered by ascending index.
func sortedLevels(arch *schema.LayoutArchetype) []*schema.LevelArchetype {
	levels := make([]*schema.LevelArchetype, 0, len(arch.Levels))
	for i := range arch.Levels {
		levels = append(levels, &arch.Levels[i])
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Index < levels[j].Index })
	return levels
}

// effectiveRules merges the stage's connection rule overrides over the
// archetype's. Overridden fields replace the archetype's wholesale; the
// hallway type is the exception, consulted archetype-first during
// resolution.
func effectiveRules(arch *schema.LayoutArchetype, def *schema.StageDefinition) schema.ConnectionRules {
	rules := arch.Connections
	if def.Connections == nil {
		return rules
	}
	o := def.Connections
	if o.DefaultType != "" {
		rules.DefaultType = o.DefaultType
	}
	if o.BuildingEntryType != "" {
		rules.BuildingEntryType = o.BuildingEntryType
	}
	if o.SecretType != "" {
		rules.SecretType = o.SecretType
	}
	if o.MaxDoorsPerRoom != 0 {
		rules.MaxDoorsPerRoom = o.MaxDoorsPerRoom
	}
	return rules
}
