package generate

import (
	"go.uber.org/zap"

	"github.com/zyedidia/generic/mapset"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/rng"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// placeLevel places every room for one level: declared anchors first, in
// declared order, then filler rooms until the drawn count is reached or no
// admissible cell remains.
func (g *Generator) placeLevel(ctx *genContext, out *layout.Layout, archLevel *schema.LevelArchetype, levelDef *schema.LevelDefinition) layout.Level {
	lvl := layout.Level{
		Index:   archLevel.Index,
		Name:    archLevel.Name,
		Pattern: archLevel.Pattern,
	}
	if levelDef == nil {
		return lvl
	}

	occupied := mapset.New[schema.GridPos]()
	bounds := newBoundsTracker()
	origin := placementOrigin(archLevel, levelDef)

	for i := range levelDef.Anchors {
		anchor := &levelDef.Anchors[i]
		cell, ok := archLevel.AnchorPositions[anchor.Position]
		if !ok {
			cell = fallbackCell(occupied)
			g.logger.Warn("anchor position key not in archetype, substituting free cell",
				zap.String("room", anchor.RoomID),
				zap.String("position", anchor.Position),
				zap.Int("level", archLevel.Index),
			)
		}
		if occupied.Has(cell) {
			cell = fallbackCell(occupied)
			g.logger.Warn("anchor cell already occupied, substituting free cell",
				zap.String("room", anchor.RoomID),
				zap.String("position", anchor.Position),
				zap.Int("level", archLevel.Index),
			)
		}
		room := g.buildAnchorRoom(ctx, anchor, archLevel, cell)
		out.Rooms[room.ID] = room
		lvl.RoomIDs = append(lvl.RoomIDs, room.ID)
		occupied.Put(cell)
		bounds.add(room)
	}

	target := ctx.src.IntBetween(levelDef.Filler.Count.Min, levelDef.Filler.Count.Max)
	for placed := 0; placed < target; placed++ {
		candidates := fillerCandidates(archLevel, levelDef, origin, occupied)
		if len(candidates) == 0 {
			g.logger.Debug("no admissible filler cells remain",
				zap.Int("level", archLevel.Index),
				zap.Int("placed", placed),
				zap.Int("target", target),
			)
			break
		}
		cell := rng.Pick(ctx.src, candidates)
		room := g.buildFillerRoom(ctx, levelDef, archLevel, cell)
		out.Rooms[room.ID] = room
		lvl.RoomIDs = append(lvl.RoomIDs, room.ID)
		occupied.Put(cell)
		bounds.add(room)
	}

	lvl.Bounds = bounds.bounds()
	return lvl
}

// buildAnchorRoom generates the room for one anchor definition at cell.
func (g *Generator) buildAnchorRoom(ctx *genContext, anchor *schema.AnchorRoomDefinition, archLevel *schema.LevelArchetype, cell schema.GridPos) *layout.Room {
	tmpl := g.resolveTemplate(anchor.TemplateID)
	room := &layout.Room{
		ID:         anchor.RoomID,
		TemplateID: tmpl.ID,
		Purpose:    anchor.Purpose,
		Anchor:     true,
		Level:      archLevel.Index,
		GridPos:    cell,
		WorldPos:   worldPos(cell, archLevel.Elevation),
		Size:       drawSize(ctx.src, tmpl),
		StoryBeats: anchor.StoryBeats,
		QuestItems: anchor.QuestItems,
		Atmosphere: anchor.Atmosphere,
		Lock:       anchor.Lock,
	}
	room.Props = g.scatterProps(ctx, tmpl, room.Size)
	return room
}

// buildFillerRoom generates one procedural filler room at cell.
func (g *Generator) buildFillerRoom(ctx *genContext, levelDef *schema.LevelDefinition, archLevel *schema.LevelArchetype, cell schema.GridPos) *layout.Room {
	tmplID := schema.DefaultTemplateID
	if len(levelDef.Filler.TemplateIDs) > 0 {
		tmplID = rng.Pick(ctx.src, levelDef.Filler.TemplateIDs)
	}
	tmpl := g.resolveTemplate(tmplID)
	room := &layout.Room{
		ID:         ctx.nextFillerID(archLevel.Index),
		TemplateID: tmpl.ID,
		Purpose:    schema.PurposeFiller,
		Level:      archLevel.Index,
		GridPos:    cell,
		WorldPos:   worldPos(cell, archLevel.Elevation),
		Size:       drawSize(ctx.src, tmpl),
	}
	room.Props = g.scatterProps(ctx, tmpl, room.Size)
	return room
}

// resolveTemplate returns the template for id, falling back to the default
// template when the catalog does not contain it. The fallback is logged so
// authoring mistakes surface without failing generation.
func (g *Generator) resolveTemplate(id string) *schema.RoomTemplate {
	if id == "" {
		return g.catalog.Template(schema.DefaultTemplateID)
	}
	if !g.catalog.HasTemplate(id) && id != schema.DefaultTemplateID {
		g.logger.Warn("room template not in catalog, substituting default",
			zap.String("template", id),
		)
	}
	return g.catalog.Template(id)
}

// drawSize draws a room size from the template's dimension ranges. The draw
// order is fixed: width, then height, then ceiling.
func drawSize(src rng.Source, tmpl *schema.RoomTemplate) schema.Size {
	return schema.Size{
		Width:   drawFloat(src, tmpl.Width),
		Height:  drawFloat(src, tmpl.Height),
		Ceiling: drawFloat(src, tmpl.Ceiling),
	}
}

// drawFloat draws a uniform value from r.
func drawFloat(src rng.Source, r schema.FloatRange) float64 {
	return r.Min + src.Next()*(r.Max-r.Min)
}

// worldPos maps a grid cell to the world-space floor center of a room placed
// there.
func worldPos(cell schema.GridPos, elevation float64) schema.Vec3 {
	return schema.Vec3{
		X: float64(cell.X) * cellSize,
		Y: elevation,
		Z: float64(cell.Z) * cellSize,
	}
}

// fallbackCell returns the first free cell on the row Z=0, scanning east from
// the grid origin. Used when an anchor's position key cannot be resolved.
func fallbackCell(occupied mapset.Set[schema.GridPos]) schema.GridPos {
	cell := schema.GridPos{X: 0, Z: 0}
	for occupied.Has(cell) {
		cell.X++
	}
	return cell
}

// placementOrigin returns the cell pattern shapes are measured from: the
// first declared anchor's cell, or the first filler zone's minimum corner
// when the level has no resolvable anchors.
func placementOrigin(archLevel *schema.LevelArchetype, levelDef *schema.LevelDefinition) schema.GridPos {
	for i := range levelDef.Anchors {
		if cell, ok := archLevel.AnchorPositions[levelDef.Anchors[i].Position]; ok {
			return cell
		}
	}
	if len(archLevel.FillerZones) > 0 {
		z := archLevel.FillerZones[0]
		return schema.GridPos{X: z.MinX, Z: z.MinZ}
	}
	return schema.GridPos{}
}

// fillerCandidates returns every cell a filler room may be placed on, in a
// fixed scan order: each filler zone in declared order, row-major within the
// zone. Cells are admitted at most once even when zones overlap.
func fillerCandidates(archLevel *schema.LevelArchetype, levelDef *schema.LevelDefinition, origin schema.GridPos, occupied mapset.Set[schema.GridPos]) []schema.GridPos {
	var candidates []schema.GridPos
	seen := mapset.New[schema.GridPos]()
	for _, zone := range archLevel.FillerZones {
		for _, cell := range zone.Cells() {
			if seen.Has(cell) || occupied.Has(cell) {
				continue
			}
			seen.Put(cell)
			if !patternAdmits(archLevel, zone, origin, cell) {
				continue
			}
			if levelDef.Filler.MustConnectToAnchor && !adjacentToOccupied(cell, occupied) {
				continue
			}
			candidates = append(candidates, cell)
		}
	}
	return candidates
}

// patternAdmits reports whether the level's pattern allows a filler room at
// cell. Zones bound every pattern; the pattern adds a shape constraint on
// top:
//
//   - linear: cells on one axis through the origin. The axis follows the
//     zone's longer extent.
//   - hub: cells within grid distance 2 of the origin.
//   - l-shape: all cells except the quadrant north-east of the origin.
//   - grid: cells inside the archetype's grid window, when one is declared.
//   - branching, square, open: any zone cell.
func patternAdmits(archLevel *schema.LevelArchetype, zone schema.GridRect, origin, cell schema.GridPos) bool {
	switch archLevel.Pattern {
	case schema.PatternLinear:
		if zone.MaxX-zone.MinX >= zone.MaxZ-zone.MinZ {
			return cell.Z == origin.Z
		}
		return cell.X == origin.X
	case schema.PatternHub:
		return schema.ManhattanDistance(origin, cell) <= 2
	case schema.PatternLShape:
		return !(cell.X > origin.X && cell.Z > origin.Z)
	case schema.PatternGrid:
		if archLevel.Grid == nil {
			return true
		}
		return cell.X >= 0 && cell.X < archLevel.Grid.Cols &&
			cell.Z >= 0 && cell.Z < archLevel.Grid.Rows
	}
	return true
}

// adjacentToOccupied reports whether any cardinal neighbor of cell is
// occupied.
func adjacentToOccupied(cell schema.GridPos, occupied mapset.Set[schema.GridPos]) bool {
	for _, d := range layout.CardinalDirections {
		if occupied.Has(d.Offset(cell)) {
			return true
		}
	}
	return false
}

// boundsTracker accumulates the world-space bounding box of placed rooms.
type boundsTracker struct {
	set bool
	b   layout.Bounds
}

func newBoundsTracker() *boundsTracker {
	return &boundsTracker{}
}

// add grows the bounds to enclose the room's footprint and ceiling.
func (t *boundsTracker) add(room *layout.Room) {
	min := schema.Vec3{
		X: room.WorldPos.X - room.Size.Width/2,
		Y: room.WorldPos.Y,
		Z: room.WorldPos.Z - room.Size.Height/2,
	}
	max := schema.Vec3{
		X: room.WorldPos.X + room.Size.Width/2,
		Y: room.WorldPos.Y + room.Size.Ceiling,
		Z: room.WorldPos.Z + room.Size.Height/2,
	}
	if !t.set {
		t.b = layout.Bounds{Min: min, Max: max}
		t.set = true
		return
	}
	if min.X < t.b.Min.X {
		t.b.Min.X = min.X
	}
	if min.Y < t.b.Min.Y {
		t.b.Min.Y = min.Y
	}
	if min.Z < t.b.Min.Z {
		t.b.Min.Z = min.Z
	}
	if max.X > t.b.Max.X {
		t.b.Max.X = max.X
	}
	if max.Y > t.b.Max.Y {
		t.b.Max.Y = max.Y
	}
	if max.Z > t.b.Max.Z {
		t.b.Max.Z = max.Z
	}
}

func (t *boundsTracker) bounds() layout.Bounds {
	return t.b
}
