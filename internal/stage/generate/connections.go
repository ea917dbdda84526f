package generate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/zyedidia/generic/mapset"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// doorKeepChance is the probability a default-resolved door survives the
// downgrade roll. Failed rolls become archways.
const doorKeepChance = 0.3

// roomPair is an unordered pair of room ids.
type roomPair struct {
	a, b string
}

// makePair normalizes the pair so (x, y) and (y, x) collide.
func makePair(x, y string) roomPair {
	if x > y {
		x, y = y, x
	}
	return roomPair{a: x, b: y}
}

// declaredPairs collects the stage's explicitly requested connections and
// secret connections as normalized pairs.
func declaredPairs(def *schema.StageDefinition) (explicit, secret mapset.Set[roomPair]) {
	explicit = mapset.New[roomPair]()
	secret = mapset.New[roomPair]()
	for i := range def.Levels {
		for j := range def.Levels[i].Anchors {
			anchor := &def.Levels[i].Anchors[j]
			for _, other := range anchor.Connections {
				explicit.Put(makePair(anchor.RoomID, other))
			}
			for _, other := range anchor.SecretConnections {
				secret.Put(makePair(anchor.RoomID, other))
			}
		}
	}
	return explicit, secret
}

// synthesizeConnections walks the level's rooms in placement order, probing
// the four cardinal neighbors of each, and emits at most one connection per
// adjacent pair. Anchors connect only where the stage requested the pair;
// filler rooms connect to any neighbor, subject to the per-room cap.
func (g *Generator) synthesizeConnections(ctx *genContext, out *layout.Layout, lvl *layout.Level, arch *schema.LayoutArchetype, def *schema.StageDefinition, rules schema.ConnectionRules, explicit, secret mapset.Set[roomPair]) {
	cellIndex := make(map[schema.GridPos]string, len(lvl.RoomIDs))
	for _, id := range lvl.RoomIDs {
		cellIndex[out.Rooms[id].GridPos] = id
	}

	probed := mapset.New[roomPair]()
	degree := make(map[string]int, len(lvl.RoomIDs))

	for _, id := range lvl.RoomIDs {
		room := out.Rooms[id]
		for _, dir := range layout.CardinalDirections {
			neighborID, ok := cellIndex[dir.Offset(room.GridPos)]
			if !ok {
				continue
			}
			pair := makePair(id, neighborID)
			if probed.Has(pair) {
				continue
			}
			probed.Put(pair)

			neighbor := out.Rooms[neighborID]
			requested := explicit.Has(pair) || secret.Has(pair)
			if !requested && room.Anchor && neighbor.Anchor {
				continue
			}
			if !requested && capReached(rules, degree, id, neighborID) {
				continue
			}

			conn := layout.Connection{
				From:      id,
				To:        neighborID,
				Direction: dir,
				Position:  wallMidpoint(dir, room.Size),
			}
			conn.Type, conn.Hidden = g.resolveConnector(ctx, arch, def, rules, room, neighbor, secret.Has(pair))
			out.Connections = append(out.Connections, conn)
			degree[id]++
			degree[neighborID]++
			room.ConnectedRooms = append(room.ConnectedRooms, neighborID)
			neighbor.ConnectedRooms = append(neighbor.ConnectedRooms, id)
		}
	}
}

// capReached reports whether the per-room connection cap blocks an implicit
// connection between the two rooms. A room's first connection is never
// blocked, so capped rooms still join the level instead of ending up
// isolated.
func capReached(rules schema.ConnectionRules, degree map[string]int, a, b string) bool {
	if rules.MaxDoorsPerRoom <= 0 {
		return false
	}
	if degree[a] == 0 || degree[b] == 0 {
		return false
	}
	return degree[a] >= rules.MaxDoorsPerRoom || degree[b] >= rules.MaxDoorsPerRoom
}

// resolveConnector picks the connector type for a connection between two
// rooms. Overrides are consulted in a fixed order: secret, hallway, building
// entry, then the rule default. Only a default-resolved door is subject to
// the archway downgrade roll.
func (g *Generator) resolveConnector(ctx *genContext, arch *schema.LayoutArchetype, def *schema.StageDefinition, rules schema.ConnectionRules, room, neighbor *layout.Room, isSecret bool) (schema.ConnectorType, bool) {
	if isSecret {
		if rules.SecretType != "" {
			return rules.SecretType, true
		}
		return g.overrideOrDefault(ctx, arch, def, rules, room, neighbor, false), true
	}
	return g.overrideOrDefault(ctx, arch, def, rules, room, neighbor, true), false
}

// overrideOrDefault resolves the non-secret part of the connector chain.
// The downgrade roll runs only when allowDowngrade is set and resolution
// lands on the default door.
func (g *Generator) overrideOrDefault(ctx *genContext, arch *schema.LayoutArchetype, def *schema.StageDefinition, rules schema.ConnectionRules, room, neighbor *layout.Room, allowDowngrade bool) schema.ConnectorType {
	if room.Purpose == schema.PurposeConnector || neighbor.Purpose == schema.PurposeConnector {
		if arch.Connections.HallwayType != "" {
			return arch.Connections.HallwayType
		}
		if def.Connections != nil && def.Connections.HallwayType != "" {
			return def.Connections.HallwayType
		}
	}
	if arch.Environment != schema.EnvironmentInterior && rules.BuildingEntryType != "" {
		if room.ID == def.EntryRoomID || neighbor.ID == def.EntryRoomID {
			return rules.BuildingEntryType
		}
	}
	resolved := rules.DefaultType
	if resolved == "" {
		resolved = schema.ConnectorDoor
	}
	if allowDowngrade && resolved == schema.ConnectorDoor && ctx.src.Next() >= doorKeepChance {
		resolved = schema.ConnectorArchway
	}
	return resolved
}

// wallMidpoint returns the connector position on the given side of a room,
// relative to the room's floor center.
func wallMidpoint(dir layout.Direction, size schema.Size) schema.Vec3 {
	switch dir {
	case layout.North:
		return schema.Vec3{Z: size.Height / 2}
	case layout.South:
		return schema.Vec3{Z: -size.Height / 2}
	case layout.East:
		return schema.Vec3{X: size.Width / 2}
	default:
		return schema.Vec3{X: -size.Width / 2}
	}
}

// copyVerticalConnections carries the stage's declared vertical connections
// into the layout. Verticals are never synthesized; a definition that cannot
// be resolved is logged and skipped rather than guessed at.
func (g *Generator) copyVerticalConnections(ctx *genContext, out *layout.Layout, arch *schema.LayoutArchetype, def *schema.StageDefinition) {
	levels := make([]*schema.LevelDefinition, 0, len(def.Levels))
	for i := range def.Levels {
		levels = append(levels, &def.Levels[i])
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Index < levels[j].Index })

	for _, levelDef := range levels {
		for i := range levelDef.Vertical {
			v := &levelDef.Vertical[i]
			upper := out.Room(v.UpperRoom)
			lower := out.Room(v.LowerRoom)
			if upper == nil || lower == nil {
				g.logger.Warn("vertical connection references unknown room, skipping",
					zap.String("stage", def.ID),
					zap.String("upper", v.UpperRoom),
					zap.String("lower", v.LowerRoom),
				)
				continue
			}
			delta := v.LevelDelta
			if delta == 0 {
				delta = 1
			}
			if upper.Level-lower.Level != delta {
				g.logger.Warn("vertical connection spans wrong level delta, skipping",
					zap.String("stage", def.ID),
					zap.String("upper", v.UpperRoom),
					zap.String("lower", v.LowerRoom),
					zap.Int("declared_delta", delta),
					zap.Int("actual_delta", upper.Level-lower.Level),
				)
				continue
			}

			upperArch := arch.Level(upper.Level)
			lowerArch := arch.Level(lower.Level)
			var slot *schema.VerticalSlot
			if v.Slot != "" && upperArch != nil {
				slot = upperArch.Slot(v.Slot)
			}
			mech := v.Mechanism
			if mech == "" {
				if slot == nil {
					g.logger.Warn("vertical connection has no mechanism and no resolvable slot, skipping",
						zap.String("stage", def.ID),
						zap.String("slot", v.Slot),
						zap.String("upper", v.UpperRoom),
					)
					continue
				}
				mech = slot.Mechanism
			}

			pos := upper.WorldPos
			if slot != nil && upperArch != nil {
				pos = worldPos(slot.Position, upperArch.Elevation)
			}
			var heightDelta float64
			if upperArch != nil && lowerArch != nil {
				heightDelta = upperArch.Elevation - lowerArch.Elevation
			}

			id := v.ID
			if id == "" {
				id = ctx.nextVerticalID()
			}
			out.VerticalConnections = append(out.VerticalConnections, layout.VerticalConnection{
				ID:          id,
				UpperRoom:   upper.ID,
				LowerRoom:   lower.ID,
				UpperLevel:  upper.Level,
				LowerLevel:  lower.Level,
				Mechanism:   mech,
				Position:    pos,
				HeightDelta: heightDelta,
				Lock:        v.Lock,
			})
			upper.ConnectedRooms = append(upper.ConnectedRooms, lower.ID)
			lower.ConnectedRooms = append(lower.ConnectedRooms, upper.ID)
		}
	}
}
