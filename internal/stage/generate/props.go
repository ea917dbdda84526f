package generate

import (
	"math"

	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/rng"
	"github.com/emberline/stagegen/internal/stage/schema"
)

const (
	// wallInset keeps wall-zone props off the wall plane, in meters.
	wallInset = 0.3
	// cornerInset keeps corner-zone props off the corner point, in meters.
	cornerInset = 0.5
	// centerSpread scales the jitter of center-zone props as a fraction of
	// the room's half extent.
	centerSpread = 0.2
)

// scatterProps runs every prop rule of the template against a room of the
// given size. Positions are relative to the room's floor center.
func (g *Generator) scatterProps(ctx *genContext, tmpl *schema.RoomTemplate, size schema.Size) []layout.GeneratedProp {
	var props []layout.GeneratedProp
	for i := range tmpl.PropRules {
		rule := &tmpl.PropRules[i]
		if len(rule.PropTypes) == 0 {
			g.logger.Debug("prop rule lists no prop types, skipping",
				zap.String("template", tmpl.ID),
				zap.Int("rule", i),
			)
			continue
		}
		count := ctx.src.IntBetween(rule.Count.Min, rule.Count.Max)
		for n := 0; n < count; n++ {
			pos := propPosition(ctx.src, rule.Zone, size)
			props = append(props, layout.GeneratedProp{
				ID:       ctx.nextPropID(),
				Type:     rng.Pick(ctx.src, rule.PropTypes),
				Position: pos,
				Rotation: propRotation(ctx.src, rule.Facing, pos, size),
				Required: rule.Required,
			})
		}
	}
	return props
}

// propPosition draws a floor position inside the rule's zone. X spans the
// room width, Z the room height, Y stays on the floor.
func propPosition(src rng.Source, zone schema.PropZone, size schema.Size) schema.Vec3 {
	halfW := size.Width / 2
	halfH := size.Height / 2
	switch zone {
	case schema.PropZoneCenter:
		return schema.Vec3{
			X: spread(src, halfW*centerSpread),
			Z: spread(src, halfH*centerSpread),
		}
	case schema.PropZoneWall:
		insetW := math.Max(halfW-wallInset, 0)
		insetH := math.Max(halfH-wallInset, 0)
		switch rng.Pick(src, layout.CardinalDirections) {
		case layout.North:
			return schema.Vec3{X: spread(src, insetW), Z: insetH}
		case layout.South:
			return schema.Vec3{X: spread(src, insetW), Z: -insetH}
		case layout.East:
			return schema.Vec3{X: insetW, Z: spread(src, insetH)}
		default:
			return schema.Vec3{X: -insetW, Z: spread(src, insetH)}
		}
	case schema.PropZoneCorner:
		c := rng.Pick(src, cornerSigns)
		return schema.Vec3{
			X: c.x * math.Max(halfW-cornerInset, 0),
			Z: c.z * math.Max(halfH-cornerInset, 0),
		}
	default:
		return schema.Vec3{
			X: spread(src, halfW),
			Z: spread(src, halfH),
		}
	}
}

// cornerSigns enumerates the four room corners in a fixed pick order.
var cornerSigns = []struct{ x, z float64 }{
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// spread draws a uniform value in [-extent, extent].
func spread(src rng.Source, extent float64) float64 {
	return (src.Next()*2 - 1) * extent
}

// propRotation computes a prop's yaw in degrees, clockwise from +Z.
func propRotation(src rng.Source, facing schema.FacingMode, pos schema.Vec3, size schema.Size) float64 {
	switch facing {
	case schema.FacingNearestWall:
		return nearestWallYaw(pos, size)
	case schema.FacingRoomCenter:
		yaw := math.Atan2(-pos.X, -pos.Z) * 180 / math.Pi
		if yaw < 0 {
			yaw += 360
		}
		return yaw
	default:
		return src.Next() * 360
	}
}

// nearestWallYaw returns the yaw facing the wall closest to pos. Ties go to
// the first wall in north, east, south, west order.
func nearestWallYaw(pos schema.Vec3, size schema.Size) float64 {
	halfW := size.Width / 2
	halfH := size.Height / 2
	dists := []struct {
		d   float64
		yaw float64
	}{
		{halfH - pos.Z, 0},   // north
		{halfW - pos.X, 90},  // east
		{halfH + pos.Z, 180}, // south
		{halfW + pos.X, 270}, // west
	}
	best := dists[0]
	for _, w := range dists[1:] {
		if w.d < best.d {
			best = w
		}
	}
	return best.yaw
}
