// Package layout defines the generated stage layout artifact: positioned
// rooms, their props, and the connections between them.
package layout

import (
	"github.com/emberline/stagegen/internal/stage/schema"
)

// Direction identifies one of the four cardinal directions on a level grid.
type Direction string

// Cardinal directions. North is +Z, east is +X.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// CardinalDirections lists the four directions in the fixed order adjacency
// scans walk them.
var CardinalDirections = []Direction{North, South, East, West}

// Opposite returns the direction opposite d. Unknown directions are returned
// unchanged.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Offset returns the grid cell one step from p in direction d.
func (d Direction) Offset(p schema.GridPos) schema.GridPos {
	switch d {
	case North:
		return schema.GridPos{X: p.X, Z: p.Z + 1}
	case South:
		return schema.GridPos{X: p.X, Z: p.Z - 1}
	case East:
		return schema.GridPos{X: p.X + 1, Z: p.Z}
	case West:
		return schema.GridPos{X: p.X - 1, Z: p.Z}
	}
	return p
}
