// Package schema provides the declarative types a stage layout is generated
// from: layout archetypes, room templates, and stage layout definitions.
package schema

// Environment classifies the overall setting of a layout archetype.
type Environment string

// Environment classifications.
const (
	EnvironmentInterior Environment = "interior"
	EnvironmentExterior Environment = "exterior"
	EnvironmentMixed    Environment = "mixed"
)

// Environments contains all valid environment classifications.
var Environments = []Environment{EnvironmentInterior, EnvironmentExterior, EnvironmentMixed}

// Valid reports whether e is a known environment classification.
func (e Environment) Valid() bool {
	for _, env := range Environments {
		if e == env {
			return true
		}
	}
	return false
}

// Pattern is the topological shape rule constraining filler-room placement
// on a level.
type Pattern string

// Layout patterns.
const (
	PatternLinear    Pattern = "linear"
	PatternBranching Pattern = "branching"
	PatternHub       Pattern = "hub"
	PatternGrid      Pattern = "grid"
	PatternSquare    Pattern = "square"
	PatternLShape    Pattern = "l-shape"
	PatternOpen      Pattern = "open"
)

// Patterns contains all valid layout patterns.
var Patterns = []Pattern{
	PatternLinear, PatternBranching, PatternHub,
	PatternGrid, PatternSquare, PatternLShape, PatternOpen,
}

// Valid reports whether p is a known layout pattern.
func (p Pattern) Valid() bool {
	for _, pat := range Patterns {
		if p == pat {
			return true
		}
	}
	return false
}

// ConnectorType describes the physical opening between two connected rooms.
type ConnectorType string

// Connector types.
const (
	ConnectorDoor    ConnectorType = "door"
	ConnectorArchway ConnectorType = "archway"
	ConnectorOpen    ConnectorType = "open"
	ConnectorStairs  ConnectorType = "stairs"
	ConnectorRamp    ConnectorType = "ramp"
	ConnectorLoading ConnectorType = "loading"
)

// ConnectorTypes contains all valid connector types.
var ConnectorTypes = []ConnectorType{
	ConnectorDoor, ConnectorArchway, ConnectorOpen,
	ConnectorStairs, ConnectorRamp, ConnectorLoading,
}

// Valid reports whether c is a known connector type.
func (c ConnectorType) Valid() bool {
	for _, ct := range ConnectorTypes {
		if c == ct {
			return true
		}
	}
	return false
}

// VerticalMechanism describes how a vertical connection is traversed.
type VerticalMechanism string

// Vertical mechanisms.
const (
	MechanismStairs   VerticalMechanism = "stairs"
	MechanismRamp     VerticalMechanism = "ramp"
	MechanismLadder   VerticalMechanism = "ladder"
	MechanismElevator VerticalMechanism = "elevator"
	MechanismHatch    VerticalMechanism = "hatch"
)

// VerticalMechanisms contains all valid vertical mechanisms.
var VerticalMechanisms = []VerticalMechanism{
	MechanismStairs, MechanismRamp, MechanismLadder, MechanismElevator, MechanismHatch,
}

// Valid reports whether m is a known vertical mechanism.
func (m VerticalMechanism) Valid() bool {
	for _, vm := range VerticalMechanisms {
		if m == vm {
			return true
		}
	}
	return false
}

// RoomPurpose classifies a generated room's role in the stage.
type RoomPurpose string

// Room purposes.
const (
	PurposeEntry         RoomPurpose = "entry"
	PurposeExit          RoomPurpose = "exit"
	PurposeConnector     RoomPurpose = "connector"
	PurposeStoryCritical RoomPurpose = "story-critical"
	PurposeExploration   RoomPurpose = "exploration"
	PurposeFiller        RoomPurpose = "filler"
)

// RoomPurposes contains all valid room purposes.
var RoomPurposes = []RoomPurpose{
	PurposeEntry, PurposeExit, PurposeConnector,
	PurposeStoryCritical, PurposeExploration, PurposeFiller,
}

// Valid reports whether p is a known room purpose.
func (p RoomPurpose) Valid() bool {
	for _, rp := range RoomPurposes {
		if p == rp {
			return true
		}
	}
	return false
}

// PropZone names the region of a room a prop rule scatters into.
type PropZone string

// Prop zones.
const (
	PropZoneCenter PropZone = "center"
	PropZoneWall   PropZone = "wall"
	PropZoneCorner PropZone = "corner"
	PropZoneRandom PropZone = "random"
)

// PropZones contains all valid prop zones.
var PropZones = []PropZone{PropZoneCenter, PropZoneWall, PropZoneCorner, PropZoneRandom}

// Valid reports whether z is a known prop zone.
func (z PropZone) Valid() bool {
	for _, pz := range PropZones {
		if z == pz {
			return true
		}
	}
	return false
}

// FacingMode selects how a scattered prop's rotation is computed.
type FacingMode string

// Facing modes.
const (
	FacingRandom      FacingMode = "random"
	FacingNearestWall FacingMode = "nearest-wall"
	FacingRoomCenter  FacingMode = "room-center"
)

// FacingModes contains all valid facing modes.
var FacingModes = []FacingMode{FacingRandom, FacingNearestWall, FacingRoomCenter}

// Valid reports whether f is a known facing mode.
func (f FacingMode) Valid() bool {
	for _, fm := range FacingModes {
		if f == fm {
			return true
		}
	}
	return false
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Valid reports whether the range is well formed (Min <= Max).
func (r IntRange) Valid() bool {
	return r.Min <= r.Max
}

// FloatRange is an inclusive floating-point range.
type FloatRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Valid reports whether the range is well formed (Min <= Max).
func (r FloatRange) Valid() bool {
	return r.Min <= r.Max
}

// GridPos is an integer cell position on a level's placement grid.
// X runs west to east, Z runs south to north.
type GridPos struct {
	X int `yaml:"x" json:"x"`
	Z int `yaml:"z" json:"z"`
}

// GridRect is an axis-aligned, inclusive rectangle of grid cells.
type GridRect struct {
	MinX int `yaml:"min_x" json:"min_x"`
	MaxX int `yaml:"max_x" json:"max_x"`
	MinZ int `yaml:"min_z" json:"min_z"`
	MaxZ int `yaml:"max_z" json:"max_z"`
}

// Valid reports whether the rectangle is well formed.
func (r GridRect) Valid() bool {
	return r.MinX <= r.MaxX && r.MinZ <= r.MaxZ
}

// Contains reports whether p lies inside the rectangle.
func (r GridRect) Contains(p GridPos) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Cells returns every cell of the rectangle in row-major order
// (Z ascending, then X ascending).
//
// Postcondition: Returns (MaxX-MinX+1) * (MaxZ-MinZ+1) cells for a valid rect.
func (r GridRect) Cells() []GridPos {
	if !r.Valid() {
		return nil
	}
	cells := make([]GridPos, 0, (r.MaxX-r.MinX+1)*(r.MaxZ-r.MinZ+1))
	for z := r.MinZ; z <= r.MaxZ; z++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			cells = append(cells, GridPos{X: x, Z: z})
		}
	}
	return cells
}

// ManhattanDistance returns the grid distance |dx| + |dz| between two cells.
func ManhattanDistance(a, b GridPos) int {
	dx := a.X - b.X
	dz := a.Z - b.Z
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	return dx + dz
}

// Vec3 is a world-space position or extent in meters. Y is up.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Size is a room's interior extent: Width along X, Height along Z,
// Ceiling along Y.
type Size struct {
	Width   float64 `yaml:"width" json:"width"`
	Height  float64 `yaml:"height" json:"height"`
	Ceiling float64 `yaml:"ceiling" json:"ceiling"`
}

// Lock marks a room or connection as locked until the named quest item is
// used. A nil *Lock means unlocked.
type Lock struct {
	// KeyItem is the quest item id that opens this lock.
	KeyItem string `yaml:"key_item" json:"key_item"`
}
