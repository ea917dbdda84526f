package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionRules controls how the connection pass resolves connector types
// between adjacent rooms. A stage layout definition may override the rules
// its archetype declares; overridden fields replace the archetype's, except
// the hallway type, which is consulted archetype-first.
type ConnectionRules struct {
	// DefaultType is the connector used when no override applies. Subject
	// to the archway downgrade roll.
	DefaultType ConnectorType `yaml:"default_type" json:"default_type"`
	// HallwayType overrides the connector for connections touching a
	// connector-purpose room. Empty means no override.
	HallwayType ConnectorType `yaml:"hallway_type,omitempty" json:"hallway_type,omitempty"`
	// BuildingEntryType overrides the connector for connections touching
	// the entry room in exterior or mixed environments. Empty means no
	// override.
	BuildingEntryType ConnectorType `yaml:"building_entry_type,omitempty" json:"building_entry_type,omitempty"`
	// SecretType is the connector used for declared secret connections.
	// Empty falls back to the resolution chain.
	SecretType ConnectorType `yaml:"secret_type,omitempty" json:"secret_type,omitempty"`
	// MaxDoorsPerRoom caps how many connections a room may accumulate from
	// adjacency alone. Zero means unlimited. Explicitly declared pairs are
	// never capped.
	MaxDoorsPerRoom int `yaml:"max_doors_per_room,omitempty" json:"max_doors_per_room,omitempty"`
}

// VerticalSlot is a fixed point on a level where a vertical connection to the
// level below may be anchored.
type VerticalSlot struct {
	// Key names the slot so stage definitions can reference it.
	Key string `yaml:"key" json:"key"`
	// Position is the slot's cell on the level grid.
	Position GridPos `yaml:"position" json:"position"`
	// Mechanism is the default traversal mechanism for connections using
	// this slot.
	Mechanism VerticalMechanism `yaml:"mechanism" json:"mechanism"`
}

// GridConfig bounds filler placement for the grid pattern.
type GridConfig struct {
	// Rows is the number of cells along Z.
	Rows int `yaml:"rows" json:"rows"`
	// Cols is the number of cells along X.
	Cols int `yaml:"cols" json:"cols"`
}

// LevelArchetype describes one level of a layout archetype: its placement
// pattern, the fixed cells anchors may occupy, and the regions fillers may
// spill into.
type LevelArchetype struct {
	// Index is the level's position in the archetype, ascending from zero
	// at the bottom.
	Index int `yaml:"index" json:"index"`
	// Name is a human-readable label for the level.
	Name string `yaml:"name" json:"name"`
	// Pattern constrains where filler rooms may be placed.
	Pattern Pattern `yaml:"pattern" json:"pattern"`
	// RoomCount bounds the total rooms intended for the level. Informational;
	// filler counts come from the stage definition.
	RoomCount IntRange `yaml:"room_count" json:"room_count"`
	// AnchorPositions maps anchor position keys to fixed grid cells.
	AnchorPositions map[string]GridPos `yaml:"anchor_positions" json:"anchor_positions"`
	// FillerZones are the rectangles filler rooms may occupy.
	FillerZones []GridRect `yaml:"filler_zones" json:"filler_zones"`
	// VerticalSlots are the points where connections to the level below
	// may be anchored.
	VerticalSlots []VerticalSlot `yaml:"vertical_slots" json:"vertical_slots"`
	// Grid bounds filler placement when Pattern is grid. Optional.
	Grid *GridConfig `yaml:"grid,omitempty" json:"grid,omitempty"`
	// Elevation is the level's floor height in meters. Defaults to
	// Index * 4 when omitted.
	Elevation float64 `yaml:"elevation" json:"elevation"`
}

// Slot returns the vertical slot with the given key, or nil if the level does
// not declare it.
func (l *LevelArchetype) Slot(key string) *VerticalSlot {
	for i := range l.VerticalSlots {
		if l.VerticalSlots[i].Key == key {
			return &l.VerticalSlots[i]
		}
	}
	return nil
}

// LayoutArchetype is the reusable structural recipe a stage layout definition
// instantiates: environment, per-level patterns and anchor grids, and the
// default connection rules.
type LayoutArchetype struct {
	// ID uniquely identifies the archetype within the catalog.
	ID string `yaml:"id" json:"id"`
	// Name is a human-readable label.
	Name string `yaml:"name" json:"name"`
	// Environment classifies the setting.
	Environment Environment `yaml:"environment" json:"environment"`
	// Levels are the archetype's levels, bottom to top.
	Levels []LevelArchetype `yaml:"levels" json:"levels"`
	// Connections are the default connection rules for stages using this
	// archetype.
	Connections ConnectionRules `yaml:"connections" json:"connections"`
}

// Level returns the level archetype with the given index, or nil if the
// archetype has no such level.
func (a *LayoutArchetype) Level(index int) *LevelArchetype {
	for i := range a.Levels {
		if a.Levels[i].Index == index {
			return &a.Levels[i]
		}
	}
	return nil
}

// Validate checks the archetype for internal consistency.
//
// Postcondition: Returns nil if the archetype is valid, or an error
// describing every violation found.
func (a *LayoutArchetype) Validate() error {
	var errs []string
	if a.ID == "" {
		errs = append(errs, "archetype has no id")
	}
	if !a.Environment.Valid() {
		errs = append(errs, fmt.Sprintf("archetype %q: unknown environment %q", a.ID, a.Environment))
	}
	if len(a.Levels) == 0 {
		errs = append(errs, fmt.Sprintf("archetype %q: no levels", a.ID))
	}
	seen := make(map[int]bool, len(a.Levels))
	for i := range a.Levels {
		l := &a.Levels[i]
		if seen[l.Index] {
			errs = append(errs, fmt.Sprintf("archetype %q: duplicate level index %d", a.ID, l.Index))
		}
		seen[l.Index] = true
		if !l.Pattern.Valid() {
			errs = append(errs, fmt.Sprintf("archetype %q level %d: unknown pattern %q", a.ID, l.Index, l.Pattern))
		}
		if !l.RoomCount.Valid() {
			errs = append(errs, fmt.Sprintf("archetype %q level %d: room count min %d exceeds max %d",
				a.ID, l.Index, l.RoomCount.Min, l.RoomCount.Max))
		}
		for j, zone := range l.FillerZones {
			if !zone.Valid() {
				errs = append(errs, fmt.Sprintf("archetype %q level %d: filler zone %d is malformed", a.ID, l.Index, j))
			}
		}
		slotKeys := make(map[string]bool, len(l.VerticalSlots))
		for _, slot := range l.VerticalSlots {
			if slot.Key == "" {
				errs = append(errs, fmt.Sprintf("archetype %q level %d: vertical slot has no key", a.ID, l.Index))
			}
			if slotKeys[slot.Key] {
				errs = append(errs, fmt.Sprintf("archetype %q level %d: duplicate vertical slot key %q", a.ID, l.Index, slot.Key))
			}
			slotKeys[slot.Key] = true
			if !slot.Mechanism.Valid() {
				errs = append(errs, fmt.Sprintf("archetype %q level %d: vertical slot %q has unknown mechanism %q",
					a.ID, l.Index, slot.Key, slot.Mechanism))
			}
		}
		if l.Grid != nil && (l.Grid.Rows <= 0 || l.Grid.Cols <= 0) {
			errs = append(errs, fmt.Sprintf("archetype %q level %d: grid must have positive rows and cols", a.ID, l.Index))
		}
	}
	errs = append(errs, a.Connections.violations(fmt.Sprintf("archetype %q", a.ID))...)
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// violations lists the rules' connector-type problems, using prefix to
// identify the owner in each message.
func (r *ConnectionRules) violations(prefix string) []string {
	var errs []string
	if r.DefaultType != "" && !r.DefaultType.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown default connector type %q", prefix, r.DefaultType))
	}
	if r.HallwayType != "" && !r.HallwayType.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown hallway connector type %q", prefix, r.HallwayType))
	}
	if r.BuildingEntryType != "" && !r.BuildingEntryType.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown building entry connector type %q", prefix, r.BuildingEntryType))
	}
	if r.SecretType != "" && !r.SecretType.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown secret connector type %q", prefix, r.SecretType))
	}
	if r.MaxDoorsPerRoom < 0 {
		errs = append(errs, fmt.Sprintf("%s: max doors per room must not be negative", prefix))
	}
	return errs
}
