package schema

import (
	"errors"
	"fmt"
	"strings"
)

// AnchorRoomDefinition places one hand-authored room at a fixed archetype
// position and carries its narrative payload.
type AnchorRoomDefinition struct {
	// RoomID is the generated room's id. Must be unique within the stage.
	RoomID string `yaml:"room_id" json:"room_id"`
	// Position is the archetype anchor position key the room occupies.
	Position string `yaml:"position" json:"position"`
	// TemplateID selects the room template. Unknown ids fall back to the
	// default template.
	TemplateID string `yaml:"template_id" json:"template_id"`
	// Purpose classifies the room's role.
	Purpose RoomPurpose `yaml:"purpose" json:"purpose"`
	// Required marks the room as essential to stage progression.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
	// Connections lists room ids this room must connect to when adjacent.
	Connections []string `yaml:"connections,omitempty" json:"connections,omitempty"`
	// SecretConnections lists room ids this room connects to through
	// hidden connectors.
	SecretConnections []string `yaml:"secret_connections,omitempty" json:"secret_connections,omitempty"`
	// StoryBeats are narrative event ids staged in the room.
	StoryBeats []string `yaml:"story_beats,omitempty" json:"story_beats,omitempty"`
	// QuestItems are item ids placed in the room.
	QuestItems []string `yaml:"quest_items,omitempty" json:"quest_items,omitempty"`
	// Atmosphere is a freeform mood tag for downstream systems.
	Atmosphere string `yaml:"atmosphere,omitempty" json:"atmosphere,omitempty"`
	// Lock gates the room behind a quest item. Nil means unlocked.
	Lock *Lock `yaml:"lock,omitempty" json:"lock,omitempty"`
}

// FillerRules controls procedural filler-room placement on one level.
type FillerRules struct {
	// Count bounds how many filler rooms to attempt.
	Count IntRange `yaml:"count" json:"count"`
	// TemplateIDs are the templates fillers are drawn from. Empty means
	// the default template.
	TemplateIDs []string `yaml:"template_ids,omitempty" json:"template_ids,omitempty"`
	// MustConnectToAnchor restricts candidate cells to those adjacent to
	// an already-placed room.
	MustConnectToAnchor bool `yaml:"must_connect_to_anchor,omitempty" json:"must_connect_to_anchor,omitempty"`
}

// VerticalConnectionDefinition declares one hand-authored connection between
// rooms on different levels. The definition lives on the upper level.
type VerticalConnectionDefinition struct {
	// ID names the connection. Empty ids are assigned during generation.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`
	// Slot is the archetype vertical slot key anchoring the connection.
	Slot string `yaml:"slot,omitempty" json:"slot,omitempty"`
	// UpperRoom is the room id on this level.
	UpperRoom string `yaml:"upper_room" json:"upper_room"`
	// LowerRoom is the room id on the level below.
	LowerRoom string `yaml:"lower_room" json:"lower_room"`
	// Mechanism overrides the slot's traversal mechanism. Empty keeps the
	// slot's.
	Mechanism VerticalMechanism `yaml:"mechanism,omitempty" json:"mechanism,omitempty"`
	// LevelDelta is how many levels the connection spans. Defaults to 1.
	LevelDelta int `yaml:"level_delta,omitempty" json:"level_delta,omitempty"`
	// Lock gates the connection behind a quest item. Nil means unlocked.
	Lock *Lock `yaml:"lock,omitempty" json:"lock,omitempty"`
}

// LevelDefinition is a stage's content for one archetype level.
type LevelDefinition struct {
	// Index matches the archetype level the definition fills.
	Index int `yaml:"index" json:"index"`
	// Anchors are the hand-authored rooms, placed in declared order.
	Anchors []AnchorRoomDefinition `yaml:"anchors" json:"anchors"`
	// Filler controls procedural room placement after anchors.
	Filler FillerRules `yaml:"filler" json:"filler"`
	// Vertical declares connections from this level down.
	Vertical []VerticalConnectionDefinition `yaml:"vertical,omitempty" json:"vertical,omitempty"`
}

// StageDefinition binds narrative content to a layout archetype: which rooms
// exist, where the stage is entered and exited, and any connection rule
// overrides.
type StageDefinition struct {
	// ID uniquely identifies the stage within the catalog.
	ID string `yaml:"id" json:"id"`
	// Name is a human-readable label.
	Name string `yaml:"name" json:"name"`
	// ArchetypeID selects the layout archetype the stage instantiates.
	ArchetypeID string `yaml:"archetype_id" json:"archetype_id"`
	// Levels carry the stage's per-level content.
	Levels []LevelDefinition `yaml:"levels" json:"levels"`
	// Connections overrides the archetype's connection rules. Nil keeps
	// the archetype's.
	Connections *ConnectionRules `yaml:"connections,omitempty" json:"connections,omitempty"`
	// EntryRoomID is where players enter the stage.
	EntryRoomID string `yaml:"entry_room_id" json:"entry_room_id"`
	// ExitRoomID is where players leave the stage.
	ExitRoomID string `yaml:"exit_room_id" json:"exit_room_id"`
}

// Level returns the level definition with the given index, or nil if the
// stage has no content for it.
func (s *StageDefinition) Level(index int) *LevelDefinition {
	for i := range s.Levels {
		if s.Levels[i].Index == index {
			return &s.Levels[i]
		}
	}
	return nil
}

// Validate checks the stage definition for internal consistency.
//
// Postcondition: Returns nil if the definition is valid, or an error
// describing every violation found.
func (s *StageDefinition) Validate() error {
	var errs []string
	if s.ID == "" {
		errs = append(errs, "stage has no id")
	}
	if s.ArchetypeID == "" {
		errs = append(errs, fmt.Sprintf("stage %q: no archetype id", s.ID))
	}
	if s.EntryRoomID == "" {
		errs = append(errs, fmt.Sprintf("stage %q: no entry room id", s.ID))
	}
	if s.ExitRoomID == "" {
		errs = append(errs, fmt.Sprintf("stage %q: no exit room id", s.ID))
	}
	seenLevels := make(map[int]bool, len(s.Levels))
	roomIDs := make(map[string]bool)
	for i := range s.Levels {
		l := &s.Levels[i]
		if seenLevels[l.Index] {
			errs = append(errs, fmt.Sprintf("stage %q: duplicate level index %d", s.ID, l.Index))
		}
		seenLevels[l.Index] = true
		for j := range l.Anchors {
			a := &l.Anchors[j]
			if a.RoomID == "" {
				errs = append(errs, fmt.Sprintf("stage %q level %d: anchor %d has no room id", s.ID, l.Index, j))
			}
			if roomIDs[a.RoomID] {
				errs = append(errs, fmt.Sprintf("stage %q: duplicate room id %q", s.ID, a.RoomID))
			}
			roomIDs[a.RoomID] = true
			if a.Position == "" {
				errs = append(errs, fmt.Sprintf("stage %q level %d: anchor %q has no position", s.ID, l.Index, a.RoomID))
			}
			if !a.Purpose.Valid() {
				errs = append(errs, fmt.Sprintf("stage %q level %d: anchor %q has unknown purpose %q",
					s.ID, l.Index, a.RoomID, a.Purpose))
			}
		}
		if !l.Filler.Count.Valid() || l.Filler.Count.Min < 0 {
			errs = append(errs, fmt.Sprintf("stage %q level %d: filler count range [%d, %d] is malformed",
				s.ID, l.Index, l.Filler.Count.Min, l.Filler.Count.Max))
		}
		for j := range l.Vertical {
			v := &l.Vertical[j]
			if v.UpperRoom == "" {
				errs = append(errs, fmt.Sprintf("stage %q level %d: vertical connection %d has no upper room", s.ID, l.Index, j))
			}
			if v.LowerRoom == "" {
				errs = append(errs, fmt.Sprintf("stage %q level %d: vertical connection %d has no lower room", s.ID, l.Index, j))
			}
			if v.Mechanism == "" && v.Slot == "" {
				errs = append(errs, fmt.Sprintf("stage %q level %d: vertical connection %d needs a slot or a mechanism",
					s.ID, l.Index, j))
			}
			if v.Mechanism != "" && !v.Mechanism.Valid() {
				errs = append(errs, fmt.Sprintf("stage %q level %d: vertical connection %d has unknown mechanism %q",
					s.ID, l.Index, j, v.Mechanism))
			}
			if v.LevelDelta < 0 {
				errs = append(errs, fmt.Sprintf("stage %q level %d: vertical connection %d has negative level delta",
					s.ID, l.Index, j))
			}
		}
	}
	if s.EntryRoomID != "" && !roomIDs[s.EntryRoomID] {
		errs = append(errs, fmt.Sprintf("stage %q: entry room %q is not declared as an anchor", s.ID, s.EntryRoomID))
	}
	if s.ExitRoomID != "" && !roomIDs[s.ExitRoomID] {
		errs = append(errs, fmt.Sprintf("stage %q: exit room %q is not declared as an anchor", s.ID, s.ExitRoomID))
	}
	if s.Connections != nil {
		errs = append(errs, s.Connections.violations(fmt.Sprintf("stage %q", s.ID))...)
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
