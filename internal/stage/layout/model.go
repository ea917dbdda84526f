package layout

import (
	"github.com/google/uuid"

	"github.com/emberline/stagegen/internal/stage/schema"
)

// GeneratedProp is one placed prop inside a room.
type GeneratedProp struct {
	// ID uniquely identifies the prop within the layout.
	ID string `json:"id"`
	// Type is the prop type id drawn from the rule's list.
	Type string `json:"type"`
	// Position is the prop's placement relative to the room's floor
	// center.
	Position schema.Vec3 `json:"position"`
	// Rotation is the prop's yaw in degrees, clockwise from +Z.
	Rotation float64 `json:"rotation"`
	// Required marks the prop as required set dressing.
	Required bool `json:"required,omitempty"`
}

// Connection joins two rooms on the same level through a shared wall.
// Each adjacent pair is joined by at most one connection.
type Connection struct {
	// From and To are the joined room ids. From is the room the scan
	// reached first.
	From string `json:"from"`
	To   string `json:"to"`
	// Type is the resolved connector type.
	Type schema.ConnectorType `json:"type"`
	// Direction is the side of the From room the connection sits on.
	Direction Direction `json:"direction"`
	// Position is the connector's placement relative to the From room's
	// floor center.
	Position schema.Vec3 `json:"position"`
	// Hidden marks the connection as secret.
	Hidden bool `json:"hidden,omitempty"`
	// Lock gates the connection behind a quest item. Nil means unlocked.
	Lock *schema.Lock `json:"lock,omitempty"`
}

// VerticalConnection joins two rooms on different levels. These are copied
// from the stage definition, never synthesized.
type VerticalConnection struct {
	// ID uniquely identifies the connection within the layout.
	ID string `json:"id"`
	// UpperRoom and LowerRoom are the joined room ids.
	UpperRoom string `json:"upper_room"`
	LowerRoom string `json:"lower_room"`
	// UpperLevel and LowerLevel are the joined rooms' level indices.
	UpperLevel int `json:"upper_level"`
	LowerLevel int `json:"lower_level"`
	// Mechanism is how the connection is traversed.
	Mechanism schema.VerticalMechanism `json:"mechanism"`
	// Position is the connection's world-space anchor point.
	Position schema.Vec3 `json:"position"`
	// HeightDelta is the elevation difference between the two levels, in
	// meters.
	HeightDelta float64 `json:"height_delta"`
	// Lock gates the connection behind a quest item. Nil means unlocked.
	Lock *schema.Lock `json:"lock,omitempty"`
}

// Room is one generated room, positioned in the world and dressed with props.
type Room struct {
	// ID uniquely identifies the room within the layout.
	ID string `json:"id"`
	// TemplateID is the room template the room was generated from.
	TemplateID string `json:"template_id"`
	// Purpose classifies the room's role.
	Purpose schema.RoomPurpose `json:"purpose"`
	// Anchor reports whether the room was hand-authored rather than
	// procedurally placed.
	Anchor bool `json:"anchor"`
	// Level is the index of the level the room sits on.
	Level int `json:"level"`
	// GridPos is the room's cell on the level grid.
	GridPos schema.GridPos `json:"grid_pos"`
	// WorldPos is the room's floor center in world space.
	WorldPos schema.Vec3 `json:"world_pos"`
	// Size is the room's interior extent.
	Size schema.Size `json:"size"`
	// StoryBeats are narrative event ids staged in the room.
	StoryBeats []string `json:"story_beats,omitempty"`
	// QuestItems are item ids placed in the room.
	QuestItems []string `json:"quest_items,omitempty"`
	// Props are the room's placed props.
	Props []GeneratedProp `json:"props,omitempty"`
	// ConnectedRooms lists the ids of every room reachable through one
	// connection, horizontal or vertical.
	ConnectedRooms []string `json:"connected_rooms,omitempty"`
	// Atmosphere is a freeform mood tag.
	Atmosphere string `json:"atmosphere,omitempty"`
	// Lock gates the room behind a quest item. Nil means unlocked.
	Lock *schema.Lock `json:"lock,omitempty"`
}

// Bounds is a world-space axis-aligned bounding box.
type Bounds struct {
	Min schema.Vec3 `json:"min"`
	Max schema.Vec3 `json:"max"`
}

// Level is one generated level of the layout.
type Level struct {
	// Index matches the archetype level the rooms were placed on.
	Index int `json:"index"`
	// Name is the archetype level's label.
	Name string `json:"name"`
	// Pattern is the placement pattern the level was generated under.
	Pattern schema.Pattern `json:"pattern"`
	// RoomIDs lists the level's rooms in placement order.
	RoomIDs []string `json:"room_ids"`
	// Bounds encloses every room footprint on the level.
	Bounds Bounds `json:"bounds"`
}

// Layout is the complete generated stage layout handed to downstream systems.
type Layout struct {
	// ID identifies the layout. Stable for a given stage id and seed.
	ID uuid.UUID `json:"id"`
	// StageID is the stage definition the layout was generated from.
	StageID string `json:"stage_id"`
	// Seed is the seed string the layout was generated with.
	Seed string `json:"seed"`
	// Levels are the generated levels, bottom to top.
	Levels []Level `json:"levels"`
	// Rooms indexes every generated room by id.
	Rooms map[string]*Room `json:"rooms"`
	// Connections are the same-level connections between rooms.
	Connections []Connection `json:"connections"`
	// VerticalConnections join rooms across levels.
	VerticalConnections []VerticalConnection `json:"vertical_connections,omitempty"`
	// EntryRoomID is where players enter the stage.
	EntryRoomID string `json:"entry_room_id"`
	// ExitRoomID is where players leave the stage.
	ExitRoomID string `json:"exit_room_id"`
}

// Room returns the room with the given id, or nil if the layout does not
// contain it.
func (l *Layout) Room(id string) *Room {
	return l.Rooms[id]
}

// RoomCount returns the total number of rooms in the layout.
func (l *Layout) RoomCount() int {
	return len(l.Rooms)
}

// layoutNamespace scopes layout ids so that id derivation never collides with
// other uuid users.
var layoutNamespace = uuid.MustParse("8f1a6d42-33e5-4b0f-9c7a-2d5be15a9646")

// NewLayoutID derives the layout id for a stage id and seed string. The same
// pair always yields the same id.
func NewLayoutID(stageID, seed string) uuid.UUID {
	return uuid.NewSHA1(layoutNamespace, []byte(stageID+"\n"+seed))
}
