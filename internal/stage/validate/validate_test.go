package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// validTestLayout is a two-level layout: entry and exit joined horizontally
// on the ground floor, a cellar hanging off the entry through a ladder.
func validTestLayout() *layout.Layout {
	return &layout.Layout{
		StageID: "cellar-run",
		Seed:    "test",
		Levels: []layout.Level{
			{Index: 0, RoomIDs: []string{"cellar"}},
			{Index: 1, RoomIDs: []string{"foyer", "parlor"}},
		},
		Rooms: map[string]*layout.Room{
			"cellar": {ID: "cellar", Level: 0},
			"foyer":  {ID: "foyer", Level: 1, Purpose: schema.PurposeEntry},
			"parlor": {ID: "parlor", Level: 1, Purpose: schema.PurposeExit},
		},
		Connections: []layout.Connection{
			{From: "foyer", To: "parlor", Type: schema.ConnectorDoor, Direction: layout.East},
		},
		VerticalConnections: []layout.VerticalConnection{
			{ID: "ladder", UpperRoom: "foyer", LowerRoom: "cellar", UpperLevel: 1, LowerLevel: 0, Mechanism: schema.MechanismLadder},
		},
		EntryRoomID: "foyer",
		ExitRoomID:  "parlor",
	}
}

func TestLayout_Valid(t *testing.T) {
	report := Layout(validTestLayout())
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestLayout_EntryAbsent(t *testing.T) {
	l := validTestLayout()
	l.EntryRoomID = "ballroom"

	report := Layout(l)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1, "a missing entry room short-circuits every other check")
	assert.Contains(t, report.Errors[0], `"ballroom"`)
}

func TestLayout_ExitAbsent(t *testing.T) {
	l := validTestLayout()
	l.ExitRoomID = "ballroom"

	report := Layout(l)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `exit room "ballroom"`)
}

func TestLayout_UnreachableRoom(t *testing.T) {
	l := validTestLayout()
	l.Levels[1].RoomIDs = append(l.Levels[1].RoomIDs, "attic")
	l.Rooms["attic"] = &layout.Room{ID: "attic", Level: 1}

	report := Layout(l)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `room "attic" is not reachable`)
}

func TestLayout_VerticalOnlyPathCounts(t *testing.T) {
	l := validTestLayout()

	report := Layout(l)
	assert.True(t, report.Valid, "the cellar is reachable only through the ladder: %v", report.Errors)
}

func TestLayout_SeveredVerticalReported(t *testing.T) {
	l := validTestLayout()
	l.VerticalConnections = nil

	report := Layout(l)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `"cellar"`)
}

func TestLayout_TraversalFollowsConnectionsBackwards(t *testing.T) {
	l := validTestLayout()
	l.Connections[0] = layout.Connection{
		From: "parlor", To: "foyer", Type: schema.ConnectorDoor, Direction: layout.West,
	}

	report := Layout(l)
	assert.True(t, report.Valid, "connection direction must not affect reachability: %v", report.Errors)
}

func TestLayout_LockedAndHiddenStillTraversable(t *testing.T) {
	l := validTestLayout()
	l.Connections[0].Hidden = true
	l.Connections[0].Lock = &schema.Lock{KeyItem: "brass_key"}
	l.VerticalConnections[0].Lock = &schema.Lock{KeyItem: "cellar_key"}

	report := Layout(l)
	assert.True(t, report.Valid, "locks gate progression, not structure: %v", report.Errors)
}

func TestLayout_MultipleErrorsAccumulate(t *testing.T) {
	l := validTestLayout()
	l.ExitRoomID = "ballroom"
	l.VerticalConnections = nil

	report := Layout(l)
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 2)
}

func TestLayout_EmptyLayout(t *testing.T) {
	report := Layout(&layout.Layout{EntryRoomID: "foyer", ExitRoomID: "parlor"})
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `entry room "foyer"`)
}
