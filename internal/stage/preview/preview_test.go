package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// rowTestLayout is a single-level, three-room row: entry at (0,0), a filler at
// (1,0), and the exit at (2,0), fully chained west to east.
func rowTestLayout() *layout.Layout {
	rooms := map[string]*layout.Room{
		"lobby": {
			ID: "lobby", Purpose: schema.PurposeEntry, Anchor: true,
			GridPos: schema.GridPos{X: 0, Z: 0},
		},
		"l0_filler_0": {
			ID: "l0_filler_0", Purpose: schema.PurposeFiller,
			GridPos: schema.GridPos{X: 1, Z: 0},
		},
		"vault": {
			ID: "vault", Purpose: schema.PurposeExit, Anchor: true,
			GridPos: schema.GridPos{X: 2, Z: 0},
		},
	}
	return &layout.Layout{
		StageID: "row-test",
		Seed:    "unit",
		Levels: []layout.Level{
			{
				Index:   0,
				Name:    "Ground",
				Pattern: schema.PatternLinear,
				RoomIDs: []string{"lobby", "vault", "l0_filler_0"},
			},
		},
		Rooms: rooms,
		Connections: []layout.Connection{
			{From: "lobby", To: "l0_filler_0", Type: schema.ConnectorDoor, Direction: layout.East},
			{From: "l0_filler_0", To: "vault", Type: schema.ConnectorArchway, Direction: layout.East},
		},
		EntryRoomID: "lobby",
		ExitRoomID:  "vault",
	}
}

func TestRenderer_RenderLevel_Row(t *testing.T) {
	l := rowTestLayout()
	r := &Renderer{}
	out := r.RenderLevel(l, &l.Levels[0])

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2, "header plus one grid row")
	assert.Equal(t, "level 0: Ground (linear)", lines[0])
	assert.Equal(t, "  E-.-X", lines[1])
}

func TestRenderer_RenderLevel_UnconnectedNeighborsShowGap(t *testing.T) {
	l := rowTestLayout()
	l.Connections = l.Connections[:1]
	r := &Renderer{}
	out := r.RenderLevel(l, &l.Levels[0])

	assert.Contains(t, out, "E-. X")
}

func TestRenderer_RenderLevel_SecretMark(t *testing.T) {
	l := rowTestLayout()
	l.Connections[1].Hidden = true
	r := &Renderer{}
	out := r.RenderLevel(l, &l.Levels[0])

	assert.Contains(t, out, "E-.~X")
}

func TestRenderer_RenderLevel_VerticalNeighbors(t *testing.T) {
	l := rowTestLayout()
	l.Rooms["vault"].GridPos = schema.GridPos{X: 0, Z: 1}
	l.Rooms["l0_filler_0"].GridPos = schema.GridPos{X: 1, Z: 1}
	l.Connections = []layout.Connection{
		{From: "vault", To: "lobby", Type: schema.ConnectorDoor, Direction: layout.South},
	}
	r := &Renderer{}
	out := r.RenderLevel(l, &l.Levels[0])

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  X .", lines[1], "north row holds exit and filler")
	assert.Equal(t, "  |  ", lines[2], "connector mark between vault and lobby only")
	assert.Equal(t, "  E  ", lines[3])
}

func TestRenderer_RenderLevel_Empty(t *testing.T) {
	l := rowTestLayout()
	l.Levels = append(l.Levels, layout.Level{Index: 1, Name: "Roof", Pattern: schema.PatternOpen})
	r := &Renderer{}
	out := r.RenderLevel(l, &l.Levels[1])

	assert.Contains(t, out, "(no rooms)")
}

func TestRenderer_Render_Summary(t *testing.T) {
	l := rowTestLayout()
	r := &Renderer{}
	out := r.Render(l)

	assert.Contains(t, out, `stage row-test seed "unit": 3 rooms, 2 connections, 0 vertical`)
}

func TestRenderer_Colored_WrapsGlyphs(t *testing.T) {
	l := rowTestLayout()
	plain := (&Renderer{}).RenderLevel(l, &l.Levels[0])
	colored := (&Renderer{Colored: true}).RenderLevel(l, &l.Levels[0])

	// Styled output must still contain the raw glyphs.
	assert.Contains(t, plain, GlyphEntry)
	assert.Contains(t, colored, GlyphEntry)
	assert.GreaterOrEqual(t, len(colored), len(plain))
}

func TestSummary(t *testing.T) {
	out := Summary(rowTestLayout())
	assert.Contains(t, out, `level 0 "Ground": 2 anchors, 1 fillers`)
}

func TestSortedRoomIDs(t *testing.T) {
	ids := SortedRoomIDs(rowTestLayout())
	assert.Equal(t, []string{"l0_filler_0", "lobby", "vault"}, ids)
}
