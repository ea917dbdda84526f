package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/emberline/stagegen/internal/stage/schema"
)

// propertyTestGenerator builds a generator around a stage with a variable
// filler range so properties are exercised across fill levels.
func propertyTestGenerator(t *rapid.T) (*Generator, *schema.StageDefinition) {
	arch := squareTestArchetype()
	arch.Levels[0].FillerZones = []schema.GridRect{{MinX: 0, MaxX: 2, MinZ: 0, MaxZ: 2}}
	stage := squareTestStage()
	min := rapid.IntRange(0, 4).Draw(t, "fillerMin")
	stage.Levels[0].Filler.Count = schema.IntRange{
		Min: min,
		Max: min + rapid.IntRange(0, 4).Draw(t, "fillerSpan"),
	}
	catalog, err := schema.NewCatalog(
		[]*schema.LayoutArchetype{arch},
		nil,
		[]*schema.StageDefinition{stage},
	)
	require.NoError(t, err)
	return NewGenerator(catalog, zap.NewNop()), stage
}

func TestPropertyGenerateIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, stage := propertyTestGenerator(t)
		seed := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "seed")

		a, err := g.Generate(stage, seed)
		require.NoError(t, err)
		b, err := g.Generate(stage, seed)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})
}

func TestPropertyGridPositionsUniquePerLevel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, stage := propertyTestGenerator(t)
		seed := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "seed")

		l, err := g.Generate(stage, seed)
		require.NoError(t, err)
		for _, lvl := range l.Levels {
			cells := make(map[schema.GridPos]string, len(lvl.RoomIDs))
			for _, id := range lvl.RoomIDs {
				cell := l.Room(id).GridPos
				if other, ok := cells[cell]; ok {
					t.Fatalf("rooms %s and %s share cell %+v", other, id, cell)
				}
				cells[cell] = id
			}
		}
	})
}

func TestPropertyRoomCountWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, stage := propertyTestGenerator(t)
		seed := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "seed")

		l, err := g.Generate(stage, seed)
		require.NoError(t, err)
		anchors := len(stage.Levels[0].Anchors)
		assert.GreaterOrEqual(t, l.RoomCount(), anchors)
		assert.LessOrEqual(t, l.RoomCount(), anchors+stage.Levels[0].Filler.Count.Max)
	})
}

func TestPropertyConnectionSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, stage := propertyTestGenerator(t)
		seed := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "seed")

		l, err := g.Generate(stage, seed)
		require.NoError(t, err)
		for _, conn := range l.Connections {
			assert.Contains(t, l.Room(conn.From).ConnectedRooms, conn.To)
			assert.Contains(t, l.Room(conn.To).ConnectedRooms, conn.From)
			assert.NotEqual(t, conn.From, conn.To)
		}
	})
}
