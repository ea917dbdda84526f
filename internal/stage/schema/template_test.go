package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestTemplate() *RoomTemplate {
	return &RoomTemplate{
		ID:      "storage",
		Width:   FloatRange{Min: 4, Max: 8},
		Height:  FloatRange{Min: 4, Max: 6},
		Ceiling: FloatRange{Min: 2.5, Max: 3.5},
		PropRules: []PropRule{
			{
				PropTypes: []string{"crate", "barrel"},
				Zone:      PropZoneWall,
				Count:     IntRange{Min: 2, Max: 5},
				Facing:    FacingRandom,
			},
			{
				PropTypes: []string{"workbench"},
				Zone:      PropZoneCenter,
				Count:     IntRange{Min: 0, Max: 1},
				Facing:    FacingNearestWall,
				Required:  true,
			},
		},
	}
}

func TestRoomTemplate_Validate_Valid(t *testing.T) {
	tmpl := validTestTemplate()
	assert.NoError(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_MissingID(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.ID = ""
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_MalformedWidth(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.Width = FloatRange{Min: 8, Max: 4}
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_NonPositiveHeight(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.Height = FloatRange{Min: 0, Max: 4}
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_UnknownZone(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.PropRules[0].Zone = "ceiling"
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_UnknownFacing(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.PropRules[0].Facing = "upside-down"
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_NegativePropCount(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.PropRules[0].Count = IntRange{Min: -1, Max: 2}
	assert.Error(t, tmpl.Validate())
}

func TestRoomTemplate_Validate_ReportsAllViolations(t *testing.T) {
	tmpl := validTestTemplate()
	tmpl.Width = FloatRange{Min: 8, Max: 4}
	tmpl.PropRules[0].Zone = "ceiling"

	err := tmpl.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width range")
	assert.Contains(t, err.Error(), "unknown zone")
}

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	assert.Equal(t, DefaultTemplateID, tmpl.ID)
	assert.NoError(t, tmpl.Validate())
	assert.Empty(t, tmpl.PropRules)
}
