package layoutserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/config"
	"github.com/emberline/stagegen/internal/stage/generate"
	"github.com/emberline/stagegen/internal/stage/schema"
)

func testArchetype() *schema.LayoutArchetype {
	return &schema.LayoutArchetype{
		ID:          "corridor",
		Name:        "Service Corridor",
		Environment: schema.EnvironmentInterior,
		Levels: []schema.LevelArchetype{
			{
				Index:     0,
				Name:      "Ground",
				Pattern:   schema.PatternLinear,
				RoomCount: schema.IntRange{Min: 1, Max: 4},
				AnchorPositions: map[string]schema.GridPos{
					"west_end": {X: 0, Z: 0},
				},
				FillerZones: []schema.GridRect{
					{MinX: 0, MaxX: 3, MinZ: 0, MaxZ: 0},
				},
			},
		},
		Connections: schema.ConnectionRules{DefaultType: schema.ConnectorDoor},
	}
}

func testStage() *schema.StageDefinition {
	return &schema.StageDefinition{
		ID:          "corridor-sweep",
		Name:        "Corridor Sweep",
		ArchetypeID: "corridor",
		Levels: []schema.LevelDefinition{
			{
				Index: 0,
				Anchors: []schema.AnchorRoomDefinition{
					{
						RoomID:   "guard_post",
						Position: "west_end",
						Purpose:  schema.PurposeEntry,
						Required: true,
					},
				},
				Filler: schema.FillerRules{
					Count:               schema.IntRange{Min: 2, Max: 2},
					MustConnectToAnchor: true,
				},
			},
		},
		EntryRoomID: "guard_post",
		ExitRoomID:  "guard_post",
	}
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Generation: config.GenerationConfig{DefaultSeed: "preview"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := schema.NewCatalog(
		[]*schema.LayoutArchetype{testArchetype()},
		nil,
		[]*schema.StageDefinition{testStage()},
	)
	require.NoError(t, err)
	require.NoError(t, catalog.Validate())
	gen := generate.NewGenerator(catalog, zap.NewNop())
	return NewServer(testConfig(), catalog, gen, zap.NewNop())
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleListStages(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Stages []stageSummary `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Stages, 1)
	assert.Equal(t, "corridor-sweep", body.Stages[0].ID)
	assert.Equal(t, "corridor", body.Stages[0].ArchetypeID)
	assert.Equal(t, 1, body.Stages[0].Levels)
	assert.Equal(t, "guard_post", body.Stages[0].EntryRoomID)
}

func TestHandleGetStage(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stages/corridor-sweep", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var def schema.StageDefinition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	assert.Equal(t, "corridor-sweep", def.ID)
	assert.Equal(t, "Corridor Sweep", def.Name)
}

func TestHandleGetStage_Unknown(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stages/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(generateRequest{StageID: "corridor-sweep", Seed: "test"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts/generate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res generationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Layout)
	assert.Equal(t, "corridor-sweep", res.Layout.StageID)
	assert.Equal(t, "test", res.Layout.Seed)
	assert.Equal(t, 3, res.Layout.RoomCount())
	assert.True(t, res.Report.Valid, "errors: %v", res.Report.Errors)
}

func TestHandleGenerate_DefaultSeed(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(generateRequest{StageID: "corridor-sweep"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts/generate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res generationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "preview", res.Layout.Seed)
}

func TestHandleGenerate_UnknownStage(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(generateRequest{StageID: "nope", Seed: "test"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts/generate", bytes.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGenerate_BadBody(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts/generate", bytes.NewReader([]byte("{"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_MissingStageID(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(generateRequest{Seed: "test"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/layouts/generate", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
