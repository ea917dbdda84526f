package layoutserver

import (
	"encoding/json"
	"net/http"
	"sort"

	"go.uber.org/zap"
)

// stageSummary is the catalog listing entry for one stage definition.
type stageSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ArchetypeID string `json:"archetype_id"`
	Levels      int    `json:"levels"`
	EntryRoomID string `json:"entry_room_id"`
	ExitRoomID  string `json:"exit_room_id"`
}

// generateRequest is the body of POST /api/layouts/generate.
type generateRequest struct {
	StageID string `json:"stage_id"`
	Seed    string `json:"seed"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListStages(w http.ResponseWriter, _ *http.Request) {
	ids := s.catalog.StageIDs()
	sort.Strings(ids)
	summaries := make([]stageSummary, 0, len(ids))
	for _, id := range ids {
		def := s.catalog.Stage(id)
		summaries = append(summaries, stageSummary{
			ID:          def.ID,
			Name:        def.Name,
			ArchetypeID: def.ArchetypeID,
			Levels:      len(def.Levels),
			EntryRoomID: def.EntryRoomID,
			ExitRoomID:  def.ExitRoomID,
		})
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"stages": summaries})
}

func (s *Server) handleGetStage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	def := s.catalog.Stage(id)
	if def == nil {
		respondWithError(w, http.StatusNotFound, "unknown stage "+id)
		return
	}
	respondWithJSON(w, http.StatusOK, def)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StageID == "" {
		respondWithError(w, http.StatusBadRequest, "stage_id is required")
		return
	}
	if req.Seed == "" {
		req.Seed = s.cfg.Generation.DefaultSeed
	}

	if s.catalog.Stage(req.StageID) == nil {
		respondWithError(w, http.StatusNotFound, "unknown stage "+req.StageID)
		return
	}
	res, err := s.generateCached(req.StageID, req.Seed)
	if err != nil {
		s.logger.Error("generation failed",
			zap.String("stage", req.StageID),
			zap.String("seed", req.Seed),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}
