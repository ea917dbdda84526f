package layoutserver

import (
	"sync"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/validate"
)

// generationResult pairs a layout with its validation report. The report
// always travels with the layout so no consumer can skip validation.
type generationResult struct {
	Layout *layout.Layout  `json:"layout"`
	Report validate.Report `json:"report"`
}

// cacheKey identifies one (stage, seed) generation.
type cacheKey struct {
	stageID string
	seed    string
}

// layoutCache memoizes generation results so repeated preview requests for the
// same stage and seed do not regenerate. Generation is deterministic, so
// entries never go stale while the catalog is fixed.
type layoutCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*generationResult
}

func newLayoutCache() *layoutCache {
	return &layoutCache{entries: make(map[cacheKey]*generationResult)}
}

func (c *layoutCache) get(stageID, seed string) (*generationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[cacheKey{stageID: stageID, seed: seed}]
	return res, ok
}

func (c *layoutCache) put(stageID, seed string, res *generationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{stageID: stageID, seed: seed}] = res
}

func (c *layoutCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// generateCached returns the memoized result for a (stage, seed) pair,
// generating and validating on first request.
func (s *Server) generateCached(stageID, seed string) (*generationResult, error) {
	if res, ok := s.cache.get(stageID, seed); ok {
		return res, nil
	}
	l, err := s.gen.GenerateByID(stageID, seed)
	if err != nil {
		return nil, err
	}
	res := &generationResult{Layout: l, Report: validate.Layout(l)}
	s.cache.put(stageID, seed, res)
	return res, nil
}
