package layoutserver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCached_ReturnsSameResult(t *testing.T) {
	s := newTestServer(t)

	first, err := s.generateCached("corridor-sweep", "alpha")
	require.NoError(t, err)
	second, err := s.generateCached("corridor-sweep", "alpha")
	require.NoError(t, err)

	assert.Same(t, first, second, "repeat requests must hit the cache")
	assert.Equal(t, 1, s.cache.len())
}

func TestGenerateCached_DistinctSeeds(t *testing.T) {
	s := newTestServer(t)

	a, err := s.generateCached("corridor-sweep", "alpha")
	require.NoError(t, err)
	b, err := s.generateCached("corridor-sweep", "beta")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.Layout.ID, b.Layout.ID)
	assert.Equal(t, 2, s.cache.len())
}

func TestGenerateCached_UnknownStage(t *testing.T) {
	s := newTestServer(t)

	_, err := s.generateCached("nope", "alpha")
	assert.Error(t, err)
	assert.Equal(t, 0, s.cache.len(), "failures are not cached")
}

func TestGenerateCached_Concurrent(t *testing.T) {
	s := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.generateCached("corridor-sweep", "alpha")
			assert.NoError(t, err)
			assert.NotNil(t, res)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.cache.len())
}
