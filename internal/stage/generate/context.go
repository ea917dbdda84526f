package generate

import (
	"fmt"

	"github.com/emberline/stagegen/internal/stage/rng"
)

// genContext carries the state of one generation pass: the random source and
// the counters generated ids are drawn from. A fresh context is created per
// Generate call so concurrent generations never share state.
type genContext struct {
	src rng.Source

	roomSeq     int
	propSeq     int
	verticalSeq int
}

func newGenContext(src rng.Source) *genContext {
	return &genContext{src: src}
}

// nextFillerID returns the next filler room id for a level.
func (c *genContext) nextFillerID(levelIndex int) string {
	id := fmt.Sprintf("l%d_filler_%d", levelIndex, c.roomSeq)
	c.roomSeq++
	return id
}

// nextPropID returns the next prop id.
func (c *genContext) nextPropID() string {
	id := fmt.Sprintf("prop_%d", c.propSeq)
	c.propSeq++
	return id
}

// nextVerticalID returns the next vertical connection id.
func (c *genContext) nextVerticalID() string {
	id := fmt.Sprintf("vertical_%d", c.verticalSeq)
	c.verticalSeq++
	return id
}
