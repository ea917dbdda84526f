// Package preview renders generated layouts as ASCII floor plans for
// terminals and debug dumps.
package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gookit/color"

	"github.com/emberline/stagegen/internal/stage/layout"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// Cell glyphs.
const (
	GlyphEntry  = "E"
	GlyphExit   = "X"
	GlyphAnchor = "A"
	GlyphFiller = "."
	GlyphEmpty  = " "
)

// Connector glyphs between adjacent cells.
const (
	markHorizontal = "-"
	markVertical   = "|"
	markSecretH    = "~"
	markSecretV    = "~"
	gapHorizontal  = " "
)

var (
	styleEntry  = color.Style{color.FgGreen, color.OpBold}
	styleExit   = color.Style{color.FgRed, color.OpBold}
	styleAnchor = color.Style{color.FgYellow}
	styleFiller = color.Style{color.FgGray}
	styleHeader = color.Style{color.FgCyan, color.OpBold}
)

// Renderer draws layouts as per-level grids of glyphs with connector marks
// between adjacent cells.
type Renderer struct {
	// Colored selects ANSI-styled output. Plain output is used for files
	// and tests.
	Colored bool
}

// Render draws every level of the layout, bottom to top, followed by a
// summary line.
func (r *Renderer) Render(l *layout.Layout) string {
	var b strings.Builder
	for i := range l.Levels {
		b.WriteString(r.RenderLevel(l, &l.Levels[i]))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "stage %s seed %q: %d rooms, %d connections, %d vertical\n",
		l.StageID, l.Seed, l.RoomCount(), len(l.Connections), len(l.VerticalConnections))
	return b.String()
}

// RenderLevel draws one level's grid. Rows run north (top) to south (bottom);
// columns run west to east. Cells holding a room show its glyph; connector
// marks fill the gaps between connected neighbors.
func (r *Renderer) RenderLevel(l *layout.Layout, lvl *layout.Level) string {
	var b strings.Builder
	b.WriteString(r.styled(styleHeader, fmt.Sprintf("level %d: %s (%s)", lvl.Index, lvl.Name, lvl.Pattern)))
	b.WriteString("\n")
	if len(lvl.RoomIDs) == 0 {
		b.WriteString("  (no rooms)\n")
		return b.String()
	}

	cells := make(map[schema.GridPos]*layout.Room, len(lvl.RoomIDs))
	minX, maxX := 0, 0
	minZ, maxZ := 0, 0
	for i, id := range lvl.RoomIDs {
		room := l.Rooms[id]
		cells[room.GridPos] = room
		if i == 0 {
			minX, maxX = room.GridPos.X, room.GridPos.X
			minZ, maxZ = room.GridPos.Z, room.GridPos.Z
			continue
		}
		if room.GridPos.X < minX {
			minX = room.GridPos.X
		}
		if room.GridPos.X > maxX {
			maxX = room.GridPos.X
		}
		if room.GridPos.Z < minZ {
			minZ = room.GridPos.Z
		}
		if room.GridPos.Z > maxZ {
			maxZ = room.GridPos.Z
		}
	}

	linked := connectionIndex(l, lvl.Index)

	for z := maxZ; z >= minZ; z-- {
		b.WriteString("  ")
		for x := minX; x <= maxX; x++ {
			pos := schema.GridPos{X: x, Z: z}
			b.WriteString(r.cellGlyph(l, cells[pos]))
			if x < maxX {
				b.WriteString(r.eastMark(cells, linked, pos))
			}
		}
		b.WriteString("\n")
		if z > minZ {
			b.WriteString("  ")
			for x := minX; x <= maxX; x++ {
				pos := schema.GridPos{X: x, Z: z}
				b.WriteString(r.southMark(cells, linked, pos))
				if x < maxX {
					b.WriteString(gapHorizontal)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderLegend returns the glyph legend printed alongside a plan.
func (r *Renderer) RenderLegend() string {
	return fmt.Sprintf("%s = entry  %s = exit  %s = anchor  %s = filler  %s/%s = connector  %s = secret\n",
		GlyphEntry, GlyphExit, GlyphAnchor, GlyphFiller, markHorizontal, markVertical, markSecretH)
}

// Summary returns one line per level describing its room mix.
func Summary(l *layout.Layout) string {
	var b strings.Builder
	for i := range l.Levels {
		lvl := &l.Levels[i]
		anchors, fillers := 0, 0
		for _, id := range lvl.RoomIDs {
			if l.Rooms[id].Anchor {
				anchors++
			} else {
				fillers++
			}
		}
		fmt.Fprintf(&b, "level %d %q: %d anchors, %d fillers\n", lvl.Index, lvl.Name, anchors, fillers)
	}
	return b.String()
}

// connKey identifies a linked pair regardless of order.
type connKey struct {
	a, b string
}

func makeConnKey(x, y string) connKey {
	if x > y {
		x, y = y, x
	}
	return connKey{a: x, b: y}
}

// connectionIndex maps each connected same-level pair to its hidden flag.
func connectionIndex(l *layout.Layout, levelIndex int) map[connKey]bool {
	idx := make(map[connKey]bool)
	for _, conn := range l.Connections {
		from := l.Rooms[conn.From]
		if from == nil || from.Level != levelIndex {
			continue
		}
		idx[makeConnKey(conn.From, conn.To)] = conn.Hidden
	}
	return idx
}

func (r *Renderer) cellGlyph(l *layout.Layout, room *layout.Room) string {
	if room == nil {
		return GlyphEmpty
	}
	switch {
	case room.ID == l.EntryRoomID:
		return r.styled(styleEntry, GlyphEntry)
	case room.ID == l.ExitRoomID:
		return r.styled(styleExit, GlyphExit)
	case room.Anchor:
		return r.styled(styleAnchor, GlyphAnchor)
	default:
		return r.styled(styleFiller, GlyphFiller)
	}
}

// eastMark returns the glyph between a cell and its eastern neighbor.
func (r *Renderer) eastMark(cells map[schema.GridPos]*layout.Room, linked map[connKey]bool, pos schema.GridPos) string {
	room := cells[pos]
	neighbor := cells[layout.East.Offset(pos)]
	if room == nil || neighbor == nil {
		return gapHorizontal
	}
	hidden, ok := linked[makeConnKey(room.ID, neighbor.ID)]
	if !ok {
		return gapHorizontal
	}
	if hidden {
		return markSecretH
	}
	return markHorizontal
}

// southMark returns the glyph between a cell and its southern neighbor.
func (r *Renderer) southMark(cells map[schema.GridPos]*layout.Room, linked map[connKey]bool, pos schema.GridPos) string {
	room := cells[pos]
	neighbor := cells[layout.South.Offset(pos)]
	if room == nil || neighbor == nil {
		return GlyphEmpty
	}
	hidden, ok := linked[makeConnKey(room.ID, neighbor.ID)]
	if !ok {
		return GlyphEmpty
	}
	if hidden {
		return markSecretV
	}
	return markVertical
}

func (r *Renderer) styled(s color.Style, text string) string {
	if !r.Colored {
		return text
	}
	return s.Sprint(text)
}

// SortedRoomIDs returns the layout's room ids in lexical order. Handy for
// deterministic listings in reports.
func SortedRoomIDs(l *layout.Layout) []string {
	ids := make([]string, 0, len(l.Rooms))
	for id := range l.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
