// Package validate checks generated layouts for structural defects before
// they are handed to consumers.
package validate

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/emberline/stagegen/internal/stage/layout"
)

// Report is the outcome of validating a layout. Valid is true exactly when
// Errors is empty.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Layout checks a generated layout for a missing entry room, a missing exit
// room, and rooms unreachable from the entry. Defects are reported as error
// strings, never panics, and the layout is never mutated.
//
// When the entry room is absent there is nowhere to traverse from, so the
// report carries exactly that one error.
func Layout(l *layout.Layout) Report {
	var errs []string
	if l.Room(l.EntryRoomID) == nil {
		errs = append(errs, fmt.Sprintf("entry room %q not found in layout", l.EntryRoomID))
		return Report{Valid: false, Errors: errs}
	}
	if l.Room(l.ExitRoomID) == nil {
		errs = append(errs, fmt.Sprintf("exit room %q not found in layout", l.ExitRoomID))
	}

	reached := reachableRooms(l, l.EntryRoomID)
	for _, lvl := range l.Levels {
		for _, id := range lvl.RoomIDs {
			if !reached.Has(id) {
				errs = append(errs, fmt.Sprintf("room %q is not reachable from entry room %q", id, l.EntryRoomID))
			}
		}
	}
	return Report{Valid: len(errs) == 0, Errors: errs}
}

// reachableRooms walks the connection graph breadth-first from start.
// Horizontal and vertical connections are both followed in both directions;
// locks and hidden flags do not block traversal.
func reachableRooms(l *layout.Layout, start string) mapset.Set[string] {
	adjacency := make(map[string][]string, len(l.Rooms))
	for _, conn := range l.Connections {
		adjacency[conn.From] = append(adjacency[conn.From], conn.To)
		adjacency[conn.To] = append(adjacency[conn.To], conn.From)
	}
	for _, vc := range l.VerticalConnections {
		adjacency[vc.UpperRoom] = append(adjacency[vc.UpperRoom], vc.LowerRoom)
		adjacency[vc.LowerRoom] = append(adjacency[vc.LowerRoom], vc.UpperRoom)
	}

	visited := mapset.New[string]()
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited.Has(current) {
			continue
		}
		visited.Put(current)
		for _, next := range adjacency[current] {
			if !visited.Has(next) {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
