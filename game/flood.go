package game

import "github.com/gammazero/deque"

// NeighborGetter lists the positions to continue the flood with.
type NeighborGetter func(Pos) []Pos

// Visitor handles one popped position and reports whether the flood should
// spread to its neighbors.
type Visitor func(Pos) bool

// flood drains a LIFO worklist seeded with seeds. Positions may be pushed
// more than once; visit is responsible for skipping those already handled.
// The order in which siblings are visited is unspecified.
func flood(seeds []Pos, visit Visitor, getNeighbors NeighborGetter) {
	var work deque.Deque
	for _, pos := range seeds {
		work.PushBack(pos)
	}

	for work.Len() > 0 {
		pos := work.PopBack().(Pos)
		if !visit(pos) {
			continue
		}

		for _, neighbor := range getNeighbors(pos) {
			work.PushBack(neighbor)
		}
	}
}
