package game

import (
	"math/rand"

	"github.com/they4kman/sweepcore/util/collections"
)

// Placer chooses where the mines of a fresh grid go.
type Placer interface {
	// Place returns count distinct in-bounds positions, none equal to start.
	Place(width, height, count int, start Pos) []Pos
}

// RandomPlacer picks uniformly random positions by rejection sampling.
type RandomPlacer struct {
	Rand *rand.Rand
}

// NewRandomPlacer returns a RandomPlacer with its own source seeded by seed.
func NewRandomPlacer(seed int64) *RandomPlacer {
	return &RandomPlacer{Rand: rand.New(rand.NewSource(seed))}
}

func (placer *RandomPlacer) Place(width, height, count int, start Pos) []Pos {
	// count < width*height is guaranteed by GridConfig.Validate, so there is
	// always a free cell other than start and the loop terminates
	taken := make(collections.Set[Pos], count)
	mines := make([]Pos, 0, count)

	for len(mines) < count {
		pos := Pos{X: placer.Rand.Intn(width), Y: placer.Rand.Intn(height)}
		if pos == start {
			continue
		}
		if taken.Contains(pos) {
			continue
		}
		taken.Add(pos)
		mines = append(mines, pos)
	}

	return mines
}

// FixedPlacer places mines at exactly the listed positions, regardless of
// the start position. Mostly useful for replaying a known layout.
type FixedPlacer []Pos

func (placer FixedPlacer) Place(width, height, count int, start Pos) []Pos {
	mines := make([]Pos, len(placer))
	copy(mines, placer)
	return mines
}
