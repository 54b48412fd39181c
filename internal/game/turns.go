package game

import "math/rand"

// Selector picks the next narrator index.
type Selector interface {
	PickExcluding(playerCount, excludeIndex int) int
}

// RandomSelector draws uniformly over all indices except the excluded one.
type RandomSelector struct{}

func (RandomSelector) PickExcluding(playerCount, excludeIndex int) int {
	if playerCount <= 1 {
		return 0
	}
	for {
		idx := rand.Intn(playerCount)
		if idx != excludeIndex {
			return idx
		}
	}
}
