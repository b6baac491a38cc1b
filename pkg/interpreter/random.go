package interpreter

import (
	"math/rand"

	"github.com/esoterra/bft/pkg/core"
)

var allDirections = [4]core.Direction{core.Right, core.Left, core.Up, core.Down}

// NewDefaultRandomDirection returns a RandomDirection backed by an
// unseeded math/rand source, matching the reference implementation's
// use of the platform's default RNG for '?'. Tests should inject a
// deterministic RandomDirection instead (see spec.md §9).
func NewDefaultRandomDirection() RandomDirection {
	return func() core.Direction {
		return allDirections[rand.Intn(len(allDirections))]
	}
}
