package main

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/grid"
)

var headings = []grid.Direction{grid.Up, grid.Right, grid.Down, grid.Left}

// Autopilot runs after the built-in pipeline and buffers a turn for the next
// tick: the safe heading closest to the food, or with probability Wander any
// safe heading. When nothing is safe it keeps going and the round is lost.
type Autopilot struct {
	Board ecs.Singleton[game.Board]
	Round ecs.Singleton[game.Round]
	Food  ecs.Singleton[game.Food]
	Input ecs.Singleton[game.InputBuffer]

	Rand   *rand.Rand
	Wander float64
}

func (a *Autopilot) Execute(frame *ecs.UpdateFrame) {
	board := a.Board.Get().Grid
	round := a.Round.Get()
	food := a.Food.Get().Cell

	head := round.Snake.Head()
	current := round.Snake.Direction()
	blocked := round.Snake.Occupied(board)

	var safe []grid.Direction
	best, bestDist := grid.Direction{}, math.MaxInt
	for _, d := range headings {
		if d == current.Opposite() {
			continue
		}
		next := board.Step(head, d)
		if blocked.Has(next) || (round.Hazards.Active() && round.Hazards.Contains(next)) {
			continue
		}
		safe = append(safe, d)
		if dist := torusDistance(board, next, food); dist < bestDist {
			best, bestDist = d, dist
		}
	}

	if len(safe) == 0 {
		return
	}
	if a.Rand != nil && a.Rand.Float64() < a.Wander {
		best = safe[a.Rand.IntN(len(safe))]
	}
	if best != current {
		a.Input.Get().Pending = best
	}
}

// torusDistance is the Manhattan distance with wrap-around on both axes
func torusDistance(g grid.Grid, a, b grid.Cell) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, g.Width-dx) + min(dy, g.Height-dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
