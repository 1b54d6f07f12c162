package rps

import "fmt"

// Points awarded by a single round. Each side gets 0 or 1.
type Points struct {
	Player   int
	Computer int
}

// Reverse swaps the two sides.
func (p Points) Reverse() Points {
	return Points{Player: p.Computer, Computer: p.Player}
}

// Outcome classifies the points from the player's point of view.
func (p Points) Outcome() Outcome {
	switch {
	case p.Player > p.Computer:
		return OutcomePlayerWins
	case p.Computer > p.Player:
		return OutcomeComputerWins
	default:
		return OutcomeTie
	}
}

// Outcome of a round.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomePlayerWins
	OutcomeComputerWins
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return "tie"
	case OutcomePlayerWins:
		return "player"
	case OutcomeComputerWins:
		return "computer"
	default:
		return "unknown"
	}
}

// Decide scores a round. Rock beats Scissor, Scissor beats Paper and Paper
// beats Rock; equal hands tie.
//
// Both arguments must be valid; anything else is a programming error.
func Decide(player, computer Choice) Points {
	if !player.Valid() || !computer.Valid() {
		panic(fmt.Sprintf("rps: Decide(%v, %v) with a choice outside the enumeration", player, computer))
	}

	raw := int(player) - int(computer)
	switch raw {
	case 0:
		return Points{}
	case 1, -2:
		return Points{Player: 1}
	default: // 2, -1
		return Points{Computer: 1}
	}
}

// Score is the running total for a session. It only ever grows.
type Score struct {
	Player   int
	Computer int
}

// Add accumulates one round's points.
func (s *Score) Add(p Points) {
	s.Player += p.Player
	s.Computer += p.Computer
}

func (s Score) String() string {
	return fmt.Sprintf("%d : %d", s.Player, s.Computer)
}
