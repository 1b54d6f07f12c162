// Package rps implements rock-paper-scissors against a randomized computer
// opponent: the outcome rule, the timed round state machine and the
// presentation glue that turns it into a playable arcade game.
package rps

import (
	"errors"
	"fmt"
	"strings"
)

// Choice is one of the three hands. The numeric value is the hand's index in
// the cycle Rock -> Paper -> Scissor, which the outcome rule depends on.
type Choice uint8

const (
	Rock Choice = iota
	Paper
	Scissor
)

// NumChoices is the size of the Choice enumeration.
const NumChoices = 3

// Choices lists every hand in cycle order.
var Choices = [NumChoices]Choice{Rock, Paper, Scissor}

// ErrUnknownChoice is returned by ParseChoice for names outside the set.
var ErrUnknownChoice = errors.New("rps: unknown choice")

// Valid reports whether c is one of Rock, Paper or Scissor.
func (c Choice) Valid() bool {
	return c < NumChoices
}

// String returns the lowercase name, which is also the asset file stem.
func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissor:
		return "scissor"
	default:
		return fmt.Sprintf("choice(%d)", uint8(c))
	}
}

// Label is the text shown on the choice's button.
func (c Choice) Label() string {
	return strings.ToUpper(c.String())
}

// ParseChoice maps a name such as "rock" or "Scissors" to a Choice.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissor", "scissors", "s":
		return Scissor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChoice, s)
}
