package rps

import (
	"math/rand/v2"
)

// Picker draws the computer's hand for a round.
type Picker interface {
	Pick() Choice
}

// PickerFunc adapts a plain function to the Picker interface.
type PickerFunc func() Choice

// Pick calls f.
func (f PickerFunc) Pick() Choice {
	return f()
}

// RandomPicker draws uniformly from the three hands using its own generator.
// It is not safe for concurrent use; each game owns one.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker returns a picker seeded with seed. Equal seeds produce
// equal sequences.
func NewRandomPicker(seed int64) *RandomPicker {
	s := uint64(seed)
	return &RandomPicker{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Pick returns Rock, Paper or Scissor with equal probability.
func (p *RandomPicker) Pick() Choice {
	return Choices[p.rng.IntN(NumChoices)]
}

// Sequence returns a picker that cycles through choices in order.
// It panics if choices is empty.
func Sequence(choices ...Choice) PickerFunc {
	if len(choices) == 0 {
		panic("rps: Sequence needs at least one choice")
	}
	i := 0
	return func() Choice {
		c := choices[i%len(choices)]
		i++
		return c
	}
}
