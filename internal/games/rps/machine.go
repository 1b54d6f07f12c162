package rps

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// Phase is the lifecycle state of a round.
type Phase int

const (
	PhaseIdle      Phase = iota // waiting for the player
	PhaseRevealing              // countdown captions running
	PhaseScored                 // points awarded, final hands held on screen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRevealing:
		return "revealing"
	case PhaseScored:
		return "scored"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Captions shown during the reveal, one per caption interval.
var Captions = [4]string{"ROCK!", "PAPER!", "SCISSOR!", "SHOOT!"}

// shootCaption is the index of the caption that shows the real hands.
const shootCaption = len(Captions) - 1

// Timing holds the presentation delays of a round.
type Timing struct {
	CaptionInterval time.Duration // how long each reveal caption stays up
	ScoreHold       time.Duration // how long the scored round stays up
	Tick            time.Duration // poll/render cadence
}

// DefaultTiming returns the stock delays: 500ms per caption, a 1s hold and
// a 40ms tick.
func DefaultTiming() Timing {
	return Timing{
		CaptionInterval: 500 * time.Millisecond,
		ScoreHold:       time.Second,
		Tick:            40 * time.Millisecond,
	}
}

// Validate rejects non-positive durations.
func (t Timing) Validate() error {
	switch {
	case t.CaptionInterval <= 0:
		return fmt.Errorf("rps: caption interval must be positive, got %v", t.CaptionInterval)
	case t.ScoreHold <= 0:
		return fmt.Errorf("rps: score hold must be positive, got %v", t.ScoreHold)
	case t.Tick <= 0:
		return fmt.Errorf("rps: tick must be positive, got %v", t.Tick)
	}
	return nil
}

// Reveal returns the full length of the caption sequence.
func (t Timing) Reveal() time.Duration {
	return time.Duration(len(Captions)) * t.CaptionInterval
}

// Round is the round currently in play.
type Round struct {
	Number   int // 1-based; 0 before the first round
	Phase    Phase
	Player   Choice
	Computer Choice
	set      bool
}

// Choices returns both hands, or ok=false while the round has none.
func (r Round) Choices() (player, computer Choice, ok bool) {
	return r.Player, r.Computer, r.set
}

// Resolution describes a round at the moment it was scored.
type Resolution struct {
	Round    int
	Player   Choice
	Computer Choice
	Points   Points
	Outcome  Outcome
	Score    Score // running total including this round
}

// Machine drives rounds from Idle through Revealing and Scored back to Idle.
// Transitions are elapsed-time checks against its clock, made in Update.
//
// A Machine is owned by a single control loop and is not safe for
// concurrent use.
type Machine struct {
	clock  quartz.Clock
	picker Picker
	timing Timing

	round      Round
	score      Score
	phaseStart time.Time
	last       *Resolution
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock replaces the wall clock, typically with a quartz.Mock in tests.
func WithClock(c quartz.Clock) MachineOption {
	return func(m *Machine) {
		m.clock = c
	}
}

// NewMachine creates an idle machine with a 0 : 0 score.
func NewMachine(picker Picker, timing Timing, opts ...MachineOption) *Machine {
	m := &Machine{
		clock:  quartz.NewReal(),
		picker: picker,
		timing: timing,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Select starts a round with the player's hand. The computer's hand is
// drawn here, together with the player's. Returns false and changes nothing
// unless the machine is idle and c is valid.
func (m *Machine) Select(c Choice) bool {
	if m.round.Phase != PhaseIdle || !c.Valid() {
		return false
	}

	computer := m.picker.Pick()
	if !computer.Valid() {
		panic(fmt.Sprintf("rps: picker returned %v", computer))
	}

	m.round = Round{
		Number:   m.round.Number + 1,
		Phase:    PhaseRevealing,
		Player:   c,
		Computer: computer,
		set:      true,
	}
	m.phaseStart = m.clock.Now("rps", "select")
	return true
}

// Update applies every transition whose deadline has passed. If a round was
// scored during this call, its Resolution is returned with ok=true. A round
// is scored at most once no matter how far the clock jumped.
func (m *Machine) Update() (res Resolution, ok bool) {
	now := m.clock.Now("rps", "update")

	for {
		switch m.round.Phase {
		case PhaseRevealing:
			deadline := m.phaseStart.Add(m.timing.Reveal())
			if now.Before(deadline) {
				return res, ok
			}
			res, ok = m.resolve(), true
			m.phaseStart = deadline

		case PhaseScored:
			deadline := m.phaseStart.Add(m.timing.ScoreHold)
			if now.Before(deadline) {
				return res, ok
			}
			m.round = Round{Number: m.round.Number, Phase: PhaseIdle}
			m.phaseStart = deadline

		default:
			return res, ok
		}
	}
}

// resolve scores the current round and moves to PhaseScored.
func (m *Machine) resolve() Resolution {
	pts := Decide(m.round.Player, m.round.Computer)
	m.score.Add(pts)
	m.round.Phase = PhaseScored

	res := Resolution{
		Round:    m.round.Number,
		Player:   m.round.Player,
		Computer: m.round.Computer,
		Points:   pts,
		Outcome:  pts.Outcome(),
		Score:    m.score,
	}
	m.last = &res
	return res
}

// Caption returns the reveal caption to display and its index in Captions.
// Idle rounds have no caption and return index -1.
func (m *Machine) Caption() (string, int) {
	switch m.round.Phase {
	case PhaseRevealing:
		elapsed := m.clock.Since(m.phaseStart, "rps", "caption")
		idx := core.Clamp(int(elapsed/m.timing.CaptionInterval), 0, shootCaption)
		return Captions[idx], idx
	case PhaseScored:
		return Captions[shootCaption], shootCaption
	default:
		return "", -1
	}
}

// Shown returns the hands to draw for each side. While the first three
// captions run both sides show the caption's hand; from "SHOOT!" on they
// show the real hands.
func (m *Machine) Shown() (player, computer Choice, ok bool) {
	if !m.round.set {
		return 0, 0, false
	}
	_, idx := m.Caption()
	if idx >= 0 && idx < shootCaption {
		return Choices[idx], Choices[idx], true
	}
	return m.round.Player, m.round.Computer, true
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.round.Phase
}

// Round returns a copy of the current round.
func (m *Machine) Round() Round {
	return m.round
}

// Score returns the running total.
func (m *Machine) Score() Score {
	return m.score
}

// Last returns the most recently scored round.
func (m *Machine) Last() (Resolution, bool) {
	if m.last == nil {
		return Resolution{}, false
	}
	return *m.last, true
}

// Timing returns the delays the machine runs with.
func (m *Machine) Timing() Timing {
	return m.timing
}
