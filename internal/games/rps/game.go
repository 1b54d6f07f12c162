package rps

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// historyLen is how many recent outcomes the board remembers.
const historyLen = 10

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	Phase Phase
	Score Score
	Round int

	// Resolved is set on the tick a round was scored.
	Resolved *Resolution
}

// Game is rock-paper-scissors wired to arcade input and a cell screen.
type Game struct {
	timing Timing
	clock  quartz.Clock
	picker Picker // nil: seeded RandomPicker per Reset
	icons  IconSet
	logger *log.Logger

	machine *Machine
	layout  Layout
	hover   core.Point
	hovered bool
	history []Outcome
}

// Option configures a Game.
type Option func(*Game)

// WithPicker forces the computer's hands, e.g. Sequence(Scissor, Paper).
func WithPicker(p Picker) Option {
	return func(g *Game) {
		g.picker = p
	}
}

// WithTiming overrides the default presentation delays.
func WithTiming(t Timing) Option {
	return func(g *Game) {
		g.timing = t
	}
}

// WithGameClock sets the clock handed to every round machine.
func WithGameClock(c quartz.Clock) Option {
	return func(g *Game) {
		g.clock = c
	}
}

// WithIcons replaces the builtin text-art hands.
func WithIcons(set IconSet) Option {
	return func(g *Game) {
		g.icons = set
	}
}

// WithLogger sets the logger used for round events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates a game. Call Reset before the first Step.
func New(opts ...Option) *Game {
	g := &Game{
		timing: DefaultTiming(),
		clock:  quartz.NewReal(),
		icons:  BuiltinIcons(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "rps"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Rock Paper Scissors"
}

// Reset starts a fresh session: score 0 : 0, no round in play.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	picker := g.picker
	if picker == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		picker = NewRandomPicker(seed)
	}
	if cfg.Tick > 0 {
		g.timing.Tick = cfg.Tick
	}

	g.machine = NewMachine(picker, g.timing, WithClock(g.clock))
	g.history = g.history[:0]
	g.hovered = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.logger.Debug("session reset", "seed", cfg.Seed, "screen", [2]int{cfg.ScreenW, cfg.ScreenH})
}

// Resize recomputes the board for a new screen size. The score and the
// round in play are kept.
func (g *Game) Resize(w, h int) {
	g.layout = NewLayout(w, h)
}

// Hover records the pointer position for button highlighting.
func (g *Game) Hover(x, y int) {
	g.hover = core.Point{X: x, Y: y}
	g.hovered = true
}

// ButtonAt returns the choice under (x, y), if any.
func (g *Game) ButtonAt(x, y int) (Choice, bool) {
	return g.layout.ButtonAt(x, y)
}

// Step feeds this tick's input to the round machine and then lets elapsed
// time move it forward. Input that names no choice, or arrives while a
// round is already running, is ignored.
func (g *Game) Step(in core.InputFrame) StepResult {
	if c, ok := g.choiceFrom(in); ok {
		if g.machine.Select(c) {
			r := g.machine.Round()
			g.logger.Debug("round started", "round", r.Number, "player", r.Player, "computer", r.Computer)
		}
	}

	res, resolved := g.machine.Update()
	result := StepResult{
		Phase: g.machine.Phase(),
		Score: g.machine.Score(),
		Round: g.machine.Round().Number,
	}
	if resolved {
		g.record(res.Outcome)
		result.Resolved = &res
		g.logger.Info("round resolved",
			"round", res.Round,
			"player", res.Player,
			"computer", res.Computer,
			"outcome", res.Outcome,
			"score", res.Score.String(),
		)
	}
	return result
}

// choiceFrom extracts the selected hand from an input frame. Keys win over
// a pointer press in the same tick.
func (g *Game) choiceFrom(in core.InputFrame) (Choice, bool) {
	if g.layout.TooSmall {
		return 0, false
	}
	switch {
	case in.Has(core.ActionRock):
		return Rock, true
	case in.Has(core.ActionPaper):
		return Paper, true
	case in.Has(core.ActionScissor):
		return Scissor, true
	case in.Has(core.ActionPointer):
		g.Hover(in.Pointer.X, in.Pointer.Y)
		return g.layout.ButtonAt(in.Pointer.X, in.Pointer.Y)
	}
	return 0, false
}

func (g *Game) record(o Outcome) {
	g.history = append(g.history, o)
	if len(g.history) > historyLen {
		g.history = g.history[len(g.history)-historyLen:]
	}
}

// Machine exposes the round machine, mostly for inspection.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Score returns the running total.
func (g *Game) Score() Score {
	return g.machine.Score()
}

// History returns up to the last ten outcomes, oldest first.
func (g *Game) History() []Outcome {
	out := make([]Outcome, len(g.history))
	copy(out, g.history)
	return out
}
