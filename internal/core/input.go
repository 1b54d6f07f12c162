package core

// Action is a semantic input, abstracted from the physical key or button.
type Action int

const (
	ActionNone     Action = iota
	ActionRock            // R, 1
	ActionPaper           // P, 2
	ActionScissor         // S, 3
	ActionQuit            // Q, Esc, Ctrl+C
	ActionHelp            // ? - toggle full help
	ActionPointer         // mouse press; see InputFrame.Pointer
	actionSentinel
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRock:
		return "Rock"
	case ActionPaper:
		return "Paper"
	case ActionScissor:
		return "Scissor"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	case ActionPointer:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// Point is a cell position.
type Point struct {
	X, Y int
}

// InputFrame collects everything the player did during one tick.
type InputFrame struct {
	actions [actionSentinel]bool

	// Pointer is the cell of the last pointer press this tick.
	// Only meaningful when Has(ActionPointer) is true.
	Pointer Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
// Unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionSentinel {
		return
	}
	f.actions[a] = true
}

// Press records a pointer press at (x, y).
func (f *InputFrame) Press(x, y int) {
	f.Pointer = Point{X: x, Y: y}
	f.Set(ActionPointer)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionSentinel {
		return false
	}
	return f.actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, set := range f.actions {
		if set {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}
