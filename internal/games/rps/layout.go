package rps

import "github.com/vovakirdan/rps-arcade/internal/core"

// Minimum screen size the board fits in.
const (
	MinScreenW = 2*IconW + 24
	MinScreenH = 21
)

const (
	buttonW = 13
	buttonH = 3
)

// Button is a clickable choice.
type Button struct {
	Choice Choice
	Rect   core.Rect
}

// Layout is the position of every board element for one screen size.
type Layout struct {
	W, H     int
	Title    int // row of the title
	ScoreRow int
	History  int // row of the recent-results strip
	Field    core.Rect
	PlayerAt core.Point // top-left of the player icon
	CompAt   core.Point // top-left of the computer icon
	Caption  int        // row of the reveal caption
	Verdict  int        // row of the round verdict
	Buttons  [NumChoices]Button
	TooSmall bool
}

// NewLayout computes the board for a w x h screen. Buttons sit on the bottom
// with their centres at 1/5, 1/2 and 4/5 of the width.
func NewLayout(w, h int) Layout {
	l := Layout{W: w, H: h}
	if w < MinScreenW || h < MinScreenH {
		l.TooSmall = true
		return l
	}

	l.Title = 0
	l.ScoreRow = 2
	l.History = 3

	btnY := h - buttonH - 1
	l.Field = core.NewRect(2, 4, w-4, btnY-1-4)

	inner := l.Field.Inset(1)
	iconY := inner.Y + 1
	// Each icon is centred in its half of the field.
	left := core.NewRect(inner.X, inner.Y, inner.W/2, inner.H)
	right := core.NewRect(left.Right(), inner.Y, inner.W-left.W, inner.H)
	lx, _ := left.Center()
	rx, _ := right.Center()
	l.PlayerAt = core.Point{X: lx - IconW/2, Y: iconY}
	l.CompAt = core.Point{X: rx - IconW/2, Y: iconY}
	l.Caption = iconY + IconH + 1
	l.Verdict = l.Caption + 1

	centres := [NumChoices]int{w / 5, w / 2, 4 * w / 5}
	for i, c := range Choices {
		l.Buttons[i] = Button{
			Choice: c,
			Rect:   core.NewRect(centres[i]-buttonW/2, btnY, buttonW, buttonH),
		}
	}
	return l
}

// ButtonAt returns the choice whose button contains (x, y).
func (l Layout) ButtonAt(x, y int) (Choice, bool) {
	if l.TooSmall {
		return 0, false
	}
	for _, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return b.Choice, true
		}
	}
	return 0, false
}
