package rps

import (
	"fmt"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

const (
	colorPlayer   = core.ColorBrightGreen
	colorComputer = core.ColorBrightRed
	colorCaption  = core.ColorBrightYellow
)

// Render draws the board into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	l := g.layout

	if l.TooSmall {
		g.renderTooSmall(dst)
		return
	}

	dst.SetPen(core.ColorBrightWhite)
	dst.DrawTextCentered(l.Title, g.Title())

	g.renderScore(dst)
	g.renderHistory(dst)

	dst.SetPen(core.ColorWhite)
	dst.DrawBox(l.Field)

	g.renderHands(dst)
	g.renderCaption(dst)
	g.renderButtons(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Terminal too small"
	need := fmt.Sprintf("need %dx%d, have %dx%d", MinScreenW, MinScreenH, g.layout.W, g.layout.H)
	y := dst.Height() / 2
	dst.SetPen(core.ColorYellow)
	dst.DrawTextCentered(y-1, msg)
	dst.SetPen(core.ColorGray)
	dst.DrawTextCentered(y, need)
}

// renderScore draws "YOU  n : m  CPU" with each side in its colour.
func (g *Game) renderScore(dst *core.Screen) {
	s := g.machine.Score()
	left := fmt.Sprintf("YOU  %d", s.Player)
	right := fmt.Sprintf("%d  CPU", s.Computer)
	mid := dst.Width() / 2

	dst.SetPen(colorPlayer)
	dst.DrawText(mid-2-len(left), g.layout.ScoreRow, left)
	dst.SetPen(core.ColorWhite)
	dst.DrawText(mid-1, g.layout.ScoreRow, ":")
	dst.SetPen(colorComputer)
	dst.DrawText(mid+1, g.layout.ScoreRow, right)
}

// renderHistory draws recent outcomes as W/L/T markers.
func (g *Game) renderHistory(dst *core.Screen) {
	if len(g.history) == 0 {
		return
	}
	const label = "last: "
	width := len(label) + 2*len(g.history) - 1
	x := (dst.Width() - width) / 2
	y := g.layout.History

	dst.SetPen(core.ColorGray)
	dst.DrawText(x, y, label)
	x += len(label)
	for i, o := range g.history {
		mark, color := outcomeMark(o)
		dst.SetCell(x+2*i, y, core.Cell{Rune: mark, Color: color})
	}
}

func outcomeMark(o Outcome) (rune, core.Color) {
	switch o {
	case OutcomePlayerWins:
		return 'W', colorPlayer
	case OutcomeComputerWins:
		return 'L', colorComputer
	default:
		return 'T', core.ColorGray
	}
}

func (g *Game) renderHands(dst *core.Screen) {
	l := g.layout

	dst.SetPen(colorPlayer)
	dst.DrawText(l.PlayerAt.X, l.PlayerAt.Y-1, "YOU")
	dst.SetPen(colorComputer)
	dst.DrawText(l.CompAt.X+IconW-3, l.CompAt.Y-1, "CPU")

	player, computer, ok := g.machine.Shown()
	if !ok {
		return
	}
	drawIcon(dst, l.PlayerAt, g.icons.Get(player), colorPlayer)
	drawIcon(dst, l.CompAt, g.icons.Get(computer).Mirror(), colorComputer)
}

// drawIcon copies the icon's non-space runes onto dst.
func drawIcon(dst *core.Screen, at core.Point, ic Icon, color core.Color) {
	for y := range IconH {
		for x := range IconW {
			r := ic.At(x, y)
			if r == ' ' {
				continue
			}
			dst.SetCell(at.X+x, at.Y+y, core.Cell{Rune: r, Color: color})
		}
	}
}

func (g *Game) renderCaption(dst *core.Screen) {
	l := g.layout
	inner := l.Field.Inset(1)

	caption, _ := g.machine.Caption()
	if caption == "" {
		dst.SetPen(core.ColorGray)
		dst.DrawTextIn(core.NewRect(inner.X, l.Caption, inner.W, 1), "Pick your hand")
		return
	}
	dst.SetPen(colorCaption)
	dst.DrawTextIn(core.NewRect(inner.X, l.Caption, inner.W, 1), caption)

	if g.machine.Phase() != PhaseScored {
		return
	}
	res, ok := g.machine.Last()
	if !ok {
		return
	}
	text, color := verdict(res)
	dst.SetPen(color)
	dst.DrawTextIn(core.NewRect(inner.X, l.Verdict, inner.W, 1), text)
}

func verdict(res Resolution) (string, core.Color) {
	switch res.Outcome {
	case OutcomePlayerWins:
		return fmt.Sprintf("%s beats %s - you win!", res.Player.Label(), res.Computer.Label()), colorPlayer
	case OutcomeComputerWins:
		return fmt.Sprintf("%s beats %s - computer wins", res.Computer.Label(), res.Player.Label()), colorComputer
	default:
		return fmt.Sprintf("both %s - tie", res.Player.Label()), core.ColorGray
	}
}

// renderButtons draws the three choice buttons. The hand in play, or the one
// under the pointer while idle, gets a heavy yellow frame.
func (g *Game) renderButtons(dst *core.Screen) {
	round := g.machine.Round()
	for _, b := range g.layout.Buttons {
		active := false
		if player, _, ok := round.Choices(); ok {
			active = player == b.Choice
		} else if g.hovered {
			active = b.Rect.Contains(g.hover.X, g.hover.Y)
		}

		if active {
			dst.SetPen(core.ColorBrightYellow)
			dst.DrawHeavyBox(b.Rect)
		} else {
			dst.SetPen(core.ColorWhite)
			dst.DrawBox(b.Rect)
		}
		dst.DrawTextIn(core.NewRect(b.Rect.X, b.Rect.Y+1, b.Rect.W, 1), b.Choice.Label())
	}
}
