// Package view draws a match onto a tcell screen.
package view

import (
	"fmt"
	"math"

	"pong/core"

	"github.com/gdamore/tcell"
)

const BallSymbol = 0x25CF   // ●
const PaddleSymbol = 0x2588 // █
const NetSymbol = 0x2590    // ▐

// NewScreen initialises the terminal with the game's colours.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	defaultStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite)
	screen.SetStyle(defaultStyle)
	return screen, nil
}

// View maps playfield coordinates onto terminal cells.
type View struct {
	screen tcell.Screen
	tuning core.Tuning
}

func New(screen tcell.Screen, t core.Tuning) *View {
	return &View{screen: screen, tuning: t}
}

// Draw renders one frame with an optional status line at the bottom.
func (v *View) Draw(s core.Situation, status string) {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width == 0 || height == 0 {
		return
	}

	Print(v.screen, 0, width/2, 1, height, NetSymbol)

	racketRows := v.racketRows(height)
	for _, p := range []core.Player{core.PlayerOne, core.PlayerTwo} {
		col, row := v.Cell(core.Vec2{X: v.tuning.RacketX(p), Y: s.Rackets[p.Index()]})
		Print(v.screen, row-racketRows/2, col, 1, racketRows, PaddleSymbol)
	}

	col, row := v.Cell(s.Ball)
	Print(v.screen, row, col, 1, 1, BallSymbol)

	drawLetters(v.screen, width/4, 1, s.Board.Text[0])
	drawLetters(v.screen, (width/4)*3, 1, s.Board.Text[1])

	if status != "" {
		drawLetters(v.screen, width/2, height-1, status)
	}

	v.screen.Show()
}

// Cell converts a playfield position (origin centre, y up) to a column and row.
func (v *View) Cell(p core.Vec2) (int, int) {
	width, height := v.screen.Size()
	w, h := v.tuning.WindowWidth(), v.tuning.WindowHeight

	col := int(math.Floor((p.X + 0.5*w) / w * float64(width)))
	row := int(math.Floor((0.5*h - p.Y) / h * float64(height)))
	return clamp(col, 0, width-1), clamp(row, 0, height-1)
}

func (v *View) racketRows(height int) int {
	rows := int(math.Round(v.tuning.RacketHeight / v.tuning.WindowHeight * float64(height)))
	if rows < 1 {
		return 1
	}
	return rows
}

// Status is the hint shown under the field.
func Status(s core.Situation) string {
	switch {
	case s.Board.Over():
		return fmt.Sprintf("%s wins %s", s.Board.Winner, s.Board)
	case !s.Moving:
		return "press space to serve"
	}
	return ""
}

func Print(screen tcell.Screen, row, col, width, height int, ch rune) {
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			screen.SetContent(col+c, row+r, ch, nil, tcell.StyleDefault)
		}
	}
}

func drawLetters(screen tcell.Screen, x int, y int, word string) {
	runes := []rune(word)
	startX := x - len(runes)/2
	for i, letter := range runes {
		screen.SetContent(startX+i, y, letter, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
