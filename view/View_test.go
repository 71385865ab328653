package view

import (
	"testing"

	"pong/core"

	"github.com/gdamore/tcell"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestCell(t *testing.T) {
	v := New(newSimScreen(t, 80, 24), core.DefaultTuning())
	tests := []struct {
		pos      core.Vec2
		col, row int
	}{
		{core.Vec2{}, 40, 12},
		{core.Vec2{X: -640, Y: 360}, 0, 0},
		{core.Vec2{X: 640, Y: -360}, 79, 23},
		{core.Vec2{X: -5000, Y: 5000}, 0, 0},
		{core.Vec2{X: -590}, 3, 12},
	}
	for _, tt := range tests {
		col, row := v.Cell(tt.pos)
		if col != tt.col || row != tt.row {
			t.Errorf("Cell(%+v) = (%d, %d), want (%d, %d)", tt.pos, col, row, tt.col, tt.row)
		}
	}
}

func TestDraw(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	v := New(screen, core.DefaultTuning())

	s := core.Situation{Board: core.NewScoreboard()}
	s.Board.Award(core.PlayerTwo, 0)
	s.Board.Award(core.PlayerTwo, 0)
	s.Board.Award(core.PlayerOne, 0)
	v.Draw(s, "")

	if r := runeAt(screen, 40, 12); r != BallSymbol {
		t.Errorf("ball cell %q, want %q", r, rune(BallSymbol))
	}
	for row := 11; row <= 13; row++ {
		if r := runeAt(screen, 3, row); r != PaddleSymbol {
			t.Errorf("player 1 racket row %d: %q", row, r)
		}
	}
	if r := runeAt(screen, 3, 15); r == PaddleSymbol {
		t.Error("player 1 racket drawn too tall")
	}
	if r := runeAt(screen, 20, 1); r != '1' {
		t.Errorf("player 1 score %q, want '1'", r)
	}
	if r := runeAt(screen, 60, 1); r != '2' {
		t.Errorf("player 2 score %q, want '2'", r)
	}
	if r := runeAt(screen, 40, 0); r != NetSymbol {
		t.Errorf("net %q", r)
	}
}

func TestStatus(t *testing.T) {
	s := core.Situation{Board: core.NewScoreboard()}
	if Status(s) == "" {
		t.Error("resting ball has no serve hint")
	}
	s.Moving = true
	if Status(s) != "" {
		t.Errorf("rally status %q, want empty", Status(s))
	}
	s.Board.Award(core.PlayerOne, 1)
	if got := Status(s); got != "Player 1 wins 1 - 0" {
		t.Errorf("status %q", got)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		ev     *tcell.EventKey
		action core.Action
		op     core.Operation
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), core.ActionP1Up, core.OperationUp},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), core.ActionP1Down, core.OperationDown},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionP2Up, core.OperationUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), core.ActionP2Down, core.OperationDown},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionServe, core.OperationServe},
	}
	for _, tt := range tests {
		if a, ok := LocalAction(tt.ev); !ok || a != tt.action {
			t.Errorf("LocalAction(%s) = %v %v, want %v", tt.ev.Name(), a, ok, tt.action)
		}
		if op, ok := RemoteOperation(tt.ev); !ok || op != tt.op {
			t.Errorf("RemoteOperation(%s) = %q %v, want %q", tt.ev.Name(), op, ok, tt.op)
		}
	}

	if _, ok := LocalAction(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Error("unbound key mapped")
	}
	if !IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) || !IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("quit keys not recognised")
	}
}
