package core

import (
	"testing"
	"time"
)

func TestKeyLatchHeldWindow(t *testing.T) {
	k := NewKeyLatch(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	if k.Held(ActionP1Up, start) {
		t.Fatal("key held before any press")
	}

	k.Press(ActionP1Up, start)
	if !k.Held(ActionP1Up, start.Add(50*time.Millisecond)) {
		t.Error("key not held inside the window")
	}
	if k.Held(ActionP1Up, start.Add(150*time.Millisecond)) {
		t.Error("key still held after the window")
	}

	k.Press(ActionP1Up, start.Add(90*time.Millisecond))
	if !k.Held(ActionP1Up, start.Add(150*time.Millisecond)) {
		t.Error("repeat did not extend the hold")
	}

	k.Release(ActionP1Up)
	if k.Held(ActionP1Up, start.Add(151*time.Millisecond)) {
		t.Error("key held after release")
	}
}

func TestKeyLatchServeIsEdgeTriggered(t *testing.T) {
	k := NewKeyLatch(100 * time.Millisecond)
	now := time.Unix(1000, 0)

	k.Press(ActionServe, now)
	if c := k.Controls(now); !c.Serve {
		t.Fatal("first frame after press did not serve")
	}
	if c := k.Controls(now.Add(10 * time.Millisecond)); c.Serve {
		t.Fatal("serve reported twice for one press")
	}

	// auto-repeat while held
	k.Press(ActionServe, now.Add(40*time.Millisecond))
	if c := k.Controls(now.Add(50 * time.Millisecond)); c.Serve {
		t.Error("auto-repeat counted as a new serve")
	}

	k.Press(ActionServe, now.Add(time.Second))
	if c := k.Controls(now.Add(time.Second)); !c.Serve {
		t.Error("second press after release did not serve")
	}
}

func TestKeyLatchShortPressMovesOneFrame(t *testing.T) {
	k := NewKeyLatch(0)
	now := time.Unix(1000, 0)

	k.Press(ActionP2Down, now)
	c := k.Controls(now.Add(time.Second))
	if !c.P2Down || c.P2Up || c.P1Down {
		t.Fatalf("got %+v, want only P2Down", c)
	}
	if c := k.Controls(now.Add(2 * time.Second)); c.P2Down {
		t.Error("press consumed twice")
	}
}

func TestControlsForPlayer(t *testing.T) {
	c := Controls{P1Up: true, P2Down: true}
	if !c.Up(PlayerOne) || c.Down(PlayerOne) {
		t.Errorf("player one: up %v down %v", c.Up(PlayerOne), c.Down(PlayerOne))
	}
	if c.Up(PlayerTwo) || !c.Down(PlayerTwo) {
		t.Errorf("player two: up %v down %v", c.Up(PlayerTwo), c.Down(PlayerTwo))
	}
	if c.Up(NoPlayer) || c.Down(NoPlayer) {
		t.Error("controls reported for no player")
	}
}
