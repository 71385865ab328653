package core

import (
	"sync"
	"time"
)

// Action is one bindable game input.
type Action uint8

const (
	ActionP1Up Action = iota
	ActionP1Down
	ActionP2Up
	ActionP2Down
	ActionServe
	actionCount
)

// Controls is the input sampled for a single frame.
type Controls struct {
	P1Up, P1Down bool
	P2Up, P2Down bool
	// Serve is true only on the frame the serve key went down.
	Serve bool
}

func (c Controls) Up(p Player) bool {
	switch p {
	case PlayerOne:
		return c.P1Up
	case PlayerTwo:
		return c.P2Up
	}
	return false
}

func (c Controls) Down(p Player) bool {
	switch p {
	case PlayerOne:
		return c.P1Down
	case PlayerTwo:
		return c.P2Down
	}
	return false
}

// UpAction and DownAction return the bindings for p's racket.
func UpAction(p Player) Action {
	if p == PlayerTwo {
		return ActionP2Up
	}
	return ActionP1Up
}

func DownAction(p Player) Action {
	if p == PlayerTwo {
		return ActionP2Down
	}
	return ActionP1Down
}

// KeyLatch turns a stream of key events into held and just-pressed state.
// Terminals and sockets only report presses (plus auto-repeat), so a key
// counts as held for HoldWindow after its last event.
//
// Press may be called from any goroutine; Controls is called by the frame loop.
type KeyLatch struct {
	HoldWindow time.Duration

	mu      sync.Mutex
	last    [actionCount]time.Time
	pending [actionCount]bool
}

func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{HoldWindow: hold}
}

func (k *KeyLatch) Press(a Action, now time.Time) {
	if a >= actionCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	// auto-repeat of a held key is not a new press
	if !k.heldLocked(a, now) {
		k.pending[a] = true
	}
	k.last[a] = now
}

// Release forgets a held key for transports that report key-up.
func (k *KeyLatch) Release(a Action) {
	if a >= actionCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.last[a] = time.Time{}
}

func (k *KeyLatch) Held(a Action, now time.Time) bool {
	if a >= actionCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.heldLocked(a, now)
}

// Pressed reports a rising edge once and clears it.
func (k *KeyLatch) Pressed(a Action) bool {
	if a >= actionCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	p := k.pending[a]
	k.pending[a] = false
	return p
}

// Controls samples the latch for the frame at now. Pending presses of the
// movement keys are consumed so they count as held for at least one frame.
func (k *KeyLatch) Controls(now time.Time) Controls {
	held := func(a Action) bool {
		return k.Pressed(a) || k.Held(a, now)
	}
	return Controls{
		P1Up:   held(ActionP1Up),
		P1Down: held(ActionP1Down),
		P2Up:   held(ActionP2Up),
		P2Down: held(ActionP2Down),
		Serve:  k.Pressed(ActionServe),
	}
}

func (k *KeyLatch) heldLocked(a Action, now time.Time) bool {
	last := k.last[a]
	return !last.IsZero() && now.Sub(last) <= k.HoldWindow
}
