package view

import (
	"pong/core"

	"github.com/gdamore/tcell"
)

// LocalAction maps a key to a binding for two players sharing one keyboard.
func LocalAction(ev *tcell.EventKey) (core.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.ActionP2Up, true
	case tcell.KeyDown:
		return core.ActionP2Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return core.ActionP1Up, true
		case 's', 'S':
			return core.ActionP1Down, true
		case ' ':
			return core.ActionServe, true
		}
	}
	return 0, false
}

// RemoteOperation maps a key to an operation for the player at this terminal.
// Either key pair moves the player's own racket.
func RemoteOperation(ev *tcell.EventKey) (core.Operation, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.OperationUp, true
	case tcell.KeyDown:
		return core.OperationDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return core.OperationUp, true
		case 's', 'S':
			return core.OperationDown, true
		case ' ':
			return core.OperationServe, true
		}
	}
	return "", false
}

func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
