package core

import (
	"fmt"
	"strconv"
)

// Vec2 is a playfield position. Origin is the centre of the field, Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Player identifies which side of the field a racket guards.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerOne
	PlayerTwo
)

// Index maps PlayerOne/PlayerTwo to 0/1 for per-player arrays.
func (p Player) Index() int {
	return int(p) - 1
}

// Valid reports whether p is PlayerOne or PlayerTwo.
func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return NoPlayer
}

// String is the display name, "Player 1" or "Player 2".
func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "Player 1"
	case PlayerTwo:
		return "Player 2"
	}
	return "Nobody"
}

// PlayerFromNumber converts the wire form (1 or 2) into a Player.
func PlayerFromNumber(n int) (Player, error) {
	p := Player(n)
	if !p.Valid() {
		return NoPlayer, fmt.Errorf("player number %d out of range", n)
	}
	return p, nil
}

// Racket marks an entity as the racket owned by Player.
type Racket struct {
	Player Player
}

// Ball holds the heading and serve state. Direction is measured from "up", clockwise.
type Ball struct {
	Direction float64
	Moving    bool
}

// Scoreboard keeps the counters and their display text in step.
type Scoreboard struct {
	Score  [2]int
	Text   [2]string
	Winner Player
}

// NewScoreboard starts both players at "0".
func NewScoreboard() Scoreboard {
	return Scoreboard{Text: [2]string{"0", "0"}}
}

// Award gives p one point and refreshes its text. A non-zero winningScore
// records the first player to reach it.
func (s *Scoreboard) Award(p Player, winningScore int) {
	i := p.Index()
	s.Score[i]++
	s.Text[i] = strconv.Itoa(s.Score[i])

	if winningScore > 0 && s.Winner == NoPlayer && s.Score[i] >= winningScore {
		s.Winner = p
	}
}

// Over reports whether a winner has been recorded.
func (s Scoreboard) Over() bool {
	return s.Winner != NoPlayer
}

// String renders the board as "p1 - p2".
func (s Scoreboard) String() string {
	return s.Text[0] + " - " + s.Text[1]
}
