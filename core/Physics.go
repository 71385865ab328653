package core

import "math"

// RacketPosition is a read-only view of a racket used by the collision test.
type RacketPosition struct {
	Player Player
	Pos    Vec2
}

// ControlRacket moves one racket along Y according to its owner's held keys
// and keeps it inside the field.
func ControlRacket(r Racket, pos *Vec2, c Controls, dt float64, t Tuning) {
	up, down := c.Up(r.Player), c.Down(r.Player)
	limit := t.RacketLimit()
	step := t.RacketSpeed * dt

	if up && pos.Y < limit {
		pos.Y = math.Min(pos.Y+step, limit)
	}
	if down && pos.Y > -limit {
		pos.Y = math.Max(pos.Y-step, -limit)
	}
}

// ServeBall puts a resting ball in play.
func ServeBall(b *Ball, serve bool) {
	if serve && !b.Moving {
		b.Moving = true
	}
}

// Reflect mirrors a heading about the horizontal axis.
func Reflect(direction float64) float64 {
	return math.Pi - direction
}

// Scatter is the extra deflection for a ball hitting a racket offset from its centre.
func Scatter(ballY, racketY float64, t Tuning) float64 {
	return t.ScatterFactor * (ballY - racketY) / t.RacketHeight * math.Pi
}

// BounceBall applies wall and racket reflections to the ball heading.
// It must run after the rackets moved and before the ball does.
func BounceBall(b *Ball, pos Vec2, rackets []RacketPosition, t Tuning) {
	if math.Abs(pos.Y) >= t.HalfHeight() {
		if !t.LatchReflections || headingOut(b.Direction, pos.Y) {
			b.Direction = Reflect(b.Direction)
		}
	}

	for _, r := range rackets {
		if !facing(r.Player, b.Direction) || !overlaps(pos, r.Pos, t) {
			continue
		}

		scatter := Scatter(pos.Y, r.Pos.Y, t)
		switch r.Player {
		case PlayerOne:
			b.Direction = 2*math.Pi - b.Direction - scatter
		case PlayerTwo:
			b.Direction = 2*math.Pi - b.Direction + scatter
		}
	}
}

// MoveBall advances a moving ball along its heading.
func MoveBall(b Ball, pos *Vec2, dt float64, t Tuning) {
	if !b.Moving {
		return
	}
	pos.X += math.Sin(b.Direction) * t.BallSpeed * dt
	pos.Y += math.Cos(b.Direction) * t.BallSpeed * dt
}

// ScoreGoal resets the ball when it leaves the field sideways and returns
// the player who scored.
func ScoreGoal(b *Ball, pos *Vec2, t Tuning) (Player, bool) {
	var scorer Player

	switch {
	case pos.X <= -t.HalfWidth():
		scorer = PlayerTwo
		b.Direction = ServeToPlayerTwo
	case pos.X >= t.HalfWidth():
		scorer = PlayerOne
		b.Direction = ServeToPlayerOne
	default:
		return NoPlayer, false
	}

	b.Moving = false
	*pos = Vec2{}
	return scorer, true
}

// Modulus is the floored remainder, always in [0, b) for positive b.
func Modulus(a, b float64) float64 {
	return math.Mod(math.Mod(a, b)+b, b)
}

// facing reports whether the ball travels toward p's side.
func facing(p Player, direction float64) bool {
	d := Modulus(direction, 2*math.Pi)
	switch p {
	case PlayerOne:
		return d >= math.Pi
	case PlayerTwo:
		return d <= math.Pi
	}
	return false
}

func overlaps(ball, racket Vec2, t Tuning) bool {
	halfW := 0.5*t.RacketWidth + 0.5*t.BallSize
	halfH := 0.5*t.RacketHeight + 0.5*t.BallSize
	return ball.X <= racket.X+halfW &&
		ball.X >= racket.X-halfW &&
		ball.Y >= racket.Y-halfH &&
		ball.Y <= racket.Y+halfH
}

// headingOut reports whether the vertical part of direction points past the wall at y.
func headingOut(direction, y float64) bool {
	return math.Cos(direction)*y > 0
}
