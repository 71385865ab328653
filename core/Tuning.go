package core

import "math"

const (
	AspectRatio  = 16.0 / 9.0
	WindowHeight = 720.0
	WindowWidth  = WindowHeight * AspectRatio

	RacketHeight     = 100.0
	RacketWidth      = 20.0
	RacketEdgeOffset = 50.0
	RacketSpeed      = 400.0

	BallSize  = 5.0
	BallSpeed = 500.0

	ScatterFactor = 0.3

	// ServeToPlayerTwo and ServeToPlayerOne are the ball headings after a goal.
	ServeToPlayerTwo = 0.5 * math.Pi
	ServeToPlayerOne = -0.5 * math.Pi
)

// Tuning is the only configuration surface of the physics.
type Tuning struct {
	AspectRatio  float64
	WindowHeight float64

	RacketHeight     float64
	RacketWidth      float64
	RacketEdgeOffset float64
	RacketSpeed      float64

	BallSize  float64
	BallSpeed float64

	ScatterFactor float64

	// WinningScore ends the match when reached; zero keeps scoring forever.
	WinningScore int

	// LatchReflections stops the wall rule from firing again while the ball
	// is still past the wall but already heading back in.
	LatchReflections bool
}

// DefaultTuning is the classic 1280x720 field.
func DefaultTuning() Tuning {
	return Tuning{
		AspectRatio:      AspectRatio,
		WindowHeight:     WindowHeight,
		RacketHeight:     RacketHeight,
		RacketWidth:      RacketWidth,
		RacketEdgeOffset: RacketEdgeOffset,
		RacketSpeed:      RacketSpeed,
		BallSize:         BallSize,
		BallSpeed:        BallSpeed,
		ScatterFactor:    ScatterFactor,
	}
}

// WindowWidth is the playfield width, WindowHeight times AspectRatio.
func (t Tuning) WindowWidth() float64 {
	return t.WindowHeight * t.AspectRatio
}

// HalfWidth is the |x| of the goal lines.
func (t Tuning) HalfWidth() float64 {
	return 0.5 * t.WindowWidth()
}

// HalfHeight is the |y| of the walls.
func (t Tuning) HalfHeight() float64 {
	return 0.5 * t.WindowHeight
}

// RacketLimit is the largest |y| a racket centre may reach.
func (t Tuning) RacketLimit() float64 {
	return t.HalfHeight() - 0.5*t.RacketHeight
}

// RacketX is the fixed horizontal position of p's racket.
func (t Tuning) RacketX(p Player) float64 {
	x := t.HalfWidth() - t.RacketEdgeOffset
	if p == PlayerOne {
		return -x
	}
	return x
}
