package engine

import (
	"pong/core"

	"github.com/yohamta/donburi"
)

// Spawn creates the two rackets, the ball and the scoreboard.
func Spawn(world donburi.World, t core.Tuning) {
	SpawnRacket(world, core.PlayerOne, t)
	SpawnRacket(world, core.PlayerTwo, t)
	SpawnBall(world)
	SpawnScoreboard(world)
}

// SpawnRacket places p's racket at its edge of the field, centred vertically.
func SpawnRacket(world donburi.World, p core.Player, t core.Tuning) donburi.Entity {
	e := world.Create(RacketComponent, TransformComponent)
	entry := world.Entry(e)

	RacketComponent.SetValue(entry, core.Racket{Player: p})
	TransformComponent.SetValue(entry, Transform{Position: core.Vec2{X: t.RacketX(p)}})
	return e
}

// SpawnBall places a resting ball at the centre, facing Player 2.
func SpawnBall(world donburi.World) donburi.Entity {
	e := world.Create(BallComponent, TransformComponent)
	entry := world.Entry(e)

	BallComponent.SetValue(entry, core.Ball{Direction: core.ServeToPlayerTwo})
	return e
}

// SpawnScoreboard adds a board at 0 - 0.
func SpawnScoreboard(world donburi.World) donburi.Entity {
	e := world.Create(ScoreboardComponent)
	entry := world.Entry(e)

	ScoreboardComponent.SetValue(entry, core.NewScoreboard())
	return e
}
