// Package engine hosts the Pong entities in a donburi world and runs the
// per-frame systems over them in a fixed order.
package engine

import (
	"pong/core"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Transform is the entity position on the playfield.
type Transform struct {
	Position core.Vec2
}

var (
	TransformComponent  = donburi.NewComponentType[Transform]()
	RacketComponent     = donburi.NewComponentType[core.Racket]()
	BallComponent       = donburi.NewComponentType[core.Ball]()
	ScoreboardComponent = donburi.NewComponentType[core.Scoreboard]()

	HostedTag = donburi.NewTag("Hosted")
)

var (
	racketQuery     = donburi.NewQuery(filter.Contains(RacketComponent, TransformComponent))
	ballQuery       = donburi.NewQuery(filter.Contains(BallComponent, TransformComponent))
	scoreboardQuery = donburi.NewQuery(filter.Contains(ScoreboardComponent))
)

// Goal is published when the ball leaves the field sideways.
type Goal struct {
	Scorer core.Player
}

var GoalEvent = events.NewEventType[Goal]()
