package engine

import (
	"errors"
	"fmt"
	"math"

	"pong/core"
	"pong/logger"

	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var ErrCardinality = errors.New("entity cardinality")

// ErrHosted is returned when a world already has a Host driving it.
var ErrHosted = errors.New("world already hosted")

// Host owns the world and the resolved singleton entities.
// It is driven from a single goroutine.
type Host struct {
	world  donburi.World
	tuning core.Tuning

	ball       donburi.Entity
	scoreboard donburi.Entity
	rackets    [2]donburi.Entity
}

// NewHost resolves the ball, the scoreboard and one racket per player.
// Anything other than exactly that set is a configuration error. A world
// gets one Host; the scoreboard carries HostedTag once it has one.
func NewHost(world donburi.World, t core.Tuning) (*Host, error) {
	h := &Host{world: world, tuning: t}

	if n := ballQuery.Count(world); n != 1 {
		return nil, fmt.Errorf("want 1 ball, found %d: %w", n, ErrCardinality)
	}
	if n := scoreboardQuery.Count(world); n != 1 {
		return nil, fmt.Errorf("want 1 scoreboard, found %d: %w", n, ErrCardinality)
	}
	ballEntry, _ := ballQuery.First(world)
	h.ball = ballEntry.Entity()
	boardEntry, _ := scoreboardQuery.First(world)
	if boardEntry.HasComponent(HostedTag) {
		return nil, ErrHosted
	}
	h.scoreboard = boardEntry.Entity()

	var found [2]int
	var invalid int
	racketQuery.Each(world, func(entry *donburi.Entry) {
		p := RacketComponent.Get(entry).Player
		if !p.Valid() {
			invalid++
			return
		}
		found[p.Index()]++
		h.rackets[p.Index()] = entry.Entity()
	})
	if invalid > 0 {
		return nil, fmt.Errorf("%d rackets without an owner: %w", invalid, ErrCardinality)
	}
	for i, n := range found {
		if n != 1 {
			return nil, fmt.Errorf("want 1 racket for %v, found %d: %w", core.Player(i+1), n, ErrCardinality)
		}
	}

	boardEntry.AddComponent(HostedTag)
	GoalEvent.Subscribe(world, h.onGoal)
	return h, nil
}

// NewMatch spawns a fresh set of entities in a new world.
func NewMatch(t core.Tuning) (*Host, error) {
	world := donburi.NewWorld()
	Spawn(world, t)
	return NewHost(world, t)
}

func (h *Host) World() donburi.World {
	return h.world
}

func (h *Host) Tuning() core.Tuning {
	return h.tuning
}

// Update runs one frame. Rackets move before the bounce test so the test sees
// this frame's racket positions, and the bounce runs before the ball moves.
func (h *Host) Update(c core.Controls, dt float64) {
	h.controlRackets(c, dt)
	h.serveBall(c.Serve)
	h.bounceBall()
	h.moveBall(dt)
	h.scoreGoal()
	GoalEvent.ProcessEvents(h.world)
}

func (h *Host) controlRackets(c core.Controls, dt float64) {
	for _, e := range h.rackets {
		entry := h.world.Entry(e)
		r := RacketComponent.Get(entry)
		core.ControlRacket(*r, &TransformComponent.Get(entry).Position, c, dt, h.tuning)
	}
}

func (h *Host) serveBall(serve bool) {
	if !serve || h.Scoreboard().Over() {
		return
	}
	b := BallComponent.Get(h.world.Entry(h.ball))
	if b.Moving {
		return
	}
	core.ServeBall(b, serve)

	toward := core.PlayerTwo
	if math.Sin(b.Direction) < 0 {
		toward = core.PlayerOne
	}
	logger.Log.Debug(fmt.Sprintf(logger.ServeMsg, toward))
}

func (h *Host) bounceBall() {
	entry := h.world.Entry(h.ball)
	rackets := make([]core.RacketPosition, 0, len(h.rackets))
	for _, e := range h.rackets {
		r := h.world.Entry(e)
		rackets = append(rackets, core.RacketPosition{
			Player: RacketComponent.Get(r).Player,
			Pos:    TransformComponent.Get(r).Position,
		})
	}
	core.BounceBall(BallComponent.Get(entry), TransformComponent.Get(entry).Position, rackets, h.tuning)
}

func (h *Host) moveBall(dt float64) {
	entry := h.world.Entry(h.ball)
	core.MoveBall(*BallComponent.Get(entry), &TransformComponent.Get(entry).Position, dt, h.tuning)
}

func (h *Host) scoreGoal() {
	entry := h.world.Entry(h.ball)
	scorer, ok := core.ScoreGoal(BallComponent.Get(entry), &TransformComponent.Get(entry).Position, h.tuning)
	if ok {
		GoalEvent.Publish(h.world, Goal{Scorer: scorer})
	}
}

func (h *Host) onGoal(w donburi.World, g Goal) {
	board := ScoreboardComponent.Get(w.Entry(h.scoreboard))
	board.Award(g.Scorer, h.tuning.WinningScore)

	logger.Log.WithFields(logrus.Fields{
		"scorer": g.Scorer.String(),
		"p1":     board.Score[0],
		"p2":     board.Score[1],
	}).Info(fmt.Sprintf(logger.GoalMsg, g.Scorer, board))

	if board.Over() {
		logger.Log.Info(fmt.Sprintf(logger.MatchOverMsg, board.Winner, board))
	}
}

// Ball returns the ball state and position.
func (h *Host) Ball() (core.Ball, core.Vec2) {
	entry := h.world.Entry(h.ball)
	return *BallComponent.Get(entry), TransformComponent.Get(entry).Position
}

// RacketPosition returns where p's racket is.
func (h *Host) RacketPosition(p core.Player) core.Vec2 {
	return TransformComponent.Get(h.world.Entry(h.rackets[p.Index()])).Position
}

func (h *Host) Scoreboard() core.Scoreboard {
	return *ScoreboardComponent.Get(h.world.Entry(h.scoreboard))
}

// Situation copies out what a viewer needs for the current frame.
func (h *Host) Situation() core.Situation {
	b, pos := h.Ball()
	return core.Situation{
		Ball:   pos,
		Moving: b.Moving,
		Rackets: [2]float64{
			h.RacketPosition(core.PlayerOne).Y,
			h.RacketPosition(core.PlayerTwo).Y,
		},
		Board: h.Scoreboard(),
	}
}
