package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"pong/core"
	"pong/engine"
	"pong/logger"

	"github.com/google/uuid"
)

var ErrRoomFull = errors.New("room is full")

const writeTimeout = time.Second

// Seat is one connected player.
type Seat struct {
	Player         core.Player
	IdAkaIpAddress string

	conn net.Conn
	mu   sync.Mutex
}

func (s *Seat) send(payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := s.conn.Write([]byte(payload))
	return err
}

// Room seats two players and runs their battle.
type Room struct {
	RoomId string

	settings core.Settings
	latch    *core.KeyLatch

	mu    sync.Mutex
	seats [2]*Seat
	stop  chan struct{}
	done  chan struct{}
}

func NewRoom(settings core.Settings) *Room {
	return &Room{
		RoomId:   uuid.NewString(),
		settings: settings,
		latch:    core.NewKeyLatch(settings.Hold),
	}
}

// Join takes the first free seat, Player 1 before Player 2.
func (r *Room) Join(conn net.Conn) (*Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.seats {
		if s != nil {
			continue
		}
		seat := &Seat{
			Player:         core.Player(i + 1),
			IdAkaIpAddress: conn.RemoteAddr().String(),
			conn:           conn,
		}
		r.seats[i] = seat
		return seat, nil
	}
	return nil, ErrRoomFull
}

func (r *Room) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[0] != nil && r.seats[1] != nil
}

func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[0] == nil && r.seats[1] == nil
}

// Leave frees the seat, stops a running battle and tells whoever remains.
func (r *Room) Leave(seat *Seat, header string) {
	r.mu.Lock()
	if r.seats[seat.Player.Index()] != seat {
		r.mu.Unlock()
		return
	}
	r.seats[seat.Player.Index()] = nil
	r.mu.Unlock()

	r.stopBattle()
	seat.conn.Close()

	var payload string
	switch header {
	case core.InterruptBattleHeader:
		payload = core.GenerateInterruptBattle(r.RoomId, seat.IdAkaIpAddress)
		logger.Log.Info(fmt.Sprintf(logger.InterruptBattleMsg, seat.IdAkaIpAddress, r.RoomId))
	default:
		payload = core.GenerateConnBrokenPayload(seat.IdAkaIpAddress)
		logger.Log.Warn(fmt.Sprintf(logger.CompetitorConnBrokenMsg, seat.IdAkaIpAddress))
	}
	r.broadcast(payload)
}

// Operate records a player's input for the next frames.
func (r *Room) Operate(seat *Seat, op core.Operation) {
	action, ok := op.Action(seat.Player)
	if !ok {
		return
	}
	r.mu.Lock()
	latch := r.latch
	r.mu.Unlock()
	latch.Press(action, time.Now())
}

// StartBattle announces the battle and starts the frame loop on a fresh match.
func (r *Room) StartBattle() error {
	host, err := engine.NewMatch(r.settings.Tuning)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return nil
	}
	stop, done := make(chan struct{}), make(chan struct{})
	r.stop, r.done = stop, done
	r.latch = core.NewKeyLatch(r.settings.Hold)
	latch := r.latch
	r.mu.Unlock()

	r.broadcast(core.GenerateStartBattlePayload(r.RoomId))
	logger.Log.Info(fmt.Sprintf(logger.StartBattleMsg, r.RoomId))

	go r.startGame(host, latch, stop, done)
	return nil
}

func (r *Room) startGame(host *engine.Host, latch *core.KeyLatch, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.settings.Frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			host.Update(latch.Controls(now), dt)
			r.broadcast(core.GenerateBattlePayload(host.Situation()))
		}
	}
}

func (r *Room) stopBattle() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// broadcast sends to every seated player. A failed write closes that
// connection; its reader then reports the broken connection.
func (r *Room) broadcast(payload string) {
	r.mu.Lock()
	seats := r.seats
	r.mu.Unlock()

	for _, seat := range seats {
		if seat == nil {
			continue
		}
		if err := seat.send(payload); err != nil {
			logger.Log.Error(logger.ConnBrokenMsg + " => " + seat.IdAkaIpAddress)
			seat.conn.Close()
		}
	}
}

func (r *Room) closeSeats() {
	r.mu.Lock()
	seats := r.seats
	r.mu.Unlock()

	for _, seat := range seats {
		if seat != nil {
			seat.conn.Close()
		}
	}
}
