// Package server hosts networked matches: players are paired into rooms,
// send battle operations and receive the battle situation every frame.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"pong/core"
	"pong/logger"
)

// MaxMissedHeartbeats is how many heartbeat periods a seat may stay silent.
const MaxMissedHeartbeats = 5

type Server struct {
	settings core.Settings

	mu       sync.Mutex
	rooms    map[string]*Room
	listener net.Listener
	closed   bool
	wg       sync.WaitGroup
}

func NewServer(settings core.Settings) *Server {
	if settings.MaxRooms <= 0 {
		settings.MaxRooms = 100
	}
	return &Server{
		settings: settings,
		rooms:    make(map[string]*Room),
	}
}

// Rooms lists the open rooms.
func (s *Server) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.settings.Address())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.settings.Address(), err)
	}
	return s.Serve(listener)
}

// Serve accepts players on listener until Close.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return net.ErrClosed
	}
	s.listener = listener
	s.mu.Unlock()

	logger.Log.Info(fmt.Sprintf(logger.ListenMsg, listener.Addr()))

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	listener := s.listener
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}
	for _, r := range rooms {
		r.stopBattle()
		r.closeSeats()
	}
	s.wg.Wait()
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// enterRoom seats conn in a room waiting for an opponent, or opens a new
// room while the lobby has space.
func (s *Server) enterRoom(conn net.Conn) (*Room, *Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil, net.ErrClosed
	}
	for _, r := range s.rooms {
		if seat, err := r.Join(conn); err == nil {
			return r, seat, nil
		}
	}

	if len(s.rooms) >= s.settings.MaxRooms {
		return nil, nil, ErrRoomFull
	}
	r := NewRoom(s.settings)
	s.rooms[r.RoomId] = r
	logger.Log.Info(fmt.Sprintf(logger.CreateRoomMsg, r.RoomId, len(s.rooms)))

	seat, err := r.Join(conn)
	return r, seat, err
}

// leaveRoom frees the seat and drops the room once nobody is left in it.
func (s *Server) leaveRoom(r *Room, seat *Seat, header string) {
	r.Leave(seat, header)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[r.RoomId] == r && r.Empty() {
		delete(s.rooms, r.RoomId)
		logger.Log.Info(fmt.Sprintf(logger.RemoveRoomMsg, r.RoomId, len(s.rooms)))
	}
}

func (s *Server) handleConn(conn net.Conn) {
	playerId := conn.RemoteAddr().String()

	room, seat, err := s.enterRoom(conn)
	if errors.Is(err, ErrRoomFull) {
		conn.Write([]byte(core.GenerateRoomFullPayload("")))
		conn.Close()
		logger.Log.Info(fmt.Sprintf(logger.LobbyFullMsg, s.settings.MaxRooms, playerId))
		return
	}
	if err != nil {
		conn.Close()
		return
	}

	if err := seat.send(core.GenerateEnterRoomPayload(room.RoomId, seat.Player)); err != nil {
		s.leaveRoom(room, seat, core.ConnBrokenHeader)
		return
	}
	logger.Log.Info(fmt.Sprintf(logger.PlayerEnterRoomMsg, playerId, room.RoomId, seat.Player))

	if room.Full() {
		if err := room.StartBattle(); err != nil {
			logger.Log.Error(err.Error())
		}
	}

	s.listenPlayerOperation(room, seat)
}

// listenPlayerOperation applies a seat's payloads until it leaves. Any payload,
// a heartbeat included, keeps the seat alive for another MaxMissedHeartbeats
// periods.
func (s *Server) listenPlayerOperation(room *Room, seat *Seat) {
	reader := bufio.NewReader(seat.conn)
	timeout := s.settings.Heartbeat * MaxMissedHeartbeats

	for {
		if timeout > 0 {
			seat.conn.SetReadDeadline(time.Now().Add(timeout))
		}
		header, payload, err := core.ReadPayload(reader)
		if err != nil {
			if errors.Is(err, core.ErrMalformedPayload) {
				logger.Log.Warn(err.Error())
				continue
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				logger.Log.Warn(fmt.Sprintf(logger.HeartbeatLostMsg, seat.IdAkaIpAddress, timeout))
			}
			s.leaveRoom(room, seat, core.ConnBrokenHeader)
			return
		}

		switch header {

		case core.HeartBeatHeader:
			logger.Log.Debug(fmt.Sprintf(logger.HeartbeatMsg, seat.IdAkaIpAddress))

		case core.BattleOperationHeader:
			op, err := core.ParseOperation(payload)
			if err != nil {
				logger.Log.Warn(err.Error())
				continue
			}
			room.Operate(seat, op)

		case core.InterruptBattleHeader:
			s.leaveRoom(room, seat, core.InterruptBattleHeader)
			return
		}
	}
}
