// Package client joins a networked match and renders it in the terminal.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"pong/core"
	"pong/logger"
	"pong/view"

	"github.com/gdamore/tcell"
)

var ErrRoomFull = errors.New("room is full")

type Client struct {
	conn   net.Conn
	screen tcell.Screen
	view   *view.View

	mu        sync.Mutex
	roomId    string
	seat      core.Player
	situation core.Situation
	message   string
}

func New(conn net.Conn, screen tcell.Screen, t core.Tuning) *Client {
	return &Client{
		conn:      conn,
		screen:    screen,
		view:      view.New(screen, t),
		situation: core.Situation{Board: core.NewScoreboard()},
		message:   "waiting for an opponent",
	}
}

func Run(settings core.Settings) error {
	conn, err := net.Dial("tcp", settings.Address())
	if err != nil {
		return fmt.Errorf("connect %s: %w", settings.Address(), err)
	}
	defer conn.Close()
	logger.Log.Info(fmt.Sprintf(logger.ConnectMsg, settings.Address()))

	screen, err := view.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	c := New(conn, screen, settings.Tuning)
	stop := make(chan struct{})
	defer close(stop)
	go c.heartbeat(settings.Heartbeat, stop)
	go c.listenOperation()
	return c.readServerMsg()
}

// heartbeat tells the server this client is alive every period until stop
// closes or a write fails.
func (c *Client) heartbeat(period time.Duration, stop <-chan struct{}) {
	if period <= 0 {
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := c.conn.Write([]byte(core.GenerateHeartBeatPayload())); err != nil {
				return
			}
		}
	}
}

// listenOperation forwards key presses to the server until a quit key.
func (c *Client) listenOperation() {
	for {
		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			c.draw()
		case *tcell.EventKey:
			if view.IsQuit(ev) {
				c.mu.Lock()
				roomId := c.roomId
				c.mu.Unlock()
				c.send(core.GenerateInterruptBattle(roomId, c.conn.LocalAddr().String()))
				c.conn.Close()
				return
			}
			if op, ok := view.RemoteOperation(ev); ok {
				c.send(core.GenerateOperationPayload(op))
			}
		}
	}
}

func (c *Client) send(payload string) {
	if _, err := c.conn.Write([]byte(payload)); err != nil {
		logger.Log.Error(fmt.Sprintf(logger.SendMsgContentMsg, c.conn.RemoteAddr(), err))
	}
}

// readServerMsg applies server payloads until the connection ends.
func (c *Client) readServerMsg() error {
	reader := bufio.NewReader(c.conn)
	for {
		header, payload, err := core.ReadPayload(reader)
		if err != nil {
			if errors.Is(err, core.ErrMalformedPayload) {
				logger.Log.Warn(err.Error())
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("%s: %w", logger.ConnBrokenMsg, err)
		}
		if err := c.handlePayload(header, payload); err != nil {
			return err
		}
	}
}

func (c *Client) handlePayload(header, payload string) error {
	c.mu.Lock()

	switch header {

	case core.EnterRoomHeader:
		roomId, seat, err := core.ParseEnterRoom(payload)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.roomId, c.seat = roomId, seat
		c.message = fmt.Sprintf("you are %s, waiting for an opponent", seat)

	case core.RoomFullHeader:
		c.mu.Unlock()
		return ErrRoomFull

	case core.StartBattleHeader:
		c.message = ""

	case core.BattleSituationHeader:
		s, err := core.ParseBattlePayload(payload)
		if err != nil {
			c.mu.Unlock()
			logger.Log.Warn(err.Error())
			return nil
		}
		c.situation = s
		c.message = view.Status(s)

	case core.InterruptBattleHeader, core.ConnBrokenHeader:
		c.message = "opponent left, waiting for a new one"
	}

	c.mu.Unlock()
	c.draw()
	return nil
}

func (c *Client) draw() {
	c.mu.Lock()
	s, message := c.situation, c.message
	c.mu.Unlock()
	c.view.Draw(s, message)
}

// Seat returns the player this client controls, NoPlayer before entering a room.
func (c *Client) Seat() core.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seat
}

func (c *Client) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}
