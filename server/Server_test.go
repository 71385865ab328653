package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"pong/core"
)

type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func testSettings() core.Settings {
	return core.Settings{
		Frame:  5 * time.Millisecond,
		Hold:   50 * time.Millisecond,
		Tuning: core.DefaultTuning(),
	}
}

func newTestServer(t *testing.T) string {
	t.Helper()
	_, addr := startServer(t, testSettings())
	return addr
}

func startServer(t *testing.T, settings core.Settings) (*Server, string) {
	t.Helper()
	s := NewServer(settings)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go s.Serve(listener)
	t.Cleanup(func() { s.Close() })
	return s, listener.Addr().String()
}

func dial(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{conn: conn, reader: bufio.NewReader(conn)}
}

// waitFor reads payloads until one with header satisfies ok.
func (c *testClient) waitFor(t *testing.T, header string, ok func(body string) bool) string {
	t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		h, body, err := core.ReadPayload(c.reader)
		if err != nil {
			t.Fatalf("waiting for %s: %v", header, err)
		}
		if h == header && (ok == nil || ok(body)) {
			return body
		}
	}
}

func (c *testClient) send(t *testing.T, payload string) {
	t.Helper()
	if _, err := c.conn.Write([]byte(payload)); err != nil {
		t.Fatal(err)
	}
}

func situation(t *testing.T, body string) core.Situation {
	t.Helper()
	s, err := core.ParseBattlePayload(body)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// enter dials addr and returns the room and seat the server hands out.
func enter(t *testing.T, addr string) (*testClient, string, core.Player) {
	t.Helper()
	c := dial(t, addr)
	roomId, seat, err := core.ParseEnterRoom(c.waitFor(t, core.EnterRoomHeader, nil))
	if err != nil {
		t.Fatal(err)
	}
	return c, roomId, seat
}

func joinBoth(t *testing.T, addr string) (*testClient, *testClient) {
	t.Helper()
	p1, room1, seat := enter(t, addr)
	if seat != core.PlayerOne {
		t.Fatalf("first seat %v, want %v", seat, core.PlayerOne)
	}

	p2, room2, seat := enter(t, addr)
	if seat != core.PlayerTwo || room2 != room1 {
		t.Fatalf("second seat %v in room %q, want %v in %q", seat, room2, core.PlayerTwo, room1)
	}

	p1.waitFor(t, core.StartBattleHeader, nil)
	p2.waitFor(t, core.StartBattleHeader, nil)
	return p1, p2
}

func TestBattleStreamsSituation(t *testing.T) {
	addr := newTestServer(t)
	p1, p2 := joinBoth(t, addr)

	first := situation(t, p2.waitFor(t, core.BattleSituationHeader, nil))
	if first.Moving || first.Board.Score != [2]int{0, 0} {
		t.Fatalf("first frame %+v", first)
	}

	p1.send(t, core.GenerateOperationPayload(core.OperationDown))
	p2.send(t, core.GenerateOperationPayload(core.OperationServe))

	p1.waitFor(t, core.BattleSituationHeader, func(body string) bool {
		s := situation(t, body)
		return s.Moving && s.Rackets[0] < 0 && s.Rackets[1] == 0
	})
}

func TestSecondPairGetsItsOwnBattle(t *testing.T) {
	s, addr := startServer(t, testSettings())
	p1, _ := joinBoth(t, addr)
	p3, p4 := joinBoth(t, addr)

	if n := len(s.Rooms()); n != 2 {
		t.Fatalf("%d rooms, want 2", n)
	}

	p3.send(t, core.GenerateOperationPayload(core.OperationServe))
	p4.waitFor(t, core.BattleSituationHeader, func(body string) bool {
		return situation(t, body).Moving
	})

	// the first battle is untouched by the second room's serve
	s1 := situation(t, p1.waitFor(t, core.BattleSituationHeader, nil))
	if s1.Moving {
		t.Errorf("first room ball moving after a serve in the second room")
	}
}

func TestFullLobbyTurnsPlayersAway(t *testing.T) {
	settings := testSettings()
	settings.MaxRooms = 1
	_, addr := startServer(t, settings)
	joinBoth(t, addr)

	p3 := dial(t, addr)
	p3.waitFor(t, core.RoomFullHeader, nil)
}

func TestSilentPlayerLosesSeat(t *testing.T) {
	settings := testSettings()
	settings.Heartbeat = 10 * time.Millisecond
	s, addr := startServer(t, settings)

	p1, _, _ := enter(t, addr)
	p1.conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := core.ReadPayload(p1.reader); err == nil {
		t.Fatal("silent player still connected")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(s.Rooms()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("room of a dropped player still open")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHeartbeatKeepsSeat(t *testing.T) {
	settings := testSettings()
	settings.Heartbeat = 10 * time.Millisecond
	_, addr := startServer(t, settings)

	p1, room1, _ := enter(t, addr)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(settings.Heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p1.conn.Write([]byte(core.GenerateHeartBeatPayload()))
			}
		}
	}()

	time.Sleep(20 * settings.Heartbeat)

	p2, room2, seat := enter(t, addr)
	if room2 != room1 || seat != core.PlayerTwo {
		t.Fatalf("second player got %v in %q, want %v in %q", seat, room2, core.PlayerTwo, room1)
	}
	p1.waitFor(t, core.StartBattleHeader, nil)
	p2.waitFor(t, core.StartBattleHeader, nil)
}

func TestInterruptNotifiesOpponent(t *testing.T) {
	addr := newTestServer(t)
	p1, p2 := joinBoth(t, addr)

	p2.send(t, core.GenerateInterruptBattle("", "bye"))
	body := p1.waitFor(t, core.InterruptBattleHeader, nil)
	if _, _, err := core.ParseInterruptBattle(body); err != nil {
		t.Fatal(err)
	}

	// the freed seat goes to the next player
	p3 := dial(t, addr)
	_, seat, err := core.ParseEnterRoom(p3.waitFor(t, core.EnterRoomHeader, nil))
	if err != nil || seat != core.PlayerTwo {
		t.Errorf("rejoin seat %v %v, want %v", seat, err, core.PlayerTwo)
	}
}
