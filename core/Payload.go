package core

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const PayloadTerminator = "~"

const ConnBrokenHeader = "CB" // Connection Broken
const HeartBeatHeader = "HB"  // Client is still alive

const EnterRoomHeader = "ER" // Enter Room, carries the seat given to the player
const RoomFullHeader = "RF"  // Room already has two players

const StartBattleHeader = "SB"     // Start battle
const BattleSituationHeader = "BS" // Ball, rackets and score for one frame
const BattleOperationHeader = "BO" // Player input during the battle
const InterruptBattleHeader = "IB" // A player left the battle

var ErrMalformedPayload = errors.New("malformed payload")

// Operation is a player input sent over the wire.
type Operation string

const (
	OperationUp    Operation = "U"
	OperationDown  Operation = "D"
	OperationServe Operation = "S"
)

// Action resolves the operation for the player sending it.
func (o Operation) Action(p Player) (Action, bool) {
	switch o {
	case OperationUp:
		return UpAction(p), true
	case OperationDown:
		return DownAction(p), true
	case OperationServe:
		return ActionServe, true
	}
	return 0, false
}

// Situation is everything a viewer needs to draw one frame.
type Situation struct {
	Ball    Vec2
	Moving  bool
	Rackets [2]float64 // Y of PlayerOne, PlayerTwo
	Board   Scoreboard
}

func GenerateEnterRoomPayload(roomId string, p Player) string {
	return fmt.Sprintf("%s%s,%d%s", EnterRoomHeader, roomId, p, PayloadTerminator)
}

func GenerateRoomFullPayload(roomId string) string {
	return RoomFullHeader + roomId + PayloadTerminator
}

func GenerateConnBrokenPayload(brokenId string) string {
	return fmt.Sprintf("%s%s%s", ConnBrokenHeader, brokenId, PayloadTerminator)
}

func GenerateStartBattlePayload(roomId string) string {
	return fmt.Sprintf("%s%s%s", StartBattleHeader, roomId, PayloadTerminator)
}

func GenerateInterruptBattle(roomId string, interruptSponsor string) string {
	payload := fmt.Sprintf("%s,%s", roomId, interruptSponsor)
	return fmt.Sprintf("%s%s%s", InterruptBattleHeader, payload, PayloadTerminator)
}

func GenerateHeartBeatPayload() string {
	return HeartBeatHeader + PayloadTerminator
}

func GenerateOperationPayload(op Operation) string {
	return BattleOperationHeader + string(op) + PayloadTerminator
}

// ballX, ballY, player1Y, player2Y, player1Score, player2Score, moving, winner
func GenerateBattlePayload(s Situation) string {
	moving := 0
	if s.Moving {
		moving = 1
	}
	payload := fmt.Sprintf("%.1f,%.1f,%.1f,%.1f,%d,%d,%d,%d",
		s.Ball.X, s.Ball.Y,
		s.Rackets[0], s.Rackets[1],
		s.Board.Score[0], s.Board.Score[1],
		moving, s.Board.Winner)
	return BattleSituationHeader + payload + PayloadTerminator
}

func ParseBattlePayload(payload string) (Situation, error) {
	var s Situation

	split := strings.Split(payload, ",")
	if len(split) != 8 {
		return s, fmt.Errorf("battle situation %q: %w", payload, ErrMalformedPayload)
	}

	floats := make([]float64, 4)
	for i := range floats {
		f, err := strconv.ParseFloat(split[i], 64)
		if err != nil {
			return s, fmt.Errorf("battle situation field %d: %w", i, ErrMalformedPayload)
		}
		floats[i] = f
	}
	ints := make([]int, 4)
	for i := range ints {
		n, err := strconv.Atoi(split[4+i])
		if err != nil || n < 0 {
			return s, fmt.Errorf("battle situation field %d: %w", 4+i, ErrMalformedPayload)
		}
		ints[i] = n
	}

	s.Ball = Vec2{X: floats[0], Y: floats[1]}
	s.Rackets = [2]float64{floats[2], floats[3]}
	s.Board = NewScoreboard()
	s.Board.Score = [2]int{ints[0], ints[1]}
	s.Board.Text = [2]string{strconv.Itoa(ints[0]), strconv.Itoa(ints[1])}
	s.Moving = ints[2] == 1
	s.Board.Winner = Player(ints[3])
	if s.Board.Winner != NoPlayer && !s.Board.Winner.Valid() {
		return s, fmt.Errorf("battle situation winner %d: %w", ints[3], ErrMalformedPayload)
	}
	return s, nil
}

func ParseOperation(payload string) (Operation, error) {
	op := Operation(payload)
	switch op {
	case OperationUp, OperationDown, OperationServe:
		return op, nil
	}
	return "", fmt.Errorf("operation %q: %w", payload, ErrMalformedPayload)
}

func ParseEnterRoom(payload string) (string, Player, error) {
	split := strings.Split(payload, ",")
	if len(split) != 2 {
		return "", NoPlayer, fmt.Errorf("enter room %q: %w", payload, ErrMalformedPayload)
	}
	n, err := strconv.Atoi(split[1])
	if err != nil {
		return "", NoPlayer, fmt.Errorf("enter room seat: %w", ErrMalformedPayload)
	}
	p, err := PlayerFromNumber(n)
	if err != nil {
		return "", NoPlayer, fmt.Errorf("enter room: %v: %w", err, ErrMalformedPayload)
	}
	return split[0], p, nil
}

func ParseInterruptBattle(payload string) (string, string, error) {
	split := strings.Split(payload, ",")
	if len(split) != 2 {
		return "", "", fmt.Errorf("interrupt battle %q: %w", payload, ErrMalformedPayload)
	}
	roomId := split[0]
	playerId := split[1]
	return roomId, playerId, nil
}

// SplitPayload separates a raw payload into its header and body.
func SplitPayload(payload string) (string, string, error) {
	if len(payload) < 3 || !strings.HasSuffix(payload, PayloadTerminator) {
		return "", "", fmt.Errorf("payload %q: %w", payload, ErrMalformedPayload)
	}
	return payload[0:2], payload[2 : len(payload)-1], nil
}

// ReadPayload blocks until one terminated payload arrives on r.
func ReadPayload(r *bufio.Reader) (string, string, error) {
	raw, err := r.ReadString(PayloadTerminator[0])
	if err != nil {
		return "", "", err
	}
	return SplitPayload(raw)
}
