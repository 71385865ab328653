package logger

const GoalMsg = "%s scores, board %s"
const ServeMsg = "ball served towards %s"
const MatchOverMsg = "match over, %s wins %s"

const CompetitorConnBrokenMsg = "player %s went offline"
const ConnBrokenMsg = "connection broken"

const SendMsgContentMsg = "sending to %s: %s"

const HeartbeatMsg = "heartbeat from %s"
const HeartbeatLostMsg = "no payload from %s for %v, dropping the seat"

const CreateRoomMsg = "room %s created, %d open"
const RemoveRoomMsg = "room %s removed, %d open"
const LobbyFullMsg = "lobby holds %d rooms already, closing %s"
const PlayerEnterRoomMsg = "%s entered room %s as %s"
const StartBattleMsg = "room %s battle started"
const InterruptBattleMsg = "player %s left room %s"

const ListenMsg = "listening on %s"
const ConnectMsg = "connected to %s"
