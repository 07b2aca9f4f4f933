package ipc

import "github.com/nstehr/serenity/serenity-core/hex"

// Event kinds sent by the game server inside an events message.
const (
	EventHit       = "hit"
	EventDie       = "die"
	EventSee       = "see"
	EventRadarEcho = "radarEcho"
	EventDetected  = "detected"
	EventDamaged   = "damaged"
	EventMove      = "move"
	EventNoAction  = "noaction"
)

// WireEvent is the union of all event fields; which are set depends on Event.
type WireEvent struct {
	Event  string        `json:"event"`
	BotID  int           `json:"botId"`
	Source int           `json:"source,omitempty"`
	Pos    *hex.Position `json:"pos,omitempty"`
	Damage int           `json:"damage,omitempty"`
}

// ActionsMessage answers an events message with one action per living bot.
type ActionsMessage struct {
	RoundID int      `json:"roundId"`
	Actions []Action `json:"actions"`
}

type Action struct {
	BotID int          `json:"botId"`
	Type  string       `json:"type"`
	Pos   hex.Position `json:"pos"`
}
