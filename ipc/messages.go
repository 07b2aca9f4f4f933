package ipc

import "github.com/nstehr/serenity/serenity-core/model"

// Message types of the game server protocol.
const (
	TypeConnected = "connected"
	TypeJoin      = "join"
	TypeStart     = "start"
	TypeEvents    = "events"
	TypeActions   = "actions"
	TypeEnd       = "end"
)

// ConnectedMessage greets a new client. The client answers with a join.
type ConnectedMessage struct {
	TeamID int          `json:"teamId"`
	Config model.Config `json:"config"`
}

type JoinMessage struct {
	TeamName string `json:"teamName"`
}

// Team is one side of the match. Only our own team carries bot details.
type Team struct {
	TeamID int         `json:"teamId"`
	Name   string      `json:"name"`
	Bots   []model.Bot `json:"bots"`
}

// StartMessage opens a match.
type StartMessage struct {
	You        Team         `json:"you"`
	Config     model.Config `json:"config"`
	OtherTeams []Team       `json:"otherTeams"`
}

// EventsMessage carries the observations of the previous round.
type EventsMessage struct {
	RoundID int         `json:"roundId"`
	Events  []WireEvent `json:"events"`
}

type EndMessage struct {
	Winner string `json:"winner"`
}
