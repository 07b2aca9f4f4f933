package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/nstehr/serenity/serenity-core/ipc"
	"github.com/nstehr/serenity/serenity-core/model"
	"github.com/nstehr/serenity/serenity-core/tactics"
)

var errNoMatch = errors.New("no match in progress")

// Agent owns the decision-making for one team on one connection. Rounds are
// handled one at a time, in the order the server sends them.
type Agent struct {
	Conn   *ipc.Connection
	Team   string
	Engine *tactics.Engine

	// NewMatch starts the per-match state; replaced in tests for determinism.
	NewMatch func() *tactics.Match

	teamID  int
	config  model.Config
	match   *tactics.Match
	matchID uuid.UUID
	fleet   *Fleet
	log     *slog.Logger
}

func New(conn *ipc.Connection, engine *tactics.Engine, team string) *Agent {
	return &Agent{
		Conn:     conn,
		Team:     team,
		Engine:   engine,
		NewMatch: func() *tactics.Match { return tactics.NewMatch(nil) },
		log:      slog.Default(),
	}
}

// Register installs the agent's handlers on its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeConnected, a.HandleConnected)
	a.Conn.RegisterHandler(ipc.TypeStart, a.HandleStart)
	a.Conn.RegisterHandler(ipc.TypeEvents, a.HandleEvents)
	a.Conn.RegisterHandler(ipc.TypeEnd, a.HandleEnd)
}

// HandleConnected answers the server greeting with our team name.
func (a *Agent) HandleConnected(env ipc.Envelope) (*ipc.Envelope, error) {
	msg, err := ipc.Decode[ipc.ConnectedMessage](env)
	if err != nil {
		return nil, err
	}
	a.teamID = msg.TeamID
	a.config = msg.Config
	slog.Info("connected to game server", "teamId", a.teamID, "team", a.Team)

	join, err := ipc.NewEnvelope(ipc.TypeJoin, ipc.JoinMessage{TeamName: a.Team})
	if err != nil {
		return nil, err
	}
	return &join, nil
}

// HandleStart begins a fresh match: new roster, memory and radar sweep.
func (a *Agent) HandleStart(env ipc.Envelope) (*ipc.Envelope, error) {
	msg, err := ipc.Decode[ipc.StartMessage](env)
	if err != nil {
		return nil, err
	}
	a.config = msg.Config
	a.fleet = NewFleet(msg.You.Bots)
	a.match = a.NewMatch()
	a.matchID = uuid.New()
	a.log = slog.With("match", a.matchID.String(), "team", a.Team)

	opponents := make([]string, 0, len(msg.OtherTeams))
	for _, t := range msg.OtherTeams {
		opponents = append(opponents, t.Name)
	}
	a.log.Info("match started",
		"bots", len(msg.You.Bots),
		"opponents", opponents,
		"fieldRadius", msg.Config.FieldRadius,
	)
	return nil, nil
}

// HandleEvents runs one round and replies with the fleet's actions.
func (a *Agent) HandleEvents(env ipc.Envelope) (*ipc.Envelope, error) {
	msg, err := ipc.Decode[ipc.EventsMessage](env)
	if err != nil {
		return nil, err
	}
	if a.match == nil {
		return nil, fmt.Errorf("round %d: %w", msg.RoundID, errNoMatch)
	}

	events := a.fleet.Apply(msg.Events, a.log)

	rec := &orders{}
	bots := a.fleet.Bots()
	for i := range bots {
		bots[i].Actions = rec.bind(bots[i].ID)
	}

	plans, err := a.Engine.MakeDecisions(a.match, msg.RoundID, events, bots, a.config)
	if err != nil {
		a.log.Error("match aborted", "round", msg.RoundID, "error", err)
		a.match = nil
		if a.Conn != nil {
			a.Conn.Close()
		}
		return nil, err
	}

	modes := make(map[model.Mode]int)
	for _, p := range plans {
		modes[p.Mode]++
	}
	a.log.Info("round decided",
		"round", msg.RoundID,
		"events", len(msg.Events),
		"alive", len(plans),
		"modes", modes,
	)

	slices.SortFunc(rec.actions, func(x, y ipc.Action) int { return x.BotID - y.BotID })
	reply, err := ipc.NewEnvelope(ipc.TypeActions, ipc.ActionsMessage{
		RoundID: msg.RoundID,
		Actions: rec.actions,
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (a *Agent) HandleEnd(env ipc.Envelope) (*ipc.Envelope, error) {
	msg, err := ipc.Decode[ipc.EndMessage](env)
	if err != nil {
		return nil, err
	}
	alive := 0
	if a.fleet != nil {
		alive = a.fleet.Alive()
	}
	a.log.Info("match ended", "winner", msg.Winner, "survivors", alive)
	a.match = nil
	return nil, nil
}
