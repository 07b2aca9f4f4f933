package agent

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/ipc"
	"github.com/nstehr/serenity/serenity-core/model"
	"github.com/nstehr/serenity/serenity-core/rules"
	"github.com/nstehr/serenity/serenity-core/tactics"
)

func envelope(t *testing.T, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		t.Fatalf("NewEnvelope(%s): %v", msgType, err)
	}
	return env
}

func newTestAgent(t *testing.T, doctrine []*rules.Rule) *Agent {
	t.Helper()
	d, err := rules.NewEngine(doctrine)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := tactics.NewEngine(tactics.WithDoctrine(d), tactics.WithRand(rand.New(rand.NewPCG(5, 6))))
	if err != nil {
		t.Fatal(err)
	}
	a := New(nil, engine, "Serenity")
	a.NewMatch = func() *tactics.Match { return tactics.NewMatch(rand.New(rand.NewPCG(7, 8))) }
	return a
}

func startMessage() ipc.StartMessage {
	return ipc.StartMessage{
		You: ipc.Team{TeamID: 1, Name: "Serenity", Bots: []model.Bot{
			{ID: 3, Name: "Wash", Alive: true, Pos: hex.New(-3, 3), HP: 10},
			{ID: 1, Name: "Mal", Alive: true, Pos: hex.New(0, 0), HP: 10},
			{ID: 2, Name: "Zoe", Alive: true, Pos: hex.New(3, 0), HP: 10},
		}},
		Config:     model.Config{FieldRadius: 10, RadarRadius: 2, MoveRadius: 2, CannonRadius: 1, StartHP: 10},
		OtherTeams: []ipc.Team{{TeamID: 2, Name: "Reavers"}},
	}
}

func focusRules() []*rules.Rule {
	return []*rules.Rule{
		{Name: "radar-sweep", Priority: 1, Category: rules.CategoryRadar, ConditionSrc: `true`, Strategy: rules.RadarSweep},
		{Name: "attack-focus", Priority: 1, Category: rules.CategoryAttack, ConditionSrc: `true`, Strategy: rules.AttackFocus},
	}
}

func playRound(t *testing.T, a *Agent, round int, events ...ipc.WireEvent) ipc.ActionsMessage {
	t.Helper()
	reply, err := a.HandleEvents(envelope(t, ipc.TypeEvents, ipc.EventsMessage{RoundID: round, Events: events}))
	if err != nil {
		t.Fatalf("HandleEvents(round %d): %v", round, err)
	}
	if reply == nil || reply.Type != ipc.TypeActions {
		t.Fatalf("round %d: expected an actions reply, got %+v", round, reply)
	}
	msg, err := ipc.Decode[ipc.ActionsMessage](*reply)
	if err != nil {
		t.Fatal(err)
	}
	if msg.RoundID != round {
		t.Errorf("reply roundId = %d, want %d", msg.RoundID, round)
	}
	return msg
}

func pos(x, y int) *hex.Position {
	p := hex.New(x, y)
	return &p
}

func TestHandleConnectedJoins(t *testing.T) {
	a := newTestAgent(t, rules.StandardDoctrine())
	reply, err := a.HandleConnected(envelope(t, ipc.TypeConnected, ipc.ConnectedMessage{TeamID: 4}))
	if err != nil {
		t.Fatal(err)
	}
	join, err := ipc.Decode[ipc.JoinMessage](*reply)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != ipc.TypeJoin || join.TeamName != "Serenity" {
		t.Errorf("reply = %s", reply.Data)
	}
}

func TestEventsBeforeStart(t *testing.T) {
	a := newTestAgent(t, rules.StandardDoctrine())
	_, err := a.HandleEvents(envelope(t, ipc.TypeEvents, ipc.EventsMessage{RoundID: 1}))
	if !errors.Is(err, errNoMatch) {
		t.Fatalf("expected errNoMatch, got %v", err)
	}
}

func TestMatchFlow(t *testing.T) {
	a := newTestAgent(t, focusRules())
	if _, err := a.HandleStart(envelope(t, ipc.TypeStart, startMessage())); err != nil {
		t.Fatal(err)
	}

	// Round 1: nothing happened, everyone scans.
	msg := playRound(t, a, 1)
	if len(msg.Actions) != 3 {
		t.Fatalf("round 1: %d actions, want 3", len(msg.Actions))
	}
	for i, act := range msg.Actions {
		if act.BotID != i+1 || act.Type != string(model.ActionRadar) {
			t.Errorf("round 1 action %d = %+v", i, act)
		}
	}

	// Round 2: Zoe saw someone, Mal got shot.
	msg = playRound(t, a, 2,
		ipc.WireEvent{Event: ipc.EventSee, BotID: 11, Source: 2, Pos: pos(5, -2)},
		ipc.WireEvent{Event: ipc.EventDamaged, BotID: 1, Damage: 2},
	)
	want := map[int]string{1: "move", 2: "cannon", 3: "cannon"}
	for _, act := range msg.Actions {
		if act.Type != want[act.BotID] {
			t.Errorf("round 2 bot %d action = %s, want %s", act.BotID, act.Type, want[act.BotID])
		}
		if act.Type == "cannon" && act.Pos != hex.New(5, -2) {
			t.Errorf("round 2 bot %d fired at %v", act.BotID, act.Pos)
		}
	}

	// Round 3: Wash died and Mal's move landed.
	msg = playRound(t, a, 3,
		ipc.WireEvent{Event: ipc.EventDie, BotID: 3},
		ipc.WireEvent{Event: ipc.EventMove, BotID: 1, Pos: pos(-2, 0)},
		ipc.WireEvent{Event: ipc.EventNoAction, BotID: 2},
	)
	if len(msg.Actions) != 2 {
		t.Fatalf("round 3: %d actions, want 2", len(msg.Actions))
	}
	for _, act := range msg.Actions {
		if act.BotID == 3 {
			t.Error("dead bot received an action")
		}
	}
	bots := a.fleet.Bots()
	if bots[0].Pos != hex.New(-2, 0) || bots[0].HP != 8 {
		t.Errorf("bot 1 state = %+v", bots[0])
	}
	if bots[2].Alive {
		t.Error("bot 3 should be dead")
	}

	if _, err := a.HandleEnd(envelope(t, ipc.TypeEnd, ipc.EndMessage{Winner: "Serenity"})); err != nil {
		t.Fatal(err)
	}
	if a.match != nil {
		t.Error("match should be cleared after end")
	}
}

func TestInvalidConfigAbortsMatch(t *testing.T) {
	a := newTestAgent(t, rules.StandardDoctrine())
	start := startMessage()
	start.Config = model.Config{FieldRadius: 2, RadarRadius: 2}
	if _, err := a.HandleStart(envelope(t, ipc.TypeStart, start)); err != nil {
		t.Fatal(err)
	}
	_, err := a.HandleEvents(envelope(t, ipc.TypeEvents, ipc.EventsMessage{RoundID: 1}))
	if !errors.Is(err, tactics.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if a.match != nil {
		t.Error("match should be dropped after a configuration error")
	}
}

func TestFleetApply(t *testing.T) {
	f := NewFleet(startMessage().You.Bots)
	events := f.Apply([]ipc.WireEvent{
		{Event: ipc.EventHit, BotID: 20, Source: 1},
		{Event: ipc.EventRadarEcho, Pos: pos(1, 1)},
		{Event: ipc.EventRadarEcho},
		{Event: ipc.EventSee, BotID: 20, Source: 3},
		{Event: ipc.EventDetected, BotID: 2},
		{Event: "teleported", BotID: 2},
		{Event: ipc.EventDie, BotID: 20},
	}, slog.Default())

	wantKinds := []model.EventKind{model.KindHit, model.KindRadarEcho, model.KindDetected}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(events), len(wantKinds))
	}
	for i, k := range wantKinds {
		if events[i].Kind() != k {
			t.Errorf("event %d kind = %s, want %s", i, events[i].Kind(), k)
		}
	}
	if f.Alive() != 3 {
		t.Errorf("enemy death changed our roster: %d alive", f.Alive())
	}
}
