package model

import (
	"errors"
	"testing"

	"github.com/nstehr/serenity/serenity-core/hex"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"typical", Config{FieldRadius: 14, RadarRadius: 3, MoveRadius: 2, CannonRadius: 1}, false},
		{"field equals radar", Config{FieldRadius: 3, RadarRadius: 3}, true},
		{"field smaller than radar", Config{FieldRadius: 2, RadarRadius: 3}, true},
		{"negative move", Config{FieldRadius: 10, RadarRadius: 2, MoveRadius: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("error %v does not wrap ErrConfiguration", err)
			}
		})
	}
}

func TestRankAssignsIndexByID(t *testing.T) {
	bots := []Bot{{ID: 7}, {ID: 2}, {ID: 5, Alive: true}}
	ranked := Rank(bots)

	wantIDs := []int{2, 5, 7}
	for i, b := range ranked {
		if b.ID != wantIDs[i] {
			t.Errorf("ranked[%d].ID = %d, want %d", i, b.ID, wantIDs[i])
		}
		if b.Index != i {
			t.Errorf("ranked[%d].Index = %d, want %d", i, b.Index, i)
		}
	}
	if bots[0].ID != 7 {
		t.Error("Rank modified its input")
	}
}

func TestCountAlive(t *testing.T) {
	bots := []Bot{{ID: 1, Alive: true}, {ID: 2}, {ID: 3, Alive: true}}
	if got := CountAlive(bots); got != 2 {
		t.Errorf("CountAlive = %d, want 2", got)
	}
}

type recorder struct{ calls []string }

func (r *recorder) Move(x, y int)   { r.calls = append(r.calls, "move") }
func (r *recorder) Radar(x, y int)  { r.calls = append(r.calls, "radar") }
func (r *recorder) Cannon(x, y int) { r.calls = append(r.calls, "cannon") }

func TestPlanDispatch(t *testing.T) {
	tests := []struct {
		plan Plan
		want string
	}{
		{RadarPlan(hex.New(1, 1)), "radar"},
		{AttackPlan(hex.New(1, 1)), "cannon"},
		{EvadePlan(hex.New(1, 1)), "move"},
	}
	for _, tt := range tests {
		r := &recorder{}
		tt.plan.Dispatch(r)
		if len(r.calls) != 1 || r.calls[0] != tt.want {
			t.Errorf("%s plan dispatched %v, want [%s]", tt.plan.Mode, r.calls, tt.want)
		}
	}
}

type kindCollector struct{ kinds []EventKind }

func (c *kindCollector) VisitDamaged(e Damaged) error {
	c.kinds = append(c.kinds, e.Kind())
	return nil
}
func (c *kindCollector) VisitHit(e Hit) error { c.kinds = append(c.kinds, e.Kind()); return nil }
func (c *kindCollector) VisitSaw(e Saw) error { c.kinds = append(c.kinds, e.Kind()); return nil }
func (c *kindCollector) VisitRadarEcho(e RadarEcho) error {
	c.kinds = append(c.kinds, e.Kind())
	return nil
}
func (c *kindCollector) VisitDetected(e Detected) error {
	c.kinds = append(c.kinds, e.Kind())
	return nil
}

func TestEventAcceptRoutesByKind(t *testing.T) {
	events := []Event{
		Damaged{BotID: 1, Damage: 2},
		Hit{BotID: 9},
		Saw{BotID: 9, Source: 1, Pos: hex.New(1, 2)},
		RadarEcho{Pos: hex.New(3, 3)},
		Detected{BotID: 2},
	}
	c := &kindCollector{}
	for _, e := range events {
		if err := e.Accept(c); err != nil {
			t.Fatalf("Accept: %v", err)
		}
	}
	want := []EventKind{KindDamaged, KindHit, KindSaw, KindRadarEcho, KindDetected}
	for i := range want {
		if c.kinds[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, c.kinds[i], want[i])
		}
	}
}
