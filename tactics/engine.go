// Package tactics turns one round of observations into one order per living
// bot. Every round starts from "everyone scans" and the round's events are
// folded over that plan in arrival order:
//
//	Radar  -> Attack | Evade
//	Attack -> Attack (retarget) | Evade
//	Evade  -> Evade
//
// Evade is sticky for the rest of the round.
package tactics

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
	"github.com/nstehr/serenity/serenity-core/rules"
)

// Engine is the decision reducer. It holds no match state; everything that
// survives between rounds lives in the Match passed to MakeDecisions.
type Engine struct {
	doctrine  *rules.Engine
	hitPolicy HitPolicy
	rng       *rand.Rand
	radars    map[string]RadarSelector
	attacks   map[string]AttackSpread
}

type Option func(*Engine)

// WithDoctrine sets the rule engine that picks strategies each round.
func WithDoctrine(d *rules.Engine) Option { return func(e *Engine) { e.doctrine = d } }

func WithHitPolicy(p HitPolicy) Option { return func(e *Engine) { e.hitPolicy = p } }

// WithRand sets the random source for fire spread and random radar.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// NewEngine builds a reducer. Without options it runs the standard doctrine
// (sweep radar, spread fire) with the enemy-only hit policy.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{hitPolicy: HitEnemyOnly}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.doctrine == nil {
		d, err := rules.NewEngine(rules.StandardDoctrine())
		if err != nil {
			return nil, fmt.Errorf("standard doctrine: %w", err)
		}
		e.doctrine = d
	}

	spread := SpreadFire{Rand: e.rng}
	e.radars = map[string]RadarSelector{
		rules.RadarSweep:    SweepRadar{},
		rules.RadarRandom:   RandomRadar{Rand: e.rng},
		rules.RadarPursuit:  PursuitRadar{Fallback: SweepRadar{}},
		rules.RadarEchoLead: EchoLeadRadar{Fallback: SweepRadar{}},
	}
	e.attacks = map[string]AttackSpread{
		rules.AttackSpread:      spread,
		rules.AttackFocus:       FocusFire{},
		rules.AttackScanAndFire: ScanAndFire{Spread: spread},
	}

	for _, r := range e.doctrine.Rules() {
		if err := e.knows(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SwapDoctrine replaces the rule set used from the next round on. Rules
// naming a strategy the engine does not implement are rejected and the
// current doctrine stays active.
func (e *Engine) SwapDoctrine(ruleset []*rules.Rule) error {
	for _, r := range ruleset {
		if err := e.knows(r); err != nil {
			return err
		}
	}
	return e.doctrine.Swap(ruleset)
}

func (e *Engine) knows(r *rules.Rule) error {
	var ok bool
	switch r.Category {
	case rules.CategoryRadar:
		_, ok = e.radars[r.Strategy]
	case rules.CategoryAttack:
		_, ok = e.attacks[r.Strategy]
	}
	if !ok {
		return fmt.Errorf("rule %q: unknown %s strategy %q", r.Name, r.Category, r.Strategy)
	}
	return nil
}

// MakeDecisions plans and dispatches one order for every living bot. cfg is
// only used on the first call for a match. The returned plans are keyed by bot
// ID. The only error is ErrConfiguration, which is fatal to the match.
func (e *Engine) MakeDecisions(m *Match, roundID int, events []model.Event, bots []model.Bot, cfg model.Config) (map[int]model.Plan, error) {
	if err := m.bind(cfg); err != nil {
		return nil, err
	}

	ranked := model.Rank(bots)
	alive := model.CountAlive(ranked)
	m.lead = m.Memory.lead()
	sel := e.doctrine.Select(rules.RoundEnv{
		Round:           roundID,
		Alive:           alive,
		Fleet:           len(ranked),
		TargetKnown:     m.Memory.LastTarget != nil,
		LastPingRound:   m.pingRound(),
		LastAttackRound: m.Memory.attackRound(),
		EchoLead:        m.lead != nil,
	})

	r := &round{
		engine: e,
		match:  m,
		id:     roundID,
		bots:   ranked,
		byID:   make(map[int]model.Bot, len(ranked)),
		plans:  make(map[int]model.Plan, alive),
		alive:  alive,
		attack: e.attackFor(sel.Attack),
		log:    slog.With("round", roundID),
	}

	radarSel := e.radarFor(sel.Radar)
	slot := 0
	for _, b := range ranked {
		r.byID[b.ID] = b
		if b.Alive {
			r.plans[b.ID] = model.RadarPlan(radarSel.Select(m, b, slot))
			slot++
		}
	}
	m.lead = nil

	for _, ev := range events {
		if ev == nil {
			continue
		}
		if err := ev.Accept(r); err != nil {
			r.logEventError(ev, err)
		}
	}

	m.Memory.record(roundID, r.echoes, r.chased, r.attacking())

	for _, b := range ranked {
		plan, ok := r.plans[b.ID]
		if !ok {
			continue
		}
		if b.Actions == nil {
			r.log.Warn("bot has no capabilities bound", "bot", b.ID)
			continue
		}
		plan.Dispatch(b.Actions)
		r.log.Debug("order dispatched", "bot", b.ID, "mode", plan.Mode, "action", plan.Action, "target", plan.Target)
	}
	return r.plans, nil
}

func (e *Engine) radarFor(name string) RadarSelector {
	if s, ok := e.radars[name]; ok {
		return s
	}
	return e.radars[rules.RadarSweep]
}

func (e *Engine) attackFor(name string) AttackSpread {
	if s, ok := e.attacks[name]; ok {
		return s
	}
	return e.attacks[rules.AttackSpread]
}

// round folds one round's events. It implements model.EventVisitor.
type round struct {
	engine *Engine
	match  *Match
	id     int
	bots   []model.Bot
	byID   map[int]model.Bot
	plans  map[int]model.Plan
	alive  int
	attack AttackSpread
	log    *slog.Logger

	echoes []hex.Position
	chased *hex.Position
}

func (r *round) VisitDamaged(ev model.Damaged) error {
	r.log.Info("bot damaged, evading", "bot", ev.BotID, "damage", ev.Damage)
	return r.evade(ev.BotID)
}

func (r *round) VisitDetected(ev model.Detected) error {
	r.log.Info("bot detected, evading", "bot", ev.BotID)
	return r.evade(ev.BotID)
}

func (r *round) VisitHit(ev model.Hit) error {
	if _, ours := r.byID[ev.BotID]; ours && r.engine.hitPolicy == HitEnemyOnly {
		r.log.Debug("friendly unit hit, not retargeting", "bot", ev.BotID, "source", ev.Source)
		return nil
	}
	target := r.match.Memory.LastTarget
	if target == nil {
		return fmt.Errorf("%w: hit on bot %d", ErrMissingTargetMemory, ev.BotID)
	}
	r.log.Info("hit scored, attacking last target", "bot", ev.BotID, "target", *target)
	r.match.Memory.setPing(r.id, *target)
	r.attackAll(*target)
	return nil
}

func (r *round) VisitSaw(ev model.Saw) error {
	r.log.Info("enemy sighted", "by", ev.Source, "enemy", ev.BotID, "pos", ev.Pos)
	r.sighting(ev.Pos)
	return nil
}

func (r *round) VisitRadarEcho(ev model.RadarEcho) error {
	r.log.Info("radar echo", "pos", ev.Pos)
	r.sighting(ev.Pos)
	return nil
}

func (r *round) sighting(pos hex.Position) {
	if !slices.Contains(r.echoes, pos) {
		r.echoes = append(r.echoes, pos)
	}
	r.match.Memory.setTarget(pos)
	r.match.Memory.setPing(r.id, pos)
	r.attackAll(pos)
}

func (r *round) attackAll(target hex.Position) {
	r.chased = &target
	r.attack.Assign(r.plans, r.bots, target, r.alive)
}

func (r *round) attacking() bool {
	for _, p := range r.plans {
		if p.Mode == model.ModeAttack {
			return true
		}
	}
	return false
}

func (r *round) evade(id int) error {
	bot, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBot, id)
	}
	if _, planned := r.plans[id]; !planned {
		r.log.Debug("dead bot cannot evade", "bot", id)
		return nil
	}
	cfg, _ := r.match.Config()
	pos, err := Evade(bot, r.bots, cfg)
	if err != nil {
		return err
	}
	r.plans[id] = model.EvadePlan(pos)
	return nil
}

func (r *round) logEventError(ev model.Event, err error) {
	attrs := []any{"event", ev.Kind(), "bot", ev.Subject(), "error", err}
	switch {
	case errors.Is(err, ErrUnknownBot):
		r.log.Debug("event ignored", attrs...)
	case errors.Is(err, ErrNoLegalMove):
		r.log.Warn("evasion impossible, keeping previous plan", attrs...)
	default:
		r.log.Warn("event skipped", attrs...)
	}
}
