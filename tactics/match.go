package tactics

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
	"github.com/nstehr/serenity/serenity-core/radar"
)

// Ping is a confirmed enemy position and the round it was confirmed in.
type Ping struct {
	Round int
	Pos   hex.Position
}

// echoHistory bounds how many rounds of echoes are remembered.
const echoHistory = 50

// EchoRound is every enemy position confirmed in one round, and the one the
// fleet turned its fire on.
type EchoRound struct {
	Round    int
	Echoes   []hex.Position
	Chased   hex.Position
	Explored bool
}

// Unchased returns the first echo of the round the fleet did not fire at.
func (e EchoRound) Unchased() (hex.Position, bool) {
	for _, p := range e.Echoes {
		if p != e.Chased {
			return p, true
		}
	}
	return hex.Position{}, false
}

// Memory is what the fleet remembers between rounds. It lives as long as the
// match and is never reset.
type Memory struct {
	LastTarget *hex.Position
	LastPing   *Ping
	// History holds the rounds that confirmed at least one enemy, oldest first.
	History []EchoRound

	lastAttack int
	attacked   bool
}

func (m *Memory) setTarget(p hex.Position) { m.LastTarget = &p }

func (m *Memory) setPing(round int, p hex.Position) { m.LastPing = &Ping{Round: round, Pos: p} }

// record stores the outcome of a finished round.
func (m *Memory) record(round int, echoes []hex.Position, chased *hex.Position, attacked bool) {
	if attacked {
		m.lastAttack, m.attacked = round, true
	}
	if len(echoes) == 0 || chased == nil {
		return
	}
	m.History = append(m.History, EchoRound{Round: round, Echoes: echoes, Chased: *chased})
	if n := len(m.History) - echoHistory; n > 0 {
		m.History = slices.Delete(m.History, 0, n)
	}
}

// lead returns the newest unexplored round with an echo the fleet did not
// chase, or nil.
func (m *Memory) lead() *EchoRound {
	for i := len(m.History) - 1; i >= 0; i-- {
		e := &m.History[i]
		if e.Explored || len(e.Echoes) < 2 {
			continue
		}
		if _, ok := e.Unchased(); ok {
			return e
		}
	}
	return nil
}

func (m *Memory) attackRound() int {
	if !m.attacked {
		return -1
	}
	return m.lastAttack
}

// Match is the state that survives across rounds of one game. The host loop
// owns it and passes it to every MakeDecisions call.
type Match struct {
	Memory Memory

	rng    *rand.Rand
	config model.Config
	bound  bool
	cursor *radar.Cursor
	field  []hex.Position

	// lead is the echo round being followed up while the round is seeded.
	lead *EchoRound
}

// NewMatch starts a match. A nil rng is replaced by a randomly seeded one.
func NewMatch(rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Match{rng: rng}
}

// bind fixes the match configuration and builds the radar cursor. Only the
// first successful call has an effect.
func (m *Match) bind(cfg model.Config) error {
	if m.bound {
		if cfg != m.config {
			slog.Debug("ignoring configuration change", "bound", m.config, "received", cfg)
		}
		return nil
	}

	points, err := radar.Generate(cfg, m.rng)
	if err != nil {
		return fmt.Errorf("radar pattern: %w", err)
	}
	m.config = cfg
	m.cursor = radar.NewCursor(points)
	m.field = hex.Field(cfg.FieldRadius)
	m.bound = true
	slog.Info("match configured",
		"fieldRadius", cfg.FieldRadius,
		"radar", cfg.RadarRadius,
		"move", cfg.MoveRadius,
		"cannon", cfg.CannonRadius,
		"scanPoints", len(points),
	)
	return nil
}

// Config returns the bound configuration.
func (m *Match) Config() (model.Config, bool) { return m.config, m.bound }

// Cursor returns the shared radar cursor, nil before the first round.
func (m *Match) Cursor() *radar.Cursor { return m.cursor }

func (m *Match) pingRound() int {
	if m.Memory.LastPing == nil {
		return -1
	}
	return m.Memory.LastPing.Round
}
