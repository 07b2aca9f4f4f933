package tactics

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
)

// RadarSelector picks the default radar target for a living bot at the start
// of a round. slot is the bot's rank by ID among the living bots.
type RadarSelector interface {
	Select(m *Match, bot model.Bot, slot int) hex.Position
}

// SweepRadar takes the next point of the shared sweep.
type SweepRadar struct{}

func (SweepRadar) Select(m *Match, _ model.Bot, _ int) hex.Position {
	return m.cursor.Next()
}

// RandomRadar scans a uniformly random field position.
type RandomRadar struct {
	Rand *rand.Rand
}

func (r RandomRadar) Select(m *Match, _ model.Bot, _ int) hex.Position {
	if len(m.field) == 0 {
		return hex.Origin
	}
	return m.field[r.Rand.IntN(len(m.field))]
}

// PursuitRadar re-scans around the last confirmed enemy position. Remaining
// bots, or all bots when nothing was seen yet, use the fallback.
type PursuitRadar struct {
	Fallback RadarSelector
}

func (p PursuitRadar) Select(m *Match, bot model.Bot, slot int) hex.Position {
	if ping := m.Memory.LastPing; ping != nil {
		if pos, ok := scanAround(m, ping.Pos, slot); ok {
			return pos
		}
	}
	return orSweep(p.Fallback).Select(m, bot, slot)
}

// EchoLeadRadar scans around an echo from an earlier round that the fleet
// did not chase. The echo is marked explored once used.
type EchoLeadRadar struct {
	Fallback RadarSelector
}

func (e EchoLeadRadar) Select(m *Match, bot model.Bot, slot int) hex.Position {
	if lead := m.lead; lead != nil {
		if echo, ok := lead.Unchased(); ok {
			if pos, ok := scanAround(m, echo, slot); ok {
				if !lead.Explored {
					slog.Info("following up unchased echo", "round", lead.Round, "pos", echo)
					lead.Explored = true
				}
				return pos
			}
		}
	}
	return orSweep(e.Fallback).Select(m, bot, slot)
}

// scanAround places up to four radars over center: slot 0 on it, slots 1 to
// 3 one radar radius away in alternating directions.
func scanAround(m *Match, center hex.Position, slot int) (hex.Position, bool) {
	switch {
	case slot == 0:
		return center, true
	case slot > 3:
		return hex.Position{}, false
	}
	step := hex.Direction((slot - 1) * 2).Scale(max(m.config.RadarRadius, 1))
	return hex.Clamp(center.Add(step), m.config.FieldRadius), true
}

func orSweep(s RadarSelector) RadarSelector {
	if s == nil {
		return SweepRadar{}
	}
	return s
}
