package tactics

import (
	"fmt"
	"math"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
)

// EvadeCandidates returns the moves a bot at pos can make that cover the full
// move radius and stay on the field, in hex.Ring order.
func EvadeCandidates(pos hex.Position, cfg model.Config) []hex.Position {
	var out []hex.Position
	for _, p := range hex.Ring(pos, cfg.MoveRadius) {
		if hex.InField(p, cfg.FieldRadius) {
			out = append(out, p)
		}
	}
	return out
}

// Evade picks the maximal move for bot that keeps it farthest from the
// closest other living bot in fleet. Ties go to the earliest candidate.
func Evade(bot model.Bot, fleet []model.Bot, cfg model.Config) (hex.Position, error) {
	candidates := EvadeCandidates(bot.Pos, cfg)
	if len(candidates) == 0 {
		return hex.Position{}, fmt.Errorf("%w: bot %d at %v (move=%d field=%d)",
			ErrNoLegalMove, bot.ID, bot.Pos, cfg.MoveRadius, cfg.FieldRadius)
	}

	best := candidates[0]
	bestDist := -1
	for _, c := range candidates {
		nearest := math.MaxInt
		for _, other := range fleet {
			if other.ID == bot.ID || !other.Alive {
				continue
			}
			nearest = min(nearest, hex.Distance(c, other.Pos))
		}
		if nearest > bestDist {
			best, bestDist = c, nearest
		}
	}
	return best, nil
}
