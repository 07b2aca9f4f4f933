package tactics

import (
	"maps"
	"math/rand/v2"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
)

// TriangleOffsets are the spread-fire points around a believed enemy
// position. A bot uses TriangleOffsets[Index%3].
var TriangleOffsets = [3]hex.Position{
	{X: -1, Y: 2},
	{X: 2, Y: -1},
	{X: -1, Y: -1},
}

// AttackSpread assigns attack plans to every bot that is not evading.
// bots are ranked (see model.Rank) and plans holds one entry per living bot.
type AttackSpread interface {
	Assign(plans map[int]model.Plan, bots []model.Bot, target hex.Position, alive int)
}

// PlanForAttack returns a copy of plans with spread fire on target assigned
// to every non-evading bot.
func PlanForAttack(plans map[int]model.Plan, bots []model.Bot, target hex.Position, aliveCount int, rng *rand.Rand) map[int]model.Plan {
	out := maps.Clone(plans)
	SpreadFire{Rand: rng}.Assign(out, bots, target, aliveCount)
	return out
}

// SpreadFire fires at the exact target with probability 1/alive and at one of
// the triangle points otherwise. Small fleets concentrate, large ones hedge
// against a stale sighting.
type SpreadFire struct {
	Rand *rand.Rand
}

func (s SpreadFire) Assign(plans map[int]model.Plan, bots []model.Bot, target hex.Position, alive int) {
	for _, b := range bots {
		if !retargetable(plans, b.ID) {
			continue
		}
		plans[b.ID] = model.AttackPlan(s.shot(b, target, alive))
	}
}

func (s SpreadFire) shot(b model.Bot, target hex.Position, alive int) hex.Position {
	if alive <= 1 || s.Rand.Float64() < 1/float64(alive) {
		return target
	}
	return target.Add(TriangleOffsets[b.Index%len(TriangleOffsets)])
}

// FocusFire sends every non-evading bot at the exact target.
type FocusFire struct{}

func (FocusFire) Assign(plans map[int]model.Plan, bots []model.Bot, target hex.Position, alive int) {
	for _, b := range bots {
		if retargetable(plans, b.ID) {
			plans[b.ID] = model.AttackPlan(target)
		}
	}
}

// ScanAndFire keeps one radar on the target to confirm it while the others
// spread fire. With a single bot left it just fires.
type ScanAndFire struct {
	Spread SpreadFire
}

func (s ScanAndFire) Assign(plans map[int]model.Plan, bots []model.Bot, target hex.Position, alive int) {
	scanned := alive <= 1
	for _, b := range bots {
		if !retargetable(plans, b.ID) {
			continue
		}
		if !scanned {
			plans[b.ID] = model.Plan{Mode: model.ModeAttack, Target: target, Action: model.ActionRadar}
			scanned = true
			continue
		}
		plans[b.ID] = model.AttackPlan(s.Spread.shot(b, target, alive))
	}
}

// retargetable reports whether the bot has a live plan that is not Evade.
func retargetable(plans map[int]model.Plan, id int) bool {
	p, ok := plans[id]
	return ok && p.Mode != model.ModeEvade
}
