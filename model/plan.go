package model

import "github.com/nstehr/serenity/serenity-core/hex"

// Mode is the per-round state of a bot's plan.
type Mode string

const (
	ModeRadar  Mode = "RADAR"
	ModeAttack Mode = "ATTACK"
	ModeEvade  Mode = "EVADE"
)

// Action is the capability a plan is bound to. The values match the game
// server's action types.
type Action string

const (
	ActionMove   Action = "move"
	ActionRadar  Action = "radar"
	ActionCannon Action = "cannon"
)

// Plan is the order a bot will carry out this round.
type Plan struct {
	Mode   Mode
	Target hex.Position
	Action Action
}

func RadarPlan(target hex.Position) Plan {
	return Plan{Mode: ModeRadar, Target: target, Action: ActionRadar}
}

func AttackPlan(target hex.Position) Plan {
	return Plan{Mode: ModeAttack, Target: target, Action: ActionCannon}
}

func EvadePlan(target hex.Position) Plan {
	return Plan{Mode: ModeEvade, Target: target, Action: ActionMove}
}

// Dispatch invokes the capability the plan is bound to.
func (p Plan) Dispatch(c Capabilities) {
	switch p.Action {
	case ActionMove:
		c.Move(p.Target.X, p.Target.Y)
	case ActionRadar:
		c.Radar(p.Target.X, p.Target.Y)
	case ActionCannon:
		c.Cannon(p.Target.X, p.Target.Y)
	}
}
