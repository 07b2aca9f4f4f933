package rules

// RoundEnv is the state doctrine conditions are evaluated against, captured
// before the round's events are folded.
type RoundEnv struct {
	Round         int
	Alive         int
	Fleet         int
	TargetKnown   bool
	LastPingRound int // -1 when no enemy has been confirmed yet

	// LastAttackRound is the last round any bot was ordered to attack, -1 if none.
	LastAttackRound int
	// EchoLead is set when an earlier round confirmed several enemy positions
	// and the fleet only chased one of them.
	EchoLead bool
}

func (e RoundEnv) AliveCount() int { return e.Alive }
func (e RoundEnv) FleetSize() int  { return e.Fleet }
func (e RoundEnv) HasTarget() bool { return e.TargetKnown }

// PingAge is the number of rounds since the last confirmed sighting, or -1.
func (e RoundEnv) PingAge() int {
	if e.LastPingRound < 0 {
		return -1
	}
	return e.Round - e.LastPingRound
}

// AttackAge is the number of rounds since the fleet last attacked, or -1.
func (e RoundEnv) AttackAge() int {
	if e.LastAttackRound < 0 {
		return -1
	}
	return e.Round - e.LastAttackRound
}

func (e RoundEnv) HasEchoLead() bool { return e.EchoLead }

// LostBots is how many of the fleet are dead.
func (e RoundEnv) LostBots() int { return e.Fleet - e.Alive }
