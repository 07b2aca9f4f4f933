package rules

import (
	"fmt"
	"sort"
)

// Strategy names understood by the tactics engine.
const (
	RadarSweep    = "sweep"
	RadarRandom   = "random"
	RadarPursuit  = "pursuit"
	RadarEchoLead = "echo-lead"

	AttackSpread      = "spread"
	AttackFocus       = "focus"
	AttackScanAndFire = "scan-and-fire"
)

// doctrines are constructors so every caller gets fresh, uncompiled rules.
var doctrines = map[string]func() []*Rule{
	"standard": StandardDoctrine,
	"pursuit":  PursuitDoctrine,
	"legacy":   LegacyDoctrine,
}

// Doctrine returns the named rule set.
func Doctrine(name string) ([]*Rule, error) {
	build, ok := doctrines[name]
	if !ok {
		return nil, fmt.Errorf("unknown doctrine %q (known: %v)", name, DoctrineNames())
	}
	return build(), nil
}

func DoctrineNames() []string {
	names := make([]string, 0, len(doctrines))
	for n := range doctrines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StandardDoctrine sweeps the field and spreads fire around sightings.
func StandardDoctrine() []*Rule {
	return []*Rule{
		{
			Name:         "radar-sweep",
			Priority:     100,
			Category:     CategoryRadar,
			ConditionSrc: `true`,
			Strategy:     RadarSweep,
		},
		{
			Name:         "attack-spread",
			Priority:     100,
			Category:     CategoryAttack,
			ConditionSrc: `true`,
			Strategy:     AttackSpread,
		},
	}
}

// PursuitDoctrine re-scans around a recent sighting before resuming the
// sweep, and keeps one radar on the target while the fleet is large. Right
// after an attack it first checks an echo the fleet did not chase.
func PursuitDoctrine() []*Rule {
	return append(StandardDoctrine(),
		&Rule{
			Name:         "radar-unchased-echo",
			Priority:     300,
			Category:     CategoryRadar,
			ConditionSrc: `AttackAge() == 1 && HasEchoLead()`,
			Strategy:     RadarEchoLead,
		},
		&Rule{
			Name:         "radar-pursue-ping",
			Priority:     200,
			Category:     CategoryRadar,
			ConditionSrc: `PingAge() >= 1 && PingAge() <= 2`,
			Strategy:     RadarPursuit,
		},
		&Rule{
			Name:         "attack-scan-and-fire",
			Priority:     200,
			Category:     CategoryAttack,
			ConditionSrc: `AliveCount() > 2`,
			Strategy:     AttackScanAndFire,
		},
	)
}

// LegacyDoctrine scans random field positions and concentrates all fire.
func LegacyDoctrine() []*Rule {
	return []*Rule{
		{
			Name:         "radar-random",
			Priority:     100,
			Category:     CategoryRadar,
			ConditionSrc: `true`,
			Strategy:     RadarRandom,
		},
		{
			Name:         "attack-focus",
			Priority:     100,
			Category:     CategoryAttack,
			ConditionSrc: `true`,
			Strategy:     AttackFocus,
		},
	}
}
