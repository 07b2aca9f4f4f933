package tactics

import (
	"errors"
	"fmt"

	"github.com/nstehr/serenity/serenity-core/model"
)

// ErrConfiguration is fatal to the match: no scan plan can be built.
var ErrConfiguration = model.ErrConfiguration

// The remaining errors are per-event. They are logged and the round goes on.
var (
	ErrNoLegalMove         = errors.New("no legal evasion move")
	ErrMissingTargetMemory = errors.New("no remembered target")
	ErrUnknownBot          = errors.New("unknown bot")
)

// HitPolicy decides which Hit events turn the fleet onto the last target.
type HitPolicy string

const (
	// HitEnemyOnly reacts only when the struck unit is not ours.
	HitEnemyOnly HitPolicy = "enemy-only"
	// HitAny reacts to every hit, friendly fire included.
	HitAny HitPolicy = "any"
)

func ParseHitPolicy(s string) (HitPolicy, error) {
	switch p := HitPolicy(s); p {
	case HitEnemyOnly, HitAny:
		return p, nil
	}
	return "", fmt.Errorf("unknown hit policy %q (want %q or %q)", s, HitEnemyOnly, HitAny)
}
