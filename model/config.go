package model

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a match configuration no scan plan can be built for.
var ErrConfiguration = errors.New("invalid configuration")

// Config is fixed for the match. The json names follow the game server.
type Config struct {
	FieldRadius  int `json:"fieldRadius"`
	RadarRadius  int `json:"radar"`
	MoveRadius   int `json:"move"`
	CannonRadius int `json:"cannon"`
	StartHP      int `json:"startHp"`
	CannonDamage int `json:"cannonDamage"`
	MaxRounds    int `json:"maxCount"`
}

// Validate rejects configurations that leave nothing to sweep.
func (c Config) Validate() error {
	if c.RadarRadius < 0 || c.MoveRadius < 0 || c.CannonRadius < 0 {
		return fmt.Errorf("%w: negative radius (radar=%d move=%d cannon=%d)",
			ErrConfiguration, c.RadarRadius, c.MoveRadius, c.CannonRadius)
	}
	if c.FieldRadius <= c.RadarRadius {
		return fmt.Errorf("%w: fieldRadius %d must exceed radarRadius %d",
			ErrConfiguration, c.FieldRadius, c.RadarRadius)
	}
	return nil
}
