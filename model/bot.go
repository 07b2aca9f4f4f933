package model

import (
	"slices"

	"github.com/nstehr/serenity/serenity-core/hex"
)

// Capabilities are the orders a bot can be given. Each round exactly one of
// them is invoked per living bot; return values are not consumed.
type Capabilities interface {
	Move(x, y int)
	Radar(x, y int)
	Cannon(x, y int)
}

// Bot is one controlled unit as seen at the start of a round.
type Bot struct {
	ID    int          `json:"botId"`
	Name  string       `json:"name"`
	Alive bool         `json:"alive"`
	Pos   hex.Position `json:"pos"`
	HP    int          `json:"hp"`

	// Index is the 0-based rank of the bot by ID among the known bots.
	// It is reassigned every round.
	Index   int          `json:"-"`
	Actions Capabilities `json:"-"`
}

// Rank sorts bots by ID and assigns each its Index. The input is not modified.
func Rank(bots []Bot) []Bot {
	out := slices.Clone(bots)
	slices.SortStableFunc(out, func(a, b Bot) int { return a.ID - b.ID })
	for i := range out {
		out[i].Index = i
	}
	return out
}

// CountAlive returns the number of living bots.
func CountAlive(bots []Bot) int {
	n := 0
	for _, b := range bots {
		if b.Alive {
			n++
		}
	}
	return n
}
