package radar

import (
	"slices"

	"github.com/nstehr/serenity/serenity-core/hex"
)

// Cursor walks a scan pattern round-robin. One cursor is shared by the whole
// fleet so coverage accumulates across bots instead of being repeated by each.
type Cursor struct {
	points []hex.Position
	index  int
}

func NewCursor(points []hex.Position) *Cursor {
	return &Cursor{points: slices.Clone(points)}
}

// Next returns the current point and advances, wrapping after the last one.
// An empty cursor always returns the origin.
func (c *Cursor) Next() hex.Position {
	if len(c.points) == 0 {
		return hex.Origin
	}
	p := c.points[c.index]
	c.index = (c.index + 1) % len(c.points)
	return p
}

func (c *Cursor) Len() int { return len(c.points) }

// Points returns the pattern in cursor order.
func (c *Cursor) Points() []hex.Position { return slices.Clone(c.points) }
