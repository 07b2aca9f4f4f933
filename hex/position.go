package hex

import (
	"fmt"
	"math"
)

// Position is an axial hex coordinate. The implied third cube axis is -X-Y.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the center of the playing field.
var Origin = Position{}

func New(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }

// Distance is the number of hex steps between a and b.
func Distance(a, b Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return (abs(dx) + abs(dy) + abs(dx+dy)) / 2
}

// Neighbours returns every position within radius steps of center, center
// excluded. Order is deterministic: ascending X, then ascending Y.
func Neighbours(center Position, radius int) []Position {
	if radius <= 0 {
		return nil
	}
	out := make([]Position, 0, 3*radius*(radius+1))
	for dx := -radius; dx <= radius; dx++ {
		lo := max(-radius, -dx-radius)
		hi := min(radius, -dx+radius)
		for dy := lo; dy <= hi; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Position{X: center.X + dx, Y: center.Y + dy})
		}
	}
	return out
}

// Ring returns the positions exactly radius steps from center, in the same
// order as Neighbours.
func Ring(center Position, radius int) []Position {
	var out []Position
	for _, p := range Neighbours(center, radius) {
		if Distance(center, p) == radius {
			out = append(out, p)
		}
	}
	return out
}

// Field returns every position of a field with the given radius, origin last.
func Field(radius int) []Position {
	return append(Neighbours(Origin, radius), Origin)
}

// InField reports whether p lies on a field of the given radius.
func InField(p Position, radius int) bool {
	return Distance(Origin, p) <= radius
}

// Clamp pulls p onto a field of the given radius along the line to the origin.
// Positions already on the field are returned unchanged.
func Clamp(p Position, radius int) Position {
	d := Distance(Origin, p)
	if d <= radius {
		return p
	}
	if radius <= 0 {
		return Origin
	}
	f := float64(radius) / float64(d)
	q := cubeRound(float64(p.X)*f, float64(p.Y)*f)
	for Distance(Origin, q) > radius {
		q = StepToward(q, Origin)
	}
	return q
}

var directions = [6]Position{
	{X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: -1},
	{X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1},
}

// Direction returns one of the six unit steps; i is taken modulo 6.
func Direction(i int) Position {
	return directions[((i%6)+6)%6]
}

// Scale multiplies both coordinates by k.
func (p Position) Scale(k int) Position { return Position{X: p.X * k, Y: p.Y * k} }

// StepToward returns the neighbour of from closest to to, or from itself when
// they are equal.
func StepToward(from, to Position) Position {
	best := from
	bestDist := Distance(from, to)
	for _, d := range directions {
		n := from.Add(d)
		if dist := Distance(n, to); dist < bestDist {
			best, bestDist = n, dist
		}
	}
	return best
}

func cubeRound(x, y float64) Position {
	z := -x - y
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	}
	return Position{X: int(rx), Y: int(ry)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
