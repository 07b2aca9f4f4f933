// Package radar builds the fleet's systematic scan plan: a fixed set of scan
// centers covering the field, visited round-robin by a shared cursor.
package radar

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
)

// sweepStride is the horizontal gap between scan centers in a row. It is
// deliberately not derived from the radar radius.
const sweepStride = 4

// rowEndLead shortens the lower half's first row by the last row's y plus
// this many cells.
const rowEndLead = 4

// Pattern returns the scan centers in sweep order: a zig-zag raster starting
// at the top-left of the field, rows radarRadius+1 apart, followed by fill-in
// centers for any field cell the raster leaves outside every scan. Every point
// lies on the field and appears once.
func Pattern(cfg model.Config) ([]hex.Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	points := sweep(cfg)
	return append(points, fillGaps(cfg, points)...), nil
}

func sweep(cfg model.Config) []hex.Position {
	field, r := cfg.FieldRadius, cfg.RadarRadius
	inset := field - r
	rowStep := r + 1
	rowStart, rowEnd := 0, inset
	startChange, endChange := -rowStep, 0

	seen := make(map[hex.Position]bool)
	var points []hex.Position
	emit := func(p hex.Position) {
		p = hex.Clamp(p, field)
		if !seen[p] {
			seen[p] = true
			points = append(points, p)
		}
	}

	p := hex.New(rowStart, -inset)
	emit(p)
	for {
		if p.X < rowEnd {
			p.X += sweepStride
			emit(p)
			continue
		}
		// Row finished. The upper half of the field widens to the left, the
		// lower half narrows from the right.
		rowStart += startChange
		rowEnd += endChange
		if rowStart <= -inset {
			rowStart = -inset
			startChange = 0
			endChange = -rowStep
			rowEnd = field - max(p.Y+rowEndLead, 0) - r
		}
		if p.Y+rowStep > field {
			break
		}
		p = hex.New(rowStart, p.Y+rowStep)
		emit(p)
	}
	return points
}

// fillGaps returns extra scan centers so every field cell is within radar
// range of some point. A gap cell is covered by a center up to radarRadius
// steps closer to the origin.
func fillGaps(cfg model.Config, points []hex.Position) []hex.Position {
	covered := func(c hex.Position) bool {
		for _, p := range points {
			if hex.Distance(c, p) <= cfg.RadarRadius {
				return true
			}
		}
		return false
	}
	var extra []hex.Position
	for _, c := range hex.Field(cfg.FieldRadius) {
		if covered(c) {
			continue
		}
		center := c
		for i := 0; i < cfg.RadarRadius && center != hex.Origin; i++ {
			center = hex.StepToward(center, hex.Origin)
		}
		points = append(points, center)
		extra = append(extra, center)
	}
	if len(extra) > 0 {
		slog.Debug("radar sweep gaps filled", "extra", len(extra))
	}
	return extra
}

// Generate returns the scan pattern in a random order, shuffled once.
func Generate(cfg model.Config, rng *rand.Rand) ([]hex.Position, error) {
	points, err := Pattern(cfg)
	if err != nil {
		return nil, err
	}
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	slog.Debug("radar pattern generated",
		"points", len(points),
		"fieldRadius", cfg.FieldRadius,
		"radarRadius", cfg.RadarRadius,
	)
	return points, nil
}
