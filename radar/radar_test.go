package radar

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/model"
)

func testConfig() model.Config {
	return model.Config{FieldRadius: 10, RadarRadius: 2, MoveRadius: 2, CannonRadius: 1}
}

func TestPatternSweepOrder(t *testing.T) {
	points, err := Pattern(testConfig())
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	raster := sweep(testConfig())
	if !slices.Equal(points[:len(raster)], raster) {
		t.Fatalf("pattern does not start with the raster sweep:\n%v\n%v", points, raster)
	}
	points = raster
	if len(points) != 27 {
		t.Fatalf("expected 27 scan points, got %d: %v", len(points), points)
	}

	wantFirstRow := []hex.Position{hex.New(0, -8), hex.New(4, -8), hex.New(8, -8)}
	for i, want := range wantFirstRow {
		if points[i] != want {
			t.Errorf("points[%d] = %v, want %v", i, points[i], want)
		}
	}
	if last := points[len(points)-1]; last != hex.New(0, 10) {
		t.Errorf("last point = %v, want (0, 10)", last)
	}
}

func TestPatternRowsAreRadarRadiusPlusOneApart(t *testing.T) {
	cfg := testConfig()
	points := sweep(cfg)
	for i := 1; i < len(points); i++ {
		dy := points[i].Y - points[i-1].Y
		if dy != 0 && dy != cfg.RadarRadius+1 {
			t.Errorf("row step between %v and %v is %d, want %d", points[i-1], points[i], dy, cfg.RadarRadius+1)
		}
	}
}

func TestPatternStaysOnFieldWithoutDuplicates(t *testing.T) {
	configs := []model.Config{
		testConfig(),
		{FieldRadius: 14, RadarRadius: 3},
		{FieldRadius: 14, RadarRadius: 2},
		{FieldRadius: 3, RadarRadius: 2},
		{FieldRadius: 1, RadarRadius: 0},
		{FieldRadius: 30, RadarRadius: 5},
		{FieldRadius: 7, RadarRadius: 1},
	}
	for _, cfg := range configs {
		points, err := Pattern(cfg)
		if err != nil {
			t.Fatalf("Pattern(%+v): %v", cfg, err)
		}
		if len(points) == 0 {
			t.Errorf("Pattern(%+v) returned no points", cfg)
		}
		seen := make(map[hex.Position]bool)
		for _, p := range points {
			if !hex.InField(p, cfg.FieldRadius) {
				t.Errorf("Pattern(%+v): %v is off the field", cfg, p)
			}
			if seen[p] {
				t.Errorf("Pattern(%+v): duplicate point %v", cfg, p)
			}
			seen[p] = true
		}
	}
}

func TestPatternCoversWholeField(t *testing.T) {
	configs := []model.Config{
		testConfig(),
		{FieldRadius: 14, RadarRadius: 3},
		{FieldRadius: 14, RadarRadius: 2},
		{FieldRadius: 7, RadarRadius: 1},
		{FieldRadius: 5, RadarRadius: 2},
		{FieldRadius: 3, RadarRadius: 2},
		{FieldRadius: 1, RadarRadius: 0},
		{FieldRadius: 30, RadarRadius: 5},
	}
	for _, cfg := range configs {
		points, err := Pattern(cfg)
		if err != nil {
			t.Fatalf("Pattern(%+v): %v", cfg, err)
		}
		for _, c := range hex.Field(cfg.FieldRadius) {
			covered := false
			for _, p := range points {
				if hex.Distance(c, p) <= cfg.RadarRadius {
					covered = true
					break
				}
			}
			if !covered {
				t.Errorf("Pattern(%+v): cell %v is never scanned", cfg, c)
			}
		}
	}
}

func TestFillGapsOnlyWhenNeeded(t *testing.T) {
	cfg := testConfig()
	full := hex.Field(cfg.FieldRadius)
	if extra := fillGaps(cfg, full); len(extra) != 0 {
		t.Errorf("fully covered field got %d fill-in points", len(extra))
	}
	extra := fillGaps(cfg, nil)
	if len(extra) == 0 {
		t.Fatal("empty pattern got no fill-in points")
	}
	for _, p := range extra {
		if !hex.InField(p, cfg.FieldRadius) {
			t.Errorf("fill-in point %v is off the field", p)
		}
	}
}

func TestPatternRejectsFieldNotLargerThanRadar(t *testing.T) {
	_, err := Pattern(model.Config{FieldRadius: 2, RadarRadius: 2})
	if !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestGenerateSameSetAcrossShuffles(t *testing.T) {
	cfg := testConfig()
	a, err := Generate(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(cfg, rand.New(rand.NewPCG(99, 7)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected equal non-empty sequences, got %d and %d", len(a), len(b))
	}

	less := func(p, q hex.Position) int {
		if p.Y != q.Y {
			return p.Y - q.Y
		}
		return p.X - q.X
	}
	slices.SortFunc(a, less)
	slices.SortFunc(b, less)
	if !slices.Equal(a, b) {
		t.Errorf("point sets differ:\n%v\n%v", a, b)
	}
}

func TestCursorWrapsAround(t *testing.T) {
	points, err := Generate(testConfig(), rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	c := NewCursor(points)

	seen := make(map[hex.Position]bool)
	for i := 0; i < c.Len(); i++ {
		p := c.Next()
		if p != points[i] {
			t.Fatalf("Next() #%d = %v, want %v", i, p, points[i])
		}
		if seen[p] {
			t.Fatalf("point %v returned twice in one cycle", p)
		}
		seen[p] = true
	}
	if got := c.Next(); got != points[0] {
		t.Errorf("Next() after a full cycle = %v, want %v", got, points[0])
	}
}

func TestEmptyCursor(t *testing.T) {
	c := NewCursor(nil)
	if got := c.Next(); got != hex.Origin {
		t.Errorf("empty cursor returned %v, want origin", got)
	}
}
