package wellbore

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gonodal/internal/notice"
)

// ShoeClearance is how far above the perforation a misplaced tubing shoe is
// moved (ft).
const ShoeClearance = 200.0

// DefaultCasing is used when no casing row covers the perforation
var DefaultCasing = Tubular{
	Name:          "Default casing",
	SectionType:   SectionCasing,
	ID:            8.0,
	OD:            8.625,
	WallThickness: 0.3125,
	Roughness:     0.0006,
}

var (
	// ErrNoTubing is returned when no tubing row is available or the named one is missing.
	ErrNoTubing = errors.New("no tubing data")
	// ErrInvalidDepth is returned for a non-positive perforation depth.
	ErrInvalidDepth = errors.New("invalid perforation depth")
)

// Geometry is the ordered tubing and casing flow path from wellhead to
// perforation.
type Geometry struct {
	Tubing           PipeSegment // surface to shoe
	Casing           PipeSegment // shoe to perforation
	ShoeDepth        float64     // ft
	PerforationDepth float64     // ft
}

// Normalized enforces ShoeDepth < PerforationDepth. A shoe at or below the
// perforation is moved to PerforationDepth − 200 ft and reported as an
// InvalidGeometry warning. Segment depths are realigned to the shoe.
func (g Geometry) Normalized() (Geometry, notice.List) {
	var warnings notice.List
	if g.ShoeDepth >= g.PerforationDepth {
		shoe := math.Max(g.PerforationDepth-ShoeClearance, 0)
		warnings = append(warnings, notice.New(notice.InvalidGeometry,
			"tubing shoe at %.1f ft is at or below perforation at %.1f ft; shoe moved to %.1f ft",
			g.ShoeDepth, g.PerforationDepth, shoe))
		g.ShoeDepth = shoe
	}
	g.Tubing.TopDepth, g.Tubing.BottomDepth = 0, g.ShoeDepth
	g.Casing.TopDepth, g.Casing.BottomDepth = g.ShoeDepth, g.PerforationDepth
	return g, warnings
}

// WithTubing returns a copy with the tubing segment's pipe properties replaced.
// Depths are kept.
func (g Geometry) WithTubing(seg PipeSegment) Geometry {
	seg.TopDepth, seg.BottomDepth = g.Tubing.TopDepth, g.Tubing.BottomDepth
	g.Tubing = seg
	return g
}

// ShoeTemperature interpolates linearly between surface and reservoir
// temperature at the shoe depth.
func (g Geometry) ShoeTemperature(surface, reservoir float64) float64 {
	if g.PerforationDepth <= 0 {
		return reservoir
	}
	return surface + (reservoir-surface)*g.ShoeDepth/g.PerforationDepth
}

// FindTubular looks a row up by name, case-insensitively
func FindTubular(rows []Tubular, name string) (Tubular, bool) {
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Tubular{}, false
}

// Resolve builds the flow geometry from the tubing and casing tables.
// tubingName selects a tubing row; an empty name selects the first row.
//
// Casing selection falls back in order: a casing or liner spanning shoe to
// perforation, then any casing or liner covering the perforation depth, then
// DefaultCasing. Each fallback adds a MissingCasingCoverage warning.
func Resolve(tubing, casing []Tubular, tubingName string, perforationDepth float64) (Geometry, notice.List, error) {
	if perforationDepth <= 0 {
		return Geometry{}, nil, fmt.Errorf("%w: %.1f ft", ErrInvalidDepth, perforationDepth)
	}
	if len(tubing) == 0 {
		return Geometry{}, nil, ErrNoTubing
	}

	tb := tubing[0]
	if tubingName != "" {
		var ok bool
		if tb, ok = FindTubular(tubing, tubingName); !ok {
			return Geometry{}, nil, fmt.Errorf("%w: tubing %q not found", ErrNoTubing, tubingName)
		}
	}
	if err := tb.Validate(); err != nil {
		return Geometry{}, nil, err
	}

	g := Geometry{ShoeDepth: tb.ToMD, PerforationDepth: perforationDepth}
	g, warnings := g.Normalized()

	cs, more := selectCasing(casing, g.ShoeDepth, perforationDepth)
	warnings = append(warnings, more...)

	g.Tubing = tb.Segment(0, g.ShoeDepth)
	g.Casing = cs.Segment(g.ShoeDepth, perforationDepth)
	return g, warnings, nil
}

func selectCasing(rows []Tubular, shoe, perforation float64) (Tubular, notice.List) {
	var valid []Tubular
	for _, r := range rows {
		if r.IsCasing() && r.ID > 0 {
			valid = append(valid, r)
		}
	}

	for _, r := range valid {
		if r.Covers(shoe, perforation) {
			return r, nil
		}
	}
	for _, r := range valid {
		if r.Covers(perforation, perforation) {
			return r, notice.List{notice.New(notice.MissingCasingCoverage,
				"no casing spans %.1f to %.1f ft; using %q which covers the perforation", shoe, perforation, r.Name)}
		}
	}
	return DefaultCasing, notice.List{notice.New(notice.MissingCasingCoverage,
		"no casing covers the perforation at %.1f ft; using default %.3f in ID / %.3f in OD casing",
		perforation, DefaultCasing.ID, DefaultCasing.OD)}
}
