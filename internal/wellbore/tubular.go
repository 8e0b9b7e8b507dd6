package wellbore

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// InchesPerFoot converts catalog inch dimensions to feet
const InchesPerFoot = 12.0

// SectionType classifies a tubular row
type SectionType string

const (
	SectionCasing   SectionType = "Casing"
	SectionLiner    SectionType = "Liner"
	SectionOpenHole SectionType = "Open hole"
	SectionTubing   SectionType = "Tubing"
)

// ErrInvalidTubular is returned when a tubular row fails validation.
var ErrInvalidTubular = errors.New("invalid tubular")

// Tubular is one row of the tubing or casing/liner tables. Depths are
// measured depths in ft, diameters and roughness in inches.
type Tubular struct {
	Name          string      `json:"name" yaml:"name"`
	SectionType   SectionType `json:"section_type,omitempty" yaml:"section_type,omitempty"`
	FromMD        float64     `json:"from_md" yaml:"from_md"`
	ToMD          float64     `json:"to_md" yaml:"to_md"`
	ID            float64     `json:"id" yaml:"id"`
	OD            float64     `json:"od" yaml:"od"`
	WallThickness float64     `json:"wall_thickness" yaml:"wall_thickness"`
	Roughness     float64     `json:"roughness" yaml:"roughness"`
}

// Validate checks a tubular row
func (t Tubular) Validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidTubular)
	case t.ID <= 0:
		return fmt.Errorf("%w %q: ID %.3f in must be > 0", ErrInvalidTubular, t.Name, t.ID)
	case t.OD > 0 && t.OD < t.ID:
		return fmt.Errorf("%w %q: OD %.3f in smaller than ID %.3f in", ErrInvalidTubular, t.Name, t.OD, t.ID)
	case t.Roughness < 0:
		return fmt.Errorf("%w %q: roughness %.5f in must be >= 0", ErrInvalidTubular, t.Name, t.Roughness)
	case t.ToMD <= t.FromMD:
		return fmt.Errorf("%w %q: to MD %.1f ft must be below from MD %.1f ft", ErrInvalidTubular, t.Name, t.ToMD, t.FromMD)
	}
	return nil
}

// IsCasing reports whether the row can carry flow below the tubing shoe
func (t Tubular) IsCasing() bool {
	switch SectionType(strings.ToLower(string(t.SectionType))) {
	case "casing", "liner", "":
		return true
	}
	return false
}

// Covers reports whether the row spans the depth interval [top, bottom]
func (t Tubular) Covers(top, bottom float64) bool {
	return t.FromMD <= top && t.ToMD >= bottom
}

// Segment converts the row to a flow segment between top and bottom (ft)
func (t Tubular) Segment(top, bottom float64) PipeSegment {
	return PipeSegment{
		Name:        t.Name,
		Diameter:    t.ID / InchesPerFoot,
		Roughness:   t.Roughness / InchesPerFoot,
		TopDepth:    top,
		BottomDepth: bottom,
	}
}

// PipeSegment is a single flow conduit in oilfield units (ft)
type PipeSegment struct {
	Name        string
	Diameter    float64 // internal diameter (ft)
	Roughness   float64 // absolute roughness (ft)
	TopDepth    float64 // ft
	BottomDepth float64 // ft
}

// Length returns the segment length (ft), never negative
func (s PipeSegment) Length() float64 {
	if s.BottomDepth < s.TopDepth {
		return 0
	}
	return s.BottomDepth - s.TopDepth
}

// Area returns the flow cross-section (ft²)
func (s PipeSegment) Area() float64 {
	return 0.25 * math.Pi * s.Diameter * s.Diameter
}

// WithDiameterInches returns a copy with the internal diameter replaced
func (s PipeSegment) WithDiameterInches(id float64) PipeSegment {
	s.Diameter = id / InchesPerFoot
	return s
}

// WithRoughnessInches returns a copy with the absolute roughness replaced
func (s PipeSegment) WithRoughnessInches(e float64) PipeSegment {
	s.Roughness = e / InchesPerFoot
	return s
}
