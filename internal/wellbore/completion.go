package wellbore

import (
	"fmt"

	"github.com/alexiusacademia/gonodal/internal/ipr"
)

// Completion describes the producing interval and the reservoir behind it.
// The well is treated as vertical; KOP and GeometryProfile are carried for
// reporting only.
type Completion struct {
	Name            string        `json:"name" yaml:"name"`
	GeometryProfile string        `json:"geometry_profile,omitempty" yaml:"geometry_profile,omitempty"` // Vertical, Horizontal, Deviated
	FluidEntry      string        `json:"fluid_entry,omitempty" yaml:"fluid_entry,omitempty"`
	MiddleMD        float64       `json:"middle_md" yaml:"middle_md"`           // perforation depth (ft)
	Type            string        `json:"type,omitempty" yaml:"type,omitempty"` // Perforation, Open Hole, Slotted Liner, Screen
	KOP             float64       `json:"kop,omitempty" yaml:"kop,omitempty"`
	Reservoir       ipr.Reservoir `json:"reservoir" yaml:"reservoir"`
}

// Validate checks the perforation depth
func (c Completion) Validate() error {
	if c.MiddleMD <= 0 {
		return fmt.Errorf("%w: completion %q middle MD %.1f ft", ErrInvalidDepth, c.Name, c.MiddleMD)
	}
	return nil
}
