package ipr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/notice"
)

// Kind names an inflow model
type Kind string

const (
	KindWellPI    Kind = "Well PI"
	KindVogel     Kind = "Vogel"
	KindFetkovich Kind = "Fetkovich"
	KindJones     Kind = "Jones"
)

var (
	// ErrUnknownModel is returned for an unrecognised model name.
	ErrUnknownModel = errors.New("unknown IPR model")
	// ErrMissingParameters is returned when the selected model's parameter block is absent.
	ErrMissingParameters = errors.New("missing IPR model parameters")
	// ErrInvalidParameters is returned when a parameter is outside its valid range.
	ErrInvalidParameters = errors.New("invalid IPR model parameters")
)

// ParseKind accepts the catalog spellings of a model name, including the
// legacy "Fetkovitch".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "well pi", "wellpi", "well-pi", "pi":
		return KindWellPI, nil
	case "vogel":
		return KindVogel, nil
	case "fetkovich", "fetkovitch":
		return KindFetkovich, nil
	case "jones":
		return KindJones, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// WellPIParams configures the straight-line productivity index model
type WellPIParams struct {
	ProductivityIndex        float64 `yaml:"productivity_index"` // STB/D/psi
	UseVogelBelowBubblePoint bool    `yaml:"use_vogel_below_bubble_point"`
}

// VogelParams configures the generalised Vogel model
type VogelParams struct {
	MaxFlowRate float64 `yaml:"max_flow_rate"` // Q_max, STB/D
	Coefficient float64 `yaml:"vogel_coefficient"`
}

// FetkovichParams configures the Fetkovich back-pressure model
type FetkovichParams struct {
	MaxFlowRate float64 `yaml:"max_flow_rate"` // Q_max, STB/D
	Exponent    float64 `yaml:"fetkovich_exponent"`
}

// JonesParams configures the Jones laminar/turbulent model
type JonesParams struct {
	A float64 `yaml:"jones_a"` // psi/(STB/D)
	B float64 `yaml:"jones_b"` // psi/(STB/D)²
}

// Reservoir is the reservoir section of a completion record. Exactly one
// parameter block is authoritative: the one matching Model.
type Reservoir struct {
	Model       string  `yaml:"ipr_model"`
	Pressure    float64 `yaml:"reservoir_pressure"`    // P_ws, psi
	Temperature float64 `yaml:"reservoir_temperature"` // °F

	WellPI    *WellPIParams    `yaml:"well_pi,omitempty"`
	Vogel     *VogelParams     `yaml:"vogel,omitempty"`
	Fetkovich *FetkovichParams `yaml:"fetkovich,omitempty"`
	Jones     *JonesParams     `yaml:"jones,omitempty"`
}

// Build returns the inflow model selected by r. fl may be nil; it is only
// used for the bubble point of the composite PI-Vogel model. Recoverable
// conditions are returned as warnings.
func (r Reservoir) Build(fl *fluid.Sample) (Model, notice.List, error) {
	kind, err := ParseKind(r.Model)
	if err != nil {
		return nil, nil, err
	}
	if r.Pressure <= 0 {
		return nil, nil, fmt.Errorf("%w: reservoir pressure %.2f must be > 0", ErrInvalidParameters, r.Pressure)
	}

	switch kind {
	case KindWellPI:
		if r.WellPI == nil {
			return nil, nil, fmt.Errorf("%w: %s model needs productivity_index", ErrMissingParameters, kind)
		}
		if !r.WellPI.UseVogelBelowBubblePoint {
			m, err := NewWellPI(r.Pressure, r.WellPI.ProductivityIndex)
			return m, nil, err
		}
		var warnings notice.List
		pb := fluid.DefaultBubblePoint(r.Pressure)
		if fl == nil {
			warnings = append(warnings, notice.New(notice.BubblePointFallback,
				"no fluid sample for bubble point; using Pb = %.1f psi", pb))
		} else if v, ok := fl.BubblePoint(r.Temperature, r.Pressure); ok {
			pb = v
		} else {
			warnings = append(warnings, notice.New(notice.BubblePointFallback,
				"Standing bubble point unavailable at P_ws = %.1f psi; using Pb = %.1f psi", r.Pressure, pb))
		}
		m, err := NewComposite(r.Pressure, r.WellPI.ProductivityIndex, pb)
		return m, warnings, err

	case KindVogel:
		if r.Vogel == nil {
			return nil, nil, fmt.Errorf("%w: %s model needs max_flow_rate and vogel_coefficient", ErrMissingParameters, kind)
		}
		m, err := NewVogel(r.Pressure, r.Vogel.MaxFlowRate, r.Vogel.Coefficient)
		return m, nil, err

	case KindFetkovich:
		if r.Fetkovich == nil {
			return nil, nil, fmt.Errorf("%w: %s model needs max_flow_rate and fetkovich_exponent", ErrMissingParameters, kind)
		}
		m, err := NewFetkovich(r.Pressure, r.Fetkovich.MaxFlowRate, r.Fetkovich.Exponent)
		return m, nil, err

	default:
		if r.Jones == nil {
			return nil, nil, fmt.Errorf("%w: %s model needs jones_a and jones_b", ErrMissingParameters, kind)
		}
		m, err := NewJones(r.Pressure, r.Jones.A, r.Jones.B)
		return m, nil, err
	}
}
