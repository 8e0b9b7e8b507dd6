// Package casefile loads well case files: the fluid, completion and
// tubular catalogs plus the selection an analysis runs on.
package casefile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/nodal"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

var (
	// ErrInvalidCase is returned when a case file fails validation.
	ErrInvalidCase = errors.New("invalid case file")
	// ErrNotFound is returned when a named catalog entry does not exist.
	ErrNotFound = errors.New("not found")
)

// Analysis selects catalog entries and sets the run scalars
type Analysis struct {
	Fluid              string  `yaml:"fluid"`
	Completion         string  `yaml:"completion"`
	Tubing             string  `yaml:"tubing,omitempty"`
	WellheadPressure   float64 `yaml:"wellhead_pressure"`
	SurfaceTemperature float64 `yaml:"surface_temperature,omitempty"`
	MinRate            float64 `yaml:"min_rate,omitempty"`
	MaxRate            float64 `yaml:"max_rate,omitempty"`
	Points             int     `yaml:"points,omitempty"`
	IPRPoints          int     `yaml:"ipr_points,omitempty"`
}

// Case is a complete well case
type Case struct {
	Fluids      []fluid.Sample        `yaml:"fluids"`
	Completions []wellbore.Completion `yaml:"completions"`
	Tubing      []wellbore.Tubular    `yaml:"tubing"`
	Casing      []wellbore.Tubular    `yaml:"casing,omitempty"`
	Analysis    Analysis              `yaml:"analysis"`
}

// Load reads and validates a case file. JSON files load as well, since
// JSON is valid YAML.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a case document
func Parse(data []byte) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCase, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every catalog row and rejects duplicate names
func (c *Case) Validate() error {
	seen := map[string]bool{}
	unique := func(kind, name string) error {
		key := kind + "/" + strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalidCase, kind, name)
		}
		seen[key] = true
		return nil
	}

	for _, f := range c.Fluids {
		if err := unique("fluid", f.Name); err != nil {
			return err
		}
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%w: fluid %q: %w", ErrInvalidCase, f.Name, err)
		}
	}
	for _, cp := range c.Completions {
		if err := unique("completion", cp.Name); err != nil {
			return err
		}
		if err := cp.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCase, err)
		}
	}
	for _, t := range c.Tubing {
		if err := unique("tubing", t.Name); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCase, err)
		}
	}
	for _, t := range c.Casing {
		if err := unique("casing", t.Name); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCase, err)
		}
	}

	if c.Analysis.WellheadPressure < 0 {
		return fmt.Errorf("%w: wellhead pressure %.1f psi must be >= 0", ErrInvalidCase, c.Analysis.WellheadPressure)
	}
	if c.Analysis.MaxRate > 0 && c.Analysis.MaxRate <= c.Analysis.MinRate {
		return fmt.Errorf("%w: max rate %.1f must exceed min rate %.1f", ErrInvalidCase, c.Analysis.MaxRate, c.Analysis.MinRate)
	}
	return nil
}

// Fluid looks a fluid up by name, case-insensitively
func (c *Case) Fluid(name string) (*fluid.Sample, error) {
	for i := range c.Fluids {
		if strings.EqualFold(strings.TrimSpace(c.Fluids[i].Name), strings.TrimSpace(name)) {
			f := c.Fluids[i]
			return &f, nil
		}
	}
	return nil, fmt.Errorf("fluid %q: %w", name, ErrNotFound)
}

// Completion looks a completion up by name, case-insensitively
func (c *Case) Completion(name string) (*wellbore.Completion, error) {
	for i := range c.Completions {
		if strings.EqualFold(strings.TrimSpace(c.Completions[i].Name), strings.TrimSpace(name)) {
			cp := c.Completions[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("completion %q: %w", name, ErrNotFound)
}

// Inputs resolves the analysis selection into pipeline inputs. An empty
// fluid or completion name leaves the entry unset so the pipeline reports
// it as missing. A name that does not resolve is an error.
func (c *Case) Inputs() (nodal.Inputs, error) {
	a := c.Analysis
	in := nodal.Inputs{
		Tubing:             c.Tubing,
		Casing:             c.Casing,
		TubingName:         a.Tubing,
		WellheadPressure:   a.WellheadPressure,
		SurfaceTemperature: a.SurfaceTemperature,
		MinRate:            a.MinRate,
		MaxRate:            a.MaxRate,
		Points:             a.Points,
		IPRPoints:          a.IPRPoints,
	}

	var err error
	if a.Fluid != "" {
		if in.Fluid, err = c.Fluid(a.Fluid); err != nil {
			return nodal.Inputs{}, err
		}
	}
	if a.Completion != "" {
		if in.Completion, err = c.Completion(a.Completion); err != nil {
			return nodal.Inputs{}, err
		}
	}
	if a.Tubing != "" {
		if _, ok := wellbore.FindTubular(c.Tubing, a.Tubing); !ok {
			return nodal.Inputs{}, fmt.Errorf("tubing %q: %w", a.Tubing, ErrNotFound)
		}
	}
	return in, nil
}
