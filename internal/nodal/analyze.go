package nodal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/ipr"
	"github.com/alexiusacademia/gonodal/internal/metrics"
	"github.com/alexiusacademia/gonodal/internal/notice"
	"github.com/alexiusacademia/gonodal/internal/vlp"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// Defaults
const (
	DefaultPoints             = 50
	DefaultIPRPoints          = 500
	DefaultSurfaceTemperature = 60.0 // °F
)

// Inputs are the records and scalars an analysis is run on
type Inputs struct {
	Fluid      *fluid.Sample
	Completion *wellbore.Completion
	Tubing     []wellbore.Tubular
	Casing     []wellbore.Tubular
	TubingName string // empty selects the first tubing row

	WellheadPressure   float64 // psia
	SurfaceTemperature float64 // °F, zero uses DefaultSurfaceTemperature
	MinRate            float64 // STB/D
	MaxRate            float64 // STB/D, zero uses the IPR AOF
	Points             int     // VLP grid size
	IPRPoints          int     // IPR grid size
}

// Options control how an analysis runs. The zero value is usable.
type Options struct {
	Logger  logr.Logger
	Workers int

	// Progress is called after each sweep value completes. It may be
	// called concurrently.
	Progress func(done, total int)
}

func (o Options) logger() logr.Logger {
	if o.Logger.GetSink() == nil {
		return logr.Discard()
	}
	return o.Logger
}

// Report is the outcome of a nodal analysis
type Report struct {
	ID             string
	Completion     string
	Model          ipr.Kind
	IPR            curve.Curve
	VLP            curve.Curve
	OperatingPoint OperatingPoint
	AOF            float64
	BubblePoint    float64 // composite PI-Vogel only
	Geometry       wellbore.Geometry
	Warnings       notice.List
	SolverStats    vlp.Stats
	Duration       time.Duration
}

// plan is the part of the pipeline shared by Analyze and Sweep: everything
// up to, but not including, the VLP curve.
type plan struct {
	model    ipr.Model
	ipr      curve.Curve
	vlpRates []float64
	builder  vlp.Builder
	warnings notice.List
}

func (in Inputs) check() error {
	switch {
	case in.Fluid == nil:
		return ErrMissingFluid
	case in.Completion == nil:
		return ErrMissingCompletion
	case len(in.Tubing) == 0:
		return ErrMissingTubing
	}
	if err := in.Fluid.Validate(); err != nil {
		return err
	}
	return in.Completion.Validate()
}

func newPlan(in Inputs, workers int) (*plan, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	res := in.Completion.Reservoir
	model, warnings, err := res.Build(in.Fluid)
	if err != nil {
		return nil, fmt.Errorf("completion %q: %w", in.Completion.Name, err)
	}

	geom, more, err := wellbore.Resolve(in.Tubing, in.Casing, in.TubingName, in.Completion.MiddleMD)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, more...)

	lo, hi := max(in.MinRate, 0), in.MaxRate
	if hi <= 0 {
		hi = model.AOF()
	}
	if hi <= lo {
		return nil, fmt.Errorf("%w: rate range [%.1f, %.1f] STB/D", ErrEmptyGrid, lo, hi)
	}

	points, iprPoints := in.Points, in.IPRPoints
	if points <= 1 {
		points = DefaultPoints
	}
	if iprPoints <= 1 {
		iprPoints = DefaultIPRPoints
	}
	surface := in.SurfaceTemperature
	if surface == 0 {
		surface = DefaultSurfaceTemperature
	}

	return &plan{
		model:    model,
		ipr:      ipr.FromRates(model, curve.Linspace(lo, hi, iprPoints)),
		vlpRates: curve.Linspace(lo, hi, points),
		builder: vlp.Builder{
			Geometry:             geom,
			Fluid:                *in.Fluid,
			WellheadPressure:     in.WellheadPressure,
			SurfaceTemperature:   surface,
			ReservoirTemperature: res.Temperature,
			Workers:              workers,
		},
		warnings: warnings,
	}, nil
}

// Analyze runs the full pipeline: IPR curve, geometry, VLP curve and
// their intersection. Missing fluid, completion or tubing fails before
// any curve is computed with an error matching ErrMissingInputs.
func Analyze(ctx context.Context, in Inputs, opts Options) (report *Report, err error) {
	start := time.Now()
	log := opts.logger()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.ObserveAnalysis(time.Since(start), outcome)
	}()

	p, err := newPlan(in, opts.Workers)
	if err != nil {
		return nil, err
	}

	v, err := p.builder.Build(ctx, p.vlpRates)
	if err != nil {
		return nil, err
	}
	metrics.ObserveSolves(v.Stats.Solves, v.Stats.Iterations, v.Stats.NonConverged)

	op, err := Intersect(p.ipr, v.Curve)
	if err != nil {
		return nil, err
	}

	report = &Report{
		ID:             uuid.NewString(),
		Completion:     in.Completion.Name,
		Model:          p.model.Kind(),
		IPR:            p.ipr,
		VLP:            v.Curve,
		OperatingPoint: op,
		AOF:            p.model.AOF(),
		Geometry:       p.builder.Geometry,
		Warnings:       append(p.warnings, v.Warnings...),
		SolverStats:    v.Stats,
	}
	if c, ok := p.model.(*ipr.Composite); ok {
		report.BubblePoint = c.Pb
	}
	report.Geometry, _ = report.Geometry.Normalized()

	logWarnings(log, report.Warnings)
	report.Duration = time.Since(start)
	log.Info("analysis complete", "id", report.ID, "completion", report.Completion,
		"rate", op.Rate, "pressure", op.Pressure, "solves", v.Stats.Solves, "duration", report.Duration)
	return report, nil
}

func logWarnings(log logr.Logger, warnings notice.List) {
	for _, w := range warnings {
		log.Info("warning", "code", string(w.Code), "message", w.Message)
	}
}
