package nodal

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/logging"
	"github.com/alexiusacademia/gonodal/internal/metrics"
	"github.com/alexiusacademia/gonodal/internal/notice"
	"github.com/alexiusacademia/gonodal/internal/vlp"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// Parameter is a tubing property that can be swept
type Parameter string

const (
	TubingID        Parameter = "tubing-id"
	TubingRoughness Parameter = "tubing-roughness"
)

// ParseParameter accepts the CLI names and the long descriptive forms
func ParseParameter(s string) (Parameter, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "tubing-id", "id", "tubing id", "tubing internal diameter":
		return TubingID, nil
	case "tubing-roughness", "roughness", "tubing roughness":
		return TubingRoughness, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

// SweepSpec is a single-parameter sweep over [Start, End] with Step, in inches
type SweepSpec struct {
	Parameter Parameter
	Start     float64
	End       float64
	Step      float64
}

// Grid returns arange(Start, End+Step, Step)
func (s SweepSpec) Grid() ([]float64, error) {
	values, err := curve.Arange(s.Start, s.End+s.Step, s.Step)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyGrid, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values from %.4f to %.4f step %.4f", ErrEmptyGrid, s.Start, s.End, s.Step)
	}
	return values, nil
}

// SweepResult is the outcome for one swept value
type SweepResult struct {
	Value          float64
	VLP            curve.Curve
	OperatingPoint OperatingPoint
	Warnings       notice.List
	Stats          vlp.Stats
}

// SensitivityRun collects every swept value against a shared IPR curve
type SensitivityRun struct {
	ID         string
	Completion string
	Parameter  Parameter
	Values     []float64
	IPR        curve.Curve
	AOF        float64
	Results    []SweepResult
	Warnings   notice.List // raised while building the base case
	Stats      vlp.Stats
	Duration   time.Duration
}

// Sweep recomputes the VLP curve and operating point for every value of
// the swept tubing property. The IPR curve and every other input stay
// fixed. Values run concurrently, bounded by opts.Workers; each VLP curve
// is built sequentially inside its worker.
func Sweep(ctx context.Context, in Inputs, spec SweepSpec, opts Options) (*SensitivityRun, error) {
	start := time.Now()
	log := opts.logger()

	param, err := ParseParameter(string(spec.Parameter))
	if err != nil {
		return nil, err
	}
	values, err := spec.Grid()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if (param == TubingID && v <= 0) || (param == TubingRoughness && v < 0) {
			return nil, fmt.Errorf("%w: %s value %.4f in", wellbore.ErrInvalidTubular, param, v)
		}
	}

	p, err := newPlan(in, 1)
	if err != nil {
		return nil, err
	}
	logWarnings(log, p.warnings)

	var done atomic.Int64
	total := len(values)
	base := p.builder.Geometry.Tubing

	mapper := iter.Mapper[float64, SweepResult]{MaxGoroutines: opts.Workers}
	results, err := mapper.MapErr(values, func(value *float64) (SweepResult, error) {
		if err := ctx.Err(); err != nil {
			return SweepResult{}, err
		}

		seg := base.WithDiameterInches(*value)
		if param == TubingRoughness {
			seg = base.WithRoughnessInches(*value)
		}
		b := p.builder
		b.Geometry = b.Geometry.WithTubing(seg)

		v, err := b.Build(ctx, p.vlpRates)
		if err != nil {
			return SweepResult{}, err
		}
		op, err := Intersect(p.ipr, v.Curve)
		if err != nil {
			return SweepResult{}, fmt.Errorf("%s %.4f in: %w", param, *value, err)
		}

		metrics.ObserveSweepValue(string(param))
		metrics.ObserveSolves(v.Stats.Solves, v.Stats.Iterations, v.Stats.NonConverged)
		log.V(logging.DEBUG).Info("sweep value", "parameter", string(param), "value", *value,
			"rate", op.Rate, "pressure", op.Pressure, "iterations", v.Stats.Iterations)

		n := done.Add(1)
		if opts.Progress != nil {
			opts.Progress(int(n), total)
		}
		return SweepResult{Value: *value, VLP: v.Curve, OperatingPoint: op, Warnings: v.Warnings, Stats: v.Stats}, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("sweep: %w", ctxErr)
		}
		return nil, fmt.Errorf("sweep: %w", err)
	}

	run := &SensitivityRun{
		ID:         uuid.NewString(),
		Completion: in.Completion.Name,
		Parameter:  param,
		Values:     values,
		IPR:        p.ipr,
		AOF:        p.model.AOF(),
		Results:    results,
		Warnings:   p.warnings,
	}
	for _, r := range results {
		run.Stats.Add(r.Stats)
		logWarnings(log, r.Warnings)
	}
	run.Duration = time.Since(start)
	log.Info("sweep complete", "id", run.ID, "parameter", string(param), "values", len(values), "duration", run.Duration)
	return run, nil
}
