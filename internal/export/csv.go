package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/nodal"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCurve(cw *csv.Writer, name string, c curve.Curve) error {
	for _, p := range c {
		if err := cw.Write([]string{name, formatFloat(p.Rate), formatFloat(p.Pressure)}); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the IPR and VLP curves of an analysis in long form:
// curve, rate (STB/D), pressure (psi).
func WriteReport(w io.Writer, r *nodal.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"curve", "rate_stb_d", "pressure_psi"}); err != nil {
		return err
	}
	if err := writeCurve(cw, "ipr", r.IPR); err != nil {
		return err
	}
	if err := writeCurve(cw, "vlp", r.VLP); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweep writes one row per swept value with its operating point and
// solver statistics.
func WriteSweep(w io.Writer, run *nodal.SensitivityRun) error {
	cw := csv.NewWriter(w)
	header := []string{string(run.Parameter) + "_in", "rate_stb_d", "pressure_psi", "solves", "iterations", "non_converged", "warnings"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range run.Results {
		row := []string{
			formatFloat(r.Value),
			formatFloat(r.OperatingPoint.Rate),
			formatFloat(r.OperatingPoint.Pressure),
			strconv.Itoa(r.Stats.Solves),
			strconv.Itoa(r.Stats.Iterations),
			strconv.Itoa(r.Stats.NonConverged),
			strconv.Itoa(len(r.Warnings)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweepCurves writes every VLP curve of a sweep plus the shared IPR
// curve, keyed by the swept value.
func WriteSweepCurves(w io.Writer, run *nodal.SensitivityRun) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"curve", "value_in", "rate_stb_d", "pressure_psi"}); err != nil {
		return err
	}
	for _, p := range run.IPR {
		if err := cw.Write([]string{"ipr", "", formatFloat(p.Rate), formatFloat(p.Pressure)}); err != nil {
			return err
		}
	}
	for _, r := range run.Results {
		v := formatFloat(r.Value)
		for _, p := range r.VLP {
			if err := cw.Write([]string{"vlp", v, formatFloat(p.Rate), formatFloat(p.Pressure)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFile creates path, including missing directories, and hands it to write.
func SaveFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
