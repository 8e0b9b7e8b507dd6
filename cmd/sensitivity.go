package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/diagram"
	"github.com/alexiusacademia/gonodal/internal/export"
	"github.com/alexiusacademia/gonodal/internal/nodal"
)

var (
	sensitivityCase  caseSelection
	sensitivityParam string
	sensitivityStart float64
	sensitivityEnd   float64
	sensitivityStep  float64

	sensitivityShowDiagram bool
	sensitivityExportFile  string
	sensitivityCSVFile     string
	sensitivityCurvesFile  string
	sensitivityQuiet       bool
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep a tubing parameter and report each operating point",
	Long: `Repeat the nodal analysis of a case file for a range of values of
one tubing parameter, keeping the IPR curve fixed.

Parameters (values in inches):
  tubing-id         - tubing internal diameter
  tubing-roughness  - tubing absolute roughness

The grid runs from --start to --end inclusive in --step increments.

Examples:
  gonodal sensitivity --case well1.yaml --param tubing-id --start 1.995 --end 3.958 --step 0.5
  gonodal sensitivity -c well1.yaml --param tubing-roughness --start 0 --end 0.01 --step 0.002 --csv sweep.csv`,
	Run: runSensitivity,
}

func init() {
	rootCmd.AddCommand(sensitivityCmd)

	sensitivityCase.register(sensitivityCmd)

	// Sweep definition
	sensitivityCmd.Flags().StringVar(&sensitivityParam, "param", string(nodal.TubingID), "Parameter: tubing-id, tubing-roughness")
	sensitivityCmd.Flags().Float64Var(&sensitivityStart, "start", 0, "First value (in) [required]")
	sensitivityCmd.Flags().Float64Var(&sensitivityEnd, "end", 0, "Last value (in) [required]")
	sensitivityCmd.Flags().Float64Var(&sensitivityStep, "step", 0, "Increment (in) [required]")
	sensitivityCmd.MarkFlagRequired("start")
	sensitivityCmd.MarkFlagRequired("end")
	sensitivityCmd.MarkFlagRequired("step")

	// Output options
	sensitivityCmd.Flags().BoolVar(&sensitivityShowDiagram, "diagram", false, "Show ASCII operating rate chart")
	sensitivityCmd.Flags().StringVarP(&sensitivityExportFile, "output", "o", "", "Export chart to file (png, svg, pdf)")
	sensitivityCmd.Flags().StringVar(&sensitivityCSVFile, "csv", "", "Export the results table to CSV")
	sensitivityCmd.Flags().StringVar(&sensitivityCurvesFile, "curves-csv", "", "Export every VLP curve to CSV")
	sensitivityCmd.Flags().BoolVarP(&sensitivityQuiet, "quiet", "q", false, "Hide progress")
}

func runSensitivity(cmd *cobra.Command, args []string) {
	param, err := nodal.ParseParameter(sensitivityParam)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	in, err := sensitivityCase.inputs()
	if err != nil {
		fmt.Printf("Error loading case: %v\n", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := nodal.Options{Logger: logger, Workers: workers()}
	if !sensitivityQuiet {
		opts.Progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r  evaluated %d/%d values", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	spec := nodal.SweepSpec{
		Parameter: param,
		Start:     sensitivityStart,
		End:       sensitivityEnd,
		Step:      sensitivityStep,
	}
	run, err := nodal.Sweep(ctx, in, spec, opts)
	if err != nil {
		fmt.Printf("Error running sensitivity: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                    SENSITIVITY ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Completion:\t%s\n", run.Completion)
	fmt.Fprintf(w, "  Parameter:\t%s\n", run.Parameter)
	fmt.Fprintf(w, "  Values:\t%d (%.4f to %.4f in, step %.4f)\n",
		len(run.Values), run.Values[0], run.Values[len(run.Values)-1], spec.Step)
	fmt.Fprintf(w, "  Absolute open flow:\t%.1f STB/D\n", run.AOF)
	fmt.Fprintf(w, "  Run ID:\t%s\n", run.ID)
	w.Flush()
	fmt.Println()

	fmt.Println("OPERATING POINTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Value (in)\tRate (STB/D)\tPressure (psia)\tSolves\tStatus\n")
	fmt.Fprintf(w, "  ──────────\t────────────\t───────────────\t──────\t──────\n")
	best := 0
	for i, r := range run.Results {
		status := "✓"
		if len(r.Warnings) > 0 {
			status = fmt.Sprintf("⚠ %d warnings", len(r.Warnings))
		}
		fmt.Fprintf(w, "  %.4f\t%.1f\t%.1f\t%d\t%s\n",
			r.Value, r.OperatingPoint.Rate, r.OperatingPoint.Pressure, r.Stats.Solves, status)
		if r.OperatingPoint.Rate > run.Results[best].OperatingPoint.Rate {
			best = i
		}
	}
	w.Flush()
	fmt.Println()

	top := run.Results[best]
	fmt.Println(diagram.DrawSummaryBox("HIGHEST OPERATING RATE", []string{
		fmt.Sprintf("%s = %.4f in", run.Parameter, top.Value),
		fmt.Sprintf("Rate:     %.1f STB/D", top.OperatingPoint.Rate),
		fmt.Sprintf("Pressure: %.1f psia", top.OperatingPoint.Pressure),
	}))

	printWarnings(run.Warnings)

	if sensitivityShowDiagram {
		fmt.Println(diagram.DrawSweep(run))
	}

	if sensitivityExportFile != "" {
		if err := diagram.ExportSensitivityChart(run, sensitivityExportFile, chartSize()); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
			return
		}
		fmt.Printf("Chart exported to: %s\n", sensitivityExportFile)
	}

	if sensitivityCSVFile != "" {
		err := export.SaveFile(sensitivityCSVFile, func(w io.Writer) error {
			return export.WriteSweep(w, run)
		})
		if err != nil {
			fmt.Printf("Error exporting CSV: %v\n", err)
			return
		}
		fmt.Printf("Results exported to: %s\n", sensitivityCSVFile)
	}

	if sensitivityCurvesFile != "" {
		err := export.SaveFile(sensitivityCurvesFile, func(w io.Writer) error {
			return export.WriteSweepCurves(w, run)
		})
		if err != nil {
			fmt.Printf("Error exporting CSV: %v\n", err)
			return
		}
		fmt.Printf("Curves exported to: %s\n", sensitivityCurvesFile)
	}
}
