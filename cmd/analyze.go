package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/casefile"
	"github.com/alexiusacademia/gonodal/internal/diagram"
	"github.com/alexiusacademia/gonodal/internal/export"
	"github.com/alexiusacademia/gonodal/internal/nodal"
	"github.com/alexiusacademia/gonodal/internal/wellbore"
)

// caseSelection picks entries out of a case file, overriding its analysis block
type caseSelection struct {
	File       string
	Completion string
	Fluid      string
	Tubing     string
}

func (s *caseSelection) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.File, "case", "c", "", "Path to case file (YAML or JSON) [required]")
	cmd.MarkFlagRequired("case")
	cmd.Flags().StringVar(&s.Completion, "completion", "", "Completion name (overrides the case file)")
	cmd.Flags().StringVar(&s.Fluid, "fluid", "", "Fluid name (overrides the case file)")
	cmd.Flags().StringVar(&s.Tubing, "tubing", "", "Tubing name (overrides the case file)")
}

// inputs loads the case file and fills unset analysis values from config
func (s *caseSelection) inputs() (nodal.Inputs, error) {
	c, err := casefile.Load(s.File)
	if err != nil {
		return nodal.Inputs{}, err
	}
	if s.Completion != "" {
		c.Analysis.Completion = s.Completion
	}
	if s.Fluid != "" {
		c.Analysis.Fluid = s.Fluid
	}
	if s.Tubing != "" {
		c.Analysis.Tubing = s.Tubing
	}

	in, err := c.Inputs()
	if err != nil {
		return nodal.Inputs{}, err
	}
	if cfg != nil {
		a := cfg.Analysis
		if in.Points == 0 {
			in.Points = a.Points
		}
		if in.IPRPoints == 0 {
			in.IPRPoints = a.IPRPoints
		}
		if in.MinRate == 0 {
			in.MinRate = a.MinRate
		}
		if in.MaxRate == 0 {
			in.MaxRate = a.MaxRate
		}
		if in.SurfaceTemperature == 0 {
			in.SurfaceTemperature = a.SurfaceTemperature
		}
	}
	return in, nil
}

func workers() int {
	if cfg == nil {
		return 0
	}
	return cfg.Workers
}

var (
	analyzeCase        caseSelection
	analyzeShowDiagram bool
	analyzeExportFile  string
	analyzeCSVFile     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Find the operating point of a well",
	Long: `Run a nodal analysis on the completion, fluid and tubing selected
in a case file.

The IPR curve is built from the completion's inflow model. The VLP curve
is built by marching pressure from the wellhead down the tubing to the
shoe, then down the casing to the perforation, for each rate on the grid.
The operating point is where the two curves meet.

Examples:
  gonodal analyze --case well1.yaml
  gonodal analyze -c well1.yaml --completion Well-2 --tubing "3-1/2 EUE"
  gonodal analyze -c well1.yaml --diagram -o nodal.png --csv curves.csv`,
	Run: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCase.register(analyzeCmd)

	// Output options
	analyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII IPR/VLP chart and well schematic")
	analyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export chart to file (png, svg, pdf)")
	analyzeCmd.Flags().StringVar(&analyzeCSVFile, "csv", "", "Export IPR and VLP curves to CSV")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	in, err := analyzeCase.inputs()
	if err != nil {
		fmt.Printf("Error loading case: %v\n", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := nodal.Analyze(ctx, in, nodal.Options{Logger: logger, Workers: workers()})
	if err != nil {
		fmt.Printf("Error running analysis: %v\n", err)
		return
	}

	g := r.Geometry

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                       NODAL ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Completion:\t%s\n", r.Completion)
	fmt.Fprintf(w, "  Fluid:\t%s (%.1f °API, GOR %.0f scf/STB, WC %.0f%%)\n",
		in.Fluid.Name, in.Fluid.API, in.Fluid.GOR, in.Fluid.WaterCut*100)
	fmt.Fprintf(w, "  IPR model:\t%s\n", r.Model)
	fmt.Fprintf(w, "  Reservoir pressure:\t%.1f psia\n", in.Completion.Reservoir.Pressure)
	fmt.Fprintf(w, "  Wellhead pressure:\t%.1f psia\n", in.WellheadPressure)
	fmt.Fprintf(w, "  Run ID:\t%s\n", r.ID)
	w.Flush()
	fmt.Println()

	fmt.Println("FLOW PATH:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Segment\tName\tFrom (ft)\tTo (ft)\tID (in)\tRoughness (in)\n")
	fmt.Fprintf(w, "  ───────\t────\t─────────\t───────\t───────\t──────────────\n")
	for _, seg := range []struct {
		label string
		wellbore.PipeSegment
	}{{"Tubing", g.Tubing}, {"Casing", g.Casing}} {
		fmt.Fprintf(w, "  %s\t%s\t%.0f\t%.0f\t%.3f\t%.5f\n", seg.label, seg.Name,
			seg.TopDepth, seg.BottomDepth,
			seg.Diameter*wellbore.InchesPerFoot, seg.Roughness*wellbore.InchesPerFoot)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("INFLOW:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Absolute open flow:\t%.1f STB/D\n", r.AOF)
	if r.BubblePoint > 0 {
		fmt.Fprintf(w, "  Bubble point:\t%.1f psia\n", r.BubblePoint)
	}
	fmt.Fprintf(w, "  IPR points:\t%d\n", len(r.IPR))
	fmt.Fprintf(w, "  VLP points:\t%d\n", len(r.VLP))
	w.Flush()
	fmt.Println()

	fmt.Println("SOLVER:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Segment solves:\t%d\n", r.SolverStats.Solves)
	fmt.Fprintf(w, "  Iterations:\t%d\n", r.SolverStats.Iterations)
	converged := "✓"
	if r.SolverStats.NonConverged > 0 {
		converged = fmt.Sprintf("⚠ %d not converged", r.SolverStats.NonConverged)
	}
	fmt.Fprintf(w, "  Convergence:\t%s\n", converged)
	fmt.Fprintf(w, "  Elapsed:\t%s\n", r.Duration)
	w.Flush()
	fmt.Println()

	op := r.OperatingPoint
	fmt.Println(diagram.DrawSummaryBox("OPERATING POINT", []string{
		fmt.Sprintf("Rate:      %.1f STB/D", op.Rate),
		fmt.Sprintf("Pressure:  %.1f psia", op.Pressure),
		fmt.Sprintf("IPR / VLP: %.1f / %.1f psia", op.IPRPressure, op.VLPPressure),
	}))

	printWarnings(r.Warnings)

	if analyzeShowDiagram {
		chart, err := diagram.DrawCurves(r.IPR, r.VLP, op)
		if err != nil {
			fmt.Printf("Error drawing curves: %v\n", err)
		} else {
			fmt.Println(chart)
		}
		fmt.Println(diagram.DrawWellSchematic(g))
	}

	if analyzeExportFile != "" {
		if err := diagram.ExportNodalChart(r, analyzeExportFile, chartSize()); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
			return
		}
		fmt.Printf("Chart exported to: %s\n", analyzeExportFile)
	}

	if analyzeCSVFile != "" {
		err := export.SaveFile(analyzeCSVFile, func(w io.Writer) error {
			return export.WriteReport(w, r)
		})
		if err != nil {
			fmt.Printf("Error exporting CSV: %v\n", err)
			return
		}
		fmt.Printf("Curves exported to: %s\n", analyzeCSVFile)
	}
}
