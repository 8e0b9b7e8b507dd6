package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/casefile"
	"github.com/alexiusacademia/gonodal/internal/curve"
	"github.com/alexiusacademia/gonodal/internal/diagram"
	"github.com/alexiusacademia/gonodal/internal/fluid"
	"github.com/alexiusacademia/gonodal/internal/ipr"
	"github.com/alexiusacademia/gonodal/internal/notice"
)

var (
	// Source
	iprCaseFile   string
	iprCompletion string
	iprFluid      string

	// Model flags
	iprModel       string
	iprPressure    float64
	iprTemperature float64
	iprPI          float64
	iprVogelBelow  bool
	iprQmax        float64
	iprVogelC      float64
	iprExponent    float64
	iprJonesA      float64
	iprJonesB      float64

	// Fluid for the bubble point when no case file is given
	iprAPI   float64
	iprGOR   float64
	iprGasSG float64

	// Grid and output
	iprMinPwf      float64
	iprPoints      int
	iprShowDiagram bool
	iprExportFile  string
)

var iprCmd = &cobra.Command{
	Use:   "ipr",
	Short: "Tabulate an inflow performance relationship",
	Long: `Tabulate the inflow performance (IPR) of a reservoir: the liquid
rate delivered at each flowing bottomhole pressure.

Models:
  well-pi    - straight-line productivity index, optionally with Vogel below Pb
  vogel      - generalised Vogel with coefficient C
  fetkovich  - back-pressure model with exponent n
  jones      - laminar/turbulent coefficients A and B

The model is given with flags or taken from a completion in a case file.
The curve is sampled from pwf = 100 psi up to reservoir pressure.

Examples:
  # Vogel from flags
  gonodal ipr --model vogel --pressure 3000 --qmax 1000 --vogel-c 0.2

  # Straight-line PI with Vogel below the bubble point
  gonodal ipr --model well-pi --pressure 3400 --temperature 195 --pi 0.8 --vogel-below-pb --api 32 --gor 650

  # Completion from a case file, with chart
  gonodal ipr --case well1.yaml --completion Well-2 --diagram -o ipr.png`,
	Run: runIPR,
}

func init() {
	rootCmd.AddCommand(iprCmd)

	iprCmd.Flags().StringVarP(&iprCaseFile, "case", "c", "", "Case file holding the completion catalog")
	iprCmd.Flags().StringVar(&iprCompletion, "completion", "", "Completion name in the case file")
	iprCmd.Flags().StringVar(&iprFluid, "fluid", "", "Fluid name in the case file (bubble point)")

	iprCmd.Flags().StringVarP(&iprModel, "model", "m", "vogel", "IPR model: well-pi, vogel, fetkovich, jones")
	iprCmd.Flags().Float64VarP(&iprPressure, "pressure", "p", 0, "Reservoir pressure (psia)")
	iprCmd.Flags().Float64VarP(&iprTemperature, "temperature", "t", 180, "Reservoir temperature (°F)")
	iprCmd.Flags().Float64Var(&iprPI, "pi", 0, "Productivity index (STB/D/psi)")
	iprCmd.Flags().BoolVar(&iprVogelBelow, "vogel-below-pb", false, "Use Vogel below the bubble point (well-pi)")
	iprCmd.Flags().Float64Var(&iprQmax, "qmax", 0, "Maximum flow rate Q_max (STB/D)")
	iprCmd.Flags().Float64Var(&iprVogelC, "vogel-c", 0.2, "Vogel coefficient C")
	iprCmd.Flags().Float64Var(&iprExponent, "n", 1, "Fetkovich exponent")
	iprCmd.Flags().Float64Var(&iprJonesA, "jones-a", 0, "Jones laminar coefficient A (psi/(STB/D))")
	iprCmd.Flags().Float64Var(&iprJonesB, "jones-b", 0, "Jones turbulent coefficient B (psi/(STB/D)²)")

	iprCmd.Flags().Float64Var(&iprAPI, "api", 35, "Oil gravity (°API)")
	iprCmd.Flags().Float64Var(&iprGOR, "gor", 500, "Producing gas-oil ratio (scf/STB)")
	iprCmd.Flags().Float64Var(&iprGasSG, "gas-sg", 0.7, "Gas specific gravity (air = 1)")

	iprCmd.Flags().Float64Var(&iprMinPwf, "min-pwf", ipr.DefaultMinPwf, "Lowest pwf sampled (psi)")
	iprCmd.Flags().IntVar(&iprPoints, "points", ipr.DefaultPlotPoints, "Number of pwf samples")
	iprCmd.Flags().BoolVar(&iprShowDiagram, "diagram", false, "Show ASCII IPR chart")
	iprCmd.Flags().StringVarP(&iprExportFile, "output", "o", "", "Export chart to file (png, svg, pdf)")
}

// iprReservoir assembles the reservoir record from flags
func iprReservoir() ipr.Reservoir {
	r := ipr.Reservoir{
		Model:       iprModel,
		Pressure:    iprPressure,
		Temperature: iprTemperature,
	}
	kind, err := ipr.ParseKind(iprModel)
	if err != nil {
		return r
	}
	switch kind {
	case ipr.KindWellPI:
		r.WellPI = &ipr.WellPIParams{ProductivityIndex: iprPI, UseVogelBelowBubblePoint: iprVogelBelow}
	case ipr.KindVogel:
		r.Vogel = &ipr.VogelParams{MaxFlowRate: iprQmax, Coefficient: iprVogelC}
	case ipr.KindFetkovich:
		r.Fetkovich = &ipr.FetkovichParams{MaxFlowRate: iprQmax, Exponent: iprExponent}
	case ipr.KindJones:
		r.Jones = &ipr.JonesParams{A: iprJonesA, B: iprJonesB}
	}
	return r
}

// iprSource returns the reservoir, its fluid and a display name
func iprSource() (ipr.Reservoir, *fluid.Sample, string, error) {
	if iprCaseFile == "" {
		fl := &fluid.Sample{Name: "flags", API: iprAPI, GOR: iprGOR, GasSG: iprGasSG, WaterSG: 1}
		return iprReservoir(), fl, "flags", nil
	}

	c, err := casefile.Load(iprCaseFile)
	if err != nil {
		return ipr.Reservoir{}, nil, "", err
	}
	name := iprCompletion
	if name == "" {
		name = c.Analysis.Completion
	}
	comp, err := c.Completion(name)
	if err != nil {
		return ipr.Reservoir{}, nil, "", err
	}

	fluidName := iprFluid
	if fluidName == "" {
		fluidName = c.Analysis.Fluid
	}
	var fl *fluid.Sample
	if fluidName != "" {
		if fl, err = c.Fluid(fluidName); err != nil {
			return ipr.Reservoir{}, nil, "", err
		}
	}
	return comp.Reservoir, fl, comp.Name, nil
}

func runIPR(cmd *cobra.Command, args []string) {
	res, fl, name, err := iprSource()
	if err != nil {
		fmt.Printf("Error loading completion: %v\n", err)
		return
	}

	m, warnings, err := res.Build(fl)
	if err != nil {
		fmt.Printf("Error building IPR model: %v\n", err)
		return
	}

	c := ipr.FromPressures(m, ipr.PressureGrid(m, iprMinPwf, iprPoints))

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                INFLOW PERFORMANCE RELATIONSHIP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("RESERVOIR:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Completion:\t%s\n", name)
	fmt.Fprintf(w, "  Model:\t%s\n", m.Kind())
	fmt.Fprintf(w, "  Reservoir pressure:\t%.1f psia\n", res.Pressure)
	fmt.Fprintf(w, "  Reservoir temperature:\t%.1f °F\n", res.Temperature)
	if comp, ok := m.(*ipr.Composite); ok {
		fmt.Fprintf(w, "  Bubble point:\t%.1f psia\n", comp.Pb)
		fmt.Fprintf(w, "  Rate at bubble point:\t%.1f STB/D\n", comp.BubblePointRate())
	}
	w.Flush()
	fmt.Println()

	fmt.Println("IPR TABLE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Pwf (psia)\tRate (STB/D)\n")
	fmt.Fprintf(w, "  ──────────\t────────────\n")
	for _, p := range c {
		fmt.Fprintf(w, "  %.1f\t%.1f\n", p.Pressure, p.Rate)
	}
	w.Flush()
	fmt.Println()

	fmt.Println(diagram.DrawSummaryBox("ABSOLUTE OPEN FLOW", []string{
		fmt.Sprintf("AOF = %.1f STB/D", m.AOF()),
	}))

	printWarnings(warnings)

	if iprShowDiagram {
		chart, err := diagram.DrawIPR(ipr.FromRates(m, curve.Linspace(0, m.AOF(), iprPoints)), m.AOF())
		if err != nil {
			fmt.Printf("Error drawing IPR: %v\n", err)
		} else {
			fmt.Println(chart)
		}
	}

	if iprExportFile != "" {
		title := fmt.Sprintf("IPR: %s (%s)", name, m.Kind())
		if err := diagram.ExportIPRChart(c, title, iprExportFile, chartSize()); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
			return
		}
		fmt.Printf("Chart exported to: %s\n", iprExportFile)
	}
}

func printWarnings(warnings notice.List) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println("WARNINGS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, w := range warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
	fmt.Println()
}

func chartSize() diagram.Size {
	if cfg == nil {
		return diagram.Size{}
	}
	return diagram.Size{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
}
