package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/casefile"
	"github.com/alexiusacademia/gonodal/internal/fluid"
)

var (
	pvtCaseFile string
	pvtFluid    string

	pvtAPI      float64
	pvtGOR      float64
	pvtWaterCut float64
	pvtGasSG    float64
	pvtWaterSG  float64

	pvtPressure          float64
	pvtTemperature       float64
	pvtReservoirPressure float64
)

var pvtCmd = &cobra.Command{
	Use:   "pvt",
	Short: "Estimate black-oil fluid properties at a pressure and temperature",
	Long: `Estimate the black-oil properties of a produced fluid at one
pressure and temperature.

Properties are computed with Standing (Rs, Bo, Pb), Papay (Z),
Beggs-Robinson (oil viscosity) and Lee-Gonzalez-Eakin (gas viscosity).
The fluid is given with flags or taken from a case file.

Examples:
  # Fluid from flags
  gonodal pvt --api 35 --gor 500 --wc 0.2 --pressure 1500 --temperature 150

  # Fluid from a case file, with the bubble point at reservoir pressure
  gonodal pvt --case well1.yaml --fluid "Oil A" -p 2000 -t 180 --reservoir-pressure 3000`,
	Run: runPVT,
}

func init() {
	rootCmd.AddCommand(pvtCmd)

	// Fluid source
	pvtCmd.Flags().StringVarP(&pvtCaseFile, "case", "c", "", "Case file holding the fluid catalog")
	pvtCmd.Flags().StringVar(&pvtFluid, "fluid", "", "Fluid name in the case file")

	// Fluid flags
	pvtCmd.Flags().Float64Var(&pvtAPI, "api", 35, "Oil gravity (°API)")
	pvtCmd.Flags().Float64Var(&pvtGOR, "gor", 500, "Producing gas-oil ratio (scf/STB)")
	pvtCmd.Flags().Float64Var(&pvtWaterCut, "wc", 0, "Water cut (fraction)")
	pvtCmd.Flags().Float64Var(&pvtGasSG, "gas-sg", 0.7, "Gas specific gravity (air = 1)")
	pvtCmd.Flags().Float64Var(&pvtWaterSG, "water-sg", 1.07, "Water specific gravity")

	// Conditions
	pvtCmd.Flags().Float64VarP(&pvtPressure, "pressure", "p", 0, "Pressure (psia) [required]")
	pvtCmd.Flags().Float64VarP(&pvtTemperature, "temperature", "t", 0, "Temperature (°F) [required]")
	pvtCmd.Flags().Float64Var(&pvtReservoirPressure, "reservoir-pressure", 0, "Reservoir pressure for the bubble point clamp (psia)")
	pvtCmd.MarkFlagRequired("pressure")
	pvtCmd.MarkFlagRequired("temperature")
}

func pvtSample() (*fluid.Sample, error) {
	if pvtCaseFile == "" {
		s := &fluid.Sample{
			Name:     "flags",
			API:      pvtAPI,
			GOR:      pvtGOR,
			WaterCut: pvtWaterCut,
			GasSG:    pvtGasSG,
			WaterSG:  pvtWaterSG,
		}
		return s, s.Validate()
	}
	c, err := casefile.Load(pvtCaseFile)
	if err != nil {
		return nil, err
	}
	name := pvtFluid
	if name == "" {
		name = c.Analysis.Fluid
	}
	return c.Fluid(name)
}

func runPVT(cmd *cobra.Command, args []string) {
	s, err := pvtSample()
	if err != nil {
		fmt.Printf("Error loading fluid: %v\n", err)
		return
	}
	if pvtPressure <= 0 {
		fmt.Printf("Error: pressure %.2f must be > 0\n", pvtPressure)
		return
	}

	r := s.Properties(pvtPressure, pvtTemperature)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                  BLACK-OIL FLUID PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("FLUID:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name:\t%s\n", s.Name)
	fmt.Fprintf(w, "  Oil gravity:\t%.1f °API (γo = %.4f)\n", s.API, s.OilSG())
	fmt.Fprintf(w, "  Producing GOR:\t%.0f scf/STB\n", s.GOR)
	fmt.Fprintf(w, "  Water cut:\t%.1f%%\n", s.WaterCut*100)
	fmt.Fprintf(w, "  Gas specific gravity:\t%.3f\n", s.GasSG)
	fmt.Fprintf(w, "  Water specific gravity:\t%.3f\n", s.WaterSG)
	w.Flush()
	fmt.Println()

	fmt.Printf("PROPERTIES AT %.1f psia, %.1f °F:\n", r.Pressure, r.Temperature)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Solution GOR (Rs):\t%.1f scf/STB\n", r.Rs)
	fmt.Fprintf(w, "  Oil FVF (Bo):\t%.4f bbl/STB\n", r.Bo)
	fmt.Fprintf(w, "  Water FVF (Bw):\t%.4f bbl/STB\n", r.Bw)
	fmt.Fprintf(w, "  Gas FVF (Bg):\t%.6f ft³/scf\n", r.Bg)
	fmt.Fprintf(w, "  Z-factor:\t%.4f\n", r.Z)
	w.Flush()
	fmt.Println()

	fmt.Println("DENSITY (lb/ft³):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Oil:\t%.2f\n", r.OilDensity)
	fmt.Fprintf(w, "  Water:\t%.2f\n", r.WaterDensity)
	fmt.Fprintf(w, "  Gas:\t%.3f\n", r.GasDensity)
	fmt.Fprintf(w, "  Liquid:\t%.2f\n", r.LiquidDensity)
	w.Flush()
	fmt.Println()

	fmt.Println("VISCOSITY (cp) AND SURFACE TENSION (dyne/cm):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Dead oil viscosity:\t%.3f\n", r.DeadOilViscosity)
	fmt.Fprintf(w, "  Live oil viscosity:\t%.3f\n", r.OilViscosity)
	fmt.Fprintf(w, "  Water viscosity:\t%.3f\n", r.WaterViscosity)
	fmt.Fprintf(w, "  Gas viscosity:\t%.4f\n", r.GasViscosity)
	fmt.Fprintf(w, "  Liquid viscosity:\t%.3f\n", r.LiquidViscosity)
	fmt.Fprintf(w, "  Liquid surface tension:\t%.2f\n", r.LiquidTension)
	w.Flush()
	fmt.Println()

	if pvtReservoirPressure > 0 {
		pb, ok := s.BubblePoint(pvtTemperature, pvtReservoirPressure)
		status := "Standing"
		if !ok {
			status = "fallback 0.8·Pws"
		}
		fmt.Println("BUBBLE POINT:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Printf("  Pb = %.1f psia (%s)\n", pb, status)
		fmt.Println()
	}
}
