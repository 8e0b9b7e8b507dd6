package cmd

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/config"
	"github.com/alexiusacademia/gonodal/internal/logging"
	"github.com/alexiusacademia/gonodal/internal/metrics"
	"github.com/alexiusacademia/gonodal/internal/version"
)

var (
	cfgFile string

	// Resolved in PersistentPreRunE, shared by subcommands
	cfg      *config.Config
	logger   = logr.Discard()
	registry = prometheus.NewRegistry()
)

var rootCmd = &cobra.Command{
	Use:   "gonodal",
	Short: "Oil Well Nodal Analysis Tool",
	Long: `gonodal - Go Nodal Analysis for Oil Wells

A CLI tool that finds the operating point of a producing oil well
from the intersection of its inflow (IPR) and outflow (VLP) curves.

This tool helps production engineers perform:
  - Black-oil PVT estimation (Standing, Beggs-Robinson, Papay)
  - Inflow performance with Well PI, Vogel, Fetkovich and Jones models
  - Vertical lift performance through tubing and casing
  - Operating point calculation
  - Tubing diameter and roughness sensitivity sweeps

Pressures are in psia, temperatures in °F, rates in STB/D.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		log, err := logging.New(c.Log.Level, c.Log.JSON)
		if err != nil {
			return err
		}
		if err := metrics.Register(registry); err != nil {
			return err
		}
		cfg, logger = c, log
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || cfg.Metrics.File == "" {
			return nil
		}
		return metrics.WriteTextfile(registry, cfg.Metrics.File)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gonodal v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Nodal Analysis for Oil Wells                         ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" © "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool that finds the operating point of an oil well")
		fmt.Println("  from the intersection of its IPR and VLP curves.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Black-oil PVT estimation")
		fmt.Println("    • Well PI, Vogel, Fetkovich and Jones inflow models")
		fmt.Println("    • Tubing and casing vertical lift performance")
		fmt.Println("    • Operating point and tubing sensitivity analysis")
		fmt.Println()
		fmt.Println("  Use 'gonodal --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log in JSON")
	rootCmd.PersistentFlags().Int("workers", 0, "Concurrent VLP workers (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this textfile")
}
