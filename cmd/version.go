package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonodal/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gonodal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gonodal v%s\n", version.Version)
		fmt.Println("Oil Well Nodal Analysis Tool")
		fmt.Printf("Built %s from commit %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
