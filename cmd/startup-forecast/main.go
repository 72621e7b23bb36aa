package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "startup-forecast",
		Short: "Monthly simulation and decision search for a subscription business",
		Long: `startup-forecast simulates a subscription business month by month from a
set of assumptions and a spend plan, and searches for the spend plan that
maximizes the ending valuation while keeping cash non-negative.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newOptimizeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("startup-forecast version %s\n", version)
		},
	}
}
