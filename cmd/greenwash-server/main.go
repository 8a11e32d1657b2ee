package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	datasetPath string
)

// rootCmd serves the dashboard when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "greenwash-server",
	Short: "Greenwashing litigation dashboard",
	Long: `Serves interactive charts and browsable case listings built from a
CSV dataset of greenwashing litigation cases.

Run without arguments to start the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $GREENWASH_CONFIG, then config/greenwash.toml)")
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "Case CSV file, overrides dataset.path")

	summaryCmd.Flags().StringArrayVarP(&summaryFilters, "filter", "f", nil, "Filter as field=value, repeatable (e.g. -f claim_type=Recyclability)")
	summaryCmd.Flags().IntVar(&summaryTop, "top", 5, "Rows per ranking")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
