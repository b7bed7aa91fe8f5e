package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/app"
	"github.com/repolens/repolens/internal/config"
)

var (
	version   = "0.1.0"
	cfgFile   string
	maxFiles  int
	fileTypes []string
	depth     string
	noCommits bool
	noCharts  bool
	dryRun    bool
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "repolens <repository-url>",
		Short:   "GitHub repository analyzer - code quality insights and suggestions",
		Long:    `repolens fetches a GitHub repository's metadata, commit history, and source files, runs pattern-based quality checks on each file, and renders the results as markdown reports with interactive charts.`,
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/repolens/config.yaml)")
	rootCmd.Flags().IntVarP(&maxFiles, "max-files", "n", 0, "Maximum number of files to analyze (default: 5)")
	rootCmd.Flags().StringSliceVarP(&fileTypes, "types", "t", nil, "File extensions to analyze (default: py,js,java)")
	rootCmd.Flags().StringVarP(&depth, "depth", "d", "", "Analysis depth: Basic, Standard or Deep (default: Standard)")
	rootCmd.Flags().BoolVar(&noCommits, "no-commits", false, "Skip commit history analysis")
	rootCmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart page generation")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze but don't send email")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags
	if maxFiles > 0 {
		cfg.Analysis.MaxFiles = maxFiles
	}
	if len(fileTypes) > 0 {
		cfg.Analysis.FileTypes = fileTypes
	}
	if depth != "" {
		cfg.Analysis.Depth = depth
	}
	if noCommits {
		cfg.Analysis.IncludeCommits = false
	}
	if noCharts {
		cfg.Reports.Charts = false
	}
	if dryRun {
		cfg.Email.Enabled = false
	}
	cfg.Verbose = verbose

	// Run the analysis
	runner := app.NewRunner(cfg)
	return runner.Run(cmd.Context(), args[0])
}
