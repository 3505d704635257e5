// Package cmd provides the CLI commands for trailerpack.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loadwise/trailerpack/internal/config"
	"github.com/loadwise/trailerpack/internal/logging"
)

// Version is the application version reported by the CLI and the API.
const Version = "1.0.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trailerpack",
	Short: "Optimize cargo placement in trailers",
	Long: `trailerpack computes a feasible placement of boxes inside a trailer
using layer-by-layer 3D bin packing (MaxRects, best short side fit).

Examples:
  trailerpack serve --addr :8080
  trailerpack optimize scenario.hcl
  trailerpack optimize scenario.json --format json
  trailerpack demos small`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trailerpack/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(demosCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trailerpack version " + Version)
	},
}
