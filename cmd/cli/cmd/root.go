// Package cmd provides the CLI commands for finopsguard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finopsguard/internal/config"
	"finopsguard/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "finopsguard",
	Short: "Cost and policy analysis for IaC definitions",
	Long: `finopsguard analyzes infrastructure-as-code definitions before
deployment, estimates their monthly cost, and evaluates them against
cost-governance policies.

Examples:
  finopsguard analyze main.tf
  finopsguard analyze --format ansible playbook.yml
  finopsguard analyze --policies policies.json --env prod main.tf`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.finopsguard.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pricingCmd)
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
		fmt.Println("finopsguard version 0.1.0")
	},
}
