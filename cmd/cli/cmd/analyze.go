// Package cmd - analyze command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finopsguard/core/engine"
	"finopsguard/core/parser"
	"finopsguard/core/policy"
	"finopsguard/core/types"
	"finopsguard/internal/config"
)

var (
	analyzeFormat   string
	analyzeEnv      string
	analyzeBudget   string
	analyzePolicies string
	outputFormat    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Estimate cost and evaluate policies for an IaC file",
	Long: `Parse an IaC file, estimate its monthly cost, and evaluate it
against cost-governance policies.

The format is inferred from the file extension (.tf is Terraform,
.yml/.yaml is Ansible) unless --format is given.

Examples:
  finopsguard analyze main.tf
  finopsguard analyze --format ansible playbook.yml
  finopsguard analyze --budget 500 --policies policies.json --env prod main.tf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "input format (terraform, ansible)")
	analyzeCmd.Flags().StringVarP(&analyzeEnv, "env", "e", "dev", "deployment environment for policy evaluation")
	analyzeCmd.Flags().StringVarP(&analyzeBudget, "budget", "b", "", "monthly budget in USD")
	analyzeCmd.Flags().StringVarP(&analyzePolicies, "policies", "p", "", "policy file or directory")
	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "cli", "output format (cli, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	format, err := resolveFormat(path, payload)
	if err != nil {
		return err
	}

	req := &engine.AnalysisRequest{
		Format:      format,
		Payload:     payload,
		Environment: analyzeEnv,
	}

	if analyzeBudget != "" {
		budget, err := decimal.NewFromString(analyzeBudget)
		if err != nil {
			return fmt.Errorf("invalid budget %q", analyzeBudget)
		}
		req.Budget = &types.BudgetRules{MonthlyBudget: &budget}
	}

	if analyzePolicies != "" {
		req.Policies, err = loadPolicies(analyzePolicies)
		if err != nil {
			return err
		}
	}

	eng, err := engine.New(config.Get())
	if err != nil {
		return err
	}

	result, err := eng.Analyze(context.Background(), req)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(result)
	}
	printResults(result)

	if result.PolicyEval != nil && result.PolicyEval.Blocked {
		os.Exit(2)
	}
	return nil
}

func resolveFormat(path string, payload []byte) (types.IaCFormat, error) {
	if analyzeFormat != "" {
		format := types.IaCFormat(analyzeFormat)
		if !format.IsValid() {
			return "", fmt.Errorf("unsupported format %q", analyzeFormat)
		}
		return format, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tf", ".hcl":
		return types.FormatTerraform, nil
	case ".yml", ".yaml":
		return types.FormatAnsible, nil
	}

	format, err := parser.DetectFormat(payload)
	if err != nil {
		return "", fmt.Errorf("cannot infer format for %s, use --format", path)
	}
	return format, nil
}

func loadPolicies(path string) ([]policy.Policy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return policy.LoadDir(path)
	}
	return policy.LoadFile(path)
}

func printJSON(result *engine.AnalysisResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printResults(result *engine.AnalysisResult) {
	sim := result.Simulation

	fmt.Println("┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Println("│                         COST ANALYSIS SUMMARY                           │")
	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")

	for _, entry := range sim.BreakdownByResource {
		fmt.Printf("│ %-50s %20s │\n",
			truncate(entry.ResourceID, 50),
			fmt.Sprintf("$%.2f/month", entry.MonthlyCost.InexactFloat64()))
	}

	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Printf("│ %-50s %20s │\n",
		"ESTIMATED MONTHLY COST",
		fmt.Sprintf("$%.2f", sim.EstimatedMonthlyCost.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n",
		"ESTIMATED FIRST WEEK",
		fmt.Sprintf("$%.2f", sim.EstimatedFirstWeekCost.InexactFloat64()))
	fmt.Println("└─────────────────────────────────────────────────────────────────────────┘")

	fmt.Printf("\nPricing confidence: %s\n", sim.PricingConfidence)
	if len(sim.RiskFlags) > 0 {
		fmt.Printf("Risk flags: %s\n", strings.Join(sim.RiskFlags, ", "))
	}

	if result.PolicyEval != nil {
		fmt.Println()
		for _, r := range result.PolicyEval.Results {
			marker := "✓"
			if r.Status == policy.StatusFail {
				marker = "✗"
			}
			fmt.Printf("%s [%s] %s: %s\n", marker, r.Mode, r.PolicyID, r.Reason)
		}
		for _, s := range result.PolicyEval.Skipped {
			fmt.Printf("- skipped %s: %s\n", s.PolicyID, s.Reason)
		}
		if result.PolicyEval.Blocked {
			fmt.Println("\nDEPLOYMENT BLOCKED by policy")
		}
	}

	fmt.Printf("\nAnalysis completed in %s\n", result.Duration.Round(time.Millisecond))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
