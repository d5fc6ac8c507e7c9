package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/reglog/pkg/classifier"
	"github.com/ccollicutt/reglog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a rules configuration file",
		Long: `Validate a reglog rules configuration file without parsing a log.

Checks:
  - YAML syntax
  - Required rule fields (category, counter, match or flag gate)
  - Derived counter definitions
  - Report output format`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	rules := classifier.RulesFromConfig(cfg)

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	if cfg.ReplaceDefaults {
		fmt.Fprintf(w, "  Rules:    %d (built-in table replaced)\n", len(cfg.Rules))
	} else {
		fmt.Fprintf(w, "  Rules:    %d added to %d built-in\n", len(cfg.Rules), len(classifier.DefaultRules().Rules))
	}
	fmt.Fprintf(w, "  Derived:  %d\n", len(cfg.Derived))
	fmt.Fprintf(w, "  Effective table: %d rules, %d derived counters\n", len(rules.Rules), len(rules.Derived))
	fmt.Fprintf(w, "  Report:   %q (%s)\n", cfg.Report.Title, cfg.Report.Output)

	if len(cfg.Rules) > 0 {
		fmt.Fprintf(w, "\nRules:\n")
		for i, rule := range cfg.Rules {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, rule.Category, rule.Counter)
			if rule.Match != "" {
				fmt.Fprintf(w, "     match: %s\n", rule.Match)
			}
			if rule.Gated() {
				fmt.Fprintf(w, "     requires: %v excludes: %v\n", rule.Requires, rule.Excludes)
			}
		}
	}

	for _, warning := range rules.GateWarnings() {
		fmt.Fprintf(w, "\nWarning: %s\n", warning)
	}

	return nil
}
