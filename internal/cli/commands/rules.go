package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/reglog/pkg/classifier"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Config string
	Output string
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective classification table",
		Long: `Print the classification table used by the report command.

Without --config the built-in table is shown. With -o yaml the table is
written as a configuration file with replace_defaults set, suitable as a
starting point for a custom table.

Example:
  reglog rules
  reglog rules -c rules.yaml
  reglog rules -o yaml > rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Rules configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|yaml)")

	return cmd
}

func runRules(cmd *cobra.Command, opts *RulesOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}
	rules := classifier.RulesFromConfig(cfg)

	switch opts.Output {
	case "text":
		return printRulesText(cmd, rules)
	case "yaml":
		out := classifier.ConfigFromRules(rules)
		out.Report = cfg.Report

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding rules: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (use text or yaml)", opts.Output)
	}
}

func printRulesText(cmd *cobra.Command, rules classifier.RuleSet) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CATEGORY\tCOUNTER\tMATCH\tSETS\tREQUIRES\tEXCLUDES")
	for _, r := range rules.Rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Category, r.Counter, orDash(r.Match), orDash(string(r.Sets)),
			joinFlags(r.Requires), joinFlags(r.Excludes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(rules.Derived) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Derived counters:")
		for _, d := range rules.Derived {
			expr := d.From
			for _, m := range d.Minus {
				expr += " - " + m
			}
			fmt.Fprintf(w, "  %s = %s\n", d.Counter, expr)
		}
	}
	if len(rules.Exclusive) > 0 {
		cats := make([]string, len(rules.Exclusive))
		for i, c := range rules.Exclusive {
			cats[i] = string(c)
		}
		fmt.Fprintf(w, "\nExclusive categories: %s\n", strings.Join(cats, ", "))
	}
	return nil
}

func joinFlags(flags []classifier.Flag) string {
	if len(flags) == 0 {
		return "-"
	}
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
