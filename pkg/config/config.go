package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.ReplaceDefaults && len(cfg.Rules) == 0 {
		return errors.New("rules: at least one rule is required when replace_defaults is set")
	}

	for i := range cfg.Rules {
		if err := validateRule(&cfg.Rules[i]); err != nil {
			return fmt.Errorf("rules[%d] (%s): %w", i, cfg.Rules[i].Counter, err)
		}
	}

	for i := range cfg.Derived {
		if err := validateDerived(&cfg.Derived[i]); err != nil {
			return fmt.Errorf("derived[%d] (%s): %w", i, cfg.Derived[i].Counter, err)
		}
	}

	for i, cat := range cfg.Exclusive {
		if cat == "" {
			return fmt.Errorf("exclusive[%d]: category must not be empty", i)
		}
	}

	if err := validateReport(&cfg.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

func validateRule(rule *RuleConfig) error {
	if rule.Category == "" {
		return errors.New("category is required")
	}

	if rule.Counter == "" {
		return errors.New("counter is required")
	}

	if rule.Match == "" && !rule.Gated() {
		return errors.New("match is required for rules without requires/excludes")
	}

	for _, f := range rule.Requires {
		if f == "" {
			return errors.New("requires: flag names must not be empty")
		}
	}
	for _, f := range rule.Excludes {
		if f == "" {
			return errors.New("excludes: flag names must not be empty")
		}
	}

	return nil
}

func validateDerived(d *DerivedConfig) error {
	if d.Counter == "" {
		return errors.New("counter is required")
	}

	if d.From == "" {
		return errors.New("from is required")
	}

	for _, m := range d.Minus {
		if m == d.Counter {
			return fmt.Errorf("minus must not reference the derived counter %q itself", d.Counter)
		}
	}

	return nil
}

func validateReport(r *ReportConfig) error {
	if r.Title == "" {
		r.Title = DefaultTitle
	}

	switch r.Output {
	case "":
		r.Output = DefaultOutput
	case OutputText, OutputJSON:
		// Valid
	default:
		return fmt.Errorf("invalid output %q (must be text or json)", r.Output)
	}

	return nil
}
