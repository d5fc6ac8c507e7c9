// Package config provides configuration loading and validation for reglog.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// ReplaceDefaults drops the built-in rule table, keeping only Rules.
	ReplaceDefaults bool `yaml:"replace_defaults,omitempty"`

	Rules   []RuleConfig    `yaml:"rules,omitempty"`
	Derived []DerivedConfig `yaml:"derived,omitempty"`

	// Exclusive names additional categories in which a record should match
	// exactly one rule.
	Exclusive []string `yaml:"exclusive,omitempty"`

	Report ReportConfig `yaml:"report"`
}

// RuleConfig defines a single classification rule.
type RuleConfig struct {
	Category string `yaml:"category"`
	Match    string `yaml:"match,omitempty"`
	Counter  string `yaml:"counter"`

	// Sets names the flag raised when the rule fires.
	Sets string `yaml:"sets,omitempty"`

	// Requires and Excludes gate the rule on flags raised by other rules.
	Requires []string `yaml:"requires,omitempty"`
	Excludes []string `yaml:"excludes,omitempty"`
}

// Gated reports whether the rule depends on flags.
func (r *RuleConfig) Gated() bool {
	return len(r.Requires) > 0 || len(r.Excludes) > 0
}

// DerivedConfig defines a counter computed from other counters.
type DerivedConfig struct {
	Counter string   `yaml:"counter"`
	From    string   `yaml:"from"`
	Minus   []string `yaml:"minus,omitempty"`
}

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// ReportConfig controls report rendering.
type ReportConfig struct {
	// Title is printed at the top of the report.
	Title string `yaml:"title,omitempty"`

	// Output is the default format when --output is not given.
	Output OutputFormat `yaml:"output,omitempty"`
}
