package config

// Default values for configuration.
const (
	DefaultTitle  = "Registered installations"
	DefaultOutput = OutputText
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Rules:   []RuleConfig{},
		Derived: []DerivedConfig{},
		Report: ReportConfig{
			Title:  DefaultTitle,
			Output: DefaultOutput,
		},
	}
}
