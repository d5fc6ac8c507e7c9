package classifier

import "github.com/ccollicutt/reglog/pkg/config"

// RulesFromConfig builds the rule table described by cfg: the default table
// followed by the configured rules, or the configured rules alone when
// ReplaceDefaults is set.
func RulesFromConfig(cfg *config.Config) RuleSet {
	var rs RuleSet
	if !cfg.ReplaceDefaults {
		rs = DefaultRules()
	}

	for _, rc := range cfg.Rules {
		rs.Rules = append(rs.Rules, Rule{
			Category: Category(rc.Category),
			Match:    rc.Match,
			Counter:  rc.Counter,
			Sets:     Flag(rc.Sets),
			Requires: toFlags(rc.Requires),
			Excludes: toFlags(rc.Excludes),
		})
	}

	for _, dc := range cfg.Derived {
		rs.Derived = append(rs.Derived, Derived{
			Counter: dc.Counter,
			From:    dc.From,
			Minus:   dc.Minus,
		})
	}

	for _, cat := range cfg.Exclusive {
		rs.Exclusive = append(rs.Exclusive, Category(cat))
	}

	return rs
}

// ConfigFromRules renders rs as a self-contained configuration that
// reproduces it when loaded.
func ConfigFromRules(rs RuleSet) *config.Config {
	cfg := config.DefaultConfig()
	cfg.ReplaceDefaults = true

	for _, r := range rs.Rules {
		cfg.Rules = append(cfg.Rules, config.RuleConfig{
			Category: string(r.Category),
			Match:    r.Match,
			Counter:  r.Counter,
			Sets:     string(r.Sets),
			Requires: fromFlags(r.Requires),
			Excludes: fromFlags(r.Excludes),
		})
	}
	for _, d := range rs.Derived {
		cfg.Derived = append(cfg.Derived, config.DerivedConfig{
			Counter: d.Counter,
			From:    d.From,
			Minus:   d.Minus,
		})
	}
	for _, cat := range rs.Exclusive {
		cfg.Exclusive = append(cfg.Exclusive, string(cat))
	}

	return cfg
}

func toFlags(names []string) []Flag {
	if len(names) == 0 {
		return nil
	}
	flags := make([]Flag, len(names))
	for i, n := range names {
		flags[i] = Flag(n)
	}
	return flags
}

func fromFlags(flags []Flag) []string {
	if len(flags) == 0 {
		return nil
	}
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	return names
}
