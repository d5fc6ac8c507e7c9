// Package classifier tallies deduplicated registration records against a
// declarative table of substring rules.
package classifier

import (
	"fmt"
	"strings"
)

// Category groups rules that describe the same attribute of a record.
type Category string

const (
	CategoryFlavor      Category = "flavor"
	CategoryOS          Category = "os"
	CategoryOSVersion   Category = "osversion"
	CategoryCPU         Category = "cpu"
	CategoryMacArch     Category = "macarch"
	CategoryEnvironment Category = "environment"
	CategoryEnvVersion  Category = "envversion"
	CategoryWordSize    Category = "wordsize"
	CategoryCombination Category = "combination"
)

// Flag is a per-record boolean feature set by a matching rule.
type Flag string

const (
	FlagOSX       Flag = "osx"
	FlagWindows   Flag = "windows"
	FlagLinux     Flag = "linux"
	FlagOSVersion Flag = "osversion"
	FlagPPC       Flag = "ppc"
	FlagIntel     Flag = "intel"
	FlagARM       Flag = "arm"
	FlagMacNative Flag = "macnative"
	FlagMatlab    Flag = "matlab"
	FlagOctave    Flag = "octave"
	FlagPreR2007a Flag = "pre_r2007a"
	FlagBits32    Flag = "bits32"
	FlagBits64    Flag = "bits64"
)

// FlagSet holds the flags raised for one record.
type FlagSet map[Flag]bool

// Has reports whether f is set.
func (s FlagSet) Has(f Flag) bool {
	return s[f]
}

// Rule increments Counter when a record contains Match.
//
// A rule with Requires or Excludes is gated: it is evaluated after all
// ungated rules, and only fires when every required flag is set and no
// excluded flag is. A gated rule may leave Match empty.
type Rule struct {
	Category Category
	Match    string
	Counter  string

	// Sets is raised on the record when the rule fires.
	Sets Flag

	Requires []Flag
	Excludes []Flag
}

// Gated reports whether the rule depends on flags.
func (r Rule) Gated() bool {
	return len(r.Requires) > 0 || len(r.Excludes) > 0
}

func (r Rule) fires(text string, flags FlagSet) bool {
	for _, f := range r.Requires {
		if !flags.Has(f) {
			return false
		}
	}
	for _, f := range r.Excludes {
		if flags.Has(f) {
			return false
		}
	}
	return r.Match == "" || strings.Contains(text, r.Match)
}

// Derived is a counter computed after aggregation as From minus every
// counter in Minus.
type Derived struct {
	Counter string
	From    string
	Minus   []string
}

// RuleSet is the full classification table.
type RuleSet struct {
	Rules   []Rule
	Derived []Derived

	// Exclusive lists categories in which a record should match exactly one
	// rule. Violations are only logged.
	Exclusive []Category
}

// GateWarnings reports gate flags that cannot work as written: flags no rule
// sets, and flags set only by gated rules placed later in the table. Gated
// rules run in table order after all ungated rules, so a gate never sees a
// flag raised after it.
func (rs RuleSet) GateWarnings() []string {
	setBy := make(map[Flag]int) // position of the first gated setter, -1 if ungated
	for i, r := range rs.Rules {
		if r.Sets == "" {
			continue
		}
		pos := i
		if !r.Gated() {
			pos = -1
		}
		if prev, ok := setBy[r.Sets]; !ok || pos < prev {
			setBy[r.Sets] = pos
		}
	}

	var warnings []string
	seen := make(map[Flag]bool)
	for i, r := range rs.Rules {
		gates := append(append([]Flag{}, r.Requires...), r.Excludes...)
		for _, f := range gates {
			if seen[f] {
				continue
			}
			pos, ok := setBy[f]
			switch {
			case !ok:
				warnings = append(warnings, fmt.Sprintf("flag %q used by %s is never set by any rule", f, r.Counter))
			case pos >= i:
				warnings = append(warnings, fmt.Sprintf("flag %q used by %s is only set by a later gated rule (%s)", f, r.Counter, rs.Rules[pos].Counter))
			default:
				continue
			}
			seen[f] = true
		}
	}
	return warnings
}
