package classifier

import (
	"go.uber.org/zap"

	"github.com/ccollicutt/reglog/pkg/parser"
)

// Classification is the outcome of running the rule table on one record.
type Classification struct {
	// Flags raised by matching rules.
	Flags FlagSet

	// Counters lists the counters incremented, in rule order. A counter
	// appears once per matching rule.
	Counters []string

	// Hits counts matching rules per category.
	Hits map[Category]int
}

// Violation is an exclusive category that a record matched zero times or
// more than once.
type Violation struct {
	Category Category
	Matches  int
}

// Violations returns the categories of exclusive that c does not match
// exactly once, in the order given.
func (c Classification) Violations(exclusive []Category) []Violation {
	var out []Violation
	for _, cat := range exclusive {
		if hits := c.Hits[cat]; hits != 1 {
			out = append(out, Violation{Category: cat, Matches: hits})
		}
	}
	return out
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLogger sets the logger used for unassigned/multiply-assigned warnings.
func WithLogger(logger *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Aggregator applies a RuleSet to reassembled records.
type Aggregator struct {
	rules  RuleSet
	text   []Rule
	gated  []Rule
	logger *zap.Logger
}

// NewAggregator creates an aggregator for the given rule table.
func NewAggregator(rules RuleSet, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		rules:  rules,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, r := range rules.Rules {
		if r.Gated() {
			a.gated = append(a.gated, r)
		} else {
			a.text = append(a.text, r)
		}
	}

	return a
}

// Classify evaluates the rule table against a single record text.
// Ungated rules run first; gated rules then run in table order against the
// flags raised so far.
func (a *Aggregator) Classify(text string) Classification {
	c := Classification{
		Flags: make(FlagSet),
		Hits:  make(map[Category]int),
	}

	apply := func(r Rule) {
		c.Counters = append(c.Counters, r.Counter)
		c.Hits[r.Category]++
		if r.Sets != "" {
			c.Flags[r.Sets] = true
		}
	}

	for _, r := range a.text {
		if r.fires(text, nil) {
			apply(r)
		}
	}
	for _, r := range a.gated {
		if r.fires(text, c.Flags) {
			apply(r)
		}
	}

	return c
}

// Aggregate tallies every record of a reassembly result.
// The result is not modified, so repeated calls yield equal statistics.
func (a *Aggregator) Aggregate(result *parser.Result) *Statistics {
	stats := &Statistics{
		TransactionCount: result.TransactionCount,
		UniqueCount:      result.Records.Len(),
		LinesProcessed:   result.LinesProcessed,
		CorruptCount:     result.CorruptCount,
		FirstDate:        result.FirstDate,
		counters:         make(map[string]int),
	}
	for _, r := range a.rules.Rules {
		stats.counters[r.Counter] = 0
	}
	stats.counters[CounterTotal] = stats.UniqueCount

	for _, id := range result.Records.ClientIDs() {
		rec := result.Records[id]
		c := a.Classify(rec.Text)

		for _, name := range c.Counters {
			stats.counters[name]++
		}

		a.checkExclusive(rec, c)
	}

	for _, d := range a.rules.Derived {
		v := stats.counters[d.From]
		for _, m := range d.Minus {
			v -= stats.counters[m]
		}
		stats.counters[d.Counter] = v
	}

	return stats
}

func (a *Aggregator) checkExclusive(rec parser.Record, c Classification) {
	for _, v := range c.Violations(a.rules.Exclusive) {
		if v.Matches == 0 {
			a.logger.Debug("unassigned record",
				zap.String("category", string(v.Category)),
				zap.String("client_id", rec.ClientID),
				zap.Int("start_line", rec.StartLine))
			continue
		}
		a.logger.Debug("multiply-assigned record",
			zap.String("category", string(v.Category)),
			zap.String("client_id", rec.ClientID),
			zap.Int("start_line", rec.StartLine),
			zap.Int("matches", v.Matches))
	}
}
