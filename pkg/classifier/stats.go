package classifier

import "sort"

// Statistics is the read-only outcome of an aggregation run.
type Statistics struct {
	// TransactionCount is the number of completed records, duplicates included.
	TransactionCount int

	// UniqueCount is the number of distinct clients.
	UniqueCount int

	// LinesProcessed is the number of log lines read.
	LinesProcessed int

	// CorruptCount is the number of records abandoned mid-stream.
	CorruptCount int

	// FirstDate is the date of the earliest registration in the log.
	FirstDate string

	counters map[string]int
}

// Count returns the value of a named counter, 0 if it never fired.
func (s *Statistics) Count(name string) int {
	return s.counters[name]
}

// Counters returns a copy of every counter.
func (s *Statistics) Counters() map[string]int {
	out := make(map[string]int, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Names returns the counter names in sorted order.
func (s *Statistics) Names() []string {
	names := make([]string, 0, len(s.counters))
	for k := range s.counters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Percent returns counter part as a percentage of counter whole.
func (s *Statistics) Percent(part, whole string) float64 {
	return Percent(s.Count(part), s.Count(whole))
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
