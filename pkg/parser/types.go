// Package parser reads registration logs and reassembles their multi-line records.
package parser

import "sort"

// RawLine is a single line of input before reassembly.
type RawLine struct {
	// Content is the line text without its trailing newline.
	Content string

	// Source is the file path (or reader name) this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Record is one reassembled registration entry.
type Record struct {
	// Text is the concatenated raw text, from the start marker up to and
	// including the text that carried the end marker.
	Text string

	// ClientID is the value of the <MACID> tag.
	ClientID string

	// StartLine is the line number holding the record's start marker.
	StartLine int

	// Source is where the record was read from.
	Source string
}

// RecordTable maps client identifiers to the most recent record seen for them.
type RecordTable map[string]Record

// Len returns the number of unique clients.
func (t RecordTable) Len() int {
	return len(t)
}

// ClientIDs returns the table keys in sorted order.
func (t RecordTable) ClientIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
