package parser

import (
	"fmt"
	"strings"
)

// Record delimiters. A record ends with the closing tag of its date field,
// there is no dedicated end tag.
const (
	StartMarker   = "<MACID>"
	IDCloseMarker = "</MACID>"
	EndMarker     = "</DATE>"
)

// TagValue returns the text between <tag> and </tag>, using the first
// opening tag found in text.
func TagValue(text, tag string) (string, bool) {
	open := "<" + tag + ">"
	i := strings.Index(text, open)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(open):]

	j := strings.Index(rest, "</"+tag+">")
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// ClientID extracts the client identifier from a record's text.
// When the closing tag is missing, the rest of the start marker's line is
// used as the identifier.
func ClientID(text string) (string, error) {
	i := strings.Index(text, StartMarker)
	if i < 0 {
		return "", fmt.Errorf("%w: no %s tag", ErrMalformedRecord, StartMarker)
	}
	rest := text[i+len(StartMarker):]

	if j := strings.Index(rest, IDCloseMarker); j >= 0 {
		return rest[:j], nil
	}
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest), nil
}

// splitAtStart cuts a line before every start marker after the first, so
// each segment holds at most one marker. Text before the first marker stays
// in the first segment, as part of the line that marker starts.
func splitAtStart(text string) []string {
	idx := strings.Index(text, StartMarker)
	if idx < 0 {
		return []string{text}
	}

	segs := make([]string, 0, 2)
	head := idx + len(StartMarker)
	for {
		next := strings.Index(text[head:], StartMarker)
		if next < 0 {
			return append(segs, text)
		}
		cut := head + next
		segs = append(segs, text[:cut])
		text = text[cut:]
		head = len(StartMarker)
	}
}
