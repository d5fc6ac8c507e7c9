package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1024 * 1024

// ReaderSource implements LineSource over any io.Reader.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	lineNum int
}

// NewReaderSource creates a LineSource reading lines from r.
// The name is reported as the Source of every line.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ReaderSource{
		name:    name,
		scanner: scanner,
	}
}

// OpenFile opens a registration log for reading.
// Returns an error wrapping ErrInputNotFound if the file does not exist.
func OpenFile(path string) (*ReaderSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	src := NewReaderSource(f, path)
	src.closer = f
	return src, nil
}

// Next returns the next raw line.
// Returns io.EOF when the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*RawLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		s.lineNum++
		return &RawLine{
			Content: s.scanner.Text(),
			Source:  s.name,
			LineNum: s.lineNum,
		}, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.name, err)
	}

	return nil, io.EOF
}

// Close releases the underlying file, if any.
func (s *ReaderSource) Close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}
