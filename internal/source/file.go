package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// File streams documents from a line-oriented dataset file, one
// `id<ws>text` record per line.
type File struct {
	f       *os.File
	scanner *bufio.Scanner
}

// OpenFile opens a dataset file in the named text encoding.
func OpenFile(path string, encoding string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	r, err := decodingReader(f, encoding)
	if err != nil {
		f.Close()
		return nil, err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &File{f: f, scanner: scanner}, nil
}

// Next returns the next document. A line that cannot be parsed aborts
// the stream with ErrParse; it is never skipped.
func (s *File) Next(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return Document{}, fmt.Errorf("reading dataset: %w", err)
		}
		return Document{}, io.EOF
	}
	return ParseLine(s.scanner.Text())
}

func (s *File) Close() error {
	return s.f.Close()
}
