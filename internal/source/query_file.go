package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadQueries reads one query per line from r, transcoding from the
// named encoding. Each line is split on single spaces into query terms
// after trailing whitespace is stripped.
func ReadQueries(r io.Reader, encoding string) ([][]string, error) {
	decoded, err := decodingReader(r, encoding)
	if err != nil {
		return nil, err
	}
	var queries [][]string
	scanner := bufio.NewScanner(decoded)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		queries = append(queries, strings.Split(line, " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return queries, nil
}
