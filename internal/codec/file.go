package codec

import (
	"fmt"
	"os"

	"github.com/searchcore/invindex/internal/index"
)

// Dump persists the index to path through the given codec. It writes to
// a .tmp sibling first and renames on success, so a failed dump never
// corrupts a previously committed index file. Returns the number of
// bytes written.
func Dump(path string, c Codec, ix *index.Index) (int64, error) {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("creating temp index file: %w", err)
	}

	n, err := c.Encode(f, ix)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return n, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return n, fmt.Errorf("syncing index file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("closing index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("renaming index file: %w", err)
	}
	return n, nil
}

// Load reads the index back from path through the given codec.
func Load(path string, c Codec) (*index.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()
	return c.Decode(f)
}
