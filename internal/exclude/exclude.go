// Package exclude loads exclusion patterns from plain-text files.
package exclude

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Load reads the exclude file at path from fsys.
func Load(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exclude file: %w", err)
	}
	defer f.Close()

	patterns, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading exclude file %s: %w", path, err)
	}

	return patterns, nil
}

// Parse returns one pattern per line.
// Format:
//
//	pattern    → kept as written, surrounding whitespace trimmed
//	# comment  → skip
//	blank line → skip
func Parse(r io.Reader) ([]string, error) {
	var patterns []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		patterns = append(patterns, line)
	}

	return patterns, scanner.Err()
}
