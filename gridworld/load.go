package gridworld

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a map in the FromASCII legend, one row per line. Blank lines
// and lines starting with '#' are skipped; trailing spaces and CR are trimmed.
func Load(r io.Reader, opts Options) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridworld: read map: %w", err)
	}
	return FromASCII(rows, opts)
}

// LoadFile is Load over the named file.
func LoadFile(path string, opts Options) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridworld: open map: %w", err)
	}
	defer f.Close()
	return Load(f, opts)
}
