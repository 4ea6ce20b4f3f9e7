package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCharlist reads a characteristic list, one name per line. Blank lines
// and lines starting with # are skipped; names are trimmed and lowercased so
// they compare equal to regularized record names.
func LoadCharlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open charlist: %w", err)
	}
	defer f.Close()

	charlist, err := ReadCharlist(f)
	if err != nil {
		return nil, fmt.Errorf("read charlist %s: %w", path, err)
	}
	return charlist, nil
}

// ReadCharlist parses a characteristic list from r. Single-line lists may
// separate names with semicolons instead.
func ReadCharlist(r io.Reader) ([]string, error) {
	var charlist []string
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		charlist = append(charlist, name)
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, name := range strings.Split(line, ";") {
			add(name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return charlist, nil
}
