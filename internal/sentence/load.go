package sentence

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one sentence per line from path. Blank lines and lines starting
// with '#' are skipped.
func Load(path string, opts ...Option) (*Pool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence file.
			_ = cerr
		}
	}()

	var sentences []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sentences = append(sentences, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("sentence file %s has no sentences", path)
	}
	return New(sentences, opts...)
}
