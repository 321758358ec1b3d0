package buckets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/wordbucket/pkg/words"
)

// ErrMalformedLine is returned by Parse for a line that is not "<WORD> <COUNT>".
var ErrMalformedLine = errors.New("malformed bucket line")

// Parse reads a rendered blob back into its entries. Lines are split on the
// last space; a trailing newline is optional.
func Parse(blob string) ([]WordByCount, error) {
	blob = strings.TrimSuffix(blob, "\n")
	if blob == "" {
		return nil, nil
	}

	lines := strings.Split(blob, "\n")
	out := make([]WordByCount, 0, len(lines))
	for i, line := range lines {
		idx := strings.LastIndexByte(line, ' ')
		if idx <= 0 {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrMalformedLine)
		}

		count, err := strconv.Atoi(line[idx+1:])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrMalformedLine)
		}

		w, err := words.New(line[:idx])
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, err)
		}
		out = append(out, WordByCount{Word: w, Count: count})
	}
	return out, nil
}
