package media

import (
	"encoding/json"
	"fmt"
)

// The class-probability list is stored in a plain JSON text column. The
// conversion is invoked explicitly by the repository at the point of use, so
// it stays visible and testable without a persistence context.

// EncodeProbabilities serializes a probability list to its column form. An
// empty list encodes to the empty string.
func EncodeProbabilities(p []float64) (string, error) {
	if len(p) == 0 {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode probabilities: %w", err)
	}
	return string(b), nil
}

// DecodeProbabilities parses the column form back into a probability list.
func DecodeProbabilities(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	var p []float64
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("decode probabilities: %w", err)
	}
	return p, nil
}
