package prefix

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ErrExhausted is returned when every prefix of the requested length is taken.
var ErrExhausted = errors.New("no unused prefix available")

// Generator samples random prefixes.
type Generator struct {
	// IntN returns a uniform random int in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

// Unique samples length lowercase letters until it finds one not in used.
//
// There is no retry limit. Sampling only starts when at least one free
// prefix exists, so the loop terminates.
func (g Generator) Unique(length int, used map[string]struct{}) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("prefix length must be positive, got %d", length)
	}

	taken := 0
	for p := range used {
		if Valid(p, length) {
			taken++
		}
	}
	if taken >= space(length) {
		return "", fmt.Errorf("%w: all %d prefixes of length %d are in use", ErrExhausted, space(length), length)
	}

	intN := g.IntN
	if intN == nil {
		intN = rand.IntN
	}

	buf := make([]byte, length)
	for attempt := 1; ; attempt++ {
		for i := range buf {
			buf[i] = alphabet[intN(len(alphabet))]
		}
		candidate := string(buf)
		if _, ok := used[candidate]; !ok {
			slog.Debug("generated prefix", "prefix", candidate, "attempts", attempt, "taken", taken)
			return candidate, nil
		}
	}
}

func space(length int) int {
	n := 1
	for i := 0; i < length; i++ {
		n *= len(alphabet)
	}
	return n
}
