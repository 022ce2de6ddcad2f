package notes

import (
	"testing"
	"time"

	"github.com/paravault/para/internal/testutil"
)

var fixedNow = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

// sequence returns an IntN that yields values in order, cycling when
// exhausted.
func sequence(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)] % n
		i++
		return v
	}
}

func newService(t *testing.T, v *testutil.TestVault, random ...int) *Service {
	t.Helper()
	opts := []Option{WithClock(func() time.Time { return fixedNow })}
	if len(random) > 0 {
		opts = append(opts, WithRandom(sequence(random...)))
	}
	return New(v.Config(), opts...)
}
