package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertConserved checks that board holds exactly core.TotalSeeds seeds and
// that no slot is negative.
func AssertConserved(t *testing.T, board core.Board, msgAndArgs ...interface{}) bool {
	t.Helper()
	ok := assert.Equal(t, core.TotalSeeds, board.Total(), msgAndArgs...)
	for i, n := range board.Slots {
		if n < 0 {
			ok = assert.Fail(t, "negative slot", "slot %d holds %d seeds\n%s", i, n, board.String())
		}
	}
	return ok
}

