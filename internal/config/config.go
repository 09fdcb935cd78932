// Package config loads the process-scoped parameters that govern an
// analysis run: the interval domain's bounds M and N, and the number of
// narrowing iterations to run after widening. Nothing here is a package
// global — Load returns a Config value that the caller threads through
// explicitly, so two runs in the same process (e.g. the LSP server
// analyzing two open files) never share mutable state.
package config

import (
	"os"
	"strconv"

	"github.com/LucaBru/abstract-interpreter/internal/domain"
)

const (
	envM              = "TOYANALYZE_M"
	envN              = "TOYANALYZE_N"
	envNarrowingSteps = "TOYANALYZE_NARROWING_STEPS"

	// DefaultM and DefaultN bound the default interval window. They are
	// wide enough to track most toy-language programs exactly. Because
	// both are finite, the default domain has finite height and loops are
	// analyzed without widening (domain.Bounds.NeedsWidening is false).
	DefaultM = -1 << 30
	DefaultN = 1<<30 - 1

	// DefaultNarrowingSteps is the number of narrowing iterations run
	// after a loop's widened invariant stabilizes.
	DefaultNarrowingSteps = 3
)

// Config is the set of process-scoped analysis parameters.
type Config struct {
	Bounds         domain.Bounds
	NarrowingSteps int
}

// Load reads Config from the environment, silently falling back to the
// defaults for any variable that is unset or does not parse as an
// integer: a malformed knob should degrade to "run with the default
// window", not abort the whole analysis.
func Load() Config {
	return Config{
		Bounds: domain.Bounds{
			M: domain.Finite(envInt(envM, DefaultM)),
			N: domain.Finite(envInt(envN, DefaultN)),
		},
		NarrowingSteps: int(envInt(envNarrowingSteps, DefaultNarrowingSteps)),
	}
}

func envInt(name string, fallback int64) int64 {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
