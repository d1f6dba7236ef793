package game

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// SimulationContext carries the per-simulation services every component
// shares: the seeded random source, the tick clock and the logger. It is
// passed explicitly; there is no global simulation state.
type SimulationContext struct {
	Rand *rand.Rand
	Log  *log.Logger
	tick uint64
}

// NewSimulationContext creates a context with a random source seeded by seed.
// A nil logger discards all output.
func NewSimulationContext(seed int64, logger *log.Logger) *SimulationContext {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SimulationContext{
		Rand: rand.New(rand.NewSource(seed)),
		Log:  logger,
	}
}

// Tick returns the number of simulation steps executed so far.
func (c *SimulationContext) Tick() uint64 {
	return c.tick
}

func (c *SimulationContext) advance() uint64 {
	c.tick++
	return c.tick
}

// randomInt returns a value in [min, max).
func (c *SimulationContext) randomInt(min, max int) int {
	return min + c.Rand.Intn(max-min)
}
