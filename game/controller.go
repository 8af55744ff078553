package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/systems"
)

// State is the phase the controller runs on its next Advance.
type State uint8

const (
	StatePopulate State = iota
	StateSimulate
	StateSelect
)

func (s State) String() string {
	switch s {
	case StatePopulate:
		return "populate"
	case StateSimulate:
		return "simulate"
	case StateSelect:
		return "select"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// SelectionReport is handed to observers after every successful selection.
type SelectionReport struct {
	Generation int
	Selection  systems.SelectionStats
	Steps      systems.StepStats     // summed over the generation's simulate ticks
	Population components.Population // the population selection read from; read only
}

// Controller owns the live population and sequences
// Populate -> Simulate x N -> Select -> Populate. It never stops on its own.
type Controller struct {
	env systems.Env
	rng *rand.Rand

	pop        components.Population
	state      State
	step       int
	generation int
	speed      int

	steps         systems.StepStats
	lastSelection systems.SelectionStats
	observers     []func(SelectionReport)
	phaseHook     func(State)
	logger        *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpeed sets the initial speed multiplier.
func WithSpeed(speed int) Option {
	return func(c *Controller) {
		c.SetSpeed(speed)
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPhaseHook calls fn with the state about to run at the start of every Advance.
func WithPhaseHook(fn func(State)) Option {
	return func(c *Controller) {
		c.phaseHook = fn
	}
}

// NewController creates a controller with random genomes, waiting to populate.
func NewController(cfg *config.Config, rng *rand.Rand, opts ...Option) *Controller {
	c := &Controller{
		env:    systems.NewEnv(cfg),
		rng:    rng,
		pop:    components.NewPopulation(rng, cfg.Population.Cells, cfg.Genome.Genes, cfg.World.Width, cfg.World.Height),
		state:  StatePopulate,
		speed:  cfg.Speed.Initial,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSelection registers fn to run after every selection.
func (c *Controller) OnSelection(fn func(SelectionReport)) {
	c.observers = append(c.observers, fn)
}

// Update advances the controller Speed() times. A speed of 0 does nothing.
// It stops at the first error.
func (c *Controller) Update() error {
	return c.UpdateUntil(nil)
}

// UpdateUntil is Update, but also stops early once done returns true.
// done is checked after every unit of work; nil never stops.
func (c *Controller) UpdateUntil(done func() bool) error {
	for i := 0; i < c.speed; i++ {
		if err := c.Advance(); err != nil {
			return err
		}
		if done != nil && done() {
			return nil
		}
	}
	return nil
}

// Advance performs exactly one unit of work: a Populate, one Simulate tick,
// or a Select. On error the controller state is unchanged.
func (c *Controller) Advance() error {
	if c.phaseHook != nil {
		c.phaseHook(c.state)
	}
	switch c.state {
	case StatePopulate:
		return c.populate()
	case StateSimulate:
		c.simulate()
		return nil
	case StateSelect:
		return c.selectSurvivors()
	default:
		return fmt.Errorf("controller in unknown state %d", c.state)
	}
}

func (c *Controller) populate() error {
	next, stats, err := systems.Populate(c.pop, c.rng)
	if err != nil {
		return fmt.Errorf("populating generation %d: %w", c.generation+1, err)
	}

	c.pop = next
	c.generation++
	c.step = 0
	c.steps = systems.StepStats{}
	c.state = StateSimulate

	c.logger.Info("generation",
		"generation", c.generation,
		"placement_draws", stats.Attempts,
	)
	return nil
}

func (c *Controller) simulate() {
	next, stats := systems.Simulate(c.pop, c.step, c.env, c.rng)
	c.pop = next

	c.steps.Moved += stats.Moved
	c.steps.Blocked += stats.Blocked
	c.steps.Poisoned += stats.Poisoned

	c.step++
	if c.step >= c.env.Steps {
		c.state = StateSelect
	}
}

func (c *Controller) selectSurvivors() error {
	next, stats, err := systems.Select(c.pop, c.env, c.rng)
	if err != nil {
		return fmt.Errorf("selecting generation %d: %w", c.generation, err)
	}

	c.logger.Info("survivors",
		"generation", c.generation,
		"percent", stats.Percent(),
		"survivors", stats.Survivors,
		"cells", stats.Cells,
		"flips", stats.Flips,
	)

	report := SelectionReport{
		Generation: c.generation,
		Selection:  stats,
		Steps:      c.steps,
		Population: c.pop,
	}
	for _, fn := range c.observers {
		fn(report)
	}

	c.pop = next
	c.lastSelection = stats
	c.state = StatePopulate
	return nil
}

// Speed returns how many units of work one Update performs.
func (c *Controller) Speed() int {
	return c.speed
}

// SetSpeed sets the multiplier, clamped to [0, config.MaxSpeed].
func (c *Controller) SetSpeed(speed int) int {
	c.speed = min(max(speed, 0), config.MaxSpeed)
	return c.speed
}

// Faster doubles the speed, or resumes at 1 when paused.
func (c *Controller) Faster() int {
	if c.speed == 0 {
		return c.SetSpeed(1)
	}
	return c.SetSpeed(c.speed * 2)
}

// Slower halves the speed; halving 1 pauses.
func (c *Controller) Slower() int {
	return c.SetSpeed(c.speed / 2)
}

// State returns the phase the next Advance will run.
func (c *Controller) State() State {
	return c.state
}

// Step returns the simulate tick within the current generation.
func (c *Controller) Step() int {
	return c.step
}

// Generation returns the number of generations populated so far.
func (c *Controller) Generation() int {
	return c.generation
}

// Env returns the run constants.
func (c *Controller) Env() systems.Env {
	return c.env
}

// Snapshot returns a read-only view of the current population.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:         c.state,
		Step:          c.step,
		Generation:    c.generation,
		Speed:         c.speed,
		LastSelection: c.lastSelection,
		pop:           c.pop,
		env:           c.env,
	}
}
