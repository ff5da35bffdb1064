package sim

// Runner translates wall-clock time into whole simulation ticks using a
// fixed-timestep accumulator, with a speed multiplier and pause toggle.
// All model state stays inside the Simulation; the Runner only decides how
// many times to call Tick.
type Runner struct {
	sim            *Simulation
	ticksPerSecond float64
	speed          float64
	paused         bool
	accum          float64

	// maxTicksPerUpdate bounds catch-up after a long stall so a single
	// Advance call cannot run unbounded.
	maxTicksPerUpdate int
}

// NewRunner wraps a simulation at the given base tick rate.
func NewRunner(s *Simulation, ticksPerSecond float64) *Runner {
	return &Runner{
		sim:               s,
		ticksPerSecond:    ticksPerSecond,
		speed:             1,
		maxTicksPerUpdate: 64,
	}
}

// Advance consumes dt seconds of wall time and runs however many whole
// ticks fit, returning the number run. Leftover time carries over to the
// next call.
func (r *Runner) Advance(dt float64) int {
	if r.paused || dt <= 0 {
		return 0
	}
	r.accum += dt * r.ticksPerSecond * r.speed

	ran := 0
	for r.accum >= 1 && ran < r.maxTicksPerUpdate {
		r.sim.Tick()
		r.accum--
		ran++
	}
	if ran == r.maxTicksPerUpdate && r.accum >= 1 {
		// Drop the backlog rather than spiral further behind.
		r.accum = 0
	}
	return ran
}

// SetSpeed sets the speed multiplier. Non-positive values are ignored.
func (r *Runner) SetSpeed(speed float64) {
	if speed > 0 {
		r.speed = speed
	}
}

// Speed returns the current speed multiplier.
func (r *Runner) Speed() float64 { return r.speed }

// TogglePause flips the paused state and returns the new value.
func (r *Runner) TogglePause() bool {
	r.paused = !r.paused
	return r.paused
}

// Paused reports whether the runner is paused.
func (r *Runner) Paused() bool { return r.paused }
