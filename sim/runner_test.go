package sim

import "testing"

func TestRunnerAccumulatesTicks(t *testing.T) {
	s := newTestSim(t, 1)
	r := NewRunner(s, 10)

	if got := r.Advance(0.5); got != 5 {
		t.Errorf("0.5s at 10 tps ran %d ticks, want 5", got)
	}
	if s.TickCount() != 5 {
		t.Errorf("simulation tick = %d, want 5", s.TickCount())
	}
}

func TestRunnerCarriesRemainder(t *testing.T) {
	s := newTestSim(t, 1)
	r := NewRunner(s, 10)

	if got := r.Advance(0.05); got != 0 {
		t.Errorf("half a tick of time ran %d ticks, want 0", got)
	}
	if got := r.Advance(0.05); got != 1 {
		t.Errorf("second half tick ran %d ticks, want 1", got)
	}
}

func TestRunnerSpeedMultiplier(t *testing.T) {
	s := newTestSim(t, 1)
	r := NewRunner(s, 10)

	r.SetSpeed(4)
	if got := r.Advance(0.5); got != 20 {
		t.Errorf("0.5s at 10 tps x4 ran %d ticks, want 20", got)
	}

	r.SetSpeed(0) // ignored
	if r.Speed() != 4 {
		t.Errorf("speed = %v after SetSpeed(0), want unchanged 4", r.Speed())
	}
}

func TestRunnerPause(t *testing.T) {
	s := newTestSim(t, 1)
	r := NewRunner(s, 10)

	if !r.TogglePause() {
		t.Fatal("first toggle should pause")
	}
	if got := r.Advance(1); got != 0 {
		t.Errorf("paused runner ran %d ticks, want 0", got)
	}
	if r.TogglePause() {
		t.Fatal("second toggle should resume")
	}
	if got := r.Advance(0.1); got != 1 {
		t.Errorf("resumed runner ran %d ticks, want 1", got)
	}
}

func TestRunnerCatchUpBound(t *testing.T) {
	s := newTestSim(t, 1)
	r := NewRunner(s, 10)

	// A long stall must not run unbounded ticks, and the backlog is
	// dropped rather than carried into the next call.
	if got := r.Advance(1000); got != r.maxTicksPerUpdate {
		t.Errorf("stall ran %d ticks, want cap %d", got, r.maxTicksPerUpdate)
	}
	if got := r.Advance(0.05); got != 0 {
		t.Errorf("post-stall half tick ran %d ticks, want 0 with backlog dropped", got)
	}
}
