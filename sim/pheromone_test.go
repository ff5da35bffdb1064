package sim

import (
	"math"
	"testing"
)

func TestFieldSize(t *testing.T) {
	f := NewPheromoneField(6, 9)
	w, d := f.Size()
	if w != 6 || d != 9 {
		t.Fatalf("Size() = (%d,%d), want (6,9)", w, d)
	}

	// The far corner is in bounds; one past it is not.
	f.Deposit(w-1, d-1, 0.2)
	if got := f.Query(w-1, d-1); got != 0.2 {
		t.Errorf("corner deposit reads %v, want 0.2", got)
	}
	if got := f.Query(w, d); got != 0 {
		t.Errorf("query past the corner = %v, want 0", got)
	}
}

func TestDepositSaturatesAtOne(t *testing.T) {
	f := NewPheromoneField(8, 8)

	f.Deposit(3, 4, 0.7)
	if got := f.Query(3, 4); got != 0.7 {
		t.Errorf("Query after deposit = %v, want 0.7", got)
	}

	f.Deposit(3, 4, 0.7)
	if got := f.Query(3, 4); got != 1 {
		t.Errorf("Query after saturating deposit = %v, want 1", got)
	}
}

func TestDepositOutOfBoundsNoOp(t *testing.T) {
	f := NewPheromoneField(4, 4)

	f.Deposit(-1, 0, 0.5)
	f.Deposit(0, -1, 0.5)
	f.Deposit(4, 0, 0.5)
	f.Deposit(0, 4, 0.5)

	for z := 0; z < 4; z++ {
		for x := 0; x < 4; x++ {
			if got := f.Query(x, z); got != 0 {
				t.Fatalf("Query(%d,%d) = %v after OOB deposits, want 0", x, z, got)
			}
		}
	}
}

func TestQueryOutOfBoundsReturnsZero(t *testing.T) {
	f := NewPheromoneField(4, 4)
	f.Deposit(0, 0, 1)

	if got := f.Query(-1, 0); got != 0 {
		t.Errorf("Query(-1,0) = %v, want 0", got)
	}
	if got := f.Query(0, 99); got != 0 {
		t.Errorf("Query(0,99) = %v, want 0", got)
	}
}

func TestDepositThenDecay(t *testing.T) {
	f := NewPheromoneField(8, 8)
	f.Deposit(2, 2, 0.6)
	f.Deposit(2, 2, 0.9) // saturates to 1

	f.Decay(0.25)

	want := 1.0 * 0.75
	if got := f.Query(2, 2); math.Abs(got-want) > 1e-12 {
		t.Errorf("Query after decay = %v, want %v", got, want)
	}
}

func TestDecayTrendsToZero(t *testing.T) {
	f := NewPheromoneField(4, 4)
	f.Deposit(1, 1, 1)

	for i := 0; i < 1000; i++ {
		f.Decay(0.1)
		if v := f.Query(1, 1); v < 0 || v > 1 {
			t.Fatalf("value %v escaped [0,1] at iteration %d", v, i)
		}
	}

	if got := f.Query(1, 1); got != 0 {
		t.Errorf("value after 1000 decays = %v, want exactly 0", got)
	}
}

func TestReset(t *testing.T) {
	f := NewPheromoneField(4, 4)
	f.Deposit(0, 0, 0.5)
	f.Deposit(3, 3, 0.5)

	f.Reset()

	if f.Query(0, 0) != 0 || f.Query(3, 3) != 0 {
		t.Error("Reset did not zero all cells")
	}
}
