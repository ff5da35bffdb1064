// Package components defines ECS components for colony agents.
package components

// Role identifies an agent's caste. Exactly one Queen exists per generation
// while she is alive.
type Role uint8

const (
	Worker Role = iota
	Queen
)

// String returns the caste name.
func (r Role) String() string {
	if r == Queen {
		return "queen"
	}
	return "worker"
}

// Position is an agent's integer voxel position.
type Position struct {
	X, Y, Z int
}

// Vitals tracks an agent's health economy.
type Vitals struct {
	Health    float64
	MaxHealth float64
	Alive     bool
}

// Identity carries stable per-agent identification.
type Identity struct {
	ID   uint32
	Role Role
}
