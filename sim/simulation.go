package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/neural"
	"github.com/pthm-cable/colony/telemetry"
	"github.com/pthm-cable/colony/world"
)

// Auto-heal thresholds for the worker-to-queen pass.
const (
	healQueenBelowFrac  = 0.6 // queen receives while below this fraction of max
	healWorkerAboveFrac = 0.4 // worker gives only above this fraction of max
)

// Simulation owns the complete colony state: population, pheromone field,
// elite archive and RNG. It is driven externally through Tick and read
// through Snapshot; nothing in it renders or polls input.
//
// Each tick runs to completion: agents step in spawn order, the auto-heal
// pass runs, the pheromone field decays, and the living count refreshes.
// Agents stepped later in a tick observe the already-applied changes of
// agents stepped earlier; this ordering is part of the model and required
// for reproducibility under a fixed seed.
type Simulation struct {
	cfg *config.Config
	w   world.World
	rng *rand.Rand

	ecsWorld *ecs.World
	mapper   *ecs.Map3[components.Position, components.Vitals, components.Identity]
	posMap   *ecs.Map1[components.Position]
	vitMap   *ecs.Map1[components.Vitals]
	idMap    *ecs.Map1[components.Identity]

	// population holds agents in spawn order; this is the stepping order.
	population []ecs.Entity
	brains     map[uint32]*neural.Network
	genomes    map[uint32]*neural.Genome
	nextID     uint32

	queen    ecs.Entity
	hasQueen bool

	field      *PheromoneField
	archive    *EliteArchive
	baseGenome *neural.Genome

	generation   int
	tick         int
	nestsThisGen int
	nestsTotal   int
	bestFitness  int
	living       int
	pendingInit  bool

	collector    *telemetry.Collector
	onGeneration func(telemetry.GenerationStats)
}

// New creates a simulation over the given world. All randomness (spawn
// jitter, mutation noise, tournament sampling) draws from a single source
// seeded with seed, so runs are reproducible.
func New(cfg *config.Config, w world.World, seed int64) (*Simulation, error) {
	if w == nil {
		return nil, fmt.Errorf("sim: world is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ww, _, wd := w.Size()
	ecsWorld := ecs.NewWorld()

	s := &Simulation{
		cfg:      cfg,
		w:        w,
		rng:      rand.New(rand.NewSource(seed)),
		ecsWorld: ecsWorld,
		mapper: ecs.NewMap3[
			components.Position,
			components.Vitals,
			components.Identity,
		](ecsWorld),
		posMap:      ecs.NewMap1[components.Position](ecsWorld),
		vitMap:      ecs.NewMap1[components.Vitals](ecsWorld),
		idMap:       ecs.NewMap1[components.Identity](ecsWorld),
		brains:      make(map[uint32]*neural.Network),
		genomes:     make(map[uint32]*neural.Genome),
		field:       NewPheromoneField(ww, wd),
		archive:     NewEliteArchive(cfg.Evolution.ArchiveSize),
		collector:   telemetry.NewCollector(),
		pendingInit: true,
	}
	return s, nil
}

// Tick advances the simulation by one step, respawning the colony first if
// the previous generation has finished. It never blocks and always runs the
// full step sequence before returning.
func (s *Simulation) Tick() {
	if s.pendingInit {
		s.beginGeneration()
	}

	for _, e := range s.population {
		if s.vitMap.Get(e).Alive {
			s.stepAgent(e)
		}
	}
	s.autoHeal()
	s.field.Decay(s.cfg.Pheromone.DecayRate)
	s.living = s.countLiving()
	s.cleanupDead()
	s.tick++

	if s.living == 0 || s.tick >= s.cfg.Population.StepCap {
		s.finishGeneration()
		s.pendingInit = true
	}
}

// beginGeneration clears the previous population and pheromone trails, then
// spawns one queen and N-1 workers from the generation's base genome. Each
// worker copy gets one spawn-time mutation so the colony starts with
// behavioral spread around the base.
func (s *Simulation) beginGeneration() {
	for _, e := range s.population {
		id := s.idMap.Get(e).ID
		s.mapper.Remove(e)
		delete(s.brains, id)
		delete(s.genomes, id)
	}
	s.population = s.population[:0]
	s.hasQueen = false
	s.field.Reset()

	if s.baseGenome == nil {
		s.baseGenome = neural.RandomGenome(s.genomeLength(), s.rng)
	}

	s.tick = 0
	s.nestsThisGen = 0

	ww, _, wd := s.w.Size()
	s.spawnAgent(components.Queen, ww/2, wd/2, s.baseGenome.Copy())
	for i := 1; i < s.cfg.Population.Size; i++ {
		x := s.rng.Intn(ww)
		z := s.rng.Intn(wd)
		g := s.baseGenome.Copy()
		g.Mutate(s.rng, s.cfg.Evolution.SpawnMutationRate, s.cfg.Evolution.SpawnMutationStrength)
		s.spawnAgent(components.Worker, x, z, g)
	}

	s.living = len(s.population)
	s.pendingInit = false
}

// spawnAgent creates one agent standing on the surface of column (x,z).
func (s *Simulation) spawnAgent(role components.Role, x, z int, g *neural.Genome) {
	y := s.w.TopY(x, z)
	if y < 0 {
		y = 0
	}

	id := s.nextID
	s.nextID++

	net := neural.NewNetwork(NumSensorInputs, s.cfg.Neural.Hidden, NumActions)
	if err := net.LoadFromGenome(g); err != nil {
		// Genome lengths are derived from the same topology; a mismatch
		// here is a programming error, not an input error.
		panic(err)
	}

	pos := components.Position{X: x, Y: y, Z: z}
	vit := components.Vitals{
		Health:    s.cfg.Agent.MaxHealth,
		MaxHealth: s.cfg.Agent.MaxHealth,
		Alive:     true,
	}
	ident := components.Identity{ID: id, Role: role}

	e := s.mapper.NewEntity(&pos, &vit, &ident)
	s.population = append(s.population, e)
	s.brains[id] = net
	s.genomes[id] = g

	if role == components.Queen {
		s.queen = e
		s.hasQueen = true
	}
}

// autoHeal runs the per-tick worker-to-queen transfer pass: every living
// worker sharing the queen's cell tops her up while she is below 60% of max
// and the worker stays above 40% of its own. Transfers follow the same
// conservation rule as the deliberate share action.
func (s *Simulation) autoHeal() {
	if !s.hasQueen {
		return
	}
	qv := s.vitMap.Get(s.queen)
	if !qv.Alive {
		return
	}
	qp := s.posMap.Get(s.queen)

	for _, e := range s.population {
		if s.idMap.Get(e).Role == components.Queen {
			continue
		}
		if qv.Health >= qv.MaxHealth*healQueenBelowFrac {
			continue
		}
		wv := s.vitMap.Get(e)
		wp := s.posMap.Get(e)
		if !wv.Alive || *wp != *qp {
			continue
		}
		if wv.Health <= wv.MaxHealth*healWorkerAboveFrac {
			continue
		}

		transfer := wv.MaxHealth * shareTransferFrac
		if limit := wv.Health - 1; transfer > limit {
			transfer = limit
		}
		if headroom := qv.MaxHealth - qv.Health; transfer > headroom {
			transfer = headroom
		}
		if transfer <= 0 {
			continue
		}

		wv.Health -= transfer
		qv.Health += transfer
		s.collector.RecordAutoHeal()
	}
}

// finishGeneration archives the generation's base genome with its fitness
// (nests placed), then derives the next generation's base: fresh random
// while the archive is thin, otherwise tournament parents crossed and
// mutated.
func (s *Simulation) finishGeneration() {
	fitness := s.nestsThisGen
	s.archive.Record(s.baseGenome.Copy(), fitness)
	if fitness > s.bestFitness {
		s.bestFitness = fitness
	}

	stats := s.collector.FinishGeneration(
		s.generation, s.tick, fitness, s.bestFitness, s.living, s.nestsTotal,
		s.archive.FitnessValues(),
	)
	if s.onGeneration != nil {
		s.onGeneration(stats)
	}

	s.baseGenome = s.nextBaseGenome()
	s.generation++
}

func (s *Simulation) nextBaseGenome() *neural.Genome {
	if s.archive.Len() < 2 {
		return neural.RandomGenome(s.genomeLength(), s.rng)
	}
	p1 := s.archive.Tournament(s.rng)
	p2 := s.archive.Tournament(s.rng)
	child := neural.Crossover(p1, p2, s.rng)
	child.Mutate(s.rng, s.cfg.Evolution.MutationRate, s.cfg.Evolution.MutationStrength)
	return child
}

// cleanupDead removes flagged agents and their networks at tick end.
func (s *Simulation) cleanupDead() {
	alive := s.population[:0]
	for _, e := range s.population {
		if s.vitMap.Get(e).Alive {
			alive = append(alive, e)
			continue
		}
		id := s.idMap.Get(e).ID
		s.mapper.Remove(e)
		delete(s.brains, id)
		delete(s.genomes, id)
	}
	s.population = alive
}

func (s *Simulation) countLiving() int {
	n := 0
	for _, e := range s.population {
		if s.vitMap.Get(e).Alive {
			n++
		}
	}
	return n
}

// occupantsAt returns the living agents at pos other than excludeID, in
// population order.
func (s *Simulation) occupantsAt(pos components.Position, excludeID uint32) []occupant {
	var out []occupant
	for _, e := range s.population {
		ident := s.idMap.Get(e)
		if ident.ID == excludeID {
			continue
		}
		vit := s.vitMap.Get(e)
		if !vit.Alive || *s.posMap.Get(e) != pos {
			continue
		}
		out = append(out, occupant{
			ID:        ident.ID,
			Health:    vit.Health,
			MaxHealth: vit.MaxHealth,
		})
	}
	return out
}

func (s *Simulation) vitalsByID(id uint32) *components.Vitals {
	for _, e := range s.population {
		if s.idMap.Get(e).ID == id {
			return s.vitMap.Get(e)
		}
	}
	return nil
}

func (s *Simulation) genomeLength() int {
	return neural.RequiredGenomeLength(NumSensorInputs, s.cfg.Neural.Hidden, NumActions)
}

// Generation returns the current generation number.
func (s *Simulation) Generation() int { return s.generation }

// TickCount returns the tick counter within the current generation.
func (s *Simulation) TickCount() int { return s.tick }

// BestFitness returns the best fitness recorded across all generations.
func (s *Simulation) BestFitness() int { return s.bestFitness }

// Living returns the living population count after the last tick.
func (s *Simulation) Living() int { return s.living }

// Archive returns the elite archive.
func (s *Simulation) Archive() *EliteArchive { return s.archive }

// Collector returns the telemetry collector.
func (s *Simulation) Collector() *telemetry.Collector { return s.collector }

// OnGeneration registers a callback invoked with each finished generation's
// stats record.
func (s *Simulation) OnGeneration(fn func(telemetry.GenerationStats)) {
	s.onGeneration = fn
}
