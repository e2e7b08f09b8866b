package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible run. Two runs with the same key and
// configuration produce identical state trajectories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemDemand draws the daily customer demand variation.
	// Uses the master seed directly.
	SubsystemDemand = "demand"

	// SubsystemResupply draws the daily supplier replenishment.
	SubsystemResupply = "resupply"
)

// PartitionedRNG hands out isolated, deterministically seeded RNGs per
// subsystem, so adding draws to one stream never shifts another.
//
// Derivation:
//   - SubsystemDemand: masterSeed
//   - everything else: masterSeed XOR fnv1a64(name)
//
// Not thread-safe.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached RNG for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key)
	if name != SubsystemDemand {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// UniformInt draws an integer uniformly from the inclusive range [lo, hi]
// on the named subsystem. Returns lo when hi <= lo.
func (p *PartitionedRNG) UniformInt(name string, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return p.ForSubsystem(name).Intn(hi-lo+1) + lo
}

func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
