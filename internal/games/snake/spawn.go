package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SpawnPolicy controls whether spawned cells avoid occupied ones.
type SpawnPolicy string

const (
	// PolicyAvoid never returns an excluded cell while a free cell exists.
	PolicyAvoid SpawnPolicy = "avoid"
	// PolicyUniform picks uniformly over the whole grid; overlap is possible.
	PolicyUniform SpawnPolicy = "uniform"
)

// ParseSpawnPolicy validates a policy name.
func ParseSpawnPolicy(s string) (SpawnPolicy, error) {
	switch SpawnPolicy(s) {
	case PolicyAvoid, PolicyUniform:
		return SpawnPolicy(s), nil
	case "":
		return PolicyAvoid, nil
	}
	return "", fmt.Errorf("snake: unknown spawn policy %q", s)
}

// Spawner chooses grid cells for food and hazards.
type Spawner interface {
	Spawn(width, height int, excluded core.CellSet) core.Cell
}

// maxSpawnAttempts bounds rejection sampling before falling back to an
// explicit scan of free cells.
const maxSpawnAttempts = 64

// RandomSpawner draws cells from a seeded RNG so rounds are reproducible.
type RandomSpawner struct {
	rng    *rand.Rand
	policy SpawnPolicy
}

// NewRandomSpawner creates a spawner seeded with seed.
func NewRandomSpawner(seed int64, policy SpawnPolicy) *RandomSpawner {
	if policy == "" {
		policy = PolicyAvoid
	}
	return &RandomSpawner{
		rng:    rand.New(rand.NewSource(seed)),
		policy: policy,
	}
}

// Policy returns the spawner's overlap policy.
func (s *RandomSpawner) Policy() SpawnPolicy {
	return s.policy
}

// Spawn returns a cell inside the grid. With PolicyAvoid the result lies
// outside excluded unless every cell is excluded.
func (s *RandomSpawner) Spawn(width, height int, excluded core.CellSet) core.Cell {
	if s.policy == PolicyUniform {
		return s.draw(width, height)
	}
	return s.SpawnFree(width, height, excluded)
}

// SpawnFree returns a cell outside excluded whatever the policy, unless
// every cell is excluded.
func (s *RandomSpawner) SpawnFree(width, height int, excluded core.CellSet) core.Cell {
	if len(excluded) == 0 {
		return s.draw(width, height)
	}

	for range maxSpawnAttempts {
		c := s.draw(width, height)
		if !excluded.Has(c) {
			return c
		}
	}

	// Crowded board: pick uniformly among what is left.
	free := make([]core.Cell, 0, max(width*height-len(excluded), 0))
	for y := range height {
		for x := range width {
			c := core.Cell{X: x, Y: y}
			if !excluded.Has(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return s.draw(width, height)
	}
	return free[s.rng.Intn(len(free))]
}

// draw picks a uniformly random cell. Scaling a float draw can land on the
// exclusive upper bound after rounding, so each axis is clamped.
func (s *RandomSpawner) draw(width, height int) core.Cell {
	x := int(s.rng.Float64() * float64(width))
	y := int(s.rng.Float64() * float64(height))
	return core.Cell{
		X: core.Clamp(x, 0, width-1),
		Y: core.Clamp(y, 0, height-1),
	}
}
