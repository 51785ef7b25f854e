package core

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRandom replays a fixed list of values, wrapping around at the end
type sequenceRandom struct {
	values []float64
	next   int
}

func (s *sequenceRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestRandomInRange(t *testing.T) {
	random := &sequenceRandom{values: []float64{0, 0.5, 0.999}}
	assert.Equal(t, -1.0, RandomInRange(random, -1, 1))
	assert.Equal(t, 0.0, RandomInRange(random, -1, 1))
	assert.InDelta(t, 0.998, RandomInRange(random, -1, 1), 1e-12)
}

func TestRandomInUnitSphere_RejectsOutsidePoints(t *testing.T) {
	// First triple maps to (1,1,1)*0.998 (outside), second to (0,0,0.5) (inside)
	random := &sequenceRandom{values: []float64{0.999, 0.999, 0.999, 0.5, 0.5, 0.75}}

	p := RandomInUnitSphere(random)
	assert.Equal(t, NewVec3(0, 0, 0.5), p)
	assert.Equal(t, 6, random.next, "expected exactly two draws of three values")
}

func TestRandomSampling_Properties(t *testing.T) {
	random := rand.New(rand.NewPCG(42, 7))
	normal := NewVec3(0, 1, 0)

	for i := 0; i < 10000; i++ {
		p := RandomInUnitSphere(random)
		require.Less(t, p.LengthSquared(), 1.0)

		u := RandomUnitVector(random)
		require.InDelta(t, 1.0, u.Length(), 1e-9)

		h := RandomInHemisphere(normal, random)
		require.GreaterOrEqual(t, h.Dot(normal), 0.0)
		require.Less(t, h.LengthSquared(), 1.0)
	}
}

func TestRandomSampling_DeterministicUnderSeed(t *testing.T) {
	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		assert.Equal(t, RandomUnitVector(a), RandomUnitVector(b))
	}
}
