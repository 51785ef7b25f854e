package core

// Random is the source of uniform random numbers for sampling.
// *math/rand/v2.Rand satisfies it; tests can swap in a fixed sequence.
// Implementations are not expected to be safe for concurrent use, so every
// goroutine must own its own instance.
type Random interface {
	Float64() float64 // uniform in [0, 1)
}

// RandomInRange returns a uniform value in [min, max)
func RandomInRange(random Random, minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(random Random, minVal, maxVal float64) Vec3 {
	return Vec3{
		X: RandomInRange(random, minVal, maxVal),
		Y: RandomInRange(random, minVal, maxVal),
		Z: RandomInRange(random, minVal, maxVal),
	}
}

// RandomInUnitSphere generates a uniform point strictly inside the unit ball
// by rejection sampling the [-1,1]^3 cube (about 1.91 draws on average).
func RandomInUnitSphere(random Random) Vec3 {
	for {
		p := RandomVec3(random, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly oriented unit vector
func RandomUnitVector(random Random) Vec3 {
	return RandomInUnitSphere(random).Normalize()
}

// RandomInHemisphere generates a unit-ball sample in the hemisphere around normal.
// Samples falling in the opposite hemisphere are mirrored through the origin.
func RandomInHemisphere(normal Vec3, random Random) Vec3 {
	inUnitSphere := RandomInUnitSphere(random)
	if inUnitSphere.Dot(normal) > 0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}
