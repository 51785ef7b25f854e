package geometry

import (
	"math/rand/v2"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockShape implements Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	calls int
}

func (m *MockShape) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	m.calls++
	return m.hitFn(ray, tMin, tMax)
}

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	_, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 1000)
	assert.False(t, isHit)
	assert.Equal(t, 0, list.Len())
}

func TestShapeList_NearestHitIsOrderIndependent(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5)
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	for _, list := range []*ShapeList{NewShapeList(near, far), NewShapeList(far, near)} {
		hit, isHit := list.Hit(ray, 0.001, 1000)
		require.True(t, isHit)
		assert.InDelta(t, 1.5, hit.T, 1e-9)
	}
}

func TestShapeList_ShrinksTMaxForLaterShapes(t *testing.T) {
	var seenTMax float64
	mock := &MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
		seenTMax = tMax
		return nil, false
	}}
	list := NewShapeList(NewSphere(core.NewVec3(0, 0, -2), 0.5), mock)

	hit, isHit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 1000)
	require.True(t, isHit)
	assert.Equal(t, 1, mock.calls)
	assert.InDelta(t, hit.T, seenTMax, 1e-12, "later shapes should only search up to the closest hit")
}

func TestShapeList_NonSphereShapesAndNesting(t *testing.T) {
	mockHit := &HitRecord{T: 0.25, Point: core.NewVec3(0, 0, -0.25), Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	mock := &MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
		if mockHit.T > tMin && mockHit.T <= tMax {
			return mockHit, true
		}
		return nil, false
	}}

	inner := NewShapeList(NewSphere(core.NewVec3(0, 0, -2), 0.5))
	outer := NewShapeList(inner, mock)

	hit, isHit := outer.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 1000)
	require.True(t, isHit)
	assert.Equal(t, 0.25, hit.T)
}

// Nearest hit equals the minimum t over testing every member with the full range
func TestShapeList_MatchesMinimumOverMembers(t *testing.T) {
	random := rand.New(rand.NewPCG(3, 14))
	const tMin, tMax = 0.001, 100.0

	for i := 0; i < 500; i++ {
		list := NewShapeList()
		for k := 0; k < 6; k++ {
			list.Add(NewSphere(core.RandomVec3(random, -5, 5), core.RandomInRange(random, 0.2, 1.5)))
		}
		ray := core.NewRay(core.RandomVec3(random, -1, 1), core.RandomUnitVector(random))

		var best *HitRecord
		for _, shape := range list.Shapes() {
			if hit, ok := shape.Hit(ray, tMin, tMax); ok && (best == nil || hit.T < best.T) {
				best = hit
			}
		}

		hit, isHit := list.Hit(ray, tMin, tMax)
		require.Equal(t, best != nil, isHit, "case %d", i)
		if best != nil {
			assert.InDelta(t, best.T, hit.T, 1e-9, "case %d", i)
			assert.InDelta(t, 0, best.Point.Subtract(hit.Point).Length(), 1e-9, "case %d", i)
		}
	}
}
