package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"DivideVec", b.DivideVec(a), NewVec3(4, -2.5, 2)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Sqrt", NewVec3(4, 9, 0.25).Sqrt(), NewVec3(2, 3, 0.5)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"Lerp", NewVec3(1, 1, 1).Lerp(NewVec3(0.5, 0.7, 1.0), 0.5), NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_Products(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, 14.0, a.LengthSquared())
	assert.InDelta(t, math.Sqrt(14), a.Length(), 1e-12)

	// Cross product is orthogonal to both operands
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 4, 12).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, 3.0/13.0, n.X, 1e-12)

	// Zero length stays zero rather than producing NaN
	z := Vec3{}.Normalize()
	assert.True(t, z.IsZero(), "expected zero vector, got %v", z)
}

func TestVec3_Luminance(t *testing.T) {
	assert.InDelta(t, 1.0, Splat(1).Luminance(), 1e-12)
	assert.InDelta(t, 0.0, Splat(0).Luminance(), 1e-12)
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	assert.Equal(t, NewVec3(1, 0, 0), ray.At(0))
	assert.Equal(t, NewVec3(1, 3, 0), ray.At(1.5))

	to := NewRayTo(NewVec3(1, 1, 1), NewVec3(2, 3, 4))
	assert.Equal(t, NewVec3(1, 2, 3), to.Direction)
	assert.Equal(t, NewVec3(2, 3, 4), to.At(1))
}
