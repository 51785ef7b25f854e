package geometry

import "github.com/df07/go-sphere-raytracer/pkg/core"

// ShapeList is an ordered collection of shapes queried as a single Shape.
// It is built once and must not be modified while rendering, which lets
// every worker share the same instance without locking.
//
// Intersection is a linear scan over all members.
type ShapeList struct {
	shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	list := &ShapeList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *ShapeList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the nearest hit across all shapes by shrinking tMax to the
// closest intersection found so far.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range l.shapes {
		// Spheres skip the interface call and the per-hit allocation
		if sphere, ok := shape.(*Sphere); ok {
			if sphere.hitInto(ray, tMin, closestSoFar, &closestHit) {
				hitAnything = true
				closestSoFar = closestHit.T
			}
			continue
		}

		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = *hit
		}
	}

	if !hitAnything {
		return nil, false
	}
	return &closestHit, true
}
