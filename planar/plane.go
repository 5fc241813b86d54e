// Package planar provides the low-level planar geometry primitives the
// polyhedron algorithms lean on: planes and rays with intersection, point
// versus polygon classification, polygon centroids and ear-clipping
// triangulation. Everything operates on mgl64 3-D vectors; polygons are
// simple closed vertex loops lying in a common plane.
package planar

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTolerance is the fallback bound for the geometric predicates here.
const DefaultTolerance = 1e-9

// Plane is the set of points x with Normal . (x - Point) == 0.
// Normal is kept unit length by the constructors.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// NewPlane builds the plane through three points. Fails if the points are
// collinear within tol (no well-defined normal).
func NewPlane(a, b, c mgl64.Vec3, tol float64) (Plane, error) {
	normal := b.Sub(a).Cross(c.Sub(a))
	if normal.Len() <= tol {
		return Plane{}, fmt.Errorf("planar: points %v, %v, %v are collinear", a, b, c)
	}

	return Plane{Point: a, Normal: normal.Normalize()}, nil
}

// PolygonPlane builds the supporting plane of a planar polygon, picking the
// first vertex triple that is not collinear.
func PolygonPlane(polygon []mgl64.Vec3, tol float64) (Plane, error) {
	if len(polygon) < 3 {
		return Plane{}, fmt.Errorf("planar: polygon with %d vertices has no plane", len(polygon))
	}

	for i := 2; i < len(polygon); i++ {
		if p, err := NewPlane(polygon[0], polygon[1], polygon[i], tol); err == nil {
			return p, nil
		}
	}

	return Plane{}, fmt.Errorf("planar: all %d polygon vertices are collinear", len(polygon))
}

// SignedDistance returns the distance from x to the plane, positive on the
// normal side.
func (p Plane) SignedDistance(x mgl64.Vec3) float64 {
	return p.Normal.Dot(x.Sub(p.Point))
}

// Ray is a half line from Origin along Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// IntersectPlane returns the intersection of the ray with the plane and the
// ray parameter at which it occurs. ok is false when the ray is parallel to
// the plane within tol, or the intersection lies behind the origin.
func (r Ray) IntersectPlane(p Plane, tol float64) (point mgl64.Vec3, t float64, ok bool) {
	denom := p.Normal.Dot(r.Dir)
	if denom > -tol && denom < tol {
		return mgl64.Vec3{}, 0, false
	}

	t = p.Normal.Dot(p.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return mgl64.Vec3{}, 0, false
	}

	return r.Origin.Add(r.Dir.Mul(t)), t, true
}
