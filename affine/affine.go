// Package affine provides the affine-geometry toolkit behind the polyhedron
// algorithms: Euclidean metrics, signed angles about a normal, affine-basis
// extraction from point sets, and affine/rigid transformations between two
// point sets.
//
// Points are plain coordinate slices of any dimension. Operations that only
// make sense in 3-D (signed angles) say so and fail otherwise.
package affine

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTolerance is used by callers that have no better bound for the
// numerical predicates in this package.
const DefaultTolerance = 1e-8

// ErrDegenerate reports a point set too flat for the requested operation,
// e.g. an affine map from a preimage that does not span its coordinate space.
var ErrDegenerate = errors.New("affine: degenerate point set")

// ErrNotRigid reports a preimage/image pair whose pairwise distances differ
// beyond tolerance, so no rigid map between them exists.
var ErrNotRigid = errors.New("affine: point sets are not congruent")

// Point is a real coordinate vector. Its length is its dimension.
type Point []float64

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Vec3 converts a 3-dimensional point to an mgl64 vector.
// It panics if p is not 3-dimensional; callers are expected to have
// checked the dimension as a precondition.
func (p Point) Vec3() mgl64.Vec3 {
	if len(p) != 3 {
		panic(fmt.Sprintf("affine: Vec3 on %d-dimensional point", len(p)))
	}
	return mgl64.Vec3{p[0], p[1], p[2]}
}

// SquaredDistance returns the squared Euclidean distance between v and w.
// It panics on dimension mismatch.
func SquaredDistance(v, w Point) float64 {
	if len(v) != len(w) {
		panic(fmt.Sprintf("affine: distance between %d- and %d-dimensional points", len(v), len(w)))
	}

	sum := 0.0
	for i := range v {
		d := v[i] - w[i]
		sum += d * d
	}
	return sum
}

// Distance returns the Euclidean distance between v and w.
func Distance(v, w Point) float64 {
	return math.Sqrt(SquaredDistance(v, w))
}

// SignedAngle returns the rotation angle from v to w about normal, in
// (-pi, pi]. v and w must be 3-dimensional and perpendicular to normal
// within tol.
func SignedAngle(v, w, normal Point, tol float64) (float64, error) {
	if len(v) != 3 || len(w) != 3 || len(normal) != 3 {
		return 0, fmt.Errorf("affine: signed angle requires 3-dimensional vectors, got %d/%d/%d",
			len(v), len(w), len(normal))
	}

	a, b := v.Vec3(), w.Vec3()
	n := normal.Vec3()
	if n.Len() < tol {
		return 0, fmt.Errorf("affine: zero normal")
	}
	n = n.Normalize()

	if math.Abs(a.Dot(n)) > tol*math.Max(1, a.Len()) {
		return 0, fmt.Errorf("affine: vector %v is not perpendicular to the normal", v)
	}
	if math.Abs(b.Dot(n)) > tol*math.Max(1, b.Len()) {
		return 0, fmt.Errorf("affine: vector %v is not perpendicular to the normal", w)
	}

	return math.Atan2(a.Cross(b).Dot(n), a.Dot(b)), nil
}
