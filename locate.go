package polyhedron

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/polyhedron/affine"
	"github.com/akmonengine/polyhedron/planar"
)

// Location classifies a point relative to the mesh surface.
type Location int

const (
	OnBoundary Location = -1
	Outside    Location = 0
	Inside     Location = 1
)

func (l Location) String() string {
	switch l {
	case OnBoundary:
		return "on-boundary"
	case Inside:
		return "inside"
	default:
		return "outside"
	}
}

// maxRayAttempts caps the randomized ray retries in Locate. Each retry only
// triggers when a ray hits a facet boundary exactly, so for non-degenerate
// meshes a single attempt almost always suffices.
const maxRayAttempts = 64

// Locate tests containment of a point in a 3-dimensional closed mesh.
//
// Points on any facet (interior or boundary of the polygon) are OnBoundary.
// Otherwise rays in uniformly random directions are cast from the point and
// intersections with facet interiors counted: an odd count means Inside.
// A ray that hits any facet's polygon boundary exactly cannot be counted
// reliably, so the whole sweep is discarded and a fresh direction drawn,
// up to maxRayAttempts times; exhaustion yields ErrIndeterminate.
func (p *Polyhedron) Locate(pt affine.Point) (Location, error) {
	if p.Dimension() != 3 {
		return Outside, fmt.Errorf("polyhedron: containment requires a 3-dimensional mesh, got %d", p.Dimension())
	}
	if len(pt) != 3 {
		return Outside, fmt.Errorf("polyhedron: containment of %d-dimensional point in 3-dimensional mesh", len(pt))
	}

	x := pt.Vec3()

	polygons := make([][]mgl64.Vec3, len(p.facets))
	for i, f := range p.facets {
		polygons[i] = p.facetPolygon(f)
	}

	for _, polygon := range polygons {
		class, err := planar.Classify(polygon, x, p.tol)
		if err != nil {
			return Outside, err
		}
		if class != planar.Outside {
			return OnBoundary, nil
		}
	}

	for attempt := 0; attempt < maxRayAttempts; attempt++ {
		ray := planar.Ray{Origin: x, Dir: randomUnitVec3()}

		count := 0
		clean := true
		for _, polygon := range polygons {
			plane, err := planar.PolygonPlane(polygon, p.tol)
			if err != nil {
				return Outside, err
			}

			hit, _, ok := ray.IntersectPlane(plane, p.tol)
			if !ok {
				continue // parallel to this facet or pointing away
			}

			class, err := planar.Classify(polygon, hit, p.tol)
			if err != nil {
				return Outside, err
			}
			switch class {
			case planar.OnBoundary:
				// Tangential hit on the facet's rim: the parity of this
				// sweep is unusable, draw a new direction.
				clean = false
			case planar.Inside:
				count++
			}
			if !clean {
				break
			}
		}

		if clean {
			if count%2 == 1 {
				return Inside, nil
			}
			return Outside, nil
		}
	}

	return Outside, fmt.Errorf("%w after %d attempts", ErrIndeterminate, maxRayAttempts)
}

// randomUnitVec3 draws a direction uniformly on the unit sphere.
func randomUnitVec3() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64()}
		if l := v.Len(); l > 1e-6 {
			return v.Mul(1 / l)
		}
	}
}
