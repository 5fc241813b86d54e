package planar

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Classification locates a point relative to a polygon.
type Classification int

const (
	OnBoundary Classification = -1
	Outside    Classification = 0
	Inside     Classification = 1
)

func (c Classification) String() string {
	switch c {
	case OnBoundary:
		return "on-boundary"
	case Inside:
		return "inside"
	default:
		return "outside"
	}
}

// projectionAxes returns the two coordinate axes spanning the projection
// plane for a polygon with the given normal: the axis with the largest
// normal component is dropped, which keeps the projection non-degenerate.
func projectionAxes(normal mgl64.Vec3) (u, v int) {
	ax, ay, az := math.Abs(normal.X()), math.Abs(normal.Y()), math.Abs(normal.Z())
	switch {
	case ax >= ay && ax >= az:
		return 1, 2
	case ay >= az:
		return 0, 2
	default:
		return 0, 1
	}
}

// segmentDistance returns the distance from x to the segment [a, b].
func segmentDistance(x, a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr == 0 {
		return x.Sub(a).Len()
	}

	t := x.Sub(a).Dot(ab) / lenSqr
	t = math.Max(0, math.Min(1, t))
	return x.Sub(a.Add(ab.Mul(t))).Len()
}

// Classify locates pt relative to a simple planar polygon: Inside, Outside,
// or OnBoundary (within tol of an edge or vertex). Points off the polygon's
// supporting plane by more than tol are Outside.
func Classify(polygon []mgl64.Vec3, pt mgl64.Vec3, tol float64) (Classification, error) {
	plane, err := PolygonPlane(polygon, tol)
	if err != nil {
		return Outside, err
	}

	if math.Abs(plane.SignedDistance(pt)) > tol {
		return Outside, nil
	}

	for i := range polygon {
		j := (i + 1) % len(polygon)
		if segmentDistance(pt, polygon[i], polygon[j]) <= tol {
			return OnBoundary, nil
		}
	}

	// Even-odd crossing count in the projection plane. The boundary case is
	// already handled, so grazing ambiguities only arise from vertices lying
	// exactly on the test line; the half-open y-interval rule resolves them.
	u, v := projectionAxes(plane.Normal)
	px, py := pt[u], pt[v]

	inside := false
	for i := range polygon {
		j := (i + 1) % len(polygon)
		ax, ay := polygon[i][u], polygon[i][v]
		bx, by := polygon[j][u], polygon[j][v]

		if (ay > py) != (by > py) {
			crossX := ax + (py-ay)*(bx-ax)/(by-ay)
			if px < crossX {
				inside = !inside
			}
		}
	}

	if inside {
		return Inside, nil
	}
	return Outside, nil
}

// Centroid returns the area centroid of a simple planar polygon, computed
// as the area-weighted mean of a triangle fan. Falls back to the vertex
// mean when the polygon has no measurable area.
func Centroid(polygon []mgl64.Vec3, tol float64) (mgl64.Vec3, error) {
	if len(polygon) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("planar: centroid of %d-vertex polygon", len(polygon))
	}

	plane, err := PolygonPlane(polygon, tol)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	var weighted mgl64.Vec3
	total := 0.0
	for i := 1; i < len(polygon)-1; i++ {
		a, b, c := polygon[0], polygon[i], polygon[i+1]
		area := b.Sub(a).Cross(c.Sub(a)).Dot(plane.Normal) / 2
		center := a.Add(b).Add(c).Mul(1.0 / 3.0)
		weighted = weighted.Add(center.Mul(area))
		total += area
	}

	if math.Abs(total) <= tol {
		var mean mgl64.Vec3
		for _, p := range polygon {
			mean = mean.Add(p)
		}
		return mean.Mul(1.0 / float64(len(polygon))), nil
	}

	return weighted.Mul(1.0 / total), nil
}
