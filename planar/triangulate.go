package planar

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is an oriented triangle in 3-space.
type Triangle [3]mgl64.Vec3

// Triangulate splits a simple planar polygon into len(polygon)-2 triangles
// by ear clipping. The triangles keep the polygon's winding. Fails on
// polygons that are not simple or not planar enough to clip.
func Triangulate(polygon []mgl64.Vec3, tol float64) ([]Triangle, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("planar: cannot triangulate %d-vertex polygon", len(polygon))
	}

	plane, err := PolygonPlane(polygon, tol)
	if err != nil {
		return nil, err
	}
	u, v := projectionAxes(plane.Normal)

	// Work on index order; flip traversal so the projected loop is
	// counter-clockwise, then restore the original winding per ear.
	remaining := make([]int, len(polygon))
	for i := range remaining {
		remaining[i] = i
	}

	signedArea := 0.0
	for i := range polygon {
		j := (i + 1) % len(polygon)
		signedArea += polygon[i][u]*polygon[j][v] - polygon[j][u]*polygon[i][v]
	}
	flipped := signedArea < 0
	if flipped {
		for i, j := 0, len(remaining)-1; i < j; i, j = i+1, j-1 {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		}
	}

	cross2 := func(a, b, c int) float64 {
		return (polygon[b][u]-polygon[a][u])*(polygon[c][v]-polygon[a][v]) -
			(polygon[c][u]-polygon[a][u])*(polygon[b][v]-polygon[a][v])
	}

	inTriangle := func(p, a, b, c int) bool {
		d1 := cross2(a, b, p)
		d2 := cross2(b, c, p)
		d3 := cross2(c, a, p)
		return d1 >= -tol && d2 >= -tol && d3 >= -tol
	}

	var triangles []Triangle
	for len(remaining) > 3 {
		clipped := false

		for i := 0; i < len(remaining); i++ {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]

			if cross2(prev, cur, next) <= tol {
				continue // reflex or degenerate corner, not an ear
			}

			ear := true
			for _, k := range remaining {
				if k == prev || k == cur || k == next {
					continue
				}
				if inTriangle(k, prev, cur, next) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}

			triangles = append(triangles, orderedTriangle(polygon, prev, cur, next, flipped))
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}

		if !clipped {
			return nil, fmt.Errorf("planar: polygon is not simple, no ear found with %d vertices left", len(remaining))
		}
	}

	triangles = append(triangles, orderedTriangle(polygon, remaining[0], remaining[1], remaining[2], flipped))
	return triangles, nil
}

func orderedTriangle(polygon []mgl64.Vec3, a, b, c int, flipped bool) Triangle {
	if flipped {
		a, c = c, a
	}
	return Triangle{polygon[a], polygon[b], polygon[c]}
}
