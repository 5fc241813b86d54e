package polyhedron

import (
	"fmt"
	"math"

	"github.com/akmonengine/polyhedron/affine"
)

// SignedVolume sums the signed volumes of the tetrahedra spanned by the
// global origin and each facet's triangle fan, using the facets exactly as
// oriented. For a consistently outward-oriented closed mesh this is the
// enclosed volume; with the opposite orientation it is its negative. In
// dimension 2 the facets' signed areas are summed instead.
func (p *Polyhedron) SignedVolume() (float64, error) {
	if d := p.Dimension(); d != 2 && d != 3 {
		return 0, fmt.Errorf("polyhedron: volume is only defined in dimension 2 or 3, mesh is %d-dimensional", d)
	}
	return signedVolume(p.verts, p.facets), nil
}

// Volume returns the unsigned volume enclosed by the mesh: a working copy
// is oriented consistently outward first, so the caller's facet directions
// do not matter.
func (p *Polyhedron) Volume() (float64, error) {
	oriented, err := p.Orient()
	if err != nil {
		return 0, err
	}

	v, err := oriented.SignedVolume()
	if err != nil {
		return 0, err
	}
	return math.Abs(v), nil
}

func signedVolume(verts []affine.Point, facets [][]int) float64 {
	if len(verts) == 0 {
		return 0
	}
	dim := len(verts[0])

	total := 0.0
	for _, f := range facets {
		switch dim {
		case 3:
			v0 := verts[f[0]-1].Vec3()
			for i := 1; i < len(f)-1; i++ {
				v1 := verts[f[i]-1].Vec3()
				v2 := verts[f[i+1]-1].Vec3()
				total += v0.Dot(v1.Cross(v2)) / 6
			}
		case 2:
			a := verts[f[0]-1]
			for i := 1; i < len(f)-1; i++ {
				b := verts[f[i]-1]
				c := verts[f[i+1]-1]
				total += ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])) / 2
			}
		}
	}

	return total
}
