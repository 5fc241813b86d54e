package polyhedron

import "fmt"

// Orient returns a copy of p whose facets are consistently oriented with
// outward normals. See OrientInPlace.
func (p *Polyhedron) Orient() (*Polyhedron, error) {
	out := p.Copy()
	if err := out.OrientInPlace(); err != nil {
		return nil, err
	}
	return out, nil
}

// OrientInPlace rewrites the facet list so that adjacent facets traverse
// every shared edge in opposite directions and the resulting normal field
// points outward. The facets are unchanged as vertex sets; only their
// cyclic direction may flip.
//
// Orientation consistency is propagated breadth-first over the
// facet-adjacency graph from an arbitrary start facet, with a worklist of
// oriented facets that may still have unoriented neighbors. The global sign
// is then fixed by the signed volume: negative means every facet is
// reversed. Fails with ErrDisconnected when propagation cannot reach every
// facet (e.g. two separate shells).
func (p *Polyhedron) OrientInPlace() error {
	if d := p.Dimension(); d != 2 && d != 3 {
		return fmt.Errorf("polyhedron: orientation is only defined in dimension 2 or 3, mesh is %d-dimensional", d)
	}
	if len(p.facets) == 0 {
		return nil
	}

	facets := cloneFacets(p.facets)

	// Facets traversing each edge, keyed by the edge's canonical form.
	byEdge := make(map[[2]int][]int)
	for i, f := range facets {
		for j := range f {
			key := canonicalEdge(f[j], f[(j+1)%len(f)])
			byEdge[key] = append(byEdge[key], i)
		}
	}

	oriented := make([]bool, len(facets))
	oriented[0] = true
	worklist := []int{0}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		f := facets[cur]
		for j := range f {
			a, b := f[j], f[(j+1)%len(f)]
			for _, nb := range byEdge[canonicalEdge(a, b)] {
				if nb == cur || oriented[nb] {
					continue
				}

				// Matching traversal directions along the shared edge mean
				// the neighbor disagrees with cur; flip it.
				if traversesForward(facets[nb], a, b) {
					reverseFacet(facets[nb])
				}

				oriented[nb] = true
				worklist = append(worklist, nb)
			}
		}
	}

	for i, ok := range oriented {
		if !ok {
			return fmt.Errorf("%w: facet %d is unreachable from facet 1", ErrDisconnected, i+1)
		}
	}

	if signedVolume(p.verts, facets) < 0 {
		for _, f := range facets {
			reverseFacet(f)
		}
	}

	p.facets = facets
	return nil
}

// traversesForward reports whether the facet visits a immediately followed
// by b in its cyclic order. The edge (a, b) must be an edge of the facet.
func traversesForward(facet []int, a, b int) bool {
	n := len(facet)
	for i, idx := range facet {
		if idx == a {
			return facet[(i+1)%n] == b
		}
	}
	return false
}

func reverseFacet(facet []int) {
	for i, j := 0, len(facet)-1; i < j; i, j = i+1, j-1 {
		facet[i], facet[j] = facet[j], facet[i]
	}
}
