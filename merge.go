package polyhedron

import (
	"fmt"
	"math"
	"sort"

	"github.com/akmonengine/polyhedron/affine"
)

// Merge glues other onto a copy of p, identifying each facet of own with
// the corresponding facet of glued, and returns the combined mesh. p and
// other are left untouched. See MergeInPlace.
func (p *Polyhedron) Merge(other *Polyhedron, own, glued [][]int) (*Polyhedron, error) {
	out := p.Copy()
	if err := out.MergeInPlace(other, own, glued); err != nil {
		return nil, err
	}
	return out, nil
}

// MergeInPlace splices other into p along matching boundary facets: own[i]
// (a facet of p) is identified with glued[i] (a facet of other), vertex by
// vertex in the given order. other is rigidly moved onto p, the identified
// vertices collapse onto p's, the glued facets disappear from both sides,
// and everything else of other is appended with remapped indices.
//
// Preconditions, checked before any mutation: the facets belong to their
// meshes, the meshes live in equal-dimensional space, the induced vertex
// correspondence is a bijection over at least 3 distinct vertices, and all
// pairwise distances between aligned vertices agree within tolerance.
func (p *Polyhedron) MergeInPlace(other *Polyhedron, own, glued [][]int) error {
	if p.Dimension() != other.Dimension() {
		return fmt.Errorf("polyhedron: cannot merge a %d-dimensional mesh with a %d-dimensional one",
			p.Dimension(), other.Dimension())
	}
	if len(own) != len(glued) {
		return fmt.Errorf("polyhedron: %d facets to glue on one side, %d on the other", len(own), len(glued))
	}
	if len(own) == 0 {
		return fmt.Errorf("polyhedron: no facets to glue")
	}

	for i := range own {
		if !hasFacet(p.facets, own[i]) {
			return fmt.Errorf("polyhedron: %v is not a facet of the target mesh", own[i])
		}
		if !hasFacet(other.facets, glued[i]) {
			return fmt.Errorf("polyhedron: %v is not a facet of the merged mesh", glued[i])
		}
		if len(own[i]) != len(glued[i]) {
			return fmt.Errorf("polyhedron: glued facet pair %d has %d vertices on one side and %d on the other",
				i+1, len(own[i]), len(glued[i]))
		}
	}

	// The facet pairs induce a vertex correspondence from other to p; it
	// must be a well-defined bijection.
	toOwn := make(map[int]int)
	fromOwn := make(map[int]int)
	for i := range own {
		for j := range own[i] {
			a, b := own[i][j], glued[i][j]
			if prev, ok := toOwn[b]; ok && prev != a {
				return fmt.Errorf("polyhedron: alignment is not well-defined, vertex %d maps to both %d and %d", b, prev, a)
			}
			if prev, ok := fromOwn[a]; ok && prev != b {
				return fmt.Errorf("polyhedron: alignment is not well-defined, vertices %d and %d both map to %d", prev, b, a)
			}
			toOwn[b] = a
			fromOwn[a] = b
		}
	}
	if len(toOwn) < 3 {
		return fmt.Errorf("polyhedron: only %d aligned vertices, gluing needs at least 3", len(toOwn))
	}

	aligned := make([]int, 0, len(toOwn))
	for b := range toOwn {
		aligned = append(aligned, b)
	}
	sort.Ints(aligned)

	preim := make([]affine.Point, len(aligned))
	im := make([]affine.Point, len(aligned))
	for k, b := range aligned {
		preim[k] = other.verts[b-1]
		im[k] = p.verts[toOwn[b]-1]
	}

	for i := 0; i < len(aligned); i++ {
		for j := i + 1; j < len(aligned); j++ {
			db := affine.Distance(preim[i], preim[j])
			da := affine.Distance(im[i], im[j])
			if math.Abs(db-da) > p.tol {
				return fmt.Errorf("polyhedron: meshes cannot be merged, aligned vertices %d-%d are %g apart in one mesh and %g in the other",
					aligned[i], aligned[j], db, da)
			}
		}
	}

	tau, err := p.alignmentMap(preim, im)
	if err != nil {
		return err
	}

	// Aligned vertices collapse onto p's; the rest are appended after p's
	// vertex range in increasing index order, compacted.
	remap := make([]int, len(other.verts)+1)
	newVerts := cloneVerts(p.verts)
	next := len(p.verts) + 1
	for b := 1; b <= len(other.verts); b++ {
		if a, ok := toOwn[b]; ok {
			remap[b] = a
			continue
		}
		remap[b] = next
		next++
		newVerts = append(newVerts, tau(other.verts[b-1]))
	}

	newEdges := cloneEdges(p.edges)
	seenEdges := make(map[[2]int]bool, len(p.edges))
	for _, e := range p.edges {
		seenEdges[canonicalEdge(e[0], e[1])] = true
	}
	for _, e := range other.edges {
		key := canonicalEdge(remap[e[0]], remap[e[1]])
		if seenEdges[key] {
			continue // the glued boundary's edges exist on both sides
		}
		seenEdges[key] = true
		newEdges = append(newEdges, key)
	}

	newFacets := facetsWithout(p.facets, own, nil)
	newFacets = append(newFacets, facetsWithout(other.facets, glued, remap)...)

	if err := validate(newVerts, newEdges, newFacets, p.tol); err != nil {
		return fmt.Errorf("polyhedron: merged mesh is invalid: %w", err)
	}

	p.verts = newVerts
	p.edges = newEdges
	p.facets = newFacets
	return nil
}

// alignmentMap builds the rigid map carrying the aligned vertices of the
// merged mesh onto their counterparts. When the aligned set is planar in
// 3-space the map is underdetermined; a synthetic fourth point pair built
// from the basis triangle's cross products, with opposite signs on the two
// sides, anchors the out-of-plane behavior so the glued mesh lands on the
// outside rather than mirrored into the target.
func (p *Polyhedron) alignmentMap(preim, im []affine.Point) (affine.Map, error) {
	dim := p.Dimension()

	basisIdx, err := affine.BasisIndices(preim, p.tol)
	if err != nil {
		return nil, err
	}

	basisPre := make([]affine.Point, len(basisIdx))
	basisIm := make([]affine.Point, len(basisIdx))
	for k, idx := range basisIdx {
		basisPre[k] = preim[idx]
		basisIm[k] = im[idx]
	}

	if dim == 3 && len(basisIdx) == 3 {
		b0, b1, b2 := basisPre[0].Vec3(), basisPre[1].Vec3(), basisPre[2].Vec3()
		a0, a1, a2 := basisIm[0].Vec3(), basisIm[1].Vec3(), basisIm[2].Vec3()

		nb := b1.Sub(b0).Cross(b2.Sub(b0))
		na := a1.Sub(a0).Cross(a2.Sub(a0))

		sb := b0.Add(nb)
		sa := a0.Sub(na)
		basisPre = append(basisPre, affine.Point{sb.X(), sb.Y(), sb.Z()})
		basisIm = append(basisIm, affine.Point{sa.X(), sa.Y(), sa.Z()})
	} else if len(basisIdx) != dim+1 {
		return nil, fmt.Errorf("polyhedron: aligned vertices span affine dimension %d, cannot anchor a rigid map in %d-space",
			len(basisIdx)-1, dim)
	}

	tau, err := affine.NewRigidMap(basisPre, basisIm, p.tol)
	if err != nil {
		return nil, fmt.Errorf("polyhedron: meshes cannot be merged: %w", err)
	}
	return tau, nil
}

// facetsWithout copies facets, dropping one occurrence of each facet in
// drop (compared as vertex sets) and remapping indices when remap is given.
func facetsWithout(facets [][]int, drop [][]int, remap []int) [][]int {
	skip := make(map[string]int, len(drop))
	for _, f := range drop {
		skip[facetKey(f)]++
	}

	var out [][]int
	for _, f := range facets {
		key := facetKey(f)
		if skip[key] > 0 {
			skip[key]--
			continue
		}

		g := make([]int, len(f))
		for i, idx := range f {
			if remap != nil {
				g[i] = remap[idx]
			} else {
				g[i] = idx
			}
		}
		out = append(out, g)
	}
	return out
}

func hasFacet(facets [][]int, f []int) bool {
	key := facetKey(f)
	for _, g := range facets {
		if facetKey(g) == key {
			return true
		}
	}
	return false
}
