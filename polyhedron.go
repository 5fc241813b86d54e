// Package polyhedron implements an explicit polyhedral surface mesh given
// combinatorially by vertices, edges and oriented facets, together with the
// algorithms that operate on it: consistent outward facet orientation,
// point containment by randomized ray casting, signed and unsigned volume,
// and gluing two meshes along matching boundary facets.
//
// Vertex indices are 1-based, as in OBJ-style mesh files: the index is the
// vertex's identity, index 0 is never valid. Meshes are expected to be
// combinatorially closed 2-manifolds with planar, non-degenerate facets.
package polyhedron

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/polyhedron/affine"
)

// DefaultTolerance bounds the geometric predicates (planarity, rigidity,
// ray classification) unless a constructor variant overrides it.
const DefaultTolerance = 1e-8

// ErrDisconnected reports a facet-adjacency graph that does not reach every
// facet, so no consistent global orientation can be propagated.
var ErrDisconnected = errors.New("polyhedron: facet adjacency graph is disconnected")

// ErrIndeterminate reports a containment test that exhausted its ray
// attempts without a sweep free of boundary hits.
var ErrIndeterminate = errors.New("polyhedron: containment test exhausted its ray attempts")

// Polyhedron is a polyhedral surface mesh. The zero value is not usable;
// construct with New. All accessors hand out independent copies, and the
// setters revalidate the full invariant set before committing, so a failed
// mutation leaves the mesh untouched.
type Polyhedron struct {
	verts  []affine.Point
	edges  [][2]int
	facets [][]int
	tol    float64
}

// New builds a polyhedron from explicit vertex, edge and facet data using
// DefaultTolerance for the geometric invariant checks.
func New(verts []affine.Point, edges [][2]int, facets [][]int) (*Polyhedron, error) {
	return NewWithTolerance(verts, edges, facets, DefaultTolerance)
}

// NewWithTolerance is New with an explicit tolerance, which the polyhedron
// also carries into its own geometric operations.
func NewWithTolerance(verts []affine.Point, edges [][2]int, facets [][]int, tol float64) (*Polyhedron, error) {
	if err := validate(verts, edges, facets, tol); err != nil {
		return nil, err
	}

	return &Polyhedron{
		verts:  cloneVerts(verts),
		edges:  cloneEdges(edges),
		facets: cloneFacets(facets),
		tol:    tol,
	}, nil
}

// validate checks the full invariant set on a candidate vertex/edge/facet
// triple. It never mutates anything, so callers can validate before
// committing a replacement.
func validate(verts []affine.Point, edges [][2]int, facets [][]int, tol float64) error {
	if len(verts) == 0 {
		return fmt.Errorf("polyhedron: no vertices")
	}

	dim := len(verts[0])
	for i, v := range verts {
		if len(v) != dim {
			return fmt.Errorf("polyhedron: vertex %d has dimension %d, want %d", i+1, len(v), dim)
		}
	}

	n := len(verts)
	seenEdges := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		if e[0] < 1 || e[0] > n || e[1] < 1 || e[1] > n {
			return fmt.Errorf("polyhedron: edge %v references a vertex outside 1..%d", e, n)
		}
		if e[0] == e[1] {
			return fmt.Errorf("polyhedron: edge %v is a loop", e)
		}
		key := canonicalEdge(e[0], e[1])
		if seenEdges[key] {
			return fmt.Errorf("polyhedron: duplicate edge %v", e)
		}
		seenEdges[key] = true
	}

	facetEdgeSets := make([]map[[2]int]bool, len(facets))
	for i, f := range facets {
		if len(f) < 3 {
			return fmt.Errorf("polyhedron: facet %d has %d vertices, need at least 3", i+1, len(f))
		}

		seen := make(map[int]bool, len(f))
		points := make([]affine.Point, len(f))
		for j, idx := range f {
			if idx < 1 || idx > n {
				return fmt.Errorf("polyhedron: facet %d references vertex %d outside 1..%d", i+1, idx, n)
			}
			if seen[idx] {
				return fmt.Errorf("polyhedron: facet %d repeats vertex %d", i+1, idx)
			}
			seen[idx] = true
			points[j] = verts[idx-1]
		}

		d, err := affine.Dimension(points, tol)
		if err != nil {
			return fmt.Errorf("polyhedron: facet %d: %w", i+1, err)
		}
		if d != 2 {
			return fmt.Errorf("polyhedron: facet %d spans affine dimension %d, want 2", i+1, d)
		}

		facetEdgeSets[i] = make(map[[2]int]bool, len(f))
		for j := range f {
			facetEdgeSets[i][canonicalEdge(f[j], f[(j+1)%len(f)])] = true
		}
	}

	for i := range facets {
		for j := range facets {
			if i == j {
				continue
			}
			if isEdgeSubset(facetEdgeSets[i], facetEdgeSets[j]) {
				return fmt.Errorf("polyhedron: facet %d is contained in facet %d", i+1, j+1)
			}
		}
	}

	return nil
}

func isEdgeSubset(sub, super map[[2]int]bool) bool {
	for e := range sub {
		if !super[e] {
			return false
		}
	}
	return true
}

// canonicalEdge orders an index pair so unordered edges compare equal.
func canonicalEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func cloneVerts(verts []affine.Point) []affine.Point {
	out := make([]affine.Point, len(verts))
	for i, v := range verts {
		out[i] = v.Clone()
	}
	return out
}

func cloneEdges(edges [][2]int) [][2]int {
	out := make([][2]int, len(edges))
	copy(out, edges)
	return out
}

func cloneFacets(facets [][]int) [][]int {
	out := make([][]int, len(facets))
	for i, f := range facets {
		out[i] = append([]int{}, f...)
	}
	return out
}

// Vertices returns a copy of the vertex list, indexed 1..N by position+1.
func (p *Polyhedron) Vertices() []affine.Point {
	return cloneVerts(p.verts)
}

// Edges returns a copy of the edge list.
func (p *Polyhedron) Edges() [][2]int {
	return cloneEdges(p.edges)
}

// Facets returns a copy of the facet list.
func (p *Polyhedron) Facets() [][]int {
	return cloneFacets(p.facets)
}

// Tolerance returns the tolerance the polyhedron was built with.
func (p *Polyhedron) Tolerance() float64 {
	return p.tol
}

// SetVertices replaces the vertex list, revalidating all invariants against
// the current edges and facets. Nothing changes on failure.
func (p *Polyhedron) SetVertices(verts []affine.Point) error {
	if err := validate(verts, p.edges, p.facets, p.tol); err != nil {
		return err
	}
	p.verts = cloneVerts(verts)
	return nil
}

// SetEdges replaces the edge list, revalidating all invariants.
func (p *Polyhedron) SetEdges(edges [][2]int) error {
	if err := validate(p.verts, edges, p.facets, p.tol); err != nil {
		return err
	}
	p.edges = cloneEdges(edges)
	return nil
}

// SetFacets replaces the facet list, revalidating all invariants.
func (p *Polyhedron) SetFacets(facets [][]int) error {
	if err := validate(p.verts, p.edges, facets, p.tol); err != nil {
		return err
	}
	p.facets = cloneFacets(facets)
	return nil
}

// Dimension returns the coordinate dimension of the vertices.
func (p *Polyhedron) Dimension() int {
	return len(p.verts[0])
}

// Copy returns a deep copy sharing no state with p.
func (p *Polyhedron) Copy() *Polyhedron {
	return &Polyhedron{
		verts:  cloneVerts(p.verts),
		edges:  cloneEdges(p.edges),
		facets: cloneFacets(p.facets),
		tol:    p.tol,
	}
}

// vertexVec3 returns vertex idx (1-based) as an mgl64 vector.
func (p *Polyhedron) vertexVec3(idx int) mgl64.Vec3 {
	return p.verts[idx-1].Vec3()
}

// facetPolygon returns the facet's vertex loop as 3-D vectors.
func (p *Polyhedron) facetPolygon(facet []int) []mgl64.Vec3 {
	polygon := make([]mgl64.Vec3, len(facet))
	for i, idx := range facet {
		polygon[i] = p.vertexVec3(idx)
	}
	return polygon
}

// facetKey is a canonical identity for a facet as an unordered vertex set.
func facetKey(facet []int) string {
	sorted := append([]int{}, facet...)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

// Equal reports combinatorial equality: same vertex count, same edge set
// and same facet set, with edges unordered and facets compared as vertex
// sets. Coordinates are not compared.
func (p *Polyhedron) Equal(q *Polyhedron) bool {
	if len(p.verts) != len(q.verts) {
		return false
	}

	if len(p.edges) != len(q.edges) {
		return false
	}
	pe := make(map[[2]int]bool, len(p.edges))
	for _, e := range p.edges {
		pe[canonicalEdge(e[0], e[1])] = true
	}
	for _, e := range q.edges {
		if !pe[canonicalEdge(e[0], e[1])] {
			return false
		}
	}

	if len(p.facets) != len(q.facets) {
		return false
	}
	pf := make(map[string]int, len(p.facets))
	for _, f := range p.facets {
		pf[facetKey(f)]++
	}
	for _, f := range q.facets {
		key := facetKey(f)
		if pf[key] == 0 {
			return false
		}
		pf[key]--
	}

	return true
}

// IsCongruent reports whether q is a rigid copy of p: the edge sets match,
// every facet matches up to rotation or reversal of its cyclic order, and a
// rigid map carries p's vertex sequence onto q's.
func (p *Polyhedron) IsCongruent(q *Polyhedron) bool {
	if !p.Equal(q) {
		return false
	}

	for _, f := range p.facets {
		found := false
		for _, g := range q.facets {
			if sameCycle(f, g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	_, err := affine.NewRigidMap(p.verts, q.verts, p.tol)
	return err == nil
}

// sameCycle reports whether two facets are the same cyclic sequence up to
// rotation and reversal.
func sameCycle(f, g []int) bool {
	if len(f) != len(g) {
		return false
	}
	n := len(f)

	for shift := 0; shift < n; shift++ {
		forward, backward := true, true
		for i := 0; i < n; i++ {
			if f[i] != g[(shift+i)%n] {
				forward = false
			}
			if f[i] != g[(shift-i+n)%n] {
				backward = false
			}
			if !forward && !backward {
				break
			}
		}
		if forward || backward {
			return true
		}
	}

	return false
}
