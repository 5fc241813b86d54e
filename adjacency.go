package polyhedron

// IsAdjacent reports whether two facets (or a facet and an edge, both given
// as vertex index collections) share a full edge of the polyhedron: some
// edge whose endpoints both occur in a and both occur in b.
func (p *Polyhedron) IsAdjacent(a, b []int) bool {
	inA := indexSet(a)
	inB := indexSet(b)

	for _, e := range p.edges {
		if inA[e[0]] && inA[e[1]] && inB[e[0]] && inB[e[1]] {
			return true
		}
	}
	return false
}

// AdjacentFacets returns the facets sharing a full edge with f, excluding
// any facet with f's own vertex set.
func (p *Polyhedron) AdjacentFacets(f []int) [][]int {
	key := facetKey(f)

	var out [][]int
	for _, g := range p.facets {
		if facetKey(g) == key {
			continue
		}
		if p.IsAdjacent(f, g) {
			out = append(out, append([]int{}, g...))
		}
	}
	return out
}

// IncidentFacets returns the facets containing vertex v.
func (p *Polyhedron) IncidentFacets(v int) [][]int {
	var out [][]int
	for _, f := range p.facets {
		for _, idx := range f {
			if idx == v {
				out = append(out, append([]int{}, f...))
				break
			}
		}
	}
	return out
}

// IncidentEdges returns the edges containing vertex v.
func (p *Polyhedron) IncidentEdges(v int) [][2]int {
	var out [][2]int
	for _, e := range p.edges {
		if e[0] == v || e[1] == v {
			out = append(out, e)
		}
	}
	return out
}

// FacetEdges returns the polyhedron edges spanned by the facet's vertex
// set, i.e. the edges with both endpoints on the facet.
func (p *Polyhedron) FacetEdges(f []int) [][2]int {
	in := indexSet(f)

	var out [][2]int
	for _, e := range p.edges {
		if in[e[0]] && in[e[1]] {
			out = append(out, e)
		}
	}
	return out
}

func indexSet(indices []int) map[int]bool {
	set := make(map[int]bool, len(indices))
	for _, idx := range indices {
		set[idx] = true
	}
	return set
}
