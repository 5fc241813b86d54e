package polyhedron

import "fmt"

// FormPath reorders vertices so that consecutive entries are connected by
// one of the given edges, forming a simple path. Only edges with both
// endpoints among the vertices count. Fails when the induced graph has a
// vertex of degree above 2 (branching), more than two endpoints of degree 1
// (disjoint pieces), or cannot be traversed as a single path.
//
// A closed cycle has no degree-1 endpoint; any rotation of the cycle is a
// valid result and the starting vertex is unspecified.
func FormPath(vertices []int, edges [][2]int) ([]int, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("polyhedron: empty vertex list forms no path")
	}

	in := indexSet(vertices)
	neighbors := make(map[int][]int, len(vertices))
	for _, e := range edges {
		if in[e[0]] && in[e[1]] {
			neighbors[e[0]] = append(neighbors[e[0]], e[1])
			neighbors[e[1]] = append(neighbors[e[1]], e[0])
		}
	}

	start := -1
	endpoints := 0
	for _, v := range vertices {
		switch len(neighbors[v]) {
		case 1:
			endpoints++
			if start == -1 {
				start = v
			}
		case 0, 2:
			// interior vertex or isolated (caught during traversal)
		default:
			return nil, fmt.Errorf("polyhedron: vertex %d has degree %d, path vertices may have at most 2", v, len(neighbors[v]))
		}
	}
	if endpoints > 2 {
		return nil, fmt.Errorf("polyhedron: %d endpoints of degree 1, a simple path has at most 2", endpoints)
	}
	if start == -1 {
		start = vertices[0]
	}

	path := make([]int, 0, len(vertices))
	visited := make(map[int]bool, len(vertices))
	path = append(path, start)
	visited[start] = true

	for len(path) < len(vertices) {
		last := path[len(path)-1]

		next := -1
		for _, candidate := range neighbors[last] {
			if !visited[candidate] {
				next = candidate
				break
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("polyhedron: vertices do not form a single path, stuck at %d after %d of %d", last, len(path), len(vertices))
		}

		path = append(path, next)
		visited[next] = true
	}

	return path, nil
}
