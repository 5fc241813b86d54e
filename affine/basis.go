package affine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/akmonengine/polyhedron/linalg"
)

// homogeneous returns the (d+1)-row matrix whose columns are the selected
// points in homogeneous coordinates (a row of ones appended).
func homogeneous(points []Point, indices []int) *mat.Dense {
	d := len(points[indices[0]])
	m := mat.NewDense(d+1, len(indices), nil)
	for j, idx := range indices {
		for i := 0; i < d; i++ {
			m.Set(i, j, points[idx][i])
		}
		m.Set(d, j, 1)
	}
	return m
}

// BasisIndices scans points in input order and greedily collects an affinely
// independent subset: a candidate joins the basis iff its homogeneous
// coordinate column increases the rank of the columns collected so far.
// The scan stops early once dimension+1 points are found. The returned
// indices are in increasing order.
func BasisIndices(points []Point, tol float64) ([]int, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("affine: basis of empty point set")
	}

	d := len(points[0])
	for i, p := range points {
		if len(p) != d {
			return nil, fmt.Errorf("affine: point %d has dimension %d, want %d", i, len(p), d)
		}
	}

	basis := []int{0} // a single point is always affinely independent
	rank := 1

	for i := 1; i < len(points) && rank < d+1; i++ {
		candidate := append(append([]int{}, basis...), i)
		if linalg.Rank(homogeneous(points, candidate), tol) > rank {
			basis = candidate
			rank++
		}
	}

	return basis, nil
}

// Basis returns the points at BasisIndices. Its size is Dimension(points)+1.
func Basis(points []Point, tol float64) ([]Point, error) {
	indices, err := BasisIndices(points, tol)
	if err != nil {
		return nil, err
	}

	out := make([]Point, len(indices))
	for k, idx := range indices {
		out[k] = points[idx].Clone()
	}
	return out, nil
}

// Dimension returns the dimension of the affine span of points.
func Dimension(points []Point, tol float64) (int, error) {
	indices, err := BasisIndices(points, tol)
	if err != nil {
		return 0, err
	}
	return len(indices) - 1, nil
}
