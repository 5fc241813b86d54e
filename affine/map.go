package affine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Map is an affine transformation between coordinate spaces. The input must
// have the dimension the map was built for; Map panics otherwise, as with
// the other dimension preconditions in this package.
type Map func(Point) Point

// NewMap builds the unique affine map sending each point of preim to the
// corresponding point of im. preim must span its whole coordinate space
// (affine dimension == coordinate dimension); the map is solved from a
// homogeneous basis subset, so im may live in a space of different
// dimension. Fails if the preimage is degenerate or dimensions are mixed
// within either point set.
func NewMap(preim, im []Point, tol float64) (Map, error) {
	if len(preim) != len(im) {
		return nil, fmt.Errorf("affine: preimage has %d points, image has %d", len(preim), len(im))
	}
	if len(preim) == 0 {
		return nil, fmt.Errorf("affine: map from empty point set")
	}

	d := len(preim[0])
	e := len(im[0])
	for i := range im {
		if len(im[i]) != e {
			return nil, fmt.Errorf("affine: image point %d has dimension %d, want %d", i, len(im[i]), e)
		}
	}

	basisIdx, err := BasisIndices(preim, tol)
	if err != nil {
		return nil, err
	}
	if len(basisIdx) != d+1 {
		return nil, fmt.Errorf("%w: preimage spans an affine subspace of dimension %d in %d-space",
			ErrDegenerate, len(basisIdx)-1, d)
	}

	// M solves M * [P;1] = [Q;1] for the homogeneous basis matrices; the
	// transposed system fits gonum's Solve(A, B) with A = P^T.
	p := homogeneous(preim, basisIdx)
	q := homogeneous(im, basisIdx)

	var mt mat.Dense
	if err := mt.Solve(p.T(), q.T()); err != nil {
		return nil, fmt.Errorf("%w: homogeneous basis matrix is not invertible: %v", ErrDegenerate, err)
	}

	var m mat.Dense
	m.CloneFrom(mt.T())

	return func(x Point) Point {
		if len(x) != d {
			panic(fmt.Sprintf("affine: map applied to %d-dimensional point, want %d", len(x), d))
		}

		out := make(Point, e)
		for i := 0; i < e; i++ {
			acc := m.At(i, d) // translation component
			for j := 0; j < d; j++ {
				acc += m.At(i, j) * x[j]
			}
			out[i] = acc
		}
		return out
	}, nil
}

// NewRigidMap builds the affine map from preim to im after verifying that
// every pairwise distance within preim matches the corresponding distance
// within im to within tol. Fails with ErrNotRigid naming the first
// offending pair otherwise.
func NewRigidMap(preim, im []Point, tol float64) (Map, error) {
	if len(preim) != len(im) {
		return nil, fmt.Errorf("affine: preimage has %d points, image has %d", len(preim), len(im))
	}

	for i := 0; i < len(preim); i++ {
		for j := i + 1; j < len(preim); j++ {
			dp := Distance(preim[i], preim[j])
			di := Distance(im[i], im[j])
			if math.Abs(dp-di) > tol {
				return nil, fmt.Errorf("%w: distance between points %d and %d is %g in the preimage but %g in the image",
					ErrNotRigid, i, j, dp, di)
			}
		}
	}

	return NewMap(preim, im, tol)
}
