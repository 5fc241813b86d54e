package affine

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

const testTolerance = 1e-8

func pointApproxEqual(a, b Point, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name    string
		v, w    Point
		want    float64
		wantSqr float64
	}{
		{
			name: "unit apart on one axis",
			v:    Point{0, 0, 0},
			w:    Point{1, 0, 0},
			want: 1, wantSqr: 1,
		},
		{
			name: "3-4-5 triangle",
			v:    Point{0, 0},
			w:    Point{3, 4},
			want: 5, wantSqr: 25,
		},
		{
			name: "coincident points",
			v:    Point{2, -1, 7},
			w:    Point{2, -1, 7},
			want: 0, wantSqr: 0,
		},
		{
			name: "high dimension",
			v:    Point{1, 1, 1, 1},
			w:    Point{0, 0, 0, 0},
			want: 2, wantSqr: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.v, tt.w); math.Abs(got-tt.want) > testTolerance {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := SquaredDistance(tt.v, tt.w); math.Abs(got-tt.wantSqr) > testTolerance {
				t.Errorf("SquaredDistance() = %v, want %v", got, tt.wantSqr)
			}
		})
	}
}

func TestSignedAngle(t *testing.T) {
	z := Point{0, 0, 1}

	tests := []struct {
		name   string
		v, w   Point
		normal Point
		want   float64
	}{
		{
			name: "quarter turn counter-clockwise",
			v:    Point{1, 0, 0}, w: Point{0, 1, 0}, normal: z,
			want: math.Pi / 2,
		},
		{
			name: "quarter turn clockwise",
			v:    Point{0, 1, 0}, w: Point{1, 0, 0}, normal: z,
			want: -math.Pi / 2,
		},
		{
			name: "half turn lands on +pi",
			v:    Point{1, 0, 0}, w: Point{-1, 0, 0}, normal: z,
			want: math.Pi,
		},
		{
			name: "zero angle",
			v:    Point{1, 1, 0}, w: Point{2, 2, 0}, normal: z,
			want: 0,
		},
		{
			name: "normal length does not matter",
			v:    Point{1, 0, 0}, w: Point{0, 1, 0}, normal: Point{0, 0, 5},
			want: math.Pi / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedAngle(tt.v, tt.w, tt.normal, testTolerance)
			if err != nil {
				t.Fatalf("SignedAngle() error: %v", err)
			}
			if math.Abs(got-tt.want) > testTolerance {
				t.Errorf("SignedAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedAngleRejectsNonPerpendicular(t *testing.T) {
	if _, err := SignedAngle(Point{1, 0, 1}, Point{0, 1, 0}, Point{0, 0, 1}, testTolerance); err == nil {
		t.Error("SignedAngle() should fail when v is not perpendicular to the normal")
	}
	if _, err := SignedAngle(Point{1, 0}, Point{0, 1}, Point{0, 0}, testTolerance); err == nil {
		t.Error("SignedAngle() should fail on non-3-dimensional input")
	}
}

func TestBasisIndices(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   []int
	}{
		{
			name:   "single point",
			points: []Point{{1, 2, 3}},
			want:   []int{0},
		},
		{
			name: "collinear points collapse to two",
			points: []Point{
				{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {3, 3, 3},
			},
			want: []int{0, 1},
		},
		{
			name: "coplanar quad keeps three",
			points: []Point{
				{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			},
			want: []int{0, 1, 2},
		},
		{
			name: "tetrahedron keeps all four",
			points: []Point{
				{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			},
			want: []int{0, 1, 2, 3},
		},
		{
			name: "duplicate start skipped",
			points: []Point{
				{1, 1}, {1, 1}, {2, 1}, {1, 2},
			},
			want: []int{0, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BasisIndices(tt.points, testTolerance)
			if err != nil {
				t.Fatalf("BasisIndices() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("BasisIndices() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("BasisIndices()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Affine-basis size must equal 1 + affine dimension of the set, including
// for random high-dimensional point clouds.
func TestBasisSizeMatchesDimension(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for dim := 1; dim <= 6; dim++ {
		count := dim + 5
		points := make([]Point, count)
		for i := range points {
			p := make(Point, dim)
			for j := range p {
				p[j] = rng.NormFloat64()
			}
			points[i] = p
		}

		basis, err := Basis(points, testTolerance)
		if err != nil {
			t.Fatalf("Basis() error in dimension %d: %v", dim, err)
		}
		d, err := Dimension(points, testTolerance)
		if err != nil {
			t.Fatalf("Dimension() error in dimension %d: %v", dim, err)
		}
		if len(basis) != d+1 {
			t.Errorf("dimension %d: basis size %d, want %d", dim, len(basis), d+1)
		}
		// Random points are almost surely in general position.
		if d != dim {
			t.Errorf("random cloud in dimension %d has affine dimension %d", dim, d)
		}
	}
}

// Every preimage point must map onto its image point, not only the basis
// subset used to solve for the matrix.
func TestMapRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	preim := []Point{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 0}, {0.5, 0.25, 0.75},
	}

	// A random affine transform: rotation-ish matrix plus translation.
	a := make([][]float64, 3)
	b := make([]float64, 3)
	for i := range a {
		a[i] = make([]float64, 3)
		for j := range a[i] {
			a[i][j] = rng.NormFloat64()
		}
		b[i] = rng.NormFloat64()
	}

	im := make([]Point, len(preim))
	for k, p := range preim {
		q := make(Point, 3)
		for i := 0; i < 3; i++ {
			q[i] = b[i]
			for j := 0; j < 3; j++ {
				q[i] += a[i][j] * p[j]
			}
		}
		im[k] = q
	}

	m, err := NewMap(preim, im, testTolerance)
	if err != nil {
		t.Fatalf("NewMap() error: %v", err)
	}

	for k, p := range preim {
		got := m(p)
		if !pointApproxEqual(got, im[k], 1e-6) {
			t.Errorf("map(preim[%d]) = %v, want %v", k, got, im[k])
		}
	}
}

func TestMapRejectsDegeneratePreimage(t *testing.T) {
	// Coplanar preimage cannot span 3-space.
	preim := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	im := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}

	_, err := NewMap(preim, im, testTolerance)
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("NewMap() error = %v, want ErrDegenerate", err)
	}
}

func TestMapRejectsLengthMismatch(t *testing.T) {
	if _, err := NewMap([]Point{{0, 0}}, []Point{{0, 0}, {1, 1}}, testTolerance); err == nil {
		t.Error("NewMap() should fail on length mismatch")
	}
}

func TestRigidMapPreservesPoints(t *testing.T) {
	// 90 degree rotation about z plus a shift: distances are preserved.
	preim := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	im := []Point{{2, 1, 0}, {2, 2, 0}, {1, 1, 0}, {2, 1, 1}}

	m, err := NewRigidMap(preim, im, testTolerance)
	if err != nil {
		t.Fatalf("NewRigidMap() error: %v", err)
	}

	for k, p := range preim {
		if got := m(p); !pointApproxEqual(got, im[k], 1e-9) {
			t.Errorf("rigid map(preim[%d]) = %v, want %v", k, got, im[k])
		}
	}
}

// A rigid map must fail, not silently distort, when any pairwise distance
// differs between preimage and image.
func TestRigidMapRejectsDistortion(t *testing.T) {
	preim := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	im := []Point{{0, 0, 0}, {2, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	_, err := NewRigidMap(preim, im, testTolerance)
	if !errors.Is(err, ErrNotRigid) {
		t.Errorf("NewRigidMap() error = %v, want ErrNotRigid", err)
	}
}
