package linalg

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

const testTolerance = 1e-8

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		data []float64
		want int
	}{
		{
			name: "identity 3x3",
			rows: 3, cols: 3,
			data: []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
			want: 3,
		},
		{
			name: "duplicate column",
			rows: 3, cols: 3,
			data: []float64{1, 1, 0, 2, 2, 1, 3, 3, 0},
			want: 2,
		},
		{
			name: "zero matrix",
			rows: 2, cols: 2,
			data: []float64{0, 0, 0, 0},
			want: 0,
		},
		{
			name: "rank one outer product",
			rows: 3, cols: 2,
			data: []float64{1, 2, 2, 4, 3, 6},
			want: 1,
		},
		{
			name: "wide full rank",
			rows: 2, cols: 4,
			data: []float64{1, 0, 1, 1, 0, 1, 1, 2},
			want: 2,
		},
		{
			name: "near dependent column below tolerance",
			rows: 2, cols: 2,
			data: []float64{1, 1 + 1e-14, 1, 1},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mat.NewDense(tt.rows, tt.cols, tt.data)
			if got := Rank(m, testTolerance); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndependentColumns(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		data []float64
		want []int
	}{
		{
			name: "skips duplicate middle column",
			rows: 3, cols: 3,
			data: []float64{
				1, 1, 0,
				2, 2, 1,
				3, 3, 0,
			},
			want: []int{0, 2},
		},
		{
			name: "skips leading zero column",
			rows: 2, cols: 3,
			data: []float64{
				0, 1, 0,
				0, 0, 1,
			},
			want: []int{1, 2},
		},
		{
			name: "stops after full rank",
			rows: 2, cols: 4,
			data: []float64{
				1, 0, 5, 7,
				0, 1, 5, 7,
			},
			want: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mat.NewDense(tt.rows, tt.cols, tt.data)
			got := IndependentColumns(m, testTolerance)
			if len(got) != len(tt.want) {
				t.Fatalf("IndependentColumns() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("IndependentColumns()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestColumnSpaceBasis(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 0,
		0, 0, 1,
		1, 2, 0,
	})

	basis, err := ColumnSpaceBasis(m, testTolerance)
	if err != nil {
		t.Fatalf("ColumnSpaceBasis() error: %v", err)
	}

	rows, cols := basis.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("basis dims = %dx%d, want 3x2", rows, cols)
	}
	if basis.At(0, 0) != 1 || basis.At(1, 1) != 1 {
		t.Errorf("basis did not keep the first independent columns: %v", mat.Formatted(basis))
	}
}

func TestColumnSpaceBasisZeroMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, nil)
	if _, err := ColumnSpaceBasis(m, testTolerance); err == nil {
		t.Error("ColumnSpaceBasis() on zero matrix should fail")
	}
}
