package lattice

import "testing"

func TestCenters(t *testing.T) {
	ct := Centers(2, 4)

	tests := []struct {
		col, row int
		x, y     float64
	}{
		{0, 0, 2, 6}, // row 0 sits near the top of the 8-pixel region
		{1, 0, 6, 6},
		{0, 1, 2, 2},
		{1, 1, 6, 2},
	}
	for _, tt := range tests {
		x, y := ct.Center(tt.col, tt.row)
		if x != tt.x || y != tt.y {
			t.Errorf("Center(%d, %d) = (%v, %v), want (%v, %v)",
				tt.col, tt.row, x, y, tt.x, tt.y)
		}
	}
}

func TestCentersSiteUnravel(t *testing.T) {
	ct := Centers(3, 10)

	// Flat index s unravels to col = s/n, row = s%n.
	tests := []struct {
		site int
		x, y float64
	}{
		{0, 5, 25},
		{1, 5, 15}, // same column, next row down in grid order
		{3, 15, 25},
		{8, 25, 5},
	}
	for _, tt := range tests {
		x, y := ct.Site(tt.site)
		if x != tt.x || y != tt.y {
			t.Errorf("Site(%d) = (%v, %v), want (%v, %v)", tt.site, x, y, tt.x, tt.y)
		}
	}

	n, m := ct.Dims()
	if n != 3 || m != 10 {
		t.Errorf("Dims() = (%d, %d), want (3, 10)", n, m)
	}
}

func TestCentersDeterministic(t *testing.T) {
	a := Centers(5, 6)
	b := Centers(5, 6)
	for col := 0; col < 5; col++ {
		for row := 0; row < 5; row++ {
			ax, ay := a.Center(col, row)
			bx, by := b.Center(col, row)
			if ax != bx || ay != by {
				t.Fatalf("center tables for identical geometry differ at (%d, %d)", col, row)
			}
		}
	}
}
