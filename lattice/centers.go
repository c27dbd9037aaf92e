package lattice

// CenterTable is a read-only lookup of per-site emission centers in
// lattice-region pixel coordinates, shared by the synthesizer and anything
// rendering or annotating its output. Grid row 0 renders at the top of the
// frame: the y center of a site is N*M - (row*M + M/2), so increasing grid
// rows move up in physical position while camera y grows downward.
type CenterTable struct {
	n, m int
	x    []float64 // indexed by column
	y    []float64 // indexed by row
}

// Centers computes the center table for an n-site lattice with m camera
// pixels per site. The table is deterministic in (n, m) and never mutated.
func Centers(n, m int) *CenterTable {
	t := &CenterTable{
		n: n,
		m: m,
		x: make([]float64, n),
		y: make([]float64, n),
	}
	half := float64(m) / 2
	span := float64(n * m)
	for i := 0; i < n; i++ {
		t.x[i] = float64(i*m) + half
		t.y[i] = span - (float64(i*m) + half)
	}
	return t
}

// Center returns the emission center of the site at (col, row).
func (t *CenterTable) Center(col, row int) (x, y float64) {
	return t.x[col], t.y[row]
}

// Site returns the emission center of a flat site index, which unravels to
// (col, row) = (site/n, site%n).
func (t *CenterTable) Site(site int) (x, y float64) {
	return t.Center(site/t.n, site%t.n)
}

// Dims returns the table's lattice geometry (sites per axis, pixels per site).
func (t *CenterTable) Dims() (n, m int) { return t.n, t.m }
