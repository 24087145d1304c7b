// Package layout packs variable-height images into masonry columns.
package layout

// Size is the intrinsic pixel size of an image. Zero values mean unknown.
type Size struct {
	Width  int
	Height int
}

// Options configures a packing pass.
type Options struct {
	Columns     int
	ColumnWidth float64
	Gap         float64
}

// Placement is where one item landed.
type Placement struct {
	Index  int     `json:"index"`
	Column int     `json:"column"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Result is the outcome of Pack.
type Result struct {
	// Columns holds item indices per column, top to bottom.
	Columns    [][]int     `json:"columns"`
	Heights    []float64   `json:"heights"`
	Placements []Placement `json:"placements"`
}

// ScaledHeight is the rendered height of s in a column of width w.
// Images of unknown size render square.
func ScaledHeight(s Size, w float64) float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return w
	}
	return w * float64(s.Height) / float64(s.Width)
}

// Pack places each item, in order, into the currently shortest column.
// Ties go to the lowest-numbered column so the output is reproducible.
// A column grows by the item height plus the gap.
func Pack(sizes []Size, opts Options) Result {
	cols := opts.Columns
	if cols < 1 {
		cols = 1
	}
	res := Result{
		Columns:    make([][]int, cols),
		Heights:    make([]float64, cols),
		Placements: make([]Placement, 0, len(sizes)),
	}
	for i := range res.Columns {
		res.Columns[i] = []int{}
	}

	for i, s := range sizes {
		shortest := 0
		for c := 1; c < cols; c++ {
			if res.Heights[c] < res.Heights[shortest] {
				shortest = c
			}
		}

		h := ScaledHeight(s, opts.ColumnWidth)
		res.Placements = append(res.Placements, Placement{
			Index:  i,
			Column: shortest,
			Top:    res.Heights[shortest],
			Height: h,
		})
		res.Columns[shortest] = append(res.Columns[shortest], i)
		res.Heights[shortest] += h + opts.Gap
	}
	return res
}
