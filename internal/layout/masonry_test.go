package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPack_ShortestColumnFirstTieBreak(t *testing.T) {
	sizes := []Size{
		{Width: 100, Height: 100}, // 300 tall at width 300
		{Width: 100, Height: 200}, // 600
		{Width: 100, Height: 50},  // 150
		{Width: 100, Height: 100}, // 300
		{Width: 100, Height: 100}, // 300
	}

	res := Pack(sizes, Options{Columns: 3, ColumnWidth: 300, Gap: 10})

	// all empty: item 0 goes to column 0; then 1 and 2 fill columns 1 and 2
	// heights 310, 610, 160 -> item 3 to column 2 (470) -> item 4 to column 0
	assert.Equal(t, [][]int{{0, 4}, {1}, {2, 3}}, res.Columns)
	assert.Equal(t, []float64{620, 610, 470}, res.Heights)
	assert.Equal(t, Placement{Index: 3, Column: 2, Top: 160, Height: 300}, res.Placements[3])
}

func TestPack_EqualHeightsFillLeftToRight(t *testing.T) {
	sizes := make([]Size, 7)
	res := Pack(sizes, Options{Columns: 3, ColumnWidth: 200, Gap: 0})

	assert.Equal(t, [][]int{{0, 3, 6}, {1, 4}, {2, 5}}, res.Columns)
}

func TestPack_UnknownSizeRendersSquare(t *testing.T) {
	assert.Equal(t, 250.0, ScaledHeight(Size{}, 250))
	assert.Equal(t, 125.0, ScaledHeight(Size{Width: 400, Height: 200}, 250))
}

func TestPack_Degenerate(t *testing.T) {
	res := Pack(nil, Options{Columns: 0, ColumnWidth: 100})
	assert.Equal(t, [][]int{{}}, res.Columns)
	assert.Empty(t, res.Placements)

	res = Pack([]Size{{}, {}}, Options{Columns: 4, ColumnWidth: 100})
	assert.Equal(t, [][]int{{0}, {1}, {}, {}}, res.Columns)
}
