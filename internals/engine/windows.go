package engine

// window holds the four (row, col) coordinates of one line segment.
type window [4][2]int

// windowCatalog is the precomputed set of every 4-cell line on the
// board, grouped by direction. Built once at init and never mutated.
type windowCatalog struct {
	horizontal []window
	vertical   []window
	diagDown   []window
	diagUp     []window
}

var catalog = newWindowCatalog()

func newWindowCatalog() *windowCatalog {
	wc := &windowCatalog{}

	// Horizontal: rows x (cols-3)
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols-3; col++ {
			wc.horizontal = append(wc.horizontal, window{
				{row, col}, {row, col + 1}, {row, col + 2}, {row, col + 3},
			})
		}
	}

	// Vertical: (rows-3) x cols
	for row := 0; row < BoardRows-3; row++ {
		for col := 0; col < BoardCols; col++ {
			wc.vertical = append(wc.vertical, window{
				{row, col}, {row + 1, col}, {row + 2, col}, {row + 3, col},
			})
		}
	}

	// Diagonal down-right: (rows-3) x (cols-3)
	for row := 0; row < BoardRows-3; row++ {
		for col := 0; col < BoardCols-3; col++ {
			wc.diagDown = append(wc.diagDown, window{
				{row, col}, {row + 1, col + 1}, {row + 2, col + 2}, {row + 3, col + 3},
			})
		}
	}

	// Diagonal up-right, anchored at rows >= 3
	for row := 3; row < BoardRows; row++ {
		for col := 0; col < BoardCols-3; col++ {
			wc.diagUp = append(wc.diagUp, window{
				{row, col}, {row - 1, col + 1}, {row - 2, col + 2}, {row - 3, col + 3},
			})
		}
	}

	return wc
}

// all returns every window in the catalog, direction by direction.
func (wc *windowCatalog) all() []window {
	out := make([]window, 0, len(wc.horizontal)+len(wc.vertical)+len(wc.diagDown)+len(wc.diagUp))
	out = append(out, wc.horizontal...)
	out = append(out, wc.vertical...)
	out = append(out, wc.diagDown...)
	out = append(out, wc.diagUp...)
	return out
}
