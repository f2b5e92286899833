package engine

import "testing"

func TestEvaluateEmptyBoard(t *testing.T) {
	b := NewBoard()
	if got := evaluatePosition(b, Player1, Player2); got != 0 {
		t.Errorf("empty board score = %d, want 0", got)
	}
}

func TestEvaluateSinglePiece(t *testing.T) {
	b := NewBoard()
	mustDrop(t, b, 3, Player1)

	// Positional weight 15 at (5,3) plus the center-column bonus;
	// no window holds two pieces yet.
	if got := evaluatePosition(b, Player1, Player2); got != 18 {
		t.Errorf("score from owner = %d, want 18", got)
	}
	if got := evaluatePosition(b, Player2, Player1); got != -15 {
		t.Errorf("score from opponent = %d, want -15", got)
	}
}

func TestEvaluateWindowClassification(t *testing.T) {
	w := window{{5, 0}, {5, 1}, {5, 2}, {5, 3}}
	tests := []struct {
		name string
		row  string
		want int
	}{
		{"four own", "XXXX...", scoreFour},
		{"three own one empty", "XX.X...", scoreThree},
		{"two own two empty", "X..X...", scoreTwo},
		{"three opponent one empty", "OO.O...", scoreOppThree},
		{"two opponent two empty", ".OO....", scoreOppTwo},
		{"mixed occupancy", "XXO....", 0},
		{"all empty", ".......", 0},
		{"one own", "..X....", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(t, [BoardRows]string{
				".......", ".......", ".......", ".......", ".......", tc.row,
			})
			if got := evaluateWindow(b, w, Player1, Player2); got != tc.want {
				t.Errorf("evaluateWindow = %d, want %d", got, tc.want)
			}
		})
	}
}

// mirrorSwap reverses the columns and exchanges the two players'
// pieces.
func mirrorSwap(b *Board) *Board {
	m := NewBoard()
	for r := 0; r < BoardRows; r++ {
		for c := 0; c < BoardCols; c++ {
			switch b.cells[r][c] {
			case Player1:
				m.cells[r][BoardCols-1-c] = Player2
			case Player2:
				m.cells[r][BoardCols-1-c] = Player1
			}
		}
	}
	return m
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	b := boardFrom(t, [BoardRows]string{
		".......",
		".......",
		"...X...",
		"..XO...",
		".OXXO..",
		"XOOXOX.",
	})

	got := evaluatePosition(b, Player1, Player2)
	mirrored := evaluatePosition(mirrorSwap(b), Player2, Player1)
	if got != mirrored {
		t.Errorf("mirror score = %d, want %d", mirrored, got)
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	b := boardFrom(t, [BoardRows]string{
		".......",
		".......",
		".......",
		"...O...",
		"..XX...",
		".OXO.X.",
	})
	first := evaluatePosition(b, Player2, Player1)
	for i := 0; i < 10; i++ {
		if got := evaluatePosition(b, Player2, Player1); got != first {
			t.Fatalf("evaluation not deterministic: %d then %d", first, got)
		}
	}
}

func TestEvaluateCenterColumnBonus(t *testing.T) {
	center := NewBoard()
	edge := NewBoard()
	mustDrop(t, center, 3, Player2)
	mustDrop(t, edge, 0, Player2)

	centerScore := evaluatePosition(center, Player2, Player1)
	edgeScore := evaluatePosition(edge, Player2, Player1)
	if centerScore <= edgeScore {
		t.Errorf("center piece scored %d, edge piece %d; want center higher", centerScore, edgeScore)
	}
}
