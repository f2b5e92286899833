package engine

import "testing"

func mustDrop(t *testing.T, b *Board, col, player int) int {
	t.Helper()
	row, err := b.Drop(col, player)
	if err != nil {
		t.Fatalf("Drop(%d, %d) failed: %v", col, player, err)
	}
	return row
}

// boardFrom builds a board from six strings of "X" (Player1),
// "O" (Player2) and "." cells, top row first.
func boardFrom(t *testing.T, rows [BoardRows]string) *Board {
	t.Helper()
	b := NewBoard()
	for r, line := range rows {
		if len(line) != BoardCols {
			t.Fatalf("row %d has %d cells, want %d", r, len(line), BoardCols)
		}
		for c := 0; c < BoardCols; c++ {
			switch line[c] {
			case 'X':
				b.cells[r][c] = Player1
			case 'O':
				b.cells[r][c] = Player2
			case '.':
			default:
				t.Fatalf("bad cell %q at (%d,%d)", line[c], r, c)
			}
		}
	}
	return b
}

func TestDropFillsBottomUp(t *testing.T) {
	b := NewBoard()
	for want := BoardRows - 1; want >= 0; want-- {
		row := mustDrop(t, b, 2, Player1)
		if row != want {
			t.Errorf("drop landed at row %d, want %d", row, want)
		}
	}
}

func TestDropInvalidColumn(t *testing.T) {
	b := NewBoard()
	for _, col := range []int{-1, BoardCols, 42} {
		if _, err := b.Drop(col, Player1); err != ErrInvalidColumn {
			t.Errorf("Drop(%d) err = %v, want ErrInvalidColumn", col, err)
		}
	}
	if *b != (Board{}) {
		t.Error("board mutated by rejected drop")
	}
}

func TestDropColumnFull(t *testing.T) {
	b := NewBoard()
	for i := 0; i < BoardRows; i++ {
		mustDrop(t, b, 0, Player1)
	}
	before := *b
	if _, err := b.Drop(0, Player2); err != ErrColumnFull {
		t.Fatalf("err = %v, want ErrColumnFull", err)
	}
	if *b != before {
		t.Error("board mutated by rejected drop")
	}
}

func TestGravityInvariant(t *testing.T) {
	b := NewBoard()
	seq := []int{3, 3, 2, 6, 3, 0, 0, 6, 1, 3, 5, 2, 2, 4}
	player := Player1
	for _, col := range seq {
		mustDrop(t, b, col, player)
		player = Player1 + Player2 - player
		for c := 0; c < BoardCols; c++ {
			for r := 0; r < BoardRows-1; r++ {
				if b.cells[r][c] != Empty && b.cells[r+1][c] == Empty {
					t.Fatalf("floating piece at (%d,%d)", r, c)
				}
			}
		}
	}
}

func TestValidMoves(t *testing.T) {
	b := NewBoard()
	got := b.ValidMoves()
	if len(got) != BoardCols {
		t.Fatalf("empty board has %d valid moves, want %d", len(got), BoardCols)
	}
	for i, col := range got {
		if col != i {
			t.Fatalf("moves not ascending: %v", got)
		}
	}

	for i := 0; i < BoardRows; i++ {
		mustDrop(t, b, 4, Player2)
	}
	if b.IsValidMove(4) {
		t.Error("full column reported valid")
	}
	got = b.ValidMoves()
	want := []int{0, 1, 2, 3, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("ValidMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ValidMoves = %v, want %v", got, want)
		}
	}
}

func TestCheckWin(t *testing.T) {
	tests := []struct {
		name   string
		rows   [BoardRows]string
		player int
	}{
		{
			name: "horizontal",
			rows: [BoardRows]string{
				".......",
				".......",
				".......",
				".......",
				".......",
				".XXXX..",
			},
			player: Player1,
		},
		{
			name: "vertical",
			rows: [BoardRows]string{
				".......",
				".......",
				"..O....",
				"..O....",
				"..O....",
				"..O....",
			},
			player: Player2,
		},
		{
			name: "diagonal down-right",
			rows: [BoardRows]string{
				".......",
				".......",
				"X......",
				"OX.....",
				"OOX....",
				"OOOX...",
			},
			player: Player1,
		},
		{
			name: "diagonal up-right",
			rows: [BoardRows]string{
				".......",
				".......",
				"....O..",
				"...OX..",
				"..OXX..",
				".OXXX..",
			},
			player: Player2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(t, tc.rows)
			if !b.CheckWin(tc.player) {
				t.Errorf("CheckWin(%d) = false, want true", tc.player)
			}
			other := Player1 + Player2 - tc.player
			if b.CheckWin(other) {
				t.Errorf("CheckWin(%d) = true, want false", other)
			}
		})
	}
}

func TestCheckWinEmptyBoard(t *testing.T) {
	b := NewBoard()
	if b.CheckWin(Player1) || b.CheckWin(Player2) {
		t.Error("empty board reports a win")
	}
}

func TestIsFull(t *testing.T) {
	b := NewBoard()
	if b.IsFull() {
		t.Fatal("empty board reported full")
	}
	player := Player1
	for col := 0; col < BoardCols; col++ {
		for i := 0; i < BoardRows; i++ {
			mustDrop(t, b, col, player)
			player = Player1 + Player2 - player
		}
	}
	if !b.IsFull() {
		t.Error("filled board not reported full")
	}
}

func TestCopyIndependence(t *testing.T) {
	b := NewBoard()
	mustDrop(t, b, 3, Player1)
	c := b.Copy()
	mustDrop(t, c, 3, Player2)

	if b.Cell(4, 3) != Empty {
		t.Error("mutating the copy changed the original")
	}
	if c.Cell(4, 3) != Player2 {
		t.Error("copy missing its own move")
	}
}

func TestCellsReturnsSnapshot(t *testing.T) {
	b := NewBoard()
	mustDrop(t, b, 0, Player1)
	cells := b.Cells()
	cells[5][0] = Player2
	if b.Cell(5, 0) != Player1 {
		t.Error("Cells() aliases the board's storage")
	}
}
