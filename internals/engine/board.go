package engine

import (
	"errors"
	"strings"
)

// Standard board dimensions. The evaluator's weight table and window
// catalog are specialized to this size.
const (
	BoardRows = 6
	BoardCols = 7
)

// Cell values.
const (
	Empty   = 0
	Player1 = 1
	Player2 = 2
)

var (
	ErrInvalidColumn = errors.New("column out of range")
	ErrColumnFull    = errors.New("column is full")
	ErrNoLegalMoves  = errors.New("no legal moves")
)

// Board is a 6x7 Connect Four grid. Row 0 is the top; columns fill
// bottom-up. The backing array gives Copy value semantics and makes
// the grid directly usable as a map key for the transposition table.
type Board struct {
	cells [BoardRows][BoardCols]int
}

// boardKey is the canonical fingerprint of a position.
type boardKey = [BoardRows][BoardCols]int

func NewBoard() *Board {
	return &Board{}
}

// Drop places a piece for player in the lowest empty row of col and
// returns that row. The board is unchanged on error.
func (b *Board) Drop(col, player int) (int, error) {
	if col < 0 || col >= BoardCols {
		return -1, ErrInvalidColumn
	}
	for row := BoardRows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = player
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// IsValidMove reports whether col is in range with an empty top cell.
func (b *Board) IsValidMove(col int) bool {
	return col >= 0 && col < BoardCols && b.cells[0][col] == Empty
}

// ValidMoves returns the playable columns in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, BoardCols)
	for col := 0; col < BoardCols; col++ {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// CheckWin reports whether player has four in a row in any direction.
func (b *Board) CheckWin(player int) bool {
	// Horizontal
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols-3; col++ {
			if b.cells[row][col] == player && b.cells[row][col+1] == player &&
				b.cells[row][col+2] == player && b.cells[row][col+3] == player {
				return true
			}
		}
	}
	// Vertical
	for row := 0; row < BoardRows-3; row++ {
		for col := 0; col < BoardCols; col++ {
			if b.cells[row][col] == player && b.cells[row+1][col] == player &&
				b.cells[row+2][col] == player && b.cells[row+3][col] == player {
				return true
			}
		}
	}
	// Diagonal down-right
	for row := 0; row < BoardRows-3; row++ {
		for col := 0; col < BoardCols-3; col++ {
			if b.cells[row][col] == player && b.cells[row+1][col+1] == player &&
				b.cells[row+2][col+2] == player && b.cells[row+3][col+3] == player {
				return true
			}
		}
	}
	// Diagonal up-right
	for row := 3; row < BoardRows; row++ {
		for col := 0; col < BoardCols-3; col++ {
			if b.cells[row][col] == player && b.cells[row-1][col+1] == player &&
				b.cells[row-2][col+2] == player && b.cells[row-3][col+3] == player {
				return true
			}
		}
	}
	return false
}

// IsFull reports whether every column's top cell is occupied.
func (b *Board) IsFull() bool {
	for col := 0; col < BoardCols; col++ {
		if b.cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// Copy returns an independent duplicate of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Cell returns the value at (row, col); out-of-range reads as Empty.
func (b *Board) Cell(row, col int) int {
	if row < 0 || row >= BoardRows || col < 0 || col >= BoardCols {
		return Empty
	}
	return b.cells[row][col]
}

// Cells returns a row-major copy of the grid for serialization.
func (b *Board) Cells() [][]int {
	out := make([][]int, BoardRows)
	for row := range b.cells {
		out[row] = make([]int, BoardCols)
		copy(out[row], b.cells[row][:])
	}
	return out
}

func (b *Board) key() boardKey {
	return b.cells
}

// String renders the board for terminal display.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6\n")
	for row := 0; row < BoardRows; row++ {
		sb.WriteString("| ")
		for col := 0; col < BoardCols; col++ {
			switch b.cells[row][col] {
			case Player1:
				sb.WriteString("X ")
			case Player2:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+---------------+\n")
	return sb.String()
}
