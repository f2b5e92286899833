package engine

// positionWeights favors the center column and lower rows (row 0 is
// the top of the board).
var positionWeights = [BoardRows][BoardCols]int{
	{3, 4, 5, 7, 5, 4, 3},
	{4, 6, 8, 10, 8, 6, 4},
	{5, 7, 9, 11, 9, 7, 5},
	{5, 7, 9, 11, 9, 7, 5},
	{6, 8, 10, 12, 10, 8, 6},
	{7, 9, 12, 15, 12, 9, 7},
}

// Window classification scores.
const (
	scoreFour        = 100
	scoreThree       = 10
	scoreTwo         = 3
	scoreOppThree    = -50
	scoreOppTwo      = -5
	centerPieceBonus = 3
)

// evaluatePosition scores the board from player's perspective; higher
// is better for player. Pure: same inputs always yield the same score.
func evaluatePosition(b *Board, player, opponent int) int {
	score := 0

	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			switch b.cells[row][col] {
			case player:
				score += positionWeights[row][col]
			case opponent:
				score -= positionWeights[row][col]
			}
		}
	}

	for _, w := range catalog.horizontal {
		score += evaluateWindow(b, w, player, opponent)
	}
	for _, w := range catalog.vertical {
		score += evaluateWindow(b, w, player, opponent)
	}
	for _, w := range catalog.diagDown {
		score += evaluateWindow(b, w, player, opponent)
	}
	for _, w := range catalog.diagUp {
		score += evaluateWindow(b, w, player, opponent)
	}

	centerCol := BoardCols / 2
	for row := 0; row < BoardRows; row++ {
		if b.cells[row][centerCol] == player {
			score += centerPieceBonus
		}
	}

	return score
}

// evaluateWindow classifies one 4-cell window by occupancy counts.
// Mixed windows (both players present) score zero.
func evaluateWindow(b *Board, w window, player, opponent int) int {
	var mine, theirs, empty int
	for _, cell := range w {
		switch b.cells[cell[0]][cell[1]] {
		case player:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 4:
		return scoreFour
	case mine == 3 && empty == 1:
		return scoreThree
	case mine == 2 && empty == 2:
		return scoreTwo
	case theirs == 3 && empty == 1:
		return scoreOppThree
	case theirs == 2 && empty == 2:
		return scoreOppTwo
	}
	return 0
}
