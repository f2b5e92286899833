package engine

import "sort"

const infinity = 1 << 30

// Terminal scores; depth is folded in so the search prefers faster
// wins and slower losses.
const winScore = 1000

// Bot chooses moves with depth-limited minimax, alpha-beta pruning,
// one-ply move ordering and a per-decision transposition table. A Bot
// is not safe for concurrent use; each ChooseMove call is a single
// blocking computation over private board copies.
type Bot struct {
	Player   int
	Opponent int

	searchDepth int
	tt          *transpositionTable
}

// NewBot returns a bot playing as player. difficulty is the number of
// moves to look ahead; the effective search depth is difficulty + 2.
func NewBot(player, difficulty int) *Bot {
	opponent := Player1
	if player == Player1 {
		opponent = Player2
	}
	return &Bot{
		Player:      player,
		Opponent:    opponent,
		searchDepth: difficulty + 2,
		tt:          newTranspositionTable(),
	}
}

// ChooseMove returns the column the bot plays on b, or -1 and
// ErrNoLegalMoves if the board is full. The caller's board is never
// mutated; all lookahead runs on copies.
func (bot *Bot) ChooseMove(b *Board) (int, error) {
	if bot.tt != nil {
		bot.tt.reset()
	}

	validMoves := b.ValidMoves()
	if len(validMoves) == 0 {
		return -1, ErrNoLegalMoves
	}

	// Immediate win: take it before searching.
	for _, col := range validMoves {
		next := b.Copy()
		if _, err := next.Drop(col, bot.Player); err == nil && next.CheckWin(bot.Player) {
			return col, nil
		}
	}

	// Immediate block: deny the opponent's win.
	for _, col := range validMoves {
		next := b.Copy()
		if _, err := next.Drop(col, bot.Opponent); err == nil && next.CheckWin(bot.Opponent) {
			return col, nil
		}
	}

	ordered := bot.orderMoves(b, validMoves, bot.Player, true)

	bestScore := -infinity
	var bestMoves []int
	alpha, beta := -infinity, infinity

	for _, col := range ordered {
		next := b.Copy()
		if _, err := next.Drop(col, bot.Player); err != nil {
			continue
		}
		score := bot.minimax(next, bot.searchDepth-1, alpha, beta, false)

		if score > bestScore {
			bestScore = score
			bestMoves = []int{col}
		} else if score == bestScore {
			bestMoves = append(bestMoves, col)
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	if len(bestMoves) == 0 {
		return -1, ErrNoLegalMoves
	}

	// Prefer the most central of the tied best columns.
	if len(bestMoves) > 1 {
		center := BoardCols / 2
		sort.SliceStable(bestMoves, func(i, j int) bool {
			return abs(bestMoves[i]-center) < abs(bestMoves[j]-center)
		})
	}

	return bestMoves[0], nil
}

// minimax evaluates b with alpha-beta pruning. maximizing means the
// bot moves next from this position.
func (bot *Bot) minimax(b *Board, depth, alpha, beta int, maximizing bool) int {
	// Terminal checks before the depth cutoff: a decided position
	// scores the same at any remaining depth.
	if b.CheckWin(bot.Player) {
		return winScore + depth
	}
	if b.CheckWin(bot.Opponent) {
		return -winScore - depth
	}
	if b.IsFull() || depth == 0 {
		return evaluatePosition(b, bot.Player, bot.Opponent)
	}

	key := b.key()
	alphaOrig, betaOrig := alpha, beta

	if bot.tt != nil {
		if entry, ok := bot.tt.probe(key); ok && entry.depth >= depth {
			switch entry.bound {
			case ttExact:
				return entry.score
			case ttLower:
				if entry.score > alpha {
					alpha = entry.score
				}
			case ttUpper:
				if entry.score < beta {
					beta = entry.score
				}
			}
			if alpha >= beta {
				return entry.score
			}
		}
	}

	mover := bot.Player
	if !maximizing {
		mover = bot.Opponent
	}
	ordered := bot.orderMoves(b, b.ValidMoves(), mover, maximizing)

	var best int
	if maximizing {
		best = -infinity
		for _, col := range ordered {
			next := b.Copy()
			if _, err := next.Drop(col, bot.Player); err != nil {
				continue
			}
			score := bot.minimax(next, depth-1, alpha, beta, false)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		best = infinity
		for _, col := range ordered {
			next := b.Copy()
			if _, err := next.Drop(col, bot.Opponent); err != nil {
				continue
			}
			score := bot.minimax(next, depth-1, alpha, beta, true)
			if score < best {
				best = score
			}
			if score < beta {
				beta = score
			}
			if beta <= alpha {
				break
			}
		}
	}

	if bot.tt != nil {
		bot.tt.store(key, depth, best, alphaOrig, betaOrig)
	}

	return best
}

// orderMoves sorts moves by the one-ply evaluation of the position
// after mover plays each column: best-looking moves for the mover
// first, which tightens pruning. The sort is stable, so equal scores
// keep ascending column order.
func (bot *Bot) orderMoves(b *Board, moves []int, mover int, descending bool) []int {
	type scored struct {
		col   int
		score int
	}
	scoredMoves := make([]scored, 0, len(moves))
	for _, col := range moves {
		next := b.Copy()
		if _, err := next.Drop(col, mover); err != nil {
			continue
		}
		scoredMoves = append(scoredMoves, scored{
			col:   col,
			score: evaluatePosition(next, bot.Player, bot.Opponent),
		})
	}

	sort.SliceStable(scoredMoves, func(i, j int) bool {
		if descending {
			return scoredMoves[i].score > scoredMoves[j].score
		}
		return scoredMoves[i].score < scoredMoves[j].score
	})

	ordered := make([]int, len(scoredMoves))
	for i, m := range scoredMoves {
		ordered[i] = m.col
	}
	return ordered
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
