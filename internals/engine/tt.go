package engine

// ttBound classifies a cached score per alpha-beta convention.
type ttBound uint8

const (
	ttExact ttBound = iota
	ttLower         // score failed high: a lower bound on the true value
	ttUpper         // score failed low: an upper bound on the true value
)

type ttEntry struct {
	depth int
	score int
	bound ttBound
}

// transpositionTable memoizes positions scored during one ChooseMove
// call. It is reset at the start of every decision, so entries never
// leak across moves or search-depth changes.
type transpositionTable struct {
	entries map[boardKey]ttEntry
}

func newTranspositionTable() *transpositionTable {
	return &transpositionTable{entries: make(map[boardKey]ttEntry)}
}

func (tt *transpositionTable) reset() {
	tt.entries = make(map[boardKey]ttEntry)
}

func (tt *transpositionTable) probe(key boardKey) (ttEntry, bool) {
	entry, ok := tt.entries[key]
	return entry, ok
}

// store records a search result, classifying the bound against the
// alpha/beta the node was entered with: failed-low scores are upper
// bounds, failed-high scores are lower bounds. Prior entries for the
// same position are overwritten unconditionally.
func (tt *transpositionTable) store(key boardKey, depth, score, alpha, beta int) {
	bound := ttExact
	if score <= alpha {
		bound = ttUpper
	} else if score >= beta {
		bound = ttLower
	}
	tt.entries[key] = ttEntry{depth: depth, score: score, bound: bound}
}

func (tt *transpositionTable) len() int {
	return len(tt.entries)
}
