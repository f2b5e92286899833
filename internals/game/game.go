package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tylervu12/connect4/internals/engine"
)

var (
	ErrGameOver    = errors.New("game is already over")
	ErrNotYourTurn = errors.New("not your turn")
)

// Game tracks one match between two players (either of whom may be a
// bot). It owns the authoritative board; the engine only ever sees
// copies. All mutating calls must hold Mutex when the game is shared
// across goroutines.
type Game struct {
	ID        string
	Board     *engine.Board
	Player1   string
	Player2   string
	Turn      int // whose move: engine.Player1 or engine.Player2
	Over      bool
	Winner    int // 0 while running or on a draw
	Moves     []string
	Mutex     sync.Mutex
	StartTime time.Time
}

func NewGame(id, p1, p2 string) *Game {
	return &Game{
		ID:        id,
		Board:     engine.NewBoard(),
		Player1:   p1,
		Player2:   p2,
		Turn:      engine.Player1,
		Moves:     make([]string, 0),
		StartTime: time.Now(),
	}
}

// PlaceDisc drops a disc for player in col, records the move, runs
// win/draw detection and switches the turn. The board is unchanged on
// any error.
func (g *Game) PlaceDisc(player, col int) (int, error) {
	if g.Over {
		return -1, ErrGameOver
	}
	if player != g.Turn {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(col, player)
	if err != nil {
		return -1, err
	}
	g.Moves = append(g.Moves, fmt.Sprintf("%d:%d", col, player))

	if g.Board.CheckWin(player) {
		g.Over = true
		g.Winner = player
		return row, nil
	}
	if g.Board.IsFull() {
		g.Over = true
		return row, nil
	}

	g.Turn = engine.Player1 + engine.Player2 - g.Turn
	return row, nil
}

// CheckDraw reports whether the board filled up with no winner.
func (g *Game) CheckDraw() bool {
	return g.Board.IsFull() && g.Winner == 0
}

// WinnerName returns the winning player's name, or "" if nobody has
// won.
func (g *Game) WinnerName() string {
	switch g.Winner {
	case engine.Player1:
		return g.Player1
	case engine.Player2:
		return g.Player2
	}
	return ""
}

// Reset clears the board and restarts the game with the same players.
func (g *Game) Reset() {
	g.Board = engine.NewBoard()
	g.Turn = engine.Player1
	g.Over = false
	g.Winner = 0
	g.Moves = g.Moves[:0]
	g.StartTime = time.Now()
}
