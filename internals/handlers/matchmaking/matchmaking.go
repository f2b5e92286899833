package matchmaking

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"

	"github.com/tylervu12/connect4/internals/config"
	"github.com/tylervu12/connect4/internals/engine"
	"github.com/tylervu12/connect4/internals/event"
	"github.com/tylervu12/connect4/internals/game"
)

type Player struct {
	Username string
	Conn     *websocket.Conn // nil for the bot
	ID       int             // engine.Player1 or engine.Player2
}

// Move is the websocket message for a single play.
type Move struct {
	Type   string `json:"type"`
	Col    int    `json:"col"`
	Player int    `json:"player"`
}

// CachedGame parks a game whose player dropped off, waiting for a
// reconnect or a forfeit timeout.
type CachedGame struct {
	Game        *game.Game
	Player1     *Player
	Player2     *Player
	Timestamp   time.Time
	CancelTimer context.CancelFunc
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var (
	playerQueue       = make(chan *Player, 1)
	activeGames       = make(map[string]*game.Game)
	gamesMu           sync.Mutex
	disconnectedGames *lru.Cache
	producer          *event.Producer

	botDifficulty    = 4
	queueTimeout     = 10 * time.Second
	reconnectTimeout = 30 * time.Second
)

// Setup wires the package to its database, optional Kafka producer
// and game settings, and starts the matchmaker goroutine. Call once
// at server startup.
func Setup(database *sql.DB, p *event.Producer, cfg *config.Config) {
	db = database
	producer = p
	botDifficulty = cfg.Game.BotDifficulty
	queueTimeout = time.Duration(cfg.Game.MatchmakingTimeoutSeconds) * time.Second
	reconnectTimeout = time.Duration(cfg.Game.ReconnectTimeoutSeconds) * time.Second

	var err error
	disconnectedGames, err = lru.New(100)
	if err != nil {
		log.Fatalf("Could not initialize LRU cache: %v", err)
	}
	go Matchmaker()
}

// Matchmaker pairs queued players, falling back to a bot game when no
// opponent shows up within the queue timeout.
func Matchmaker() {
	log.Println("Matchmaker started...")
	for {
		p1 := <-playerQueue
		log.Printf("Player %s is in the queue, waiting for an opponent or timeout.", p1.Username)

		select {
		case p2 := <-playerQueue:
			log.Printf("Match found: %s vs %s", p1.Username, p2.Username)
			go startGame(p1, p2)
		case <-time.After(queueTimeout):
			log.Printf("No opponent found for %s, starting a bot game.", p1.Username)
			go startGame(p1, &Player{Username: "Bot"})
		}
	}
}

// HandleGame is the websocket entrypoint: reconnect a parked game if
// one exists for this username, otherwise join the queue.
func HandleGame(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Username required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	if val, ok := disconnectedGames.Get(username); ok {
		resumeGame(username, conn, val.(*CachedGame))
		return
	}

	player := &Player{Username: username, Conn: conn}
	log.Printf("Player %s connected and is being added to the queue.", username)
	playerQueue <- player
}

func resumeGame(username string, conn *websocket.Conn, cached *CachedGame) {
	log.Printf("Player %s is reconnecting to game %s", username, cached.Game.ID)
	if cached.CancelTimer != nil {
		cached.CancelTimer()
	}

	reconnecting, other := cached.Player1, cached.Player2
	if other.Username == username {
		reconnecting, other = other, reconnecting
	}
	reconnecting.Conn = conn

	disconnectedGames.Remove(cached.Player1.Username)
	disconnectedGames.Remove(cached.Player2.Username)
	gamesMu.Lock()
	activeGames[cached.Game.ID] = cached.Game
	gamesMu.Unlock()

	sendJSON(reconnecting, gameStartMsg(cached.Game, reconnecting))
	if other.Conn != nil {
		msg := gameStartMsg(cached.Game, other)
		msg["type"] = "OPPONENT_RECONNECTED"
		sendJSON(other, msg)
	}

	go runGame(cached.Game, cached.Player1, cached.Player2)
}

func startGame(p1, p2 *Player) {
	g := game.NewGame(uuid.NewString(), p1.Username, p2.Username)

	gamesMu.Lock()
	activeGames[g.ID] = g
	gamesMu.Unlock()

	p1.ID, p2.ID = engine.Player1, engine.Player2

	sendJSON(p1, gameStartMsg(g, p1))
	sendJSON(p2, gameStartMsg(g, p2))

	go runGame(g, p1, p2)
}

func gameStartMsg(g *game.Game, p *Player) map[string]interface{} {
	return map[string]interface{}{
		"type":            "GAME_START",
		"game_id":         g.ID,
		"board":           g.Board.Cells(),
		"player_number":   p.ID,
		"player1_name":    g.Player1,
		"player2_name":    g.Player2,
		"starting_player": g.Turn,
	}
}

func sendJSON(p *Player, v interface{}) {
	if p != nil && p.Conn != nil {
		p.Conn.WriteJSON(v)
	}
}

// runGame pumps moves from both sides through the game until it ends
// or a player disconnects.
func runGame(g *game.Game, p1, p2 *Player) {
	moves := make(chan Move, 1)
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	// Elapsed-time updates for both clients.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				g.Mutex.Lock()
				over := g.Over
				elapsed := time.Since(g.StartTime)
				g.Mutex.Unlock()
				if over {
					return
				}
				msg := map[string]interface{}{
					"type":    "TIMER_UPDATE",
					"elapsed": int(elapsed.Seconds()),
				}
				sendJSON(p1, msg)
				sendJSON(p2, msg)
			}
		}
	}()

	reader := func(self, other *Player) {
		for {
			var move Move
			if err := self.Conn.ReadJSON(&move); err != nil {
				select {
				case <-done:
				default:
					log.Printf("Player %s disconnected: %v", self.Username, err)
					stop()
					handleDisconnection(g, self, other)
				}
				return
			}
			select {
			case moves <- move:
			case <-done:
				return
			}
		}
	}

	go reader(p1, p2)
	if p2.Conn != nil {
		go reader(p2, p1)
	} else {
		go botMoves(g, done, moves)
	}

	for {
		var move Move
		select {
		case <-done:
			return
		case move = <-moves:
		}

		g.Mutex.Lock()
		if move.Player != g.Turn {
			g.Mutex.Unlock()
			continue
		}

		row, err := g.PlaceDisc(move.Player, move.Col)
		if err != nil {
			log.Printf("Invalid move by player %d: %v", move.Player, err)
			g.Mutex.Unlock()
			continue
		}

		response := map[string]interface{}{
			"type":      "MOVE",
			"col":       move.Col,
			"row":       row,
			"player":    move.Player,
			"next_turn": g.Turn,
		}
		over := g.Over
		winnerName := g.WinnerName()
		g.Mutex.Unlock()

		sendJSON(p1, response)
		sendJSON(p2, response)

		if over {
			finishGame(g, p1, p2, winnerName)
			stop()
			return
		}
	}
}

// botMoves drives the engine side of a bot game.
func botMoves(g *game.Game, done chan struct{}, moves chan<- Move) {
	bot := engine.NewBot(engine.Player2, botDifficulty)
	for {
		select {
		case <-done:
			return
		default:
		}

		g.Mutex.Lock()
		over := g.Over
		var board *engine.Board
		if !over && g.Turn == bot.Player {
			board = g.Board.Copy()
		}
		g.Mutex.Unlock()
		if over {
			return
		}

		if board != nil {
			time.Sleep(time.Second) // feel less instant
			col, err := bot.ChooseMove(board)
			if err != nil {
				return
			}
			select {
			case moves <- Move{Type: "MOVE", Col: col, Player: bot.Player}:
			case <-done:
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func finishGame(g *game.Game, p1, p2 *Player, winnerName string) {
	var msg map[string]interface{}
	if winnerName != "" {
		AddWin(winnerName)
		msg = map[string]interface{}{
			"type":    "GAME_OVER",
			"message": winnerName + " wins!",
		}
		log.Printf("Game %s ended. Winner: %s", g.ID, winnerName)
	} else {
		winnerName = "draw"
		msg = map[string]interface{}{
			"type":    "GAME_OVER",
			"message": "It's a draw!",
		}
		log.Printf("Game %s ended in a draw.", g.ID)
	}

	SaveGame(g.Player1, g.Player2, winnerName, g.Moves)
	if producer != nil {
		producer.EmitGameOver(g.ID, winnerName, time.Since(g.StartTime))
	}

	sendJSON(p1, msg)
	sendJSON(p2, msg)

	gamesMu.Lock()
	delete(activeGames, g.ID)
	gamesMu.Unlock()
}

// handleDisconnection parks the game for a reconnect window; if the
// window expires the remaining player wins by forfeit.
func handleDisconnection(g *game.Game, disconnected, other *Player) {
	g.Mutex.Lock()
	over := g.Over
	g.Mutex.Unlock()
	if over {
		return
	}
	disconnected.Conn = nil

	gamesMu.Lock()
	delete(activeGames, g.ID)
	gamesMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cached := &CachedGame{
		Game:        g,
		Player1:     disconnected,
		Player2:     other,
		Timestamp:   time.Now(),
		CancelTimer: cancel,
	}
	disconnectedGames.Add(disconnected.Username, cached)
	disconnectedGames.Add(other.Username, cached)
	log.Printf("Game %s moved to cache after %s disconnected; forfeit in %v.",
		g.ID, disconnected.Username, reconnectTimeout)

	sendJSON(other, map[string]string{
		"type":    "OPPONENT_DISCONNECTED",
		"message": "Your opponent has disconnected. Waiting for them to reconnect...",
	})

	go func() {
		timer := time.NewTimer(reconnectTimeout)
		defer timer.Stop()

		select {
		case <-timer.C:
			if _, stillParked := disconnectedGames.Get(disconnected.Username); !stillParked {
				return
			}
			disconnectedGames.Remove(disconnected.Username)
			disconnectedGames.Remove(other.Username)

			g.Mutex.Lock()
			g.Over = true
			g.Mutex.Unlock()

			AddWin(other.Username)
			SaveGame(g.Player1, g.Player2, other.Username, g.Moves)
			if producer != nil {
				producer.EmitGameOver(g.ID, other.Username, time.Since(g.StartTime))
			}
			sendJSON(other, map[string]interface{}{
				"type":    "GAME_OVER",
				"message": fmt.Sprintf("%s forfeited. You win!", disconnected.Username),
				"reason":  "opponent_timeout",
			})
			log.Printf("Game %s forfeited by %s.", g.ID, disconnected.Username)
		case <-ctx.Done():
			log.Printf("Player %s reconnected to game %s in time.", disconnected.Username, g.ID)
		}
	}()
}
