package matchmaking

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
)

var (
	db        *sql.DB
	rankMutex sync.Mutex
)

// SaveGame records a finished game; winner is a username or "draw".
func SaveGame(player1, player2, winner string, moves []string) {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	movesStr := strings.Join(moves, ",")
	_, err := db.Exec(`
		INSERT INTO games (player1, player2, winner, moves)
		VALUES (?, ?, ?, ?)
	`, player1, player2, winner, movesStr)
	if err != nil {
		log.Printf("Error saving game: %v", err)
	}
}

// AddWin increments a player's ranking score.
func AddWin(username string) {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	_, err := db.Exec(`
		INSERT INTO rankings (username, score)
		VALUES (?, 1)
		ON CONFLICT(username) DO UPDATE SET score = score + 1
	`, username)
	if err != nil {
		log.Printf("Error updating score for %s: %v", username, err)
	}
}

type RankingEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// GetRanking returns players ordered by score, then name.
func GetRanking() []RankingEntry {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	rows, err := db.Query(`SELECT username, score FROM rankings`)
	if err != nil {
		log.Printf("Error fetching rankings: %v", err)
		return nil
	}
	defer rows.Close()

	var ranking []RankingEntry
	for rows.Next() {
		var e RankingEntry
		if err := rows.Scan(&e.Username, &e.Score); err != nil {
			log.Println("Error scanning row:", err)
			continue
		}
		ranking = append(ranking, e)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score == ranking[j].Score {
			return ranking[i].Username < ranking[j].Username
		}
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

func HandleRanking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetRanking())
}
