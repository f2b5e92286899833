package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/cors"

	"github.com/tylervu12/connect4/internals/config"
	"github.com/tylervu12/connect4/internals/event"
	"github.com/tylervu12/connect4/internals/handlers/matchmaking"
	"github.com/tylervu12/connect4/internals/handlers/users"
)

func main() {
	cfg := config.MustLoad()

	db, err := sql.Open("sqlite3", cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var producer *event.Producer
	if cfg.Kafka.Enabled {
		producer, err = event.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatalf("Failed to connect to Kafka: %v", err)
		}
		defer producer.Close()
		log.Println("Kafka producer connected")
	}

	matchmaking.Setup(db, producer, cfg)

	router := http.NewServeMux()
	router.HandleFunc("/api/signup", users.SignupHandler(db))
	router.HandleFunc("/api/login", users.LoginHandler(db))
	router.HandleFunc("/ws/game", matchmaking.HandleGame)
	router.HandleFunc("/api/rankings", matchmaking.HandleRanking)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS", "PATCH", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: c.Handler(router),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server started on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to gracefully shutdown server: %v", err)
	}
	log.Println("Server stopped")
}

func migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rankings (
			username TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner TEXT,
			moves TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`INSERT INTO rankings (username, score)
		 SELECT username, 0 FROM users
		 WHERE username NOT IN (SELECT username FROM rankings);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
