package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tylervu12/connect4/internals/engine"
	"github.com/tylervu12/connect4/internals/game"
)

func main() {
	difficulty := flag.Int("difficulty", 4, "how many moves the bot looks ahead")
	flag.Parse()

	in := bufio.NewScanner(os.Stdin)
	g := game.NewGame("local", "You", "Bot")
	bot := engine.NewBot(engine.Player2, *difficulty)

	clearScreen()
	fmt.Println("Welcome to Connect 4!")
	fmt.Println("You are X, the bot is O.")
	fmt.Println("Enter a column number (0-6) to make your move.")
	fmt.Println("\nPress Enter to start...")
	in.Scan()

	for {
		playGame(in, g, bot)

		fmt.Print("Play again? (y/n): ")
		if !in.Scan() || strings.ToLower(strings.TrimSpace(in.Text())) != "y" {
			fmt.Println("Thanks for playing!")
			return
		}
		g.Reset()
	}
}

func playGame(in *bufio.Scanner, g *game.Game, bot *engine.Bot) {
	for !g.Over {
		clearScreen()
		fmt.Print(g.Board)

		if g.Turn == engine.Player1 {
			col, quit := readMove(in, g)
			if quit {
				fmt.Println("Thanks for playing!")
				os.Exit(0)
			}
			if _, err := g.PlaceDisc(engine.Player1, col); err != nil {
				fmt.Println("Invalid move:", err)
			}
		} else {
			fmt.Println("Bot is thinking...")
			time.Sleep(time.Second)
			col, err := bot.ChooseMove(g.Board)
			if err != nil {
				break
			}
			g.PlaceDisc(engine.Player2, col)
			fmt.Printf("Bot placed in column %d\n", col)
		}
	}

	clearScreen()
	fmt.Print(g.Board)
	switch g.Winner {
	case engine.Player1:
		fmt.Println("Congratulations! You won!")
	case engine.Player2:
		fmt.Println("The bot won this time. Better luck next time!")
	default:
		fmt.Println("It's a draw!")
	}
}

// readMove prompts until the player enters a playable column or quits.
func readMove(in *bufio.Scanner, g *game.Game) (col int, quit bool) {
	for {
		fmt.Print("Your turn! Enter column (0-6) or 'q' to quit: ")
		if !in.Scan() {
			return 0, true
		}
		input := strings.TrimSpace(in.Text())
		if strings.EqualFold(input, "q") {
			return 0, true
		}
		col, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("Please enter a number between 0 and 6.")
			continue
		}
		if !g.Board.IsValidMove(col) {
			fmt.Printf("Invalid move. Please choose from %v\n", g.Board.ValidMoves())
			continue
		}
		return col, false
	}
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
