package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"truco-server/internal/util"
	"truco-server/pkg/deck"
	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
	"truco-server/pkg/playable/truco/bot"
)

const (
	humanID int64 = 1
	botID   int64 = 2
)

var (
	name   = flag.String("name", "Você", "your name")
	botArg = flag.String("bot", "machine", "the opponent (machine, passive)")
	points = flag.Int("points", 12, "points needed to win the match")
	seed   = flag.Int64("seed", 0, "shuffle seed, random when 0")
)

const help = `commands:
  p N    play card N face up
  d N    play card N face down
  r      raise the hand value
  a      accept the raise
  q      quit the hand
  y / n  accept or decline the hand of eleven
  h      show this help
`

func main() {
	flag.Parse()
	logrus.SetLevel(logrus.WarnLevel)

	dm, ok := bot.New(*botArg)
	if !ok {
		logrus.Fatalf("unknown bot: %s", *botArg)
	}

	players := []*truco.Player{
		truco.NewPlayer(humanID, *name),
		truco.NewPlayer(botID, util.GetRandomName()),
	}

	opts := truco.DefaultOptions()
	opts.MatchPoints = *points
	opts.Seed = *seed
	opts.BotDelay = 0

	game, err := truco.NewGame("console", players, opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not create match")
	}

	if err := game.SetDecisionMaker(botID, dm); err != nil {
		logrus.WithError(err).Fatal("could not seat the bot")
	}

	names := map[int64]string{humanID: players[0].Name, botID: players[1].Name}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	fmt.Print(help)
	for {
		if err := game.Advance(ctx); err != nil {
			logrus.WithError(err).Fatal("bot failed")
		}

		printLog(game, names)
		if winner, over := game.Winner(); over {
			fmt.Printf("\n%s wins the match\n", winner.Name)
			return
		}

		printState(game.State(humanID), names)

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return
		} else if err != nil {
			logrus.WithError(err).Fatal("could not read command")
		}

		if interactive {
			// clear the screen before drawing the next state
			fmt.Print("\033[H\033[2J")
		}

		if err := run(game, strings.Fields(line)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

func run(game *truco.Game, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "p", "d":
		card, err := cardArg(game, args)
		if err != nil {
			return err
		}

		return game.Play(humanID, truco.CardSelection{Card: card, Discard: args[0] == "d"})
	case "r":
		return game.Raise(humanID)
	case "a":
		return game.Accept(humanID)
	case "q":
		return game.Quit(humanID)
	case "y", "n":
		return game.RespondMaoDeOnze(humanID, args[0] == "y")
	case "h":
		fmt.Print(help)
		return nil
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

func cardArg(game *truco.Game, args []string) (deck.Card, error) {
	if len(args) != 2 {
		return deck.Card{}, errors.New("which card? try p 1")
	}

	cards := game.State(humanID).Intel.Cards
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(cards) {
		return deck.Card{}, fmt.Errorf("pick a card between 1 and %d", len(cards))
	}

	return cards[n-1], nil
}

func printLog(game *truco.Game, names map[int64]string) {
	for {
		select {
		case msgs := <-game.LogChan():
			for _, msg := range msgs {
				fmt.Println(formatLogMessage(msg, names))
			}
		default:
			return
		}
	}
}

func formatLogMessage(msg *playable.LogMessage, names map[int64]string) string {
	text := msg.Message
	for _, id := range msg.PlayerIDs {
		text = strings.Replace(text, "{}", names[id], 1)
	}

	return text
}

func printState(state *truco.GameState, names map[int64]string) {
	intel := state.Intel

	fmt.Printf("\nhand %d  |  %s %d x %d %s  |  worth %d",
		state.HandNumber, names[humanID], intel.Score, intel.OpponentScore, names[botID], intel.HandValue)
	if intel.PendingValue > 0 {
		fmt.Printf(" (%s called)", truco.LadderName(intel.PendingValue))
	}
	fmt.Println()

	fmt.Printf("vira: %s  manilha: %s\n", intel.Vira, intel.Manilha)

	for i, outcome := range intel.Rounds {
		switch winner, won := outcome.Won(); {
		case !won:
			fmt.Printf("round %d: draw\n", i+1)
		default:
			fmt.Printf("round %d: %s\n", i+1, names[winner])
		}
	}

	if table := faceUpCards(intel); table != "" {
		fmt.Printf("played face up: %s\n", table)
	}

	switch intel.OpponentCard.State() {
	case truco.Known:
		card, _ := intel.OpponentCard.Card()
		fmt.Printf("%s played %s\n", names[botID], card)
	case truco.Hidden:
		fmt.Printf("%s played a card face down\n", names[botID])
	}

	parts := make([]string, len(intel.Cards))
	for i, card := range intel.Cards {
		parts[i] = fmt.Sprintf("%d) %s", i+1, card)
	}
	fmt.Printf("your cards: %s\n", strings.Join(parts, "  "))

	if intel.MaoDeOnze {
		fmt.Println("hand of eleven")
	}

	actions := make([]string, len(intel.PossibleActions))
	for i, action := range intel.PossibleActions {
		actions[i] = string(action)
	}
	fmt.Printf("you can: %s\n", strings.Join(actions, ", "))
}

// faceUpCards lists the cards played face up this hand. The vira leads OpenCards and is printed on its own.
func faceUpCards(intel *truco.Intel) string {
	if len(intel.OpenCards) < 2 {
		return ""
	}

	table := make([]string, 0, len(intel.OpenCards)-1)
	for _, card := range intel.OpenCards[1:] {
		table = append(table, card.String())
	}

	return strings.Join(table, " ")
}
