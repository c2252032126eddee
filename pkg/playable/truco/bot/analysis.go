package bot

import (
	"sort"

	"truco-server/pkg/deck"
	"truco-server/pkg/playable/truco"
)

// topManilha is the strength of the strongest manilha (diamonds)
const topManilha = 14

// strongCard is the lowest strength counted as a strong card (Two)
const strongCard = 10

type analysis struct {
	intel *truco.Intel
	vira  deck.Card
	cards []deck.Card // weakest first
}

func analyze(intel *truco.Intel) *analysis {
	cards := append([]deck.Card(nil), intel.Cards...)
	sort.SliceStable(cards, func(i, j int) bool {
		return truco.Strength(cards[i], intel.Vira) < truco.Strength(cards[j], intel.Vira)
	})

	return &analysis{
		intel: intel,
		vira:  intel.Vira,
		cards: cards,
	}
}

func (a *analysis) strength(card deck.Card) int {
	return truco.Strength(card, a.vira)
}

func (a *analysis) lowest() deck.Card {
	return a.cards[0]
}

func (a *analysis) highest() deck.Card {
	return a.cards[len(a.cards)-1]
}

func (a *analysis) manilhas() int {
	n := 0
	for _, card := range a.cards {
		if truco.IsManilha(card, a.vira) {
			n++
		}
	}

	return n
}

func (a *analysis) hasTopManilha() bool {
	return len(a.cards) > 0 && a.strength(a.highest()) == topManilha
}

func (a *analysis) strongCards() int {
	n := 0
	for _, card := range a.cards {
		if a.strength(card) >= strongCard {
			n++
		}
	}

	return n
}

// cheapestWinner returns the weakest card that beats card
func (a *analysis) cheapestWinner(card deck.Card) (deck.Card, bool) {
	target := a.strength(card)
	for _, c := range a.cards {
		if a.strength(c) > target {
			return c, true
		}
	}

	return deck.Card{}, false
}

// tie returns a card with the same strength as card
func (a *analysis) tie(card deck.Card) (deck.Card, bool) {
	target := a.strength(card)
	for _, c := range a.cards {
		if a.strength(c) == target {
			return c, true
		}
	}

	return deck.Card{}, false
}

func (a *analysis) roundNumber() int {
	return len(a.intel.Rounds) + 1
}

func (a *analysis) wonFirstRound() bool {
	if len(a.intel.Rounds) == 0 {
		return false
	}

	winner, ok := a.intel.Rounds[0].Won()
	return ok && winner == a.intel.PlayerID
}

func (a *analysis) lostFirstRound() bool {
	if len(a.intel.Rounds) == 0 {
		return false
	}

	winner, ok := a.intel.Rounds[0].Won()
	return ok && winner != a.intel.PlayerID
}

func (a *analysis) scoreLead() int {
	return a.intel.Score - a.intel.OpponentScore
}
