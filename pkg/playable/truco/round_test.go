package truco

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"truco-server/pkg/deck"
)

func plays(cards ...string) []Play {
	p := make([]Play, len(cards))
	for i, card := range cards {
		p[i] = Play{PlayerID: int64(i + 1), Card: deck.CardFromString(card)}
	}

	return p
}

func TestResolveRound(t *testing.T) {
	a := assert.New(t)
	vira := deck.CardFromString("4c")

	a.Equal(Outcome{Winner: 1}, ResolveRound(plays("Kc", "Qd"), vira))
	a.Equal(Outcome{Winner: 2}, ResolveRound(plays("Qd", "Kc"), vira))

	// manilha beats the highest plain rank
	a.Equal(Outcome{Winner: 2}, ResolveRound(plays("2d", "5c"), vira))

	// manilhas are ordered by suit
	a.Equal(Outcome{Winner: 1}, ResolveRound(plays("5d", "5s"), vira))
}

func TestResolveRound_swappingPlayersKeepsStrongerCard(t *testing.T) {
	vira := deck.CardFromString("7h")
	for _, first := range deck.New().Cards {
		for _, second := range []deck.Card{deck.CardFromString("Qc"), deck.CardFromString("Jd")} {
			if first.Equal(second) {
				continue
			}

			ab := ResolveRound([]Play{{PlayerID: 1, Card: first}, {PlayerID: 2, Card: second}}, vira)
			ba := ResolveRound([]Play{{PlayerID: 2, Card: second}, {PlayerID: 1, Card: first}}, vira)
			assert.Equal(t, ab, ba, "%s vs %s", first, second)
		}
	}
}

func TestResolveRound_draw(t *testing.T) {
	a := assert.New(t)
	vira := deck.CardFromString("4c")

	a.Equal(Outcome{Draw: true}, ResolveRound(plays("Kc", "Kd"), vira))
	a.Equal(Outcome{Draw: true}, ResolveRound(plays("7s", "7h"), vira))

	winner, ok := ResolveRound(plays("7s", "7h"), vira).Won()
	a.False(ok)
	a.Equal(int64(0), winner)
}

func TestResolveRound_discard(t *testing.T) {
	a := assert.New(t)
	vira := deck.CardFromString("4c")

	p := plays("2d", "3c")
	p[0].Discarded = true
	a.Equal(Outcome{Winner: 2}, ResolveRound(p, vira))

	p[1].Discarded = true
	a.Equal(Outcome{Draw: true}, ResolveRound(p, vira))
}

func TestResolveRound_morePlays(t *testing.T) {
	vira := deck.CardFromString("4c")
	p := []Play{
		{PlayerID: 1, Card: deck.CardFromString("Ac")},
		{PlayerID: 2, Card: deck.CardFromString("7c")},
		{PlayerID: 2, Card: deck.CardFromString("Ad")},
	}

	assert.Equal(t, Outcome{Draw: true}, ResolveRound(p, vira))

	p[2].Card = deck.CardFromString("Kd")
	assert.Equal(t, Outcome{Winner: 1}, ResolveRound(p, vira))
}

func TestResolveRound_panics(t *testing.T) {
	assert.Panics(t, func() {
		ResolveRound(plays("Kc"), deck.CardFromString("4c"))
	})
}
