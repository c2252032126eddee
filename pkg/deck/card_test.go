package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, Rank(1), Three)
	assert.Equal(t, Rank(6), Queen)
	assert.Equal(t, Rank(7), Jack)
	assert.Equal(t, Rank(10), Two)
	assert.Equal(t, 10, len(Ranks))
}

func TestRank_Next(t *testing.T) {
	a := assert.New(t)
	a.Equal(Four, Three.Next())
	a.Equal(Queen, Seven.Next())
	a.Equal(Jack, Queen.Next())
	a.Equal(Two, Ace.Next())
	a.Equal(Three, Two.Next())
}

func TestSuit_Order(t *testing.T) {
	a := assert.New(t)
	a.Equal(1, Clubs.Order())
	a.Equal(2, Hearts.Order())
	a.Equal(3, Spades.Order())
	a.Equal(4, Diamonds.Order())
	a.Equal(0, Suit("stars").Order())
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Rank: Two, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Rank: Jack, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Rank: Queen, Suit: Diamonds}.String())
	assert.Equal(t, "A♠", Card{Rank: Ace, Suit: Spades}.String())
}

func TestParseCard(t *testing.T) {
	a := assert.New(t)

	card, err := ParseCard("qh")
	a.NoError(err)
	a.Equal(Card{Rank: Queen, Suit: Hearts}, card)

	card, err = ParseCard("2D")
	a.NoError(err)
	a.Equal(Card{Rank: Two, Suit: Diamonds}, card)

	_, err = ParseCard("8c")
	a.EqualError(err, `could not parse card: "8c"`)

	_, err = ParseCard("")
	a.Error(err)

	a.Panics(func() {
		CardFromString("10s")
	})
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("3c,Qh,2d,As")
	assert.Equal(t, "3c,Qh,2d,As", CardsToString(cards))
	assert.Equal(t, 0, len(CardsFromString("")))
}

func TestCard_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(CardFromString("Kd"))
	a.NoError(err)
	a.Equal(`{"rank":"K","suit":"diamonds"}`, string(b))

	var card Card
	a.NoError(json.Unmarshal([]byte(`{"rank":"7","suit":"spades"}`), &card))
	a.Equal(CardFromString("7s"), card)

	a.Error(json.Unmarshal([]byte(`{"rank":"9","suit":"spades"}`), &card))
}

func TestCard_Valid(t *testing.T) {
	a := assert.New(t)

	a.True(CardFromString("3c").Valid())
	a.True(CardFromString("2d").Valid())
	a.False(Card{}.Valid())
	a.False(Card{Rank: Ace, Suit: "stars"}.Valid())
	a.False(Card{Rank: 11, Suit: Clubs}.Valid())

	a.NotPanics(func() {
		a.Equal("Rank(0)?", Card{}.String())
		a.Equal("A?", CardToString(Card{Rank: Ace, Suit: "stars"}))
	})
}
