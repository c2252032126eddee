package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
	Diamonds Suit = "diamonds"
)

// Suits lists every suit from the weakest to the strongest manilha suit
var Suits = []Suit{Clubs, Hearts, Spades, Diamonds}

// Order returns the manilha order of the suit (clubs=1 ... diamonds=4), or 0 for an unknown suit
func (s Suit) Order() int {
	switch s {
	case Clubs:
		return 1
	case Hearts:
		return 2
	case Spades:
		return 3
	case Diamonds:
		return 4
	}

	return 0
}

func (s Suit) symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Hearts:
		return "♡"
	case Spades:
		return "♠"
	case Diamonds:
		return "♢"
	}

	return "?"
}

func (s Suit) letter() string {
	switch s {
	case Clubs:
		return "c"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	case Diamonds:
		return "d"
	}

	return "?"
}

// Rank is a card rank. The numeric value is the strength of the rank in Truco,
// Three being the weakest and Two the strongest.
type Rank int

// rank constants
const (
	Three Rank = iota + 1
	Four
	Five
	Six
	Seven
	Queen
	Jack
	King
	Ace
	Two
)

// Ranks lists every rank in strength order
var Ranks = []Rank{Three, Four, Five, Six, Seven, Queen, Jack, King, Ace, Two}

var rankSymbols = map[Rank]string{
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Queen: "Q",
	Jack:  "J",
	King:  "K",
	Ace:   "A",
	Two:   "2",
}

// Next returns the rank that follows r in the rank cycle. Two wraps around to Three.
func (r Rank) Next() Rank {
	if r == Two {
		return Three
	}

	return r + 1
}

// Valid returns true if the rank is one of the ten Truco ranks
func (r Rank) Valid() bool {
	return r >= Three && r <= Two
}

func (r Rank) String() string {
	if s, ok := rankSymbols[r]; ok {
		return s
	}

	return fmt.Sprintf("Rank(%d)", int(r))
}

// MarshalText encodes the rank as its symbol
func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rank: %d", int(r))
	}

	return []byte(rankSymbols[r]), nil
}

// UnmarshalText decodes a rank symbol
func (r *Rank) UnmarshalText(b []byte) error {
	rank, err := parseRank(string(b))
	if err != nil {
		return err
	}

	*r = rank
	return nil
}

func parseRank(s string) (Rank, error) {
	s = strings.ToUpper(s)
	for rank, symbol := range rankSymbols {
		if symbol == s {
			return rank, nil
		}
	}

	return 0, fmt.Errorf("unknown rank: %q", s)
}

// Card is an individual playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.symbol())
}

// Valid returns true if the card has a Truco rank and a known suit
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Order() != 0
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

var cardRx = regexp.MustCompile(`(?i)^([2-7qjka])([chsd])\z`)

// ParseCard returns a Card from the string.
// The string must be in the format of <rank><suit> where rank in [34567QJKA2] and suit in [chsd]
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	rank, err := parseRank(match[1])
	if err != nil {
		return Card{}, err
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	case "d":
		suit = Diamonds
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// CardFromString is like ParseCard but panics on malformed input. Intended for tests.
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Queen of Hearts) to a string (Qh)
func CardToString(card Card) string {
	return card.Rank.String() + card.Suit.letter()
}

// CardsToString will convert a slice of cards to a string in the format of 3c,Qh,2d,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
