package truco

import (
	"truco-server/pkg/deck"
)

// strength bounds
const (
	// DiscardStrength is the strength of a card played face down
	DiscardStrength = 0
	// maxPlainStrength is the strength of the highest non-manilha rank
	maxPlainStrength = 10
)

// ManilhaRank returns the rank of the four manilhas for the hand.
// It is the rank following the vira, where a Two vira makes the Threes manilhas.
func ManilhaRank(vira deck.Card) deck.Rank {
	return vira.Rank.Next()
}

// IsManilha returns true if the card is one of the four trump cards
func IsManilha(card, vira deck.Card) bool {
	return card.Rank == ManilhaRank(vira)
}

// Strength returns the strength of card for the hand's vira.
// Non-manilhas are 1 (Three) through 10 (Two) regardless of suit.
// Manilhas are 11 (clubs) through 14 (diamonds).
func Strength(card, vira deck.Card) int {
	if IsManilha(card, vira) {
		return maxPlainStrength + card.Suit.Order()
	}

	return int(card.Rank)
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 if they tie
func Compare(a, b, vira deck.Card) int {
	sa, sb := Strength(a, vira), Strength(b, vira)
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	}

	return 0
}
