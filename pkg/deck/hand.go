package deck

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	return h.IndexOf(card) >= 0
}

// IndexOf returns the position of the card in the hand, or -1
func (h Hand) IndexOf(card Card) int {
	for i, c := range h {
		if c.Equal(card) {
			return i
		}
	}

	return -1
}

// Discard removes the specified card and returns true if it was held
func (h *Hand) Discard(card Card) bool {
	i := h.IndexOf(card)
	if i < 0 {
		return false
	}

	newHand := make(Hand, 0, len(*h)-1)
	newHand = append(newHand, (*h)[:i]...)
	newHand = append(newHand, (*h)[i+1:]...)
	*h = newHand

	return true
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
