package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"truco-server/pkg/deck"
	"truco-server/pkg/playable/truco"
)

func Test_faceUpCards(t *testing.T) {
	a := assert.New(t)

	a.Equal("", faceUpCards(&truco.Intel{}))
	a.Equal("", faceUpCards(&truco.Intel{OpenCards: deck.CardsFromString("4c")}))

	cards := deck.CardsFromString("4c,3h,Qd")
	a.Equal(cards[1].String()+" "+cards[2].String(), faceUpCards(&truco.Intel{OpenCards: cards}))
}
