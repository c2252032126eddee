package truco

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"truco-server/pkg/deck"
	"truco-server/pkg/snapshot"
)

func TestIntel_opponentCard(t *testing.T) {
	a := assert.New(t)
	h := setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d")
	play := createPlayCardFunc(t, h)

	intel := h.Intel(playerB)
	a.Equal(EventHandStart, intel.Event)
	a.Equal(NotPlayed, intel.OpponentCard.State())
	a.Equal([]deck.Card{deck.CardFromString("4c")}, intel.OpenCards)
	a.Equal(deck.Five, intel.Manilha)
	a.True(h.Intel(playerA).IsMyTurn())
	a.False(intel.IsMyTurn())

	play(playerA, "Kc")

	intel = h.Intel(playerB)
	a.Equal(EventPlay, intel.Event)
	a.Equal(playerA, intel.EventPlayerID)
	card, ok := intel.OpponentCard.Card()
	a.True(ok)
	a.Equal(deck.CardFromString("Kc"), card)
	a.Equal("4c,Kc", deck.CardsToString(intel.OpenCards))
	a.True(intel.IsMyTurn())

	// own card is not the opponent's card
	a.Equal(NotPlayed, h.Intel(playerA).OpponentCard.State())
	a.Equal("Ac,7c", deck.CardsToString(h.Intel(playerA).Cards))

	play(playerB, "Qd")
	a.Equal(NotPlayed, h.Intel(playerB).OpponentCard.State())
	a.Equal("4c,Kc,Qd", deck.CardsToString(h.Intel(playerB).OpenCards))

	// face-down cards stay hidden
	a.NoError(h.Play(playerA, Discard(deck.CardFromString("Ac"))))
	intel = h.Intel(playerB)
	a.Equal(Hidden, intel.OpponentCard.State())
	_, ok = intel.OpponentCard.Card()
	a.False(ok)
	a.Equal("4c,Kc,Qd", deck.CardsToString(intel.OpenCards))
}

func TestIntel_isACopy(t *testing.T) {
	a := assert.New(t)
	h := setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d")

	intel := h.Intel(playerA)
	intel.Cards[0] = deck.CardFromString("2d")
	intel.HandValue = 12
	intel.PossibleActions[0] = ActionQuit
	a.Equal("Kc,Ac,7c", deck.CardsToString(h.Cards(playerA)))

	stored := h.IntelHistory(playerA)[0]
	a.NotSame(intel, stored)
	a.Equal("Kc,Ac,7c", deck.CardsToString(stored.Cards))
	a.Equal(1, stored.HandValue)
	a.Equal(ActionPlay, stored.PossibleActions[0])
	a.Equal("Kc,Ac,7c", deck.CardsToString(h.Intel(playerA).Cards))

	stored.OpenCards[0] = deck.CardFromString("2d")
	a.Equal("4c", deck.CardsToString(h.IntelHistory(playerA)[0].OpenCards))

	before := h.Intel(playerA)
	a.NoError(h.Raise(playerA))
	a.Equal(0, before.PendingValue)
	a.Equal(3, h.Intel(playerA).PendingValue)
	a.Equal(2, len(h.IntelHistory(playerA)))
	a.Equal(2, len(h.IntelHistory(playerB)))
}

func TestIntel_possibleActions(t *testing.T) {
	a := assert.New(t)
	h := setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d")

	a.Equal([]Action{ActionPlay, ActionRaise, ActionQuit}, h.Intel(playerA).PossibleActions)
	a.Equal([]Action{ActionQuit}, h.Intel(playerB).PossibleActions)

	a.NoError(h.Raise(playerA))
	a.Equal([]Action{ActionQuit}, h.Intel(playerA).PossibleActions)
	a.Equal([]Action{ActionAccept, ActionRaise, ActionQuit}, h.Intel(playerB).PossibleActions)
	a.True(h.Intel(playerB).CanDo(ActionAccept))
	a.Equal(playerB, h.Intel(playerA).Turn)

	a.NoError(h.Quit(playerB))
	a.Equal([]Action{}, h.Intel(playerA).PossibleActions)
	a.Equal(int64(0), h.Intel(playerA).Turn)

	h = setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d", 11, 0)
	a.Equal([]Action{ActionMaoDeOnze, ActionQuit}, h.Intel(playerA).PossibleActions)
	a.True(h.Intel(playerA).MaoDeOnze)
}

func TestIntel_Result(t *testing.T) {
	a := assert.New(t)
	h := setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d")

	_, ok := h.Intel(playerA).Result()
	a.False(ok)

	a.NoError(h.Quit(playerB))
	result, ok := h.Intel(playerA).Result()
	a.True(ok)
	a.Equal(Result{Winner: playerA, Points: 1, Reason: ReasonForfeit}, result)

	mine, theirs := h.Intel(playerA).RoundsWon()
	a.Equal(0, mine)
	a.Equal(0, theirs)
}

func TestIntel_RoundsWon(t *testing.T) {
	h := setupHand(t, "4c", "Ac,3c,7c", "Kh,4d,7d")
	play := createPlayCardFunc(t, h)

	play(playerA, "Ac")
	play(playerB, "Kh")
	play(playerA, "3c")
	play(playerB, "4d")

	mine, theirs := h.Intel(playerB).RoundsWon()
	assert.Equal(t, 1, mine)
	assert.Equal(t, 1, theirs)
}

func TestTableCard_MarshalJSON(t *testing.T) {
	a := assert.New(t)

	b, _ := json.Marshal(TableCard{})
	a.Equal(`{"state":"notPlayed"}`, string(b))

	b, _ = json.Marshal(HiddenCard())
	a.Equal(`{"state":"hidden"}`, string(b))

	b, _ = json.Marshal(KnownCard(deck.CardFromString("Ad")))
	a.Equal(`{"state":"known","card":{"rank":"A","suit":"diamonds"}}`, string(b))
}

func TestIntel_MarshalJSON(t *testing.T) {
	a := assert.New(t)
	h := setupHand(t, "4c", "Kc,Ac,7c", "Qd,Jd,6d")

	var out map[string]interface{}
	b, err := json.Marshal(h.Intel(playerA))
	a.NoError(err)
	a.NoError(json.Unmarshal(b, &out))
	a.NotContains(out, "result")
	a.Equal("handStart", out["event"])

	a.NoError(h.Quit(playerA))
	b, err = json.Marshal(h.Intel(playerA))
	a.NoError(err)
	out = nil
	a.NoError(json.Unmarshal(b, &out))
	a.Equal(map[string]interface{}{
		"winner": float64(playerB),
		"points": float64(1),
		"draw":   false,
		"reason": "forfeit",
	}, out["result"])
}

func TestIntel_snapshot(t *testing.T) {
	h := setupHand(t, "2h", "3c,Ac,7c", "3d,Jd,6d")
	play := createPlayCardFunc(t, h)

	play(playerA, "Ac")
	snapshot.ValidateSnapshot(t, h.Intel(playerB))

	play(playerB, "3d")
	assert.NoError(t, h.Raise(playerB))
	snapshot.ValidateSnapshot(t, h.Intel(playerA))
}
