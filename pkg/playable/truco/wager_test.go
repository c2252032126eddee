package truco

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextValue(t *testing.T) {
	a := assert.New(t)

	value := 1
	sequence := []int{value}
	for {
		next, ok := NextValue(value)
		if !ok {
			break
		}

		sequence = append(sequence, next)
		value = next
	}

	a.Equal([]int{1, 3, 6, 9, 12}, sequence)

	_, ok := NextValue(2)
	a.False(ok)
}

func TestLadderName(t *testing.T) {
	a := assert.New(t)
	a.Equal("truco", LadderName(3))
	a.Equal("seis", LadderName(6))
	a.Equal("nove", LadderName(9))
	a.Equal("doze", LadderName(12))
	a.Equal("", LadderName(1))
}

func TestWagerState(t *testing.T) {
	a := assert.New(t)

	w := newWagerState()
	a.False(w.Pending())
	a.NoError(w.checkRaise(1))
	a.NoError(w.checkRaise(2))
	a.Equal(ErrNoPendingRaise, w.checkAccept(2))

	w = w.raise(1)
	a.Equal(WagerState{Value: 1, PendingValue: 3, Raiser: 1}, w)
	a.Equal(ErrRaisePending, w.checkRaise(1))
	a.Equal(ErrCannotAcceptOwnRaise, w.checkAccept(1))

	// re-raise commits the pending value
	a.NoError(w.checkRaise(2))
	w = w.raise(2)
	a.Equal(WagerState{Value: 3, PendingValue: 6, Raiser: 2}, w)

	a.NoError(w.checkAccept(1))
	w = w.accept(1)
	a.Equal(WagerState{Value: 6, Holder: 1}, w)
	a.Equal(ErrNotRaiseHolder, w.checkRaise(2))
	a.NoError(w.checkRaise(1))

	w = w.raise(1).raise(2)
	a.Equal(WagerState{Value: 9, PendingValue: 12, Raiser: 2, Holder: 1}, w)
	a.Equal(ErrLadderExhausted, w.checkRaise(1))

	w = w.accept(1)
	a.Equal(ErrLadderExhausted, w.checkRaise(1))
}
