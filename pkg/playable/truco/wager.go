package truco

// MaxValue is the highest value a hand can be worth
const MaxValue = 12

var ladder = map[int]int{
	1: 3,
	3: 6,
	6: 9,
	9: 12,
}

var ladderNames = map[int]string{
	3:  "truco",
	6:  "seis",
	9:  "nove",
	12: "doze",
}

// NextValue returns the value a raise from current would ask for.
// The second return value is false when current is 12 or not on the ladder.
func NextValue(current int) (int, bool) {
	next, ok := ladder[current]
	return next, ok
}

// LadderName returns the call for a raise to value ("truco", "seis", "nove", "doze")
func LadderName(value int) string {
	return ladderNames[value]
}

// WagerState is the value negotiation of a hand
type WagerState struct {
	// Value is the committed value of the hand
	Value int `json:"value"`
	// PendingValue is the value asked by an unanswered raise, 0 if nothing is pending
	PendingValue int `json:"pendingValue"`
	// Raiser made the pending raise
	Raiser int64 `json:"raiser,omitempty"`
	// Holder may make the next raise. 0 means either player may.
	Holder int64 `json:"holder,omitempty"`
}

func newWagerState() WagerState {
	return WagerState{Value: 1}
}

// Pending returns true if a raise is waiting for a response
func (w WagerState) Pending() bool {
	return w.PendingValue > 0
}

// checkRaise validates a raise against the ladder and the response order.
// Turn order is the hand's concern.
func (w WagerState) checkRaise(playerID int64) error {
	if w.Pending() {
		if w.Raiser == playerID {
			return ErrRaisePending
		}

		if _, ok := NextValue(w.PendingValue); !ok {
			return ErrLadderExhausted
		}

		return nil
	}

	if w.Holder != 0 && w.Holder != playerID {
		return ErrNotRaiseHolder
	}

	if _, ok := NextValue(w.Value); !ok {
		return ErrLadderExhausted
	}

	return nil
}

// raise returns the state after playerID raises. A re-raise commits the value that was pending.
func (w WagerState) raise(playerID int64) WagerState {
	if w.Pending() {
		w.Value = w.PendingValue
	}

	next, ok := NextValue(w.Value)
	if !ok {
		panic("raise past the ladder")
	}

	w.PendingValue = next
	w.Raiser = playerID
	return w
}

func (w WagerState) checkAccept(playerID int64) error {
	if !w.Pending() {
		return ErrNoPendingRaise
	}

	if w.Raiser == playerID {
		return ErrCannotAcceptOwnRaise
	}

	return nil
}

// accept commits the pending value. The accepting player holds the next raise.
func (w WagerState) accept(playerID int64) WagerState {
	w.Value = w.PendingValue
	w.PendingValue = 0
	w.Raiser = 0
	w.Holder = playerID
	return w
}
