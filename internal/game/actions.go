package game

import (
	"fmt"

	"github.com/google/uuid"
)

// ActionResult describes a state change for broadcast to the table.
type ActionResult struct {
	SeatID  int    `json:"seatId"`
	Message string `json:"message"`
}

// HandleFold folds the seat owned by playerID. Folding is legal whether or
// not it is the seat's turn (disconnect and timeout folds arrive out of
// turn), but turn order only advances when the actor held the turn.
func (t *Table) HandleFold(playerID uuid.UUID) (*ActionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID, false)
	if err != nil {
		return nil, err
	}
	if seat.folded {
		return nil, ErrIllegalAction
	}

	res := &ActionResult{
		SeatID:  seat.id,
		Message: fmt.Sprintf("%s folds", seat.player.Name),
	}
	t.foldSeat(seat)
	return res, nil
}

// HandleCheck passes the action without betting. Only legal when the seat
// owes nothing this street.
func (t *Table) HandleCheck(playerID uuid.UUID) (*ActionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID, true)
	if err != nil {
		return nil, err
	}
	if t.callAmount > 0 && roundCents(seat.bet) != roundCents(t.callAmount) {
		return nil, fmt.Errorf("%w: cannot check facing a bet", ErrIllegalAction)
	}

	seat.check()
	res := &ActionResult{
		SeatID:  seat.id,
		Message: fmt.Sprintf("%s checks", seat.player.Name),
	}
	t.changeTurn(seat.id)
	return res, nil
}

// HandleCall matches the outstanding bet, going all-in if the stack cannot
// cover it.
func (t *Table) HandleCall(playerID uuid.UUID) (*ActionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID, true)
	if err != nil {
		return nil, err
	}
	if t.callAmount <= 0 || seat.bet >= t.callAmount {
		return nil, fmt.Errorf("%w: nothing to call", ErrIllegalAction)
	}

	added := seat.callRaise(t.callAmount)
	t.addToCurrentPot(added)

	res := &ActionResult{
		SeatID:  seat.id,
		Message: fmt.Sprintf("%s calls $%.2f", seat.player.Name, added),
	}
	t.changeTurn(seat.id)
	return res, nil
}

// HandleRaise sets the seat's total street bet to amount. The raise must
// exceed the outstanding call amount and meet the minimum raise unless it
// puts the seat all-in.
func (t *Table) HandleRaise(playerID uuid.UUID, amount float64) (*ActionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID, true)
	if err != nil {
		return nil, err
	}

	added := amount - seat.bet
	allIn := added == seat.stack
	switch {
	case added <= 0:
		return nil, fmt.Errorf("%w: raise must add chips", ErrIllegalAction)
	case added > seat.stack:
		return nil, fmt.Errorf("%w: raise exceeds stack", ErrIllegalAction)
	case amount <= t.callAmount:
		return nil, fmt.Errorf("%w: raise below call amount", ErrIllegalAction)
	case amount < t.minRaise && !allIn:
		return nil, fmt.Errorf("%w: raise below minimum of $%.2f", ErrIllegalAction, t.minRaise)
	}

	seat.raiseTo(amount)
	t.addToCurrentPot(added)

	if t.callAmount > 0 {
		t.minRaise = t.callAmount + (seat.bet-t.callAmount)*2
	} else {
		t.minRaise = seat.bet * 2
	}
	t.callAmount = amount

	res := &ActionResult{
		SeatID:  seat.id,
		Message: fmt.Sprintf("%s raises to $%.2f", seat.player.Name, amount),
	}
	t.changeTurn(seat.id)
	return res, nil
}

// actingSeat resolves the seat for an inbound action and enforces that a
// hand is live and, when needTurn is set, that the seat holds the turn.
func (t *Table) actingSeat(playerID uuid.UUID, needTurn bool) (*Seat, error) {
	seat := t.findSeatByPlayer(playerID)
	if seat == nil {
		return nil, ErrPlayerNotFound
	}
	if t.handOver {
		return nil, ErrNoHandInProgress
	}
	if needTurn && !seat.turn {
		return nil, ErrOutOfTurn
	}
	return seat, nil
}

// addToCurrentPot moves freshly committed chips into the most recently
// created side pot if one exists this street, otherwise the main pot.
func (t *Table) addToCurrentPot(amount float64) {
	if len(t.sidePots) > 0 {
		t.sidePots[len(t.sidePots)-1].Amount += amount
	} else {
		t.pot += amount
	}
}

// foldSeat records the fold and resolves its consequences. Turn order only
// moves when the folding seat held the turn; an out-of-turn fold can still
// end the hand if it leaves a single contestant.
func (t *Table) foldSeat(seat *Seat) {
	hadTurn := seat.turn
	seat.fold()
	seat.turn = false

	if hadTurn {
		t.changeTurn(seat.id)
		return
	}

	t.updateHistory()
	if len(t.unfoldedSeats()) == 1 {
		t.endWithoutShowdown()
	}
}

// changeTurn advances the table state machine after a player action: ends
// the hand when one contestant remains, runs the board out when no further
// betting is possible, deals the next street when the round is settled, or
// simply passes the turn to the next unfolded seat.
func (t *Table) changeTurn(lastTurn int) {
	if len(t.unfoldedSeats()) == 1 {
		t.endWithoutShowdown()
		return
	}

	if t.actionIsComplete() {
		t.calculateSidePots()
		for len(t.board) <= 5 && !t.handOver {
			t.dealNextStreet()
		}
	}

	switch {
	case t.handOver:
		t.turn = 0
	case t.allCheckedOrCalled():
		t.calculateSidePots()
		t.dealNextStreet()
		if t.handOver {
			t.turn = 0
		} else {
			t.turn = t.nextUnfoldedSeat(t.button, 1)
		}
	default:
		t.turn = t.nextUnfoldedSeat(lastTurn, 1)
	}

	t.refreshTurnFlags()
	if !t.handOver {
		t.updateHistory()
	}
}

// allCheckedOrCalled reports whether every live seat has matched the call
// amount or checked. Preflop the big blind keeps its option: the round is
// not settled while the big blind's bet is still just the posted blind and
// it has not explicitly checked. A big blind all-in on the blind has no
// option to exercise and must not hold the street open.
func (t *Table) allCheckedOrCalled() bool {
	if bb := t.seat(t.bigBlind); bb != nil && !bb.folded && !bb.checked && bb.stack > 0 &&
		len(t.board) == 0 && roundCents(bb.bet) == roundCents(t.minBet*2) {
		return false
	}

	for _, seat := range t.seats {
		if seat == nil || seat.folded || seat.stack <= 0 {
			continue
		}
		if t.callAmount > 0 {
			if roundCents(seat.bet) != roundCents(t.callAmount) {
				return false
			}
		} else if !seat.checked {
			return false
		}
	}
	return true
}

// actionIsComplete reports whether no further betting is possible this hand:
// every live seat is all-in, except possibly one whose last action was the
// call that matched the final all-in.
func (t *Table) actionIsComplete() bool {
	var toAct []*Seat
	for _, seat := range t.seats {
		if seat != nil && !seat.folded && seat.stack > 0 {
			toAct = append(toAct, seat)
		}
	}
	if len(toAct) == 0 {
		return true
	}
	return len(toAct) == 1 && toAct[0].lastAction == ActionCall
}

// dealNextStreet settles the street: bets move into the pot snapshot, then
// the next board cards come out, or the showdown resolves at five cards.
func (t *Table) dealNextStreet() {
	n := len(t.board)
	t.resetBetsAndActions()
	t.mainPot = t.pot

	switch {
	case n == 0:
		for i := 0; i < 3; i++ {
			t.board = append(t.board, t.deck.Draw())
		}
		t.stage = Flop
	case n == 3:
		t.board = append(t.board, t.deck.Draw())
		t.stage = Turn
	case n == 4:
		t.board = append(t.board, t.deck.Draw())
		t.stage = River
	case n == 5:
		t.stage = Showdown
		t.resolveShowdown()
	}
}
