package game

import (
	"fmt"
	"sort"
)

// calculateSidePots splits the pot whenever a street settles with at least
// one all-in. For each all-in seat, ascending by committed bet, every other
// live seat's excess over the all-in level moves into a new side pot (taken
// back out of the topmost existing pot, or the main pot), and the all-in
// seat's bet is cleared so it contests nothing above its level. When every
// unfolded seat is all-in the highest all-in is left out: no live opponent
// can contest an overage. Re-invoking with no new all-ins is a no-op.
func (t *Table) calculateSidePots() {
	var allIn []*Seat
	for _, seat := range t.seats {
		if seat != nil && !seat.folded && seat.allIn() {
			allIn = append(allIn, seat)
		}
	}
	if len(allIn) == 0 {
		return
	}

	sort.Slice(allIn, func(i, j int) bool { return allIn[i].bet < allIn[j].bet })
	if len(allIn) > 1 && len(allIn) == len(t.unfoldedSeats()) {
		allIn = allIn[:len(allIn)-1]
	}

	for _, allInSeat := range allIn {
		if allInSeat.bet <= 0 {
			continue
		}
		side := SidePot{}
		for _, seat := range t.seats {
			if seat == nil || seat.folded || seat.id == allInSeat.id {
				continue
			}
			over := seat.bet - allInSeat.bet
			if over > 0 {
				if len(t.sidePots) > 0 {
					t.sidePots[len(t.sidePots)-1].Amount -= over
				} else {
					t.pot -= over
				}
				// keep only the excess in play above this level
				seat.bet -= allInSeat.bet
				side.Amount += over
			}
			// a seat that matched the all-in exactly with chips behind can
			// still bet into this pot on a later street
			if over > 0 || (over == 0 && seat.stack > 0) {
				side.Players = append(side.Players, seat.id)
			}
		}
		allInSeat.bet = 0
		t.sidePots = append(t.sidePots, side)
	}
}

// resolveShowdown pays out each side pot against its eligible seats in
// creation order, then the main pot against all unfolded seats.
func (t *Table) resolveShowdown() {
	for _, sp := range t.sidePots {
		seats := make([]*Seat, 0, len(sp.Players))
		for _, id := range sp.Players {
			if seat := t.seat(id); seat != nil {
				seats = append(seats, seat)
			}
		}
		t.payOutPot(sp.Amount, seats)
	}

	t.payOutPot(t.pot, t.occupiedSeats())
	t.wentToShowdown = true
	t.endHand()
}

// payOutPot submits every eligible unfolded seat's seven cards to the
// ranking oracle and splits the amount evenly across the winners.
func (t *Table) payOutPot(amount float64, seats []*Seat) {
	var entrants []Entrant
	for _, seat := range seats {
		if seat == nil || seat.folded {
			continue
		}
		cards := make([]Card, 0, len(seat.hand)+len(t.board))
		cards = append(cards, seat.hand...)
		cards = append(cards, t.board...)
		entrants = append(entrants, Entrant{SeatID: seat.id, Cards: cards})
	}
	if len(entrants) == 0 {
		return
	}

	winners := t.ranker.Winners(entrants)
	share := amount / float64(len(winners))

	for _, w := range winners {
		seat := t.seat(w.SeatID)
		if seat == nil {
			continue
		}
		seat.winHand(share)
		if share > 0 {
			t.winMessages = append(t.winMessages,
				fmt.Sprintf("%s wins $%.2f with %s", seat.player.Name, share, w.Description))
		}
	}

	t.updateHistory()
}
