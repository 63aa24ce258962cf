package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRanker lets tests rig deterministic showdown outcomes.
type stubRanker struct {
	pick func(entrants []Entrant) []Winner
}

func (r stubRanker) Winners(entrants []Entrant) []Winner {
	if r.pick != nil {
		return r.pick(entrants)
	}
	return lowestSeatWins(entrants)
}

func lowestSeatWins(entrants []Entrant) []Winner {
	best := entrants[0]
	for _, e := range entrants[1:] {
		if e.SeatID < best.SeatID {
			best = e
		}
	}
	return []Winner{{SeatID: best.SeatID, Description: "a pair of Aces"}}
}

func everyoneSplits(entrants []Entrant) []Winner {
	winners := make([]Winner, 0, len(entrants))
	for _, e := range entrants {
		winners = append(winners, Winner{SeatID: e.SeatID, Description: "a straight, Ten high"})
	}
	return winners
}

func newTestTable(limit float64) *Table {
	return New(uuid.New(), "test-table", limit, 5, stubRanker{})
}

func sit(t *testing.T, tbl *Table, seatID int, name string, stack float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, tbl.SitPlayer(Player{ID: id, Name: name}, seatID, stack))
	return id
}

func TestSitPlayerValidation(t *testing.T) {
	tbl := newTestTable(40)

	err := tbl.SitPlayer(Player{ID: uuid.New(), Name: "alice"}, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidSeat)
	err = tbl.SitPlayer(Player{ID: uuid.New(), Name: "alice"}, 6, 100)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	sit(t, tbl, 1, "alice", 100)
	err = tbl.SitPlayer(Player{ID: uuid.New(), Name: "bob"}, 1, 100)
	assert.ErrorIs(t, err, ErrSeatOccupied)
}

func TestFirstPlayerToSitGetsButton(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 3, "alice", 100)
	assert.Equal(t, 3, tbl.button)

	sit(t, tbl, 1, "bob", 100)
	assert.Equal(t, 3, tbl.button)
}

func TestSitPlayerDuringHandStartsFolded(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 100)
	sit(t, tbl, 2, "bob", 100)
	require.NoError(t, tbl.StartHand())

	sit(t, tbl, 3, "carol", 100)
	assert.True(t, tbl.seat(3).folded)
	assert.Empty(t, tbl.seat(3).hand)
}

func TestRebuyPlayer(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 100)

	require.NoError(t, tbl.RebuyPlayer(1, 50))
	assert.Equal(t, 150.0, tbl.seat(1).stack)

	assert.ErrorIs(t, tbl.RebuyPlayer(2, 50), ErrNoSeatedPlayer)
	assert.ErrorIs(t, tbl.RebuyPlayer(0, 50), ErrInvalidSeat)
}

func TestStartHandNeedsTwoActivePlayers(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 100)

	require.NoError(t, tbl.StartHand())
	assert.True(t, tbl.handOver)
	assert.Equal(t, Waiting, tbl.stage)
	assert.Empty(t, tbl.seat(1).hand)
	assert.Len(t, tbl.History(), 1)
}

func TestStartHandHeadsUp(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 100)
	sit(t, tbl, 2, "bob", 100)

	require.NoError(t, tbl.StartHand())

	// button advances off the first sitter; heads-up the button posts the
	// small blind and acts first preflop
	assert.Equal(t, 2, tbl.button)
	assert.Equal(t, 2, tbl.smallBlind)
	assert.Equal(t, 1, tbl.bigBlind)
	assert.Equal(t, 2, tbl.turn)
	assert.True(t, tbl.seat(2).turn)

	assert.Equal(t, 1.0, tbl.seat(2).bet)
	assert.Equal(t, 2.0, tbl.seat(1).bet)
	assert.Equal(t, 3.0, tbl.pot)
	assert.Equal(t, 2.0, tbl.callAmount)
	assert.Equal(t, 4.0, tbl.minRaise)

	assert.Len(t, tbl.seat(1).hand, 2)
	assert.Len(t, tbl.seat(2).hand, 2)
	assert.Empty(t, tbl.board)
	assert.Equal(t, Preflop, tbl.stage)
	assert.False(t, tbl.handOver)
}

func TestStartHandWhileHandLive(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 100)
	sit(t, tbl, 2, "bob", 100)
	require.NoError(t, tbl.StartHand())

	assert.ErrorIs(t, tbl.StartHand(), ErrHandInProgress)
}

func TestButtonRotationSkipsEmptySeats(t *testing.T) {
	tbl := newTestTable(40)
	p1 := sit(t, tbl, 1, "p1", 100)
	p2 := sit(t, tbl, 2, "p2", 100)
	p3 := sit(t, tbl, 4, "p3", 100)

	foldOut := func(ids ...uuid.UUID) {
		for _, id := range ids {
			_, err := tbl.HandleFold(id)
			require.NoError(t, err)
		}
	}

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, 2, tbl.button)
	foldOut(p2, p3)
	require.True(t, tbl.HandOver())

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, 4, tbl.button)
	foldOut(p3, p1)
	require.True(t, tbl.HandOver())

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, 1, tbl.button)
}

func TestStandPlayerMidHandEndsIt(t *testing.T) {
	tbl := newTestTable(40)
	alice := sit(t, tbl, 1, "alice", 100)
	bob := sit(t, tbl, 2, "bob", 100)
	require.NoError(t, tbl.StartHand())

	// bob leaves while live: his fold leaves alice alone in the pot
	require.NoError(t, tbl.StandPlayer(bob))

	assert.Nil(t, tbl.seat(2))
	assert.Equal(t, 1, tbl.SeatedCount())
	assert.True(t, tbl.handOver)
	assert.Contains(t, tbl.winMessages, "alice wins $3.00")
	assert.Equal(t, 101.0, tbl.seat(1).stack)
	assert.False(t, tbl.wentToShowdown)

	// last player leaving resets the table entirely
	require.NoError(t, tbl.StandPlayer(alice))
	assert.Equal(t, 0, tbl.SeatedCount())
	assert.Equal(t, 0, tbl.button)
	assert.Equal(t, 0.0, tbl.pot)
	assert.Equal(t, Waiting, tbl.stage)
}

func TestButtonNotSkippedWhenHolderStands(t *testing.T) {
	tbl := newTestTable(40)
	p1 := sit(t, tbl, 1, "p1", 100)
	sit(t, tbl, 2, "p2", 100)
	sit(t, tbl, 3, "p3", 100)
	require.Equal(t, 1, tbl.button)

	// the departing button hands back to the previous seat; the next hand's
	// rotation then reaches seat 2 instead of jumping over it
	require.NoError(t, tbl.StandPlayer(p1))
	assert.Equal(t, 3, tbl.button)

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, 2, tbl.button)
}

func TestStandPlayerUnknown(t *testing.T) {
	tbl := newTestTable(40)
	assert.ErrorIs(t, tbl.StandPlayer(uuid.New()), ErrPlayerNotFound)
}

func TestFeltedSeatSitsOutNextHand(t *testing.T) {
	tbl := newTestTable(40)
	p1 := sit(t, tbl, 1, "p1", 5)
	p2 := sit(t, tbl, 2, "p2", 10)
	require.NoError(t, tbl.StartHand())

	// p2 shoves, p1 calls all-in and loses the main pot
	tbl.ranker = stubRanker{pick: func(entrants []Entrant) []Winner {
		return []Winner{{SeatID: 2, Description: "a flush, Ace high"}}
	}}
	_, err := tbl.HandleRaise(p2, 10)
	require.NoError(t, err)
	_, err = tbl.HandleCall(p1)
	require.NoError(t, err)

	require.True(t, tbl.HandOver())
	assert.Equal(t, 0.0, tbl.seat(1).stack)
	assert.True(t, tbl.seat(1).sittingOut)
	assert.False(t, tbl.seat(2).sittingOut)
}
