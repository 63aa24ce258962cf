package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsDeepCopy(t *testing.T) {
	tbl, _, sb := headsUpTable(t, 40)

	before := tbl.LatestSnapshot()
	require.NotNil(t, before)
	require.Equal(t, 3.0, before.Pot)

	_, err := tbl.HandleCall(sb)
	require.NoError(t, err)

	// the earlier snapshot must not observe the call
	assert.Equal(t, 3.0, before.Pot)
	assert.Equal(t, 1.0, before.Seats[1].Bet)
	assert.Equal(t, 4.0, tbl.LatestSnapshot().Pot)
}

func TestSnapshotRoundsMoneyToCents(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 1, "alice", 33.333333)
	require.NoError(t, tbl.StartHand())

	snap := tbl.LatestSnapshot()
	require.NotNil(t, snap)
	require.NotNil(t, snap.Seats[0])
	assert.Equal(t, 33.33, snap.Seats[0].Stack)
}

func TestSnapshotEmptySeatsAreNil(t *testing.T) {
	tbl := newTestTable(40)
	sit(t, tbl, 2, "alice", 100)
	require.NoError(t, tbl.StartHand())

	snap := tbl.LatestSnapshot()
	require.Len(t, snap.Seats, 5)
	assert.Nil(t, snap.Seats[0])
	require.NotNil(t, snap.Seats[1])
	assert.Equal(t, "alice", snap.Seats[1].Player.Username)
}

func TestHistoryResetsEachHand(t *testing.T) {
	tbl, _, sb := headsUpTable(t, 40)
	_, err := tbl.HandleFold(sb)
	require.NoError(t, err)
	require.NotEmpty(t, tbl.History())

	require.NoError(t, tbl.StartHand())
	// one snapshot before the blinds, one after
	history := tbl.History()
	require.Len(t, history, 2)
	assert.Equal(t, 0.0, history[0].Pot)
	assert.Equal(t, 3.0, history[1].Pot)
	assert.Empty(t, history[1].WinMessages)
}

func TestSnapshotRecordsStageAndSidePots(t *testing.T) {
	tbl, _, _, _ := allInTable(t)

	snap := tbl.LatestSnapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "flop", snap.Stage)
	require.Len(t, snap.SidePots, 1)
	assert.Equal(t, 20.0, snap.SidePots[0].Amount)
	assert.Equal(t, []int{2, 3}, snap.SidePots[0].Players)

	// mutating the snapshot's copy must not touch the table
	snap.SidePots[0].Players[0] = 99
	assert.Equal(t, []int{2, 3}, tbl.sidePots[0].Players)
}
