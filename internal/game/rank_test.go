package game

import (
	"testing"

	"github.com/alexclewontin/riverboat/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank, suit string) Card {
	return Card{Suit: suit, Rank: rank}
}

func withBoard(board []Card, hole ...Card) []Card {
	return append(append([]Card(nil), hole...), board...)
}

func TestCardPackingMatchesEvaluator(t *testing.T) {
	// every card must produce the exact bit layout the evaluator's perfect
	// hash expects
	cases := map[string]Card{
		"2C": card("2", "♣"),
		"9D": card("9", "♦"),
		"TH": card("T", "♥"),
		"AS": card("A", "♠"),
		"KD": card("K", "♦"),
	}
	for str, c := range cases {
		assert.Equal(t, eval.MustParseCardString(str), toEvalCard(c), str)
	}
}

func TestRankerPicksStrongerHand(t *testing.T) {
	board := []Card{
		card("A", "♦"), card("A", "♣"), card("7", "♠"), card("8", "♥"), card("3", "♦"),
	}

	winners := NewRanker().Winners([]Entrant{
		{SeatID: 1, Cards: withBoard(board, card("A", "♠"), card("A", "♥"))},
		{SeatID: 2, Cards: withBoard(board, card("K", "♦"), card("2", "♣"))},
	})

	require.Len(t, winners, 1)
	assert.Equal(t, 1, winners[0].SeatID)
	assert.Equal(t, "Four of a Kind", winners[0].Description)
}

func TestRankerTieWhenBoardPlays(t *testing.T) {
	board := []Card{
		card("T", "♠"), card("J", "♠"), card("Q", "♠"), card("K", "♠"), card("A", "♠"),
	}

	winners := NewRanker().Winners([]Entrant{
		{SeatID: 1, Cards: withBoard(board, card("2", "♥"), card("3", "♦"))},
		{SeatID: 2, Cards: withBoard(board, card("4", "♣"), card("5", "♥"))},
	})

	require.Len(t, winners, 2)
	assert.Equal(t, winners[0].Description, winners[1].Description)
	assert.Equal(t, "Royal Flush", winners[0].Description)
}

func TestRankerSkipsIncompleteHands(t *testing.T) {
	winners := NewRanker().Winners([]Entrant{
		{SeatID: 1, Cards: []Card{card("A", "♠"), card("K", "♠")}},
	})
	assert.Empty(t, winners)
}
