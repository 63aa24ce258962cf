package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck()
	require.Equal(t, 52, deck.Remaining())

	seen := make(map[string]bool)
	for i := 0; i < 52; i++ {
		card := deck.Draw()
		assert.NotEmpty(t, card.Suit)
		assert.NotEmpty(t, card.Rank)
		assert.False(t, seen[card.String()], "duplicate card %s", card)
		seen[card.String()] = true
	}
	assert.Equal(t, 0, deck.Remaining())
}

func TestDrawRemovesCard(t *testing.T) {
	deck := NewDeck()
	deck.Draw()
	assert.Equal(t, 51, deck.Remaining())
}

func TestDrawPastExhaustionReturnsZeroCard(t *testing.T) {
	deck := NewDeck()
	for i := 0; i < 52; i++ {
		deck.Draw()
	}
	assert.Equal(t, Card{}, deck.Draw())
}

func TestDecksAreShuffledIndependently(t *testing.T) {
	// 52 cards in identical order across five fresh decks is practically
	// impossible with a uniform shuffle
	first := NewDeck()
	identical := true
	for i := 0; i < 5 && identical; i++ {
		other := NewDeck()
		for j := range first.cards {
			if first.cards[j] != other.cards[j] {
				identical = false
				break
			}
		}
	}
	assert.False(t, identical)
}
