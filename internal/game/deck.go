package game

import "math/rand"

// Deck is the card supply for a single hand. It is created freshly shuffled
// and hands out every card exactly once.
type Deck struct {
	cards []Card
}

// NewDeck creates a new standard 52-card deck in uniformly random order.
func NewDeck() *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
	}

	for _, suit := range suits {
		for i, rank := range ranks {
			deck.cards = append(deck.cards, Card{
				Suit:  suit,
				Rank:  rank,
				Value: i + 2, // 2=2, 3=3, ..., T=10, J=11, Q=12, K=13, A=14
			})
		}
	}

	rand.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})

	return deck
}

// Draw removes and returns the next card. A single hand never draws more
// than 52 cards; drawing from an empty deck returns the zero Card.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		return Card{}
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
