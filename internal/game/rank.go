package game

import "github.com/alexclewontin/riverboat/eval"

// Entrant is one showdown participant: a seat and its seven cards (two hole
// cards plus the board).
type Entrant struct {
	SeatID int
	Cards  []Card
}

// Winner is a pot winner with a human-readable hand description. Ties
// produce multiple winners for the same pot.
type Winner struct {
	SeatID      int
	Description string
}

// Ranker is the hand-ranking oracle: given every participant's cards, it
// returns the winning subset. The engine never compares hands itself, which
// keeps showdown resolution swappable and lets tests rig deterministic
// outcomes.
type Ranker interface {
	Winners(entrants []Entrant) []Winner
}

// riverboatRanker evaluates hands with the riverboat seven-card evaluator.
type riverboatRanker struct{}

// NewRanker returns the default hand-ranking oracle.
func NewRanker() Ranker {
	return riverboatRanker{}
}

func (riverboatRanker) Winners(entrants []Entrant) []Winner {
	// riverboat scores are lower-is-better
	best := int(^uint(0) >> 1)
	var winners []Winner

	for _, entrant := range entrants {
		if len(entrant.Cards) < 7 {
			continue
		}
		cards := make([]eval.Card, 7)
		for i := 0; i < 7; i++ {
			cards[i] = toEvalCard(entrant.Cards[i])
		}
		_, score := eval.BestFiveOfSeven(
			cards[0], cards[1], cards[2], cards[3], cards[4], cards[5], cards[6])

		switch {
		case score < best:
			best = score
			winners = []Winner{{SeatID: entrant.SeatID, Description: handRankName(score)}}
		case score == best:
			winners = append(winners, Winner{SeatID: entrant.SeatID, Description: handRankName(score)})
		}
	}
	return winners
}

// evalSuitBits and evalPrimes follow the riverboat card layout, indexed in
// step with the suits and ranks tables.
var (
	evalSuitBits = [4]int32{0x1000, 0x2000, 0x4000, 0x8000}
	evalPrimes   = [13]int32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}
)

// toEvalCard packs a Card into riverboat's 32-bit layout: a rank bit above
// bit 16, a suit bit, the rank nibble and the rank prime.
func toEvalCard(card Card) eval.Card {
	var suit int32
	for i, s := range suits {
		if card.Suit == s {
			suit = evalSuitBits[i]
			break
		}
	}

	var rank int32
	for i, r := range ranks {
		if card.Rank == r {
			rank = int32(i)
			break
		}
	}

	return eval.Card(int32(1)<<(16+rank) | suit | rank<<8 | evalPrimes[rank])
}

// handRankName maps a riverboat score, 1 best through 7462 worst, to a hand
// class name.
func handRankName(score int) string {
	switch {
	case score == 1:
		return "Royal Flush"
	case score <= 10:
		return "Straight Flush"
	case score <= 166:
		return "Four of a Kind"
	case score <= 322:
		return "Full House"
	case score <= 1599:
		return "Flush"
	case score <= 1609:
		return "Straight"
	case score <= 2467:
		return "Three of a Kind"
	case score <= 3325:
		return "Two Pair"
	case score <= 6185:
		return "One Pair"
	default:
		return "High Card"
	}
}
