package game

// SidePot is a pot segment created when an all-in caps how much of the other
// players' further bets the all-in seat can contest. Players holds the seat
// numbers eligible to win the segment.
type SidePot struct {
	Amount  float64 `json:"amount"`
	Players []int   `json:"players"`
}

func (sp SidePot) copy() SidePot {
	players := make([]int, len(sp.Players))
	copy(players, sp.Players)
	return SidePot{Amount: sp.Amount, Players: players}
}
