package game

import "github.com/google/uuid"

// Action is the tag of the most recent action a seat took this street.
type Action string

const (
	ActionNone  Action = ""
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

// Player is the external identity occupying a seat. The table owns the seat,
// not the player.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"username"`
}

// Seat holds the per-position player and financial state for one position at
// the table. stack is chips not yet wagered this hand, bet is chips committed
// this street; chips move from bet into the pot at street boundaries.
type Seat struct {
	id         int
	player     Player
	stack      float64
	bet        float64
	hand       []Card
	folded     bool
	checked    bool
	sittingOut bool
	turn       bool
	lastAction Action
}

func newSeat(id int, player Player, amount float64) *Seat {
	return &Seat{
		id:     id,
		player: player,
		stack:  amount,
	}
}

// placeBlind posts a forced bet, capped at the remaining stack, and returns
// the amount actually posted.
func (s *Seat) placeBlind(amount float64) float64 {
	if amount > s.stack {
		amount = s.stack
	}
	s.bet += amount
	s.stack -= amount
	return amount
}

func (s *Seat) fold() {
	s.folded = true
	s.lastAction = ActionFold
}

func (s *Seat) check() {
	s.checked = true
	s.lastAction = ActionCheck
}

// callRaise matches the outstanding call amount, going all-in if the stack
// cannot cover it. Returns the chips moved out of the stack.
func (s *Seat) callRaise(callAmount float64) float64 {
	s.lastAction = ActionCall

	added := callAmount - s.bet
	if added > s.stack {
		added = s.stack
	}
	s.bet += added
	s.stack -= added
	return added
}

// raiseTo sets the seat's total street bet and returns the chips moved out
// of the stack.
func (s *Seat) raiseTo(amount float64) float64 {
	s.lastAction = ActionRaise

	added := amount - s.bet
	s.bet = amount
	s.stack -= added
	return added
}

// winHand credits a payout to the seat's stack.
func (s *Seat) winHand(amount float64) {
	s.stack += amount
	s.bet = 0
	s.turn = false
}

func (s *Seat) allIn() bool {
	return s.stack == 0 && s.bet > 0
}
