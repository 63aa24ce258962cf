package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Stage represents the current stage of a poker hand
type Stage int

const (
	Waiting Stage = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Table is the authoritative state of one poker table. It owns all seats,
// the deck, the board and the pots, and drives the hand lifecycle as a side
// effect of processing player actions. All exported methods serialize on an
// internal mutex, so a table is safe for one action at a time from any
// number of goroutines.
type Table struct {
	mu sync.Mutex

	id         uuid.UUID
	name       string
	limit      float64
	maxPlayers int

	// seats is indexed by seat number - 1; nil entries are empty seats.
	seats []*Seat

	board      []Card
	deck       *Deck
	button     int // seat numbers, 0 means unset
	turn       int
	smallBlind int
	bigBlind   int

	pot        float64
	mainPot    float64
	sidePots   []SidePot
	callAmount float64
	minBet     float64
	minRaise   float64

	stage          Stage
	handID         uuid.UUID
	handOver       bool
	wentToShowdown bool

	winMessages []string
	history     []*Snapshot

	ranker Ranker
}

// New creates a table for the given stake tier. limit drives blind sizing:
// the small blind is limit/40. The ranker resolves showdowns; passing nil
// installs the default evaluator.
func New(id uuid.UUID, name string, limit float64, maxPlayers int, ranker Ranker) *Table {
	if ranker == nil {
		ranker = NewRanker()
	}
	return &Table{
		id:         id,
		name:       name,
		limit:      limit,
		maxPlayers: maxPlayers,
		seats:      make([]*Seat, maxPlayers),
		board:      make([]Card, 0, 5),
		minBet:     limit / 40,
		minRaise:   limit / 20,
		stage:      Waiting,
		handOver:   true,
		ranker:     ranker,
	}
}

func (t *Table) ID() uuid.UUID   { return t.id }
func (t *Table) Name() string    { return t.name }
func (t *Table) Limit() float64  { return t.limit }
func (t *Table) MaxPlayers() int { return t.maxPlayers }

// HandID identifies the current (or most recent) hand.
func (t *Table) HandID() uuid.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handID
}

// HandOver reports whether no hand is currently live.
func (t *Table) HandOver() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handOver
}

// WentToShowdown reports whether the most recent hand reached a showdown.
func (t *Table) WentToShowdown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wentToShowdown
}

// SeatedCount returns the number of occupied seats.
func (t *Table) SeatedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.occupiedSeats())
}

// seat returns the seat at a 1-based seat number, or nil.
func (t *Table) seat(num int) *Seat {
	if num < 1 || num > t.maxPlayers {
		return nil
	}
	return t.seats[num-1]
}

func (t *Table) occupiedSeats() []*Seat {
	var out []*Seat
	for _, s := range t.seats {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t *Table) unfoldedSeats() []*Seat {
	var out []*Seat
	for _, s := range t.seats {
		if s != nil && !s.folded {
			out = append(out, s)
		}
	}
	return out
}

func (t *Table) activeSeats() []*Seat {
	var out []*Seat
	for _, s := range t.seats {
		if s != nil && !s.sittingOut {
			out = append(out, s)
		}
	}
	return out
}

// advance walks the circular seating order starting after seat number from,
// stopping at the places-th seat matching the predicate. Returns 0 if no
// occupied seat matches.
func (t *Table) advance(from, places int, match func(*Seat) bool) int {
	current := from
	for i := 0; i < places; i++ {
		found := false
		for s := 0; s < t.maxPlayers; s++ {
			current = current%t.maxPlayers + 1
			if seat := t.seat(current); seat != nil && match(seat) {
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}
	return current
}

func (t *Table) nextActiveSeat(from, places int) int {
	return t.advance(from, places, func(s *Seat) bool { return !s.sittingOut })
}

func (t *Table) nextUnfoldedSeat(from, places int) int {
	return t.advance(from, places, func(s *Seat) bool { return !s.folded })
}

// prevActiveSeat walks the seating order backwards from the given seat
// number. Returns 0 if no occupied active seat exists.
func (t *Table) prevActiveSeat(from int) int {
	current := from
	for s := 0; s < t.maxPlayers; s++ {
		current--
		if current < 1 {
			current = t.maxPlayers
		}
		if seat := t.seat(current); seat != nil && !seat.sittingOut {
			return current
		}
	}
	return 0
}

func (t *Table) findSeatByPlayer(playerID uuid.UUID) *Seat {
	for _, s := range t.seats {
		if s != nil && s.player.ID == playerID {
			return s
		}
	}
	return nil
}

// SitPlayer seats a player at an empty seat with a starting stack. The first
// player to sit receives the button. Joining while a hand is live leaves the
// seat folded until the next hand.
func (t *Table) SitPlayer(player Player, seatID int, amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seatID < 1 || seatID > t.maxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seatID)
	}
	if t.seats[seatID-1] != nil {
		return fmt.Errorf("%w: seat %d", ErrSeatOccupied, seatID)
	}

	seat := newSeat(seatID, player, amount)
	if !t.handOver {
		seat.folded = true
	}
	t.seats[seatID-1] = seat

	if len(t.occupiedSeats()) == 1 {
		t.button = seatID
	}
	return nil
}

// RebuyPlayer adds chips to a seated player's stack. There is no upper bound.
func (t *Table) RebuyPlayer(seatID int, amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seatID < 1 || seatID > t.maxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seatID)
	}
	seat := t.seats[seatID-1]
	if seat == nil {
		return fmt.Errorf("%w: seat %d", ErrNoSeatedPlayer, seatID)
	}
	seat.stack += amount
	return nil
}

// StandPlayer clears the seat occupied by the given player. If the player is
// live in the current hand it is folded first, so the hand resolves per the
// normal rules; any chips it committed stay in the pot. If exactly one
// occupied seat remains the live pot is awarded to it, and an empty table
// resets completely.
func (t *Table) StandPlayer(playerID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat := t.findSeatByPlayer(playerID)
	if seat == nil {
		return ErrPlayerNotFound
	}

	if !t.handOver && !seat.folded {
		t.foldSeat(seat)
	}

	t.seats[seat.id-1] = nil

	// hand the button to the previous active seat, so the next hand's
	// advance still moves it exactly one seat forward
	if t.button == seat.id {
		t.button = t.prevActiveSeat(seat.id)
	}
	if t.turn == seat.id {
		t.turn = t.nextUnfoldedSeat(seat.id, 1)
		t.refreshTurnFlags()
	}

	remaining := t.occupiedSeats()
	switch len(remaining) {
	case 1:
		if !t.handOver {
			t.endWithoutShowdown()
		}
	case 0:
		t.resetEmptyTable()
	}
	return nil
}

// StartHand begins a new hand: fresh shuffled deck, cleared board and pots,
// button advanced one active seat, hole cards dealt and blinds posted. With
// fewer than two active seats the table stays waiting, though a history
// snapshot is still recorded.
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.handOver {
		return ErrHandInProgress
	}

	t.deck = NewDeck()
	t.handID = uuid.New()
	t.wentToShowdown = false
	t.stage = Waiting
	t.resetBoardAndPots()
	t.clearSeatHands()
	t.resetBetsAndActions()
	t.unfoldSeats()
	t.winMessages = nil
	t.history = nil

	if len(t.activeSeats()) > 1 {
		t.button = t.nextActiveSeat(t.button, 1)
		t.setTurn()
		t.dealPreflop()
		// snapshot the preflop stacks before blinds move chips
		t.updateHistory()
		t.setBlinds()
		t.handOver = false
		t.stage = Preflop
	}

	t.updateHistory()
	return nil
}

func (t *Table) unfoldSeats() {
	for _, s := range t.seats {
		if s != nil {
			s.folded = s.sittingOut
		}
	}
}

// setTurn picks the first seat to act preflop: heads-up and 3-handed the
// button acts first, otherwise three seats after the button.
func (t *Table) setTurn() {
	if len(t.activeSeats()) <= 3 {
		t.turn = t.button
	} else {
		t.turn = t.nextActiveSeat(t.button, 3)
	}
}

func (t *Table) setBlinds() {
	headsUp := len(t.activeSeats()) == 2

	if headsUp {
		t.smallBlind = t.button
		t.bigBlind = t.nextActiveSeat(t.button, 1)
	} else {
		t.smallBlind = t.nextActiveSeat(t.button, 1)
		t.bigBlind = t.nextActiveSeat(t.button, 2)
	}

	posted := t.seat(t.smallBlind).placeBlind(t.minBet)
	posted += t.seat(t.bigBlind).placeBlind(t.minBet * 2)

	t.pot += posted
	t.callAmount = t.minBet * 2
	t.minRaise = t.minBet * 4
}

func (t *Table) dealPreflop() {
	// deal one card at a time in button-relative order, twice around
	order := make([]int, 0, t.maxPlayers)
	for i := 1; i <= t.maxPlayers; i++ {
		order = append(order, (t.button+i-1)%t.maxPlayers+1)
	}

	for round := 0; round < 2; round++ {
		for _, num := range order {
			seat := t.seat(num)
			if seat != nil && !seat.sittingOut {
				seat.hand = append(seat.hand, t.deck.Draw())
				seat.turn = num == t.turn
			}
		}
	}
}

func (t *Table) resetBoardAndPots() {
	t.board = t.board[:0]
	t.pot = 0
	t.mainPot = 0
	t.sidePots = nil
}

func (t *Table) resetBetsAndActions() {
	for _, s := range t.seats {
		if s != nil {
			s.bet = 0
			s.checked = false
			s.lastAction = ActionNone
		}
	}
	t.callAmount = 0
	t.minRaise = t.limit / 200
}

func (t *Table) clearSeatHands() {
	for _, s := range t.seats {
		if s != nil {
			s.hand = nil
		}
	}
}

func (t *Table) clearSeatTurns() {
	for _, s := range t.seats {
		if s != nil {
			s.turn = false
		}
	}
}

func (t *Table) refreshTurnFlags() {
	for _, s := range t.seats {
		if s != nil {
			s.turn = s.id == t.turn
		}
	}
}

func (t *Table) endHand() {
	t.turn = 0
	t.clearSeatTurns()
	t.handOver = true
	t.sitOutFeltedSeats()
	t.updateHistory()
}

// sitOutFeltedSeats marks any seat that lost its whole stack as sitting out.
func (t *Table) sitOutFeltedSeats() {
	for _, s := range t.seats {
		if s != nil && s.stack <= 0 {
			s.sittingOut = true
		}
	}
}

// endWithoutShowdown awards everything on the table, side pots included, to
// the sole unfolded seat.
func (t *Table) endWithoutShowdown() {
	unfolded := t.unfoldedSeats()
	if len(unfolded) > 0 {
		winner := unfolded[0]
		total := t.pot
		for _, sp := range t.sidePots {
			total += sp.Amount
		}
		winner.winHand(total)
		t.winMessages = append(t.winMessages,
			fmt.Sprintf("%s wins $%.2f", winner.player.Name, total))
	}
	t.endHand()
}

func (t *Table) resetEmptyTable() {
	t.button = 0
	t.turn = 0
	t.smallBlind = 0
	t.bigBlind = 0
	t.handOver = true
	t.deck = nil
	t.wentToShowdown = false
	t.stage = Waiting
	t.resetBoardAndPots()
	t.winMessages = nil
	for i := range t.seats {
		t.seats[i] = nil
	}
}
