package game

import "math"

// PlayerView is the sanitized player identity included in snapshots.
type PlayerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SeatView is the sanitized per-seat state included in snapshots. Money is
// rounded to cents at snapshot time only.
type SeatView struct {
	ID         int        `json:"id"`
	Player     PlayerView `json:"player"`
	Stack      float64    `json:"stack"`
	Bet        float64    `json:"bet"`
	Hand       []Card     `json:"hand"`
	Folded     bool       `json:"folded"`
	Checked    bool       `json:"checked"`
	SittingOut bool       `json:"sittingOut"`
	Turn       bool       `json:"turn"`
	LastAction Action     `json:"lastAction"`
}

// Snapshot is one immutable history entry: a deep copy of everything a
// client needs to render the table, appended after every meaningful state
// change and never mutated afterwards.
type Snapshot struct {
	Pot         float64     `json:"pot"`
	MainPot     float64     `json:"mainPot"`
	SidePots    []SidePot   `json:"sidePots"`
	Board       []Card      `json:"board"`
	Seats       []*SeatView `json:"seats"`
	Button      int         `json:"button"`
	Turn        int         `json:"turn"`
	Stage       string      `json:"stage"`
	WinMessages []string    `json:"winMessages"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// updateHistory appends a deep, independent copy of the current state.
func (t *Table) updateHistory() {
	snap := &Snapshot{
		Pot:     roundCents(t.pot),
		MainPot: roundCents(t.mainPot),
		Board:   append([]Card(nil), t.board...),
		Button:  t.button,
		Turn:    t.turn,
		Stage:   t.stage.String(),
		Seats:   make([]*SeatView, t.maxPlayers),
	}

	for _, sp := range t.sidePots {
		snap.SidePots = append(snap.SidePots, sp.copy())
	}
	snap.WinMessages = append(snap.WinMessages, t.winMessages...)

	for i, seat := range t.seats {
		if seat == nil {
			continue
		}
		snap.Seats[i] = &SeatView{
			ID: seat.id,
			Player: PlayerView{
				ID:       seat.player.ID.String(),
				Username: seat.player.Name,
			},
			Stack:      roundCents(seat.stack),
			Bet:        roundCents(seat.bet),
			Hand:       append([]Card(nil), seat.hand...),
			Folded:     seat.folded,
			Checked:    seat.checked,
			SittingOut: seat.sittingOut,
			Turn:       seat.turn,
			LastAction: seat.lastAction,
		}
	}

	t.history = append(t.history, snap)
}

// History returns the ordered snapshot log of the current hand.
func (t *Table) History() []*Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Snapshot(nil), t.history...)
}

// LatestSnapshot returns the most recent history entry, or nil before the
// first state change.
func (t *Table) LatestSnapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.history) == 0 {
		return nil
	}
	return t.history[len(t.history)-1]
}
