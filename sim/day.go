package sim

// DayResult holds the deltas produced by a single Step.
// It is a pure data record: the engine never retains it.
type DayResult struct {
	Day              int64 `json:"day"`
	OldPlayers       int64 `json:"old_players"`
	NewPlayers       int64 `json:"new_players"`
	NewWinners       int64 `json:"new_winners"`
	NewIncome        int64 `json:"new_income"`
	NewPayed         int64 `json:"new_payed"`
	NewTicketsIssued int64 `json:"new_tickets_issued"`

	// Tier in effect at the start of the day; WinAmount and Each are the
	// factors behind NewPayed and NewWinners.
	TierIndex   int   `json:"tier_index"`
	WinAmount   int64 `json:"win_amount"`
	Each        int64 `json:"each"`
	TicketPrice int64 `json:"ticket_price"`

	TierAdvanced bool `json:"tier_advanced"` // the day moved the engine to the next tier
	Exhausted    bool `json:"exhausted"`     // the engine is in the terminal state after this day
}

// Totals is a snapshot of the cumulative counters of a simulation.
type Totals struct {
	Days          int64 `json:"total_days"`
	Players       int64 `json:"total_players"`
	Winners       int64 `json:"total_winners"`
	Income        int64 `json:"total_income"`
	Payed         int64 `json:"total_payed"`
	TicketsIssued int64 `json:"total_tickets_issued"`
}

// apply adds the day's deltas to the totals.
func (t *Totals) apply(day DayResult) {
	t.Days = day.Day
	t.Players += day.NewPlayers
	t.Winners += day.NewWinners
	t.Income += day.NewIncome
	t.Payed += day.NewPayed
	t.TicketsIssued += day.NewTicketsIssued
}
