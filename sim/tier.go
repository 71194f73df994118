// sim/tier.go
package sim

// TierSpec describes one prize bracket of the lottery.
// A tier stays active until the cumulative number of issued tickets
// exceeds its MaxRange; tiers are consumed in order and never revisited.
type TierSpec struct {
	WinAmount     int64 `json:"win_amount"`     // payout per winning ticket (currency units)
	MaxRange      int64 `json:"max_range"`      // cumulative ticket threshold at which the tier ends
	NWins         int64 `json:"n_wins"`         // expected number of wins; informational only
	Each          int64 `json:"each"`           // one winner per Each tickets
	IssuedTickets int64 `json:"issued_tickets"` // ticket capacity of the tier; informational only
}

// tierTable is the fixed prize schedule. MaxRange is strictly increasing.
var tierTable = [...]TierSpec{
	{WinAmount: 50, MaxRange: 3_000_000, NWins: 1_000_000, Each: 3, IssuedTickets: 3_000_000},
	{WinAmount: 100, MaxRange: 6_000_000, NWins: 500_000, Each: 6, IssuedTickets: 3_000_000},
	{WinAmount: 200, MaxRange: 9_000_000, NWins: 250_000, Each: 12, IssuedTickets: 3_000_000},
	{WinAmount: 500, MaxRange: 16_500_000, NWins: 250_000, Each: 30, IssuedTickets: 7_500_000},

	{WinAmount: 1000, MaxRange: 22_500_000, NWins: 100_000, Each: 60, IssuedTickets: 6_000_000},
	{WinAmount: 2000, MaxRange: 25_500_000, NWins: 25_000, Each: 120, IssuedTickets: 3_000_000},
	{WinAmount: 3000, MaxRange: 29_000_000, NWins: 17_500, Each: 200, IssuedTickets: 3_500_000},
	{WinAmount: 5000, MaxRange: 32_000_000, NWins: 10_000, Each: 300, IssuedTickets: 3_000_000},
}

// DefaultTiers returns a copy of the fixed tier table.
// Mutating the returned slice has no effect on any Engine.
func DefaultTiers() []TierSpec {
	tiers := make([]TierSpec, len(tierTable))
	copy(tiers, tierTable[:])
	return tiers
}

// NumTiers is the number of entries in the tier table.
const NumTiers = len(tierTable)
