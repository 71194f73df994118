package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lottery-sim/lottery-sim/sim"
)

// TableRenderer prints simulation progress as plain text. It implements
// driver.Observer and marks every tier reached since the last reset.
type TableRenderer struct {
	w         io.Writer
	p         *message.Printer
	currency  string
	tiers     []sim.TierSpec
	reached   map[int]bool
	exhausted bool
}

// NewTableRenderer creates a renderer writing to w. locale is a BCP 47 tag
// used for digit grouping; currency is appended to money amounts.
func NewTableRenderer(w io.Writer, locale, currency string) (*TableRenderer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &TableRenderer{
		w:        w,
		p:        message.NewPrinter(tag),
		currency: currency,
		tiers:    sim.DefaultTiers(),
		reached:  map[int]bool{0: true},
	}, nil
}

func (r *TableRenderer) num(v int64) string    { return r.p.Sprintf("%d", v) }
func (r *TableRenderer) money(v int64) string  { return r.num(v) + r.currency }
func (r *TableRenderer) signed(v int64) string { return "+" + r.num(v) }

// TicketsFormula renders "new + old".
func (r *TableRenderer) TicketsFormula(day sim.DayResult) string {
	return r.num(day.NewPlayers) + " + " + r.num(day.OldPlayers)
}

// IncomeFormula renders "(new + old) × price".
func (r *TableRenderer) IncomeFormula(day sim.DayResult) string {
	return "(" + r.TicketsFormula(day) + ") × " + r.money(day.TicketPrice)
}

// PayedFormula renders "winners × win_amount".
func (r *TableRenderer) PayedFormula(day sim.DayResult) string {
	return r.num(day.NewWinners) + " × " + r.money(day.WinAmount)
}

// RenderTiers prints the tier table; reached tiers are marked with '*'.
func (r *TableRenderer) RenderTiers() {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\t#\twin_amount\tmax_range\tn_wins\teach\tissued_tickets\t")
	for i, tier := range r.tiers {
		mark := ""
		if r.reached[i] {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n", mark, i,
			r.num(tier.WinAmount), r.num(tier.MaxRange), r.num(tier.NWins),
			r.num(tier.Each), r.num(tier.IssuedTickets))
	}
	_ = tw.Flush()
}

// renderTotals prints the cumulative counters with the day's deltas.
func (r *TableRenderer) renderTotals(totals sim.Totals, day sim.DayResult) {
	tw := tabwriter.NewWriter(r.w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Day\t: %s\t%s\n", r.num(totals.Days), r.signed(day.Day))
	fmt.Fprintf(tw, "Players\t: %s\t%s\n", r.num(totals.Players), r.signed(day.NewPlayers))
	fmt.Fprintf(tw, "Winners\t: %s\t%s\n", r.num(totals.Winners), r.signed(day.NewWinners))
	fmt.Fprintf(tw, "Tickets issued\t: %s\t%s = %s\n", r.num(totals.TicketsIssued), r.signed(day.NewTicketsIssued), r.TicketsFormula(day))
	fmt.Fprintf(tw, "Income\t: %s\t%s = %s\n", r.money(totals.Income), r.signed(day.NewIncome)+r.currency, r.IncomeFormula(day))
	fmt.Fprintf(tw, "Payed\t: %s\t%s = %s\n", r.money(totals.Payed), r.signed(day.NewPayed)+r.currency, r.PayedFormula(day))
	_ = tw.Flush()
}

// ObserveDay prints the day's totals and deltas. The tier table is
// reprinted whenever the tier changes.
func (r *TableRenderer) ObserveDay(day sim.DayResult, totals sim.Totals) {
	current := day.TierIndex
	if day.TierAdvanced {
		current++
	}
	r.reached[current] = true

	r.renderTotals(totals, day)
	if day.TierAdvanced {
		fmt.Fprintf(r.w, "-- tier %d reached --\n", current)
		r.RenderTiers()
	}
	if day.Exhausted && !r.exhausted {
		r.exhausted = true
		fmt.Fprintln(r.w, "-- final tier exhausted --")
	}
	fmt.Fprintln(r.w)
}

// ObserveReset clears the reached markers and prints the zero state.
func (r *TableRenderer) ObserveReset(totals sim.Totals) {
	r.reached = map[int]bool{0: true}
	r.exhausted = false
	fmt.Fprintln(r.w, "-- reset --")
	r.renderTotals(totals, sim.DayResult{TicketPrice: sim.TicketPrice, WinAmount: r.tiers[0].WinAmount})
	r.RenderTiers()
	fmt.Fprintln(r.w)
}
