// Package report renders demo results as terminal tables.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jrosebr1/pythonfintech/profit"
	"github.com/jrosebr1/pythonfintech/risk"
	"github.com/jrosebr1/pythonfintech/runs"
	"github.com/jrosebr1/pythonfintech/utils"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// Groupings renders the qualifying runs found in values.
func Groupings(name string, values []int, minConsecutive, offset int, ranges []runs.Range) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Consecutive groups: %s", name)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d values, min_consecutive=%d, offset=%d", len(values), minConsecutive, offset)))
	b.WriteString("\n")

	if len(ranges) == 0 {
		b.WriteString(mutedStyle.Render("no run meets the threshold"))
		b.WriteString("\n")
		return b.String()
	}

	t := newTable("#", "Start", "End", "Length")
	for i, r := range ranges {
		t.Row(strconv.Itoa(i+1), strconv.Itoa(r.Start), strconv.Itoa(r.End), strconv.Itoa(r.Len()))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// TradePlan renders the position sizing of plan.
func TradePlan(plan *risk.Plan) string {
	t := newTable("Field", "Value")
	t.Rows(
		[]string{"Side", plan.Side()},
		[]string{"Account value", plan.Trade.AccountValue.StringFixed(2)},
		[]string{"Entry price", plan.Trade.EntryPrice.String()},
		[]string{"Stop price", plan.Trade.StopPrice.String()},
		[]string{"Risk rate", utils.Percent(plan.Trade.RiskRate)},
		[]string{"Risk per share", plan.RiskPerShare.String()},
		[]string{"1R (risk amount)", plan.RiskAmount.StringFixed(2)},
		[]string{"Shares", plan.Shares.String()},
		[]string{"Position value", plan.PositionValue.StringFixed(2)},
		[]string{"Capital at risk", plan.CapitalAtRisk.StringFixed(2)},
		[]string{"Position size", utils.Percent(plan.PositionPct)},
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("R-multiple trade plan"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	if plan.Capped {
		b.WriteString(mutedStyle.Render("share count capped by buying power"))
		b.WriteString("\n")
	}
	return b.String()
}

// Levels renders the projected exit prices and P&L per R multiple.
func Levels(levels []profit.Level) string {
	t := newTable("R", "Price", "P&L", "Return")
	for _, l := range levels {
		t.Row(l.Multiple.String()+"R", l.Price.String(), l.PnL.StringFixed(2), utils.Percent(l.ReturnPct))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("R levels"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
