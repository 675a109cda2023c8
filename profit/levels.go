// profit/levels.go
package profit

import (
	"github.com/jrosebr1/pythonfintech/risk"
	"github.com/jrosebr1/pythonfintech/utils"
	"github.com/shopspring/decimal"
)

// Level is the projected outcome of exiting a planned position at a multiple of its risk.
type Level struct {
	Multiple  decimal.Decimal // R multiple, negative for losses
	Price     decimal.Decimal // exit price reached at this multiple
	PnL       decimal.Decimal // profit (or loss) for the whole position
	ReturnPct decimal.Decimal // PnL as a fraction of the account
}

// DefaultMultiples returns the levels shown when none are configured: the stop and 1R to 5R.
func DefaultMultiples() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(-1),
		decimal.NewFromInt(1),
		decimal.NewFromInt(2),
		decimal.NewFromInt(3),
		decimal.NewFromInt(4),
		decimal.NewFromInt(5),
	}
}

// Project computes the exit price and P&L of plan at each multiple, in the given order.
// Exit prices are rounded to the trade's precision and then snapped to its tick size.
// Multiples that would need a non-positive exit price are skipped.
func Project(plan *risk.Plan, multiples []decimal.Decimal) []Level {
	entry := plan.Trade.EntryPrice
	levels := make([]Level, 0, len(multiples))

	for _, m := range multiples {
		move := plan.RiskPerShare.Mul(m)

		var price decimal.Decimal
		if plan.Trade.Short {
			price = entry.Sub(move)
		} else {
			price = entry.Add(move)
		}
		price = utils.RoundToPrecision(price, plan.Trade.PricePrecision)
		price = utils.AdjustPriceToTickSize(price, plan.Trade.TickSize)
		if !price.IsPositive() {
			continue
		}

		// Long P&L = (exit - entry) * qty, short P&L = (entry - exit) * qty
		var pnl decimal.Decimal
		if plan.Trade.Short {
			pnl = entry.Sub(price).Mul(plan.Shares)
		} else {
			pnl = price.Sub(entry).Mul(plan.Shares)
		}

		levels = append(levels, Level{
			Multiple:  m,
			Price:     price,
			PnL:       pnl,
			ReturnPct: pnl.Div(plan.Trade.AccountValue),
		})
	}

	return levels
}
