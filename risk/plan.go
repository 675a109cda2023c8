// risk/plan.go
package risk

import (
	"errors"
	"fmt"

	"github.com/jrosebr1/pythonfintech/utils"
	"github.com/shopspring/decimal"
)

// ErrInvalidTrade is returned when a Trade cannot be sized.
var ErrInvalidTrade = errors.New("invalid trade")

// Trade holds the inputs of a single sizing request.
type Trade struct {
	AccountValue   decimal.Decimal
	EntryPrice     decimal.Decimal
	StopPrice      decimal.Decimal
	RiskRate       decimal.Decimal // fraction of the account risked, e.g. 0.01
	Short          bool
	LotSize        int64           // shares are bought in multiples of this; 0 means 1
	PricePrecision int32           // decimals used when rounding target prices
	TickSize       decimal.Decimal // target prices snap to multiples of this; zero disables
}

// Plan is the derived position sizing for a Trade. 1R equals RiskAmount.
type Plan struct {
	Trade Trade

	RiskPerShare  decimal.Decimal
	RiskAmount    decimal.Decimal
	Shares        decimal.Decimal
	PositionValue decimal.Decimal
	CapitalAtRisk decimal.Decimal
	PositionPct   decimal.Decimal

	// Capped reports whether buying power, not risk, limited the share count.
	Capped bool
}

// Validate checks that the trade inputs are consistent.
func (t Trade) Validate() error {
	if !t.AccountValue.IsPositive() {
		return fmt.Errorf("%w: account value must be positive, got %s", ErrInvalidTrade, t.AccountValue)
	}
	if !t.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry price must be positive, got %s", ErrInvalidTrade, t.EntryPrice)
	}
	if !t.StopPrice.IsPositive() {
		return fmt.Errorf("%w: stop price must be positive, got %s", ErrInvalidTrade, t.StopPrice)
	}
	if !t.RiskRate.IsPositive() || t.RiskRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: risk rate must be in (0, 1], got %s", ErrInvalidTrade, t.RiskRate)
	}
	if t.Short && !t.StopPrice.GreaterThan(t.EntryPrice) {
		return fmt.Errorf("%w: short stop %s must be above entry %s", ErrInvalidTrade, t.StopPrice, t.EntryPrice)
	}
	if !t.Short && !t.StopPrice.LessThan(t.EntryPrice) {
		return fmt.Errorf("%w: long stop %s must be below entry %s", ErrInvalidTrade, t.StopPrice, t.EntryPrice)
	}
	if t.LotSize < 0 {
		return fmt.Errorf("%w: lot size cannot be negative, got %d", ErrInvalidTrade, t.LotSize)
	}
	if t.TickSize.IsNegative() {
		return fmt.Errorf("%w: tick size cannot be negative, got %s", ErrInvalidTrade, t.TickSize)
	}
	if t.PricePrecision < 0 {
		return fmt.Errorf("%w: price precision cannot be negative, got %d", ErrInvalidTrade, t.PricePrecision)
	}
	return nil
}

// NewPlan sizes a position so that hitting the stop loses at most RiskRate of the account.
func NewPlan(t Trade) (*Plan, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	lot := decimal.NewFromInt(1)
	if t.LotSize > 0 {
		lot = decimal.NewFromInt(t.LotSize)
	}

	riskPerShare := t.EntryPrice.Sub(t.StopPrice).Abs()
	riskAmount := t.AccountValue.Mul(t.RiskRate)

	shares := utils.FloorToStep(riskAmount.Div(riskPerShare), lot)
	affordable := utils.FloorToStep(t.AccountValue.Div(t.EntryPrice), lot)
	capped := false
	if shares.GreaterThan(affordable) {
		shares = affordable
		capped = true
	}

	positionValue := shares.Mul(t.EntryPrice)

	return &Plan{
		Trade:         t,
		RiskPerShare:  riskPerShare,
		RiskAmount:    riskAmount,
		Shares:        shares,
		PositionValue: positionValue,
		CapitalAtRisk: shares.Mul(riskPerShare),
		PositionPct:   positionValue.Div(t.AccountValue),
		Capped:        capped,
	}, nil
}

// Side returns "long" or "short".
func (p *Plan) Side() string {
	if p.Trade.Short {
		return "short"
	}
	return "long"
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s %s shares @ %s, stop %s, 1R = %s (risking %s)",
		p.Side(), p.Shares, p.Trade.EntryPrice, p.Trade.StopPrice, p.RiskAmount.StringFixed(2), p.CapitalAtRisk.StringFixed(2))
}
