package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, d(want).Equal(got), "want %s, have %s", want, got)
}

func TestNewPlanLong(t *testing.T) {
	plan, err := NewPlan(Trade{
		AccountValue: d("10000"),
		EntryPrice:   d("50"),
		StopPrice:    d("48"),
		RiskRate:     d("0.01"),
	})
	require.NoError(t, err)

	requireDecimal(t, "2", plan.RiskPerShare)
	requireDecimal(t, "100", plan.RiskAmount)
	requireDecimal(t, "50", plan.Shares)
	requireDecimal(t, "2500", plan.PositionValue)
	requireDecimal(t, "100", plan.CapitalAtRisk)
	requireDecimal(t, "0.25", plan.PositionPct)
	require.False(t, plan.Capped)
	require.Equal(t, "long", plan.Side())
}

func TestNewPlanShort(t *testing.T) {
	plan, err := NewPlan(Trade{
		AccountValue: d("10000"),
		EntryPrice:   d("20"),
		StopPrice:    d("21"),
		RiskRate:     d("0.02"),
		Short:        true,
	})
	require.NoError(t, err)

	requireDecimal(t, "1", plan.RiskPerShare)
	requireDecimal(t, "200", plan.Shares)
	requireDecimal(t, "4000", plan.PositionValue)
	require.Equal(t, "short", plan.Side())
	require.Contains(t, plan.String(), "short 200 shares")
}

func TestNewPlanBuyingPowerCap(t *testing.T) {
	plan, err := NewPlan(Trade{
		AccountValue: d("10000"),
		EntryPrice:   d("100"),
		StopPrice:    d("99.9"),
		RiskRate:     d("0.01"),
	})
	require.NoError(t, err)

	requireDecimal(t, "100", plan.Shares)
	requireDecimal(t, "10000", plan.PositionValue)
	requireDecimal(t, "10", plan.CapitalAtRisk)
	require.True(t, plan.Capped)
}

func TestNewPlanLotSize(t *testing.T) {
	plan, err := NewPlan(Trade{
		AccountValue: d("10000"),
		EntryPrice:   d("50"),
		StopPrice:    d("47"),
		RiskRate:     d("0.01"),
		LotSize:      10,
	})
	require.NoError(t, err)

	requireDecimal(t, "30", plan.Shares)
	requireDecimal(t, "90", plan.CapitalAtRisk)
}

func TestNewPlanInvalid(t *testing.T) {
	valid := Trade{
		AccountValue: d("10000"),
		EntryPrice:   d("50"),
		StopPrice:    d("48"),
		RiskRate:     d("0.01"),
	}

	testCases := []struct {
		name   string
		mutate func(*Trade)
	}{
		{"zero account", func(t *Trade) { t.AccountValue = decimal.Zero }},
		{"negative entry", func(t *Trade) { t.EntryPrice = d("-1") }},
		{"zero stop", func(t *Trade) { t.StopPrice = decimal.Zero }},
		{"zero risk rate", func(t *Trade) { t.RiskRate = decimal.Zero }},
		{"risk rate above one", func(t *Trade) { t.RiskRate = d("1.5") }},
		{"long stop above entry", func(t *Trade) { t.StopPrice = d("51") }},
		{"long stop at entry", func(t *Trade) { t.StopPrice = d("50") }},
		{"short stop below entry", func(t *Trade) { t.Short = true }},
		{"negative lot", func(t *Trade) { t.LotSize = -1 }},
		{"negative precision", func(t *Trade) { t.PricePrecision = -2 }},
		{"negative tick size", func(t *Trade) { t.TickSize = d("-0.05") }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := valid
			tc.mutate(&trade)
			plan, err := NewPlan(trade)
			require.ErrorIs(t, err, ErrInvalidTrade)
			require.Nil(t, plan)
		})
	}
}
