package report

import (
	"testing"

	"github.com/jrosebr1/pythonfintech/profit"
	"github.com/jrosebr1/pythonfintech/risk"
	"github.com/jrosebr1/pythonfintech/runs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGroupings(t *testing.T) {
	out := Groupings("sample", []int{3, 4, 5, 9}, 3, 0, []runs.Range{{Start: 3, End: 5}})
	require.Contains(t, out, "Consecutive groups: sample")
	require.Contains(t, out, "min_consecutive=3")
	require.Contains(t, out, "Start")
	require.Contains(t, out, "Length")

	empty := Groupings("none", []int{1, 3}, 2, 0, nil)
	require.Contains(t, empty, "no run meets the threshold")
	require.NotContains(t, empty, "Length")
}

func TestTradePlanAndLevels(t *testing.T) {
	plan, err := risk.NewPlan(risk.Trade{
		AccountValue:   decimal.NewFromInt(10000),
		EntryPrice:     decimal.NewFromInt(100),
		StopPrice:      decimal.RequireFromString("99.9"),
		RiskRate:       decimal.RequireFromString("0.01"),
		PricePrecision: 2,
	})
	require.NoError(t, err)

	out := TradePlan(plan)
	require.Contains(t, out, "R-multiple trade plan")
	require.Contains(t, out, "10000.00")
	require.Contains(t, out, "1.00%")
	require.Contains(t, out, "capped by buying power")

	levels := Levels(profit.Project(plan, profit.DefaultMultiples()))
	require.Contains(t, levels, "-1R")
	require.Contains(t, levels, "5R")
	require.Contains(t, levels, "100.5")
	require.Contains(t, levels, "50.00")
}
