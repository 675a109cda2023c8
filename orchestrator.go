// orchestrator.go
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jrosebr1/pythonfintech/config"
	"github.com/jrosebr1/pythonfintech/logs"
	"github.com/jrosebr1/pythonfintech/profit"
	"github.com/jrosebr1/pythonfintech/report"
	"github.com/jrosebr1/pythonfintech/risk"
	"github.com/jrosebr1/pythonfintech/runs"
	"github.com/jrosebr1/pythonfintech/state"
	"github.com/shopspring/decimal"
)

// Orchestrator runs every enabled demo once, prints the reports and records the session.
type Orchestrator struct {
	cfg   *config.Config
	store state.Store
	out   io.Writer
	now   func() time.Time
}

func NewOrchestrator(cfg *config.Config, store state.Store, out io.Writer) *Orchestrator {
	return &Orchestrator{
		cfg:   cfg,
		store: store,
		out:   out,
		now:   time.Now,
	}
}

// Run executes the session. A demo that rejects its input is logged and recorded with its
// error; only a failure to persist the session is returned.
func (o *Orchestrator) Run() (*state.Session, error) {
	session := state.NewSession(o.now())
	logs.SetSession(session.ID)
	logs.WithField("session", session.ID).Info("[Orchestrator] Session started.")

	for _, g := range o.cfg.Groupings {
		session.Groupings = append(session.Groupings, o.runGrouping(g))
	}

	if o.cfg.Trade != nil {
		session.Trade = o.runTrade(o.cfg.Trade)
	}

	if err := o.store.Record(session); err != nil {
		return nil, fmt.Errorf("failed to record session %s: %w", session.ID, err)
	}

	o.printFinalSummary(session)
	return session, nil
}

func (o *Orchestrator) runGrouping(g config.GroupingConfig) state.GroupingResult {
	result := state.GroupingResult{
		Name:           g.Name,
		Values:         g.Values,
		MinConsecutive: g.MinConsecutive,
		Offset:         g.Offset,
	}

	groups, err := runs.FindConsecutiveGroups(g.Values, g.MinConsecutive, g.Offset)
	if err != nil {
		logs.Errorf("[Runs] Grouping '%s' rejected: %v", g.Name, err)
		result.Error = err.Error()
		return result
	}
	result.Groups = groups

	logs.Debugf("[Runs] Grouping '%s': %d qualifying runs covering %d of %d values",
		g.Name, len(groups), runs.Covered(groups), len(g.Values))
	fmt.Fprint(o.out, report.Groupings(g.Name, g.Values, g.MinConsecutive, g.Offset, groups))
	return result
}

func toTrade(tc *config.TradeConfig) risk.Trade {
	return risk.Trade{
		AccountValue:   decimal.NewFromFloat(tc.AccountValue),
		EntryPrice:     decimal.NewFromFloat(tc.EntryPrice),
		StopPrice:      decimal.NewFromFloat(tc.StopPrice),
		RiskRate:       decimal.NewFromFloat(tc.RiskRate),
		Short:          tc.Short,
		LotSize:        tc.LotSize,
		PricePrecision: tc.PricePrecision,
		TickSize:       decimal.NewFromFloat(tc.TickSize),
	}
}

func toMultiples(values []float64) []decimal.Decimal {
	if len(values) == 0 {
		return profit.DefaultMultiples()
	}
	multiples := make([]decimal.Decimal, len(values))
	for i, v := range values {
		multiples[i] = decimal.NewFromFloat(v)
	}
	return multiples
}

func (o *Orchestrator) runTrade(tc *config.TradeConfig) *state.TradeResult {
	trade := toTrade(tc)
	result := &state.TradeResult{
		Side:         "long",
		AccountValue: trade.AccountValue.String(),
		EntryPrice:   trade.EntryPrice.String(),
		StopPrice:    trade.StopPrice.String(),
		RiskRate:     trade.RiskRate.String(),
	}
	if trade.Short {
		result.Side = "short"
	}

	plan, err := risk.NewPlan(trade)
	if err != nil {
		logs.Errorf("[Risk] Trade rejected: %v", err)
		result.Error = err.Error()
		return result
	}
	if plan.Capped {
		logs.Warnf("[Risk] Share count capped by buying power at %s shares.", plan.Shares)
	}
	if plan.Shares.IsZero() {
		logs.Warnf("[Risk] 1R of %s is smaller than the risk of a single lot; no shares can be bought.", plan.RiskAmount.StringFixed(2))
	}

	levels := profit.Project(plan, toMultiples(tc.RMultiples))

	result.RiskPerShare = plan.RiskPerShare.String()
	result.RiskAmount = plan.RiskAmount.String()
	result.Shares = plan.Shares.String()
	result.PositionValue = plan.PositionValue.String()
	result.CapitalAtRisk = plan.CapitalAtRisk.String()
	result.Capped = plan.Capped
	for _, l := range levels {
		result.Levels = append(result.Levels, state.LevelResult{
			Multiple:  l.Multiple.String(),
			Price:     l.Price.String(),
			PnL:       l.PnL.String(),
			ReturnPct: l.ReturnPct.String(),
		})
	}

	logs.Debugf("[Risk] %s", plan)
	fmt.Fprint(o.out, report.TradePlan(plan))
	fmt.Fprint(o.out, report.Levels(levels))
	return result
}

func (o *Orchestrator) printFinalSummary(s *state.Session) {
	failed := 0
	totalGroups := 0
	for _, g := range s.Groupings {
		if g.Error != "" {
			failed++
		}
		totalGroups += len(g.Groups)
	}
	logs.Infof("[Orchestrator] Session %s recorded: %d groupings (%d rejected), %d qualifying runs.",
		s.ID, len(s.Groupings), failed, totalGroups)
	if s.Trade != nil {
		if s.Trade.Error != "" {
			logs.Infof("[Orchestrator] Trade plan rejected: %s", s.Trade.Error)
		} else {
			logs.Infof("[Orchestrator] Trade plan: %s %s shares, 1R = %s", s.Trade.Side, s.Trade.Shares, s.Trade.RiskAmount)
		}
	}
}
