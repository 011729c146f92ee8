package service

import (
	"context"
	"time"

	"alpha_oracle/internal/ledger"
	"alpha_oracle/internal/models"
	"alpha_oracle/internal/modules/config"
	healthsvc "alpha_oracle/internal/modules/health/service"
	nansensvc "alpha_oracle/internal/modules/nansen/service"
	scansvc "alpha_oracle/internal/modules/scanner/service"
	"alpha_oracle/internal/notify"
	"alpha_oracle/internal/submitter"
	"alpha_oracle/pkg/logger"

	"github.com/opentracing/opentracing-go"
)

// Runner гоняет один батч: скан источников -> скоринг -> слияние ->
// снапшот/нотификации -> создание прогнозов -> верификация истёкших.
// Внутри цикла всё однопоточно и детерминировано.
type Runner struct {
	cfg     *config.Config
	scanner *scansvc.Scanner
	nansen  *nansensvc.Client
	ver     *Verifier
	store   *ledger.Store
	sub     submitter.Submitter
	n       notify.Notifier
	state   *healthsvc.State
}

func NewRunner(
	cfg *config.Config,
	scanner *scansvc.Scanner,
	nansen *nansensvc.Client,
	ver *Verifier,
	store *ledger.Store,
	sub submitter.Submitter,
	n notify.Notifier,
	state *healthsvc.State,
) *Runner {
	return &Runner{
		cfg:     cfg,
		scanner: scanner,
		nansen:  nansen,
		ver:     ver,
		store:   store,
		sub:     sub,
		n:       n,
		state:   state,
	}
}

// RunCycle — один полный проход. Ошибка отдельной сети не валит цикл:
// «нет данных по сети» == пустой список.
func (r *Runner) RunCycle(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "scan_cycle")
	defer span.Finish()

	logger.Info("scan cycle started, chains=%v", r.cfg.Chains)

	netRaw := make(map[string][]models.NetflowRecord, len(r.cfg.Chains))
	for _, chain := range r.cfg.Chains {
		recs, err := r.nansen.Netflow(ctx, chain)
		if err != nil {
			logger.Error("netflow %s: %v", chain, err)
			recs = nil
		}
		netRaw[chain] = recs
	}

	dexRaw := make(map[string][]models.DexTrade, len(r.cfg.Chains))
	for _, chain := range r.cfg.Chains {
		trades, err := r.nansen.DexTrades(ctx, chain)
		if err != nil {
			logger.Error("dex-trades %s: %v", chain, err)
			trades = nil
		}
		dexRaw[chain] = trades
	}

	netSignals := r.scanner.AnalyzeNetflows(netRaw)
	dexSignals := r.scanner.AnalyzeDexTrades(dexRaw)
	merged := r.scanner.Merge(netSignals, dexSignals)
	logger.Info("signals: netflow=%d dex=%d merged=%d",
		len(netSignals), len(dexSignals), len(merged))

	if err := r.writeSnapshot(netSignals, dexSignals, merged); err != nil {
		logger.Error("snapshot: %v", err)
	}

	r.n.Send(notify.FormatTopSignals(merged, 10))
	r.enrichTop(ctx, merged)

	if _, err := r.ProcessSignals(ctx); err != nil {
		logger.Error("process signals: %v", err)
	}

	if _, err := r.ver.VerifyExpired(ctx); err != nil {
		logger.Error("verify expired: %v", err)
	}

	if st, err := r.store.Stats(ctx); err == nil {
		logger.Info("oracle stats: total=%d active=%d won=%d lost=%d pending=%d win_rate=%.1f%%",
			st.Total, st.Active, st.Won, st.Lost, st.Pending, st.WinRate)
	}

	now := time.Now()
	r.state.TouchScan(now)
	r.state.SetReady(true)
	return nil
}

// enrichTop подтягивает детальные потоки по лучшему сигналу,
// если тикер есть в инжектированной мапе токенов.
func (r *Runner) enrichTop(ctx context.Context, merged []models.MergedSignal) {
	if len(merged) == 0 {
		return
	}
	top := merged[0]
	if _, known := r.cfg.Tokens[top.Symbol]; !known {
		return
	}
	flows, err := r.nansen.TokenFlows(ctx, top.Symbol)
	if err != nil {
		logger.Warn("token flows %s: %v", top.Symbol, err)
		return
	}
	logger.Info("top signal %s flows: in=%.0f out=%.0f net=%.0f",
		top.Symbol, flows.InflowUSD, flows.OutflowUSD, flows.NetFlowUSD)
}
