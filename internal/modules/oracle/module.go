package oracle

import (
	"context"
	"time"

	"alpha_oracle/internal/ledger"
	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/oracle/service"
	"alpha_oracle/internal/notify"
	"alpha_oracle/internal/submitter"
	"alpha_oracle/pkg/logger"

	"go.uber.org/fx"
)

func provideCommon() fx.Option {
	return fx.Provide(
		func(cfg *config.Config) *ledger.Store {
			return ledger.NewStore(cfg.Oracle.LedgerPath)
		},
		func(cfg *config.Config) submitter.Submitter {
			return submitter.NewLog(cfg.Oracle.ProgramID)
		},
		NewNotifier,
		service.NewVerifier,
	)
}

// NewNotifier: telegram если настроен, иначе stdout-заглушка.
func NewNotifier(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, store *ledger.Store) notify.Notifier {
	if cfg.Telegram.Token == "" {
		return notify.NewStdout()
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, store)
	if err != nil {
		logger.Error("telegram init: %v, falling back to stdout", err)
		return notify.NewStdout()
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return tg.Start(ctx)
		},
	})
	return tg
}

// Module — полный цикл оракула: скан, прогнозы, верификация.
// scan_interval == 0 — один проход и выход.
func Module() fx.Option {
	return fx.Module("oracle",
		provideCommon(),
		fx.Provide(service.NewRunner),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *service.Runner,
			cfg *config.Config,
			sd fx.Shutdowner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						if err := r.RunCycle(ctx); err != nil {
							logger.Error("scan cycle: %v", err)
						}
						if cfg.Oracle.ScanInterval <= 0 {
							_ = sd.Shutdown()
							return
						}
						t := time.NewTicker(cfg.Oracle.ScanInterval)
						defer t.Stop()
						for {
							select {
							case <-ctx.Done():
								return
							case <-t.C:
								if err := r.RunCycle(ctx); err != nil {
									logger.Error("scan cycle: %v", err)
								}
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}

// VerifierModule — только проход верификации по журналу, без скана.
func VerifierModule() fx.Option {
	return fx.Module("verifier",
		provideCommon(),
		fx.Invoke(func(
			lc fx.Lifecycle,
			v *service.Verifier,
			n notify.Notifier,
			sd fx.Shutdowner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer func() { _ = sd.Shutdown() }()

						verified, err := v.VerifyExpired(ctx)
						if err != nil {
							logger.Error("verify: %v", err)
							return
						}
						logger.Info("verified %d predictions", verified)

						st, err := v.Stats(ctx)
						if err != nil {
							logger.Error("stats: %v", err)
							return
						}
						n.Sendf("📈 Verification Stats:\nTotal: %d\nActive: %d\nWon: %d\nLost: %d\nPending: %d\nWin rate: %.1f%%",
							st.Total, st.Active, st.Won, st.Lost, st.Pending, st.WinRate)
					}()
					return nil
				},
			})
		}),
	)
}
