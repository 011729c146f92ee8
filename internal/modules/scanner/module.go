package scanner

import (
	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/scanner/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("scanner",
		fx.Provide(
			func(cfg *config.Config) *service.Scanner {
				return service.New(service.Config{
					MinFlowUSD:     cfg.Scanner.MinFlowUSD,
					MinFlowPctMcap: cfg.Scanner.MinFlowPctMcap,
					LargeFlowUSD:   cfg.Scanner.LargeFlowUSD,
					HugeFlowUSD:    cfg.Scanner.HugeFlowUSD,
					MinTraders:     cfg.Scanner.MinTraders,
					MinVolumeUSD:   cfg.Scanner.MinVolumeUSD,
					BuyRatioHigh:   cfg.Scanner.BuyRatioHigh,
					BuyRatioLow:    cfg.Scanner.BuyRatioLow,
					MergeByChain:   cfg.Scanner.MergeByChain,
				})
			},
		),
	)
}
