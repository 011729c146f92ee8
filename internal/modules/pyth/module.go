package pyth

import (
	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/pyth/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("pyth",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(service.Config{
					BaseURL: cfg.Pyth.BaseURL,
					Feeds:   cfg.Pyth.Feeds,
				})
			},
		),
	)
}
