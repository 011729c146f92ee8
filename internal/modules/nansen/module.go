package nansen

import (
	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/nansen/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("nansen",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(service.Config{
					APIKey:  cfg.Nansen.APIKey,
					BaseURL: cfg.Nansen.BaseURL,
					Tokens:  cfg.Tokens,
				})
			},
		),
	)
}
