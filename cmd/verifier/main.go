package main

import (
	"context"
	"log"

	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/oracle"
	"alpha_oracle/internal/modules/pyth"
	"alpha_oracle/pkg/logger"
	"alpha_oracle/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init("alpha-verifier"); err != nil {
		log.Fatal(err)
	}
	tracing.SetServiceName("alpha-verifier")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		pyth.Module(),
		oracle.VerifierModule(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Enabled: cfg.Jaeger.Enabled,
				Host:    cfg.Jaeger.Host,
				Port:    cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
