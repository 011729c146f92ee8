package main

import (
	"context"
	"log"

	"alpha_oracle/internal/modules/config"
	"alpha_oracle/internal/modules/health"
	"alpha_oracle/internal/modules/nansen"
	"alpha_oracle/internal/modules/oracle"
	"alpha_oracle/internal/modules/pyth"
	"alpha_oracle/internal/modules/scanner"
	"alpha_oracle/pkg/logger"
	"alpha_oracle/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init("alpha-oracle"); err != nil {
		log.Fatal(err)
	}
	tracing.SetServiceName("alpha-oracle")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		scanner.Module(),
		nansen.Module(),
		pyth.Module(),
		health.Module(),
		oracle.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
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
}
