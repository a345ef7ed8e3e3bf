package main

import (
	"context"
	"log/slog"

	"marketplace/config"
	"marketplace/internal/domain/lifecycle"
	"marketplace/internal/infra/auth"
	logs "marketplace/internal/infra/log"
	"marketplace/internal/infra/persistence/database"
	"marketplace/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			database.New,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		database.NewUnitOfWork,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.New,
		impl.NewValidator,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAccountService,
		impl.NewModeratorService,
		impl.NewModerationService,
		impl.NewCatalogService,
		impl.NewPurchaseService,
	)
}

// runOnce starts the application, letting the invoked functions do their
// work inside the start hooks, and stops it again.
func runOnce(ctx context.Context, opts ...fx.Option) error {
	app := fx.New(append([]fx.Option{injectInfra()}, opts...)...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancelStop()

	return app.Stop(stopCtx)
}
