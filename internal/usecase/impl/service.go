// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"marketplace/config"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	logs "marketplace/internal/infra/log"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// ServiceParams holds the dependencies shared by every orchestrator, injected by Fx.
type ServiceParams struct {
	fx.In

	UnitOfWork repository.UnitOfWork
	Hasher     service.PasswordHasher
	Validate   *validator.Validate `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// orchestrator carries the collaborators every use case service needs.
type orchestrator struct {
	uow      repository.UnitOfWork
	hasher   service.PasswordHasher
	validate *validator.Validate
	rules    *config.RulesConfig
	logger   *slog.Logger
	now      func() time.Time
}

func newOrchestrator(params ServiceParams) orchestrator {
	validate := params.Validate
	if validate == nil {
		validate = NewValidator()
	}

	var rules *config.RulesConfig
	if params.Config != nil {
		rules = params.Config.Rules
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return orchestrator{
		uow:      params.UnitOfWork,
		hasher:   params.Hasher,
		validate: validate,
		rules:    rules.WithDefaults(),
		logger:   logger,
		now:      time.Now,
	}
}

// NewValidator builds the input validator used by every orchestrator.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// start opens an operation: the returned context carries a logger tagged
// with the operation name and a fresh correlation id.
func (o *orchestrator) start(ctx context.Context, operation string, attrs ...any) (context.Context, *slog.Logger) {
	ctx, logger := logs.StartOperation(ctx, o.logger, operation)
	logger.Info("Starting "+operation, attrs...)

	return ctx, logger
}

// finish logs the outcome and returns err unchanged. Rule violations are
// logged as warnings, infrastructure failures as errors.
func (o *orchestrator) finish(logger *slog.Logger, operation string, err error) error {
	if err == nil {
		logger.Debug(operation + " completed")

		return nil
	}

	kind := domainerrors.KindOf(err)
	if kind == domainerrors.KindInternal {
		logger.Error(operation+" failed", slog.String("kind", string(kind)), slog.Any("error", err))
	} else {
		logger.Warn(operation+" rejected", slog.String("kind", string(kind)), slog.Any("error", err))
	}

	return err
}

// check runs the struct validation tags of input.
func (o *orchestrator) check(input any) error {
	if err := o.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
