package main

import (
	"context"
	"log/slog"
	"os"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type checkParams struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	Accounts   usecase.AccountUsecase
	Moderators usecase.ModeratorUsecase
	Moderation usecase.ModerationUsecase
	Catalog    usecase.CatalogUsecase
	Purchases  usecase.PurchaseUsecase
}

type checkReport struct {
	Driver          string              `json:"driver"`
	UnsolvedReports int                 `json:"unsolvedReports"`
	SolvedReports   int                 `json:"solvedReports"`
	DeletableGames  int                 `json:"deletableVideogames"`
	Rules           *config.RulesConfig `json:"rules"`
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build every use case, reach the database and print the effective rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(),
				injectRepo(),
				injectService(),
				injectUsecase(),
				fx.Invoke(registerCheck),
			)
		},
	}
}

// registerCheck builds every use case through params and runs the read-only
// ones against the database once it has been pinged.
func registerCheck(params checkParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			report := checkReport{
				Driver: params.Config.Database.Driver,
				Rules:  params.Config.Rules,
			}

			unsolved, err := params.Moderation.ListReportsByState(ctx, entity.ReportStateUnsolved)
			if err != nil {
				return err
			}
			solved, err := params.Moderation.ListReportsByState(ctx, entity.ReportStateSolved)
			if err != nil {
				return err
			}
			deletable, err := params.Catalog.FilterVideogamesByPrice(ctx, usecase.PriceFilterInput{
				Min: decimal.Zero,
				Max: params.Config.Rules.VideogameDeleteCap,
			})
			if err != nil {
				return err
			}
			report.UnsolvedReports = len(unsolved)
			report.SolvedReports = len(solved)
			report.DeletableGames = len(deletable)

			params.Logger.Info("Use cases wired", slog.String("driver", report.Driver))
			writeJSON(os.Stdout, domainerrors.SuccessResponse{Data: report, Meta: &domainerrors.MetaInfo{}})

			return nil
		},
	})
}
