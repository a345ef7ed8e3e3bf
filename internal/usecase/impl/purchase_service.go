package impl

import (
	"context"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
)

// purchaseService implements the PurchaseUsecase interface.
type purchaseService struct {
	orchestrator
}

// NewPurchaseService is the constructor for purchaseService.
func NewPurchaseService(params ServiceParams) usecase.PurchaseUsecase {
	return &purchaseService{orchestrator: newOrchestrator(params)}
}

func (srv *purchaseService) PurchaseVideogames(ctx context.Context, input usecase.PurchaseInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "PurchaseVideogames",
		slog.Uint64("userID", input.UserID),
		slog.Any("videogameIDs", input.VideogameIDs))

	id, err := srv.purchaseVideogames(ctx, input)

	return id, srv.finish(logger, "PurchaseVideogames", err)
}

func (srv *purchaseService) purchaseVideogames(ctx context.Context, input usecase.PurchaseInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	if len(input.VideogameIDs) == 0 {
		return 0, domainerrors.ErrEmptySelection
	}
	var ids entity.IDs
	for _, id := range input.VideogameIDs {
		ids.Add(id)
	}

	var orderID uint64
	err := srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := repos.UserRepo().FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		videogames, err := loadVideogames(ctx, repos.VideogameRepo(), ids)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, v := range videogames {
			total = total.Add(v.Price)
		}
		order, err := entity.NewOrder(user.ID, total)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		entity.LinkUserOrder(user, order)
		for _, v := range videogames {
			entity.LinkOrderVideogame(order, v)
			entity.LinkOwnedVideogame(user, v)
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}
		if err := repos.UserRepo().Update(ctx, user); err != nil {
			return err
		}
		for _, v := range videogames {
			if err := repos.VideogameRepo().Update(ctx, v); err != nil {
				return err
			}
		}
		orderID = order.ID

		return nil
	})

	return orderID, err
}

func (srv *purchaseService) ConfirmPurchase(ctx context.Context, input usecase.ConfirmPurchaseInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "ConfirmPurchase",
		slog.Uint64("orderID", input.OrderID),
		slog.String("paymentMethod", input.PaymentMethod))

	id, err := srv.confirmPurchase(ctx, input)

	return id, srv.finish(logger, "ConfirmPurchase", err)
}

func (srv *purchaseService) confirmPurchase(ctx context.Context, input usecase.ConfirmPurchaseInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}

	var transactionID uint64
	err := srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		order, err := repos.OrderRepo().FindByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.IsPaid() {
			return domainerrors.ErrOrderAlreadyPaid.WithDetailsf("order %d", order.ID)
		}
		user, err := repos.UserRepo().FindByID(ctx, order.UserID)
		if err != nil {
			return err
		}

		now := srv.now()
		transaction, err := entity.NewTransaction(now, order.Total, input.PaymentMethod, entity.OperationKindCharge, user.ID, now)
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Create(ctx, transaction); err != nil {
			return err
		}

		entity.LinkOrderTransaction(order, transaction)
		entity.LinkUserTransaction(user, transaction)

		if err := repos.TransactionRepo().Update(ctx, transaction); err != nil {
			return err
		}
		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}
		transactionID = transaction.ID

		return nil
	})

	return transactionID, err
}

func (srv *purchaseService) DeleteTransaction(ctx context.Context, transactionID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteTransaction", slog.Uint64("transactionID", transactionID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		transaction, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if transaction.Total.GreaterThan(srv.rules.TransactionDeleteCap) {
			return domainerrors.ErrTransactionAboveCap.WithDetailsf("total %s exceeds %s", transaction.Total, srv.rules.TransactionDeleteCap)
		}

		return repos.TransactionRepo().Delete(ctx, transaction)
	})

	return srv.finish(logger, "DeleteTransaction", err)
}

func (srv *purchaseService) ListTransactionsByPaymentMethod(ctx context.Context, method string) ([]*entity.Transaction, error) {
	return srv.uow.Repositories().TransactionRepo().FindByPaymentMethod(ctx, method)
}
