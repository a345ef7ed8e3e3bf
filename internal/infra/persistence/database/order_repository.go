package database

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"gorm.io/gorm"
)

var (
	orderTransactions = childRelation{"transactions", "order_id"}
	transactionOrders = childRelation{"orders", "transaction_id"}
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindByID(ctx context.Context, id uint64) (*entity.Order, error) {
	m, err := first[model.OrderModel](ctx, repo.db, domainerrors.ErrOrderNotFound, fmt.Sprintf("order %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	orders, err := repo.hydrate(ctx, []model.OrderModel{*m})
	if err != nil {
		return nil, err
	}

	return orders[0], nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	ms, err := list[model.OrderModel](ctx, repo.db, "failed to list orders", nil)
	if err != nil {
		return nil, err
	}

	return repo.hydrate(ctx, ms)
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	m := fromOrderDomain(order)
	if err := insert(ctx, repo.db, m, fmt.Sprintf("failed to create order for user %d", order.UserID)); err != nil {
		return err
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt

	return orderVideogames.replace(ctx, repo.db, order.ID, order.VideogameIDs)
}

func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	m := fromOrderDomain(order)
	if err := save(ctx, repo.db, m, domainerrors.ErrOrderNotFound, fmt.Sprintf("order %d", order.ID)); err != nil {
		return err
	}
	order.UpdatedAt = m.UpdatedAt

	return orderVideogames.replace(ctx, repo.db, order.ID, order.VideogameIDs)
}

// Delete removes the order and unlinks the transaction that settled it.
func (repo *orderRepository) Delete(ctx context.Context, order *entity.Order) error {
	if err := remove[model.OrderModel](ctx, repo.db, order.ID, domainerrors.ErrOrderNotFound, fmt.Sprintf("order %d", order.ID)); err != nil {
		return err
	}
	if err := orderVideogames.deleteOwner(ctx, repo.db, order.ID); err != nil {
		return err
	}

	return orderTransactions.detach(ctx, repo.db, order.ID)
}

func (repo *orderRepository) hydrate(ctx context.Context, ms []model.OrderModel) ([]*entity.Order, error) {
	videogames, err := orderVideogames.targets(ctx, repo.db, idsOf(ms, func(m model.OrderModel) uint64 { return m.ID }))
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0, len(ms))
	for _, m := range ms {
		orders = append(orders, &entity.Order{
			ID:            m.ID,
			UserID:        m.UserID,
			Total:         m.Total,
			VideogameIDs:  videogames[m.ID],
			TransactionID: m.TransactionID,
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
		})
	}

	return orders, nil
}

func fromOrderDomain(o *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:            o.ID,
		UserID:        o.UserID,
		Total:         o.Total,
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (repo *transactionRepository) FindByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	m, err := first[model.TransactionModel](ctx, repo.db, domainerrors.ErrTransactionNotFound, fmt.Sprintf("transaction %d", id), "id = ?", id)
	if err != nil {
		return nil, err
	}

	return toTransactionDomain(m), nil
}

func (repo *transactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	ms, err := list[model.TransactionModel](ctx, repo.db, "failed to list transactions", nil)
	if err != nil {
		return nil, err
	}

	return toTransactionsDomain(ms), nil
}

// FindByPaymentMethod matches the method ignoring case; blank methods match nothing.
func (repo *transactionRepository) FindByPaymentMethod(ctx context.Context, method string) ([]*entity.Transaction, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return []*entity.Transaction{}, nil
	}

	ms, err := list[model.TransactionModel](ctx, repo.db, "failed to list transactions by payment method", "LOWER(payment_method) = ?", method)
	if err != nil {
		return nil, err
	}

	return toTransactionsDomain(ms), nil
}

func (repo *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := fromTransactionDomain(transaction)
	if err := insert(ctx, repo.db, m, fmt.Sprintf("failed to create transaction for user %d", transaction.UserID)); err != nil {
		return err
	}
	transaction.ID = m.ID
	transaction.CreatedAt = m.CreatedAt
	transaction.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	m := fromTransactionDomain(transaction)
	if err := save(ctx, repo.db, m, domainerrors.ErrTransactionNotFound, fmt.Sprintf("transaction %d", transaction.ID)); err != nil {
		return err
	}
	transaction.UpdatedAt = m.UpdatedAt

	return nil
}

// Delete removes the transaction; the order it settled becomes pending again.
func (repo *transactionRepository) Delete(ctx context.Context, transaction *entity.Transaction) error {
	if err := remove[model.TransactionModel](ctx, repo.db, transaction.ID, domainerrors.ErrTransactionNotFound, fmt.Sprintf("transaction %d", transaction.ID)); err != nil {
		return err
	}

	return transactionOrders.detach(ctx, repo.db, transaction.ID)
}

func toTransactionsDomain(ms []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, 0, len(ms))
	for i := range ms {
		transactions = append(transactions, toTransactionDomain(&ms[i]))
	}

	return transactions
}

func toTransactionDomain(m *model.TransactionModel) *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		Date:          m.Date,
		Total:         m.Total,
		PaymentMethod: m.PaymentMethod,
		Kind:          entity.OperationKind(m.Kind),
		UserID:        m.UserID,
		OrderID:       m.OrderID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromTransactionDomain(t *entity.Transaction) *model.TransactionModel {
	return &model.TransactionModel{
		ID:            t.ID,
		Date:          t.Date,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		Kind:          string(t.Kind),
		UserID:        t.UserID,
		OrderID:       t.OrderID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
