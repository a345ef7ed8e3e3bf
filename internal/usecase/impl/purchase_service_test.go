package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type purchaseSetup struct {
	serviceFixtures
	userID uint64
	v1, v2 uint64
}

func newPurchaseSetup(t *testing.T) purchaseSetup {
	t.Helper()

	svc := createTestServices(t)
	vendorID := svc.registerVendor(t, "shop")
	rpg := svc.createCategory(t, "RPG")

	return purchaseSetup{
		serviceFixtures: svc,
		userID:          svc.registerUser(t, "ana"),
		v1:              svc.publish(t, vendorID, rpg, "10"),
		v2:              svc.publish(t, vendorID, rpg, "15"),
	}
}

func (s purchaseSetup) purchase(t *testing.T) uint64 {
	t.Helper()

	id, err := s.purchases.PurchaseVideogames(context.Background(), usecase.PurchaseInput{
		UserID: s.userID, VideogameIDs: []uint64{s.v1, s.v2},
	})
	require.NoError(t, err)

	return id
}

func TestPurchaseService_PurchaseVideogames(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()

	orderID := s.purchase(t)

	order, err := s.repos().OrderRepo().FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, s.userID, order.UserID)
	assert.ElementsMatch(t, []uint64{s.v1, s.v2}, order.VideogameIDs)
	assert.False(t, order.IsPaid())

	user := s.user(t, s.userID)
	assert.ElementsMatch(t, []uint64{s.v1, s.v2}, user.OwnedVideogameIDs)
	assert.Equal(t, []uint64{orderID}, []uint64(user.OrderIDs))

	for _, id := range []uint64{s.v1, s.v2} {
		v := s.videogame(t, id)
		assert.Equal(t, []uint64{s.userID}, []uint64(v.OwnerIDs))
		assert.Equal(t, []uint64{orderID}, []uint64(v.OrderIDs))
	}
}

func TestPurchaseService_PurchaseVideogames_Rejected(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.PurchaseInput
		want  error
	}{
		{"empty selection", usecase.PurchaseInput{UserID: s.userID}, domainerrors.ErrEmptySelection},
		{"unknown user", usecase.PurchaseInput{UserID: 404, VideogameIDs: []uint64{s.v1}}, domainerrors.ErrUserNotFound},
		{"unknown videogame", usecase.PurchaseInput{UserID: s.userID, VideogameIDs: []uint64{s.v1, 404}}, domainerrors.ErrVideogameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.purchases.PurchaseVideogames(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	orders, err := s.repos().OrderRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, s.user(t, s.userID).OwnedVideogameIDs)
	assert.Empty(t, s.videogame(t, s.v1).OwnerIDs)
}

func TestPurchaseService_PurchaseVideogames_RepeatedSelection(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()

	orderID, err := s.purchases.PurchaseVideogames(ctx, usecase.PurchaseInput{
		UserID: s.userID, VideogameIDs: []uint64{s.v1, s.v2, s.v1},
	})
	require.NoError(t, err)

	order, err := s.repos().OrderRepo().FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(25)))
	assert.ElementsMatch(t, []uint64{s.v1, s.v2}, order.VideogameIDs)
	assert.ElementsMatch(t, []uint64{s.v1, s.v2}, s.user(t, s.userID).OwnedVideogameIDs)
}

func TestPurchaseService_PurchaseVideogames_RollsBackAfterWrites(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()
	cause := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "update user")
	uow := &failingUnitOfWork{UnitOfWork: s.uow, cause: cause, failUsers: true}
	purchases := NewPurchaseService(newTestParams(uow))

	_, err := purchases.PurchaseVideogames(ctx, usecase.PurchaseInput{
		UserID: s.userID, VideogameIDs: []uint64{s.v1, s.v2},
	})
	assert.Same(t, cause, err)
	assert.Equal(t, 1, uow.executions)

	orders, err := s.repos().OrderRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	user := s.user(t, s.userID)
	assert.Empty(t, user.OrderIDs)
	assert.Empty(t, user.OwnedVideogameIDs)
	for _, id := range []uint64{s.v1, s.v2} {
		v := s.videogame(t, id)
		assert.Empty(t, v.OwnerIDs)
		assert.Empty(t, v.OrderIDs)
	}
}

func TestPurchaseService_ConfirmPurchase(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()
	orderID := s.purchase(t)

	transactionID, err := s.purchases.ConfirmPurchase(ctx, usecase.ConfirmPurchaseInput{OrderID: orderID, PaymentMethod: "card"})
	require.NoError(t, err)

	transaction, err := s.repos().TransactionRepo().FindByID(ctx, transactionID)
	require.NoError(t, err)
	assert.True(t, transaction.Total.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, entity.OperationKindCharge, transaction.Kind)
	assert.Equal(t, s.userID, transaction.UserID)
	assert.True(t, transaction.Date.Equal(fixedNow))
	require.NotNil(t, transaction.OrderID)
	assert.Equal(t, orderID, *transaction.OrderID)

	order, err := s.repos().OrderRepo().FindByID(ctx, orderID)
	require.NoError(t, err)
	require.True(t, order.IsPaid())
	assert.Equal(t, transactionID, *order.TransactionID)
	assert.Equal(t, []uint64{transactionID}, []uint64(s.user(t, s.userID).TransactionIDs))

	_, err = s.purchases.ConfirmPurchase(ctx, usecase.ConfirmPurchaseInput{OrderID: orderID, PaymentMethod: "card"})
	assert.True(t, errors.Is(err, domainerrors.ErrOrderAlreadyPaid))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	transactions, err := s.purchases.ListTransactionsByPaymentMethod(ctx, "CARD")
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestPurchaseService_ConfirmPurchase_UnknownOrder(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()

	_, err := s.purchases.ConfirmPurchase(ctx, usecase.ConfirmPurchaseInput{OrderID: 404, PaymentMethod: "card"})
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))

	transactions, err := s.repos().TransactionRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestPurchaseService_DeleteTransaction(t *testing.T) {
	s := newPurchaseSetup(t)
	ctx := context.Background()
	transactionID, err := s.purchases.ConfirmPurchase(ctx, usecase.ConfirmPurchaseInput{OrderID: s.purchase(t), PaymentMethod: "card"})
	require.NoError(t, err)

	s.purchases.rules.TransactionDeleteCap = decimal.NewFromInt(20)
	err = s.purchases.DeleteTransaction(ctx, transactionID)
	assert.True(t, errors.Is(err, domainerrors.ErrTransactionAboveCap))

	s.purchases.rules.TransactionDeleteCap = decimal.NewFromInt(10000)
	require.NoError(t, s.purchases.DeleteTransaction(ctx, transactionID))
	assert.Empty(t, s.user(t, s.userID).TransactionIDs)
}

func TestPurchaseService_PropagatesUnitOfWorkError(t *testing.T) {
	uow := &mockUnitOfWork{}
	svc := NewPurchaseService(newTestParams(uow))
	cause := domainerrors.ErrVideogameNotFound.WithDetails("videogame 3")

	uow.On("Execute", mock.Anything, mock.Anything).Return(cause).Once()

	_, err := svc.PurchaseVideogames(context.Background(), usecase.PurchaseInput{UserID: 1, VideogameIDs: []uint64{3}})
	assert.Same(t, cause, err)
	uow.AssertExpectations(t)
}
