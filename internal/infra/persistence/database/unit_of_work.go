package database

import (
	"context"

	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "marketplace/internal/infra/persistence/database"

// ErrTxDone is returned by Commit on a transaction that was already resolved.
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// gormUnitOfWork implements the domain's UnitOfWork interface using GORM.
type gormUnitOfWork struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// NewUnitOfWork is the constructor for gormUnitOfWork.
// This function will be used as an Fx provider.
func NewUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return &gormUnitOfWork{db: db, tracer: otel.Tracer(tracerName)}
}

// gormRepositoryFactory hands out repositories bound to one gorm session,
// either a transaction or the root connection.
type gormRepositoryFactory struct {
	db *gorm.DB
}

func newRepositoryFactory(db *gorm.DB) repository.RepositoryFactory {
	return &gormRepositoryFactory{db: db}
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.db)
}

func (f *gormRepositoryFactory) VendorRepo() repository.VendorRepository {
	return NewVendorRepository(f.db)
}

func (f *gormRepositoryFactory) ModeratorRepo() repository.ModeratorRepository {
	return NewModeratorRepository(f.db)
}

func (f *gormRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	return NewCategoryRepository(f.db)
}

func (f *gormRepositoryFactory) VideogameRepo() repository.VideogameRepository {
	return NewVideogameRepository(f.db)
}

func (f *gormRepositoryFactory) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(f.db)
}

func (f *gormRepositoryFactory) TransactionRepo() repository.TransactionRepository {
	return NewTransactionRepository(f.db)
}

func (f *gormRepositoryFactory) ReportRepo() repository.ReportRepository {
	return NewReportRepository(f.db)
}

func (f *gormRepositoryFactory) SupportTicketRepo() repository.SupportTicketRepository {
	return NewSupportTicketRepository(f.db)
}

func (f *gormRepositoryFactory) BadgeRepo() repository.BadgeRepository {
	return NewBadgeRepository(f.db)
}

func (f *gormRepositoryFactory) ChallengeRepo() repository.ChallengeRepository {
	return NewChallengeRepository(f.db)
}

// gormTx is an explicit transaction. Each transaction is traced by one span
// that ends when the transaction is resolved.
type gormTx struct {
	tx   *gorm.DB
	span trace.Span
	done bool
}

// Begin starts a new transaction.
func (uow *gormUnitOfWork) Begin(ctx context.Context) (repository.Tx, error) {
	ctx, span := uow.tracer.Start(ctx, "UnitOfWork.Transaction")

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, "begin failed")
		span.End()

		return nil, domainerrors.NewDatabaseExecuteError(tx.Error, "failed to begin transaction")
	}

	return &gormTx{tx: tx, span: span}, nil
}

func (t *gormTx) Repositories() repository.RepositoryFactory {
	return newRepositoryFactory(t.tx)
}

// Commit applies the transaction.
func (t *gormTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer t.span.End()

	if err := t.tx.Commit().Error; err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, "commit failed")

		return domainerrors.NewDatabaseExecuteError(err, "failed to commit transaction")
	}
	t.span.SetAttributes(attribute.String("db.transaction.outcome", "commit"))

	return nil
}

// Rollback discards the transaction. Resolved transactions are left untouched.
func (t *gormTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.span.End()

	t.span.SetAttributes(attribute.String("db.transaction.outcome", "rollback"))
	if err := t.tx.Rollback().Error; err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, "rollback failed")

		return domainerrors.NewDatabaseExecuteError(err, "failed to roll back transaction")
	}

	return nil
}

// Execute runs the given function within a single database transaction.
func (uow *gormUnitOfWork) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	// A panic inside fn still rolls the transaction back before propagating.
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx.Repositories()); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}

		return err
	}

	return tx.Commit()
}

// SaveChanges runs fn on an implicit transaction so its writes are flushed
// together once it returns nil.
func (uow *gormUnitOfWork) SaveChanges(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	return uow.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositoryFactory(tx))
	})
}

// Repositories returns repositories on the root connection.
func (uow *gormUnitOfWork) Repositories() repository.RepositoryFactory {
	return newRepositoryFactory(uow.db)
}
