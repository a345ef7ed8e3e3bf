package repository

import "context"

// UnitOfWork is the transactional boundary of the orchestration layer.
// It hides the database driver from the use case layer: every repository
// handed out through a RepositoryFactory is bound to the same session.
type UnitOfWork interface {
	// Begin opens an explicit transaction. Callers own the returned Tx and
	// must resolve it with Commit or Rollback; `defer tx.Rollback()` right
	// after Begin covers abnormal exits.
	Begin(ctx context.Context) (Tx, error)

	// Execute runs fn within a single transaction. If fn returns an error or
	// panics the transaction is rolled back, otherwise it is committed. The
	// error returned by fn is propagated unchanged.
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error

	// SaveChanges runs a single-step write without an explicit transaction.
	// The writes made by fn are flushed when it returns nil.
	SaveChanges(ctx context.Context, fn func(repos RepositoryFactory) error) error

	// Repositories returns repositories for reads outside any transaction.
	Repositories() RepositoryFactory
}

// Tx is an open transaction started by UnitOfWork.Begin.
type Tx interface {
	// Repositories returns repositories bound to this transaction.
	Repositories() RepositoryFactory

	// Commit applies every write made since Begin.
	Commit() error

	// Rollback discards every write made since Begin. It is a no-op once the
	// transaction has been committed or rolled back.
	Rollback() error
}

// RepositoryFactory provides repository instances sharing one database session.
type RepositoryFactory interface {
	UserRepo() UserRepository
	VendorRepo() VendorRepository
	ModeratorRepo() ModeratorRepository
	CategoryRepo() CategoryRepository
	VideogameRepo() VideogameRepository
	OrderRepo() OrderRepository
	TransactionRepo() TransactionRepository
	ReportRepo() ReportRepository
	SupportTicketRepo() SupportTicketRepository
	BadgeRepo() BadgeRepository
	ChallengeRepo() ChallengeRepository
}
