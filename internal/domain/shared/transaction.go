package shared

import "context"

// TransactionManager runs a function inside one database transaction.
// Repositories called with the context passed to fn participate in that
// transaction; any returned error rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
