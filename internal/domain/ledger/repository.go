package ledger

import (
	"context"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository defines the persistence interface for payments
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByInstallmentIDs(ctx context.Context, tenantID uuid.UUID, installmentIDs []uuid.UUID) ([]*Payment, error)
}

// TransactionFilter defines filter options for ledger transaction queries
type TransactionFilter struct {
	shared.Filter
	Type       *TransactionType
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// TransactionRepository defines the persistence interface for ledger transactions
type TransactionRepository interface {
	Save(ctx context.Context, tx *LedgerTransaction) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerTransaction, error)
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (*shared.Paginated[*LedgerTransaction], error)
}

// CategoryRepository defines the persistence interface for transaction categories
type CategoryRepository interface {
	// UpsertByName finds the category with the given (tenant, name, type) key or
	// creates it atomically, so concurrent bookkeeping never races into
	// duplicate rows.
	UpsertByName(ctx context.Context, tenantID uuid.UUID, name string, txType TransactionType) (*Category, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindForTenant(ctx context.Context, tenantID uuid.UUID, txType *TransactionType) ([]*Category, error)
}
