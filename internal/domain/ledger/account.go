package ledger

import (
	"context"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of settlement account
type AccountType string

const (
	AccountTypeCash AccountType = "CASH"
	AccountTypeBank AccountType = "BANK"
	AccountTypePOS  AccountType = "POS"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	return t == AccountTypeCash || t == AccountTypeBank || t == AccountTypePOS
}

// Account is a settlement account money is collected into or refunded from.
// Balance tracking is derived from ledger transactions; the stored balance is
// a cached running total.
type Account struct {
	shared.BaseEntity
	TenantID uuid.UUID
	Name     string
	Type     AccountType
	Balance  decimal.Decimal
	IsActive bool
}

// NewAccount creates a settlement account.
func NewAccount(tenantID uuid.UUID, name string, accType AccountType) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account name cannot be empty")
	}
	if !accType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account type is not valid")
	}
	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Type:       accType,
		Balance:    decimal.Zero,
		IsActive:   true,
	}, nil
}

// AccountRepository defines the persistence interface for settlement accounts
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Account, error)
	// AdjustBalance applies a signed delta to the cached running balance.
	AdjustBalance(ctx context.Context, tenantID, id uuid.UUID, delta decimal.Decimal) error
}
