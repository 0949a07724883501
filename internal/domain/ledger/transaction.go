package ledger

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money flowing in from money flowing out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// LedgerTransaction is one booked movement on a settlement account. Income
// rows carry the VAT split (subtotal + VAT = amount); expense rows booked for
// refunds carry the refunded total with no VAT split.
type LedgerTransaction struct {
	shared.TenantAggregateRoot
	Type        TransactionType
	CategoryID  uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal // gross amount moved on the account
	Subtotal    decimal.Decimal // VAT-exclusive component
	VATAmount   decimal.Decimal
	Description string
	// ReferenceID links back to the originating record (payment or fee assignment)
	ReferenceID *uuid.UUID
	// ServiceID identifies the catalog service the money relates to, when known
	ServiceID     *uuid.UUID
	TransactionAt time.Time
}

// NewIncomeTransaction books money received on an account with its VAT split.
func NewIncomeTransaction(
	tenantID uuid.UUID,
	categoryID uuid.UUID,
	accountID uuid.UUID,
	amount valueobject.Money,
	subtotal valueobject.Money,
	vatAmount valueobject.Money,
	description string,
	referenceID *uuid.UUID,
	at time.Time,
) (*LedgerTransaction, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Settlement account is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	tx := &LedgerTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                TransactionTypeIncome,
		CategoryID:          categoryID,
		AccountID:           accountID,
		Amount:              amount.Amount(),
		Subtotal:            subtotal.Amount(),
		VATAmount:           vatAmount.Amount(),
		Description:         description,
		ReferenceID:         referenceID,
		TransactionAt:       at,
	}
	tx.CreatedAt = at
	tx.UpdatedAt = at
	return tx, nil
}

// NewExpenseTransaction books money leaving an account, e.g. a refund issued
// when a partially paid assignment is cancelled.
func NewExpenseTransaction(
	tenantID uuid.UUID,
	categoryID uuid.UUID,
	accountID uuid.UUID,
	amount valueobject.Money,
	description string,
	referenceID *uuid.UUID,
	at time.Time,
) (*LedgerTransaction, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Settlement account is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	tx := &LedgerTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                TransactionTypeExpense,
		CategoryID:          categoryID,
		AccountID:           accountID,
		Amount:              amount.Amount(),
		Subtotal:            amount.Amount(),
		VATAmount:           decimal.Zero,
		Description:         description,
		ReferenceID:         referenceID,
		TransactionAt:       at,
	}
	tx.CreatedAt = at
	tx.UpdatedAt = at
	return tx, nil
}

// GetAmountMoney returns the transaction amount as Money
func (tx *LedgerTransaction) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(tx.Amount)
}
