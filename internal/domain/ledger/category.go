package ledger

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Default category names used by fee bookkeeping
const (
	DefaultTuitionIncomeCategory = "Tuition Income"
	DefaultRefundExpenseCategory = "Tuition Refunds"
)

// Category classifies ledger transactions. Categories are unique per
// (tenant, name, type); bookkeeping code upserts them by that key rather
// than creating blindly.
type Category struct {
	shared.BaseEntity
	TenantID uuid.UUID
	Name     string
	Type     TransactionType
	IsSystem bool // seeded by the engine, not user-editable
}

// NewCategory creates a transaction category.
func NewCategory(tenantID uuid.UUID, name string, txType TransactionType, isSystem bool) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category type must be INCOME or EXPENSE")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Type:       txType,
		IsSystem:   isSystem,
	}, nil
}
