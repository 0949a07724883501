package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerTransactionRepository implements TransactionRepository using GORM
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// Save creates or updates a ledger transaction
func (r *GormLedgerTransactionRepository) Save(ctx context.Context, tx *ledger.LedgerTransaction) error {
	model := models.LedgerTransactionModelFromDomain(tx)
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(model).Error
}

// FindByIDForTenant finds a ledger transaction by ID for a specific tenant
func (r *GormLedgerTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForTenant finds ledger transactions for a tenant with filtering and pagination
func (r *GormLedgerTransactionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.TransactionFilter) (*shared.Paginated[*ledger.LedgerTransaction], error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("tenant_id = ?", tenantID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.From != nil {
		query = query.Where("transaction_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Model(&models.LedgerTransactionModel{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerTransactionSortFields, "transaction_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var txModels []models.LedgerTransactionModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*ledger.LedgerTransaction, len(txModels))
	for i := range txModels {
		transactions[i] = txModels[i].ToDomain()
	}

	paginated := shared.NewPaginated(transactions, total, page, pageSize)
	return &paginated, nil
}

// Ensure GormLedgerTransactionRepository implements the interface
var _ ledger.TransactionRepository = (*GormLedgerTransactionRepository)(nil)
