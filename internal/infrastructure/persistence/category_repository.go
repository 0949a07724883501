package persistence

import (
	"context"
	"errors"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// UpsertByName finds the category with the (tenant, name, type) key or creates
// it. ON CONFLICT DO NOTHING plus a re-read keeps concurrent bookkeeping from
// racing into duplicate rows.
func (r *GormCategoryRepository) UpsertByName(ctx context.Context, tenantID uuid.UUID, name string, txType ledger.TransactionType) (*ledger.Category, error) {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	category, err := ledger.NewCategory(tenantID, name, txType, true)
	if err != nil {
		return nil, err
	}

	model := models.CategoryModelFromDomain(category)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}, {Name: "type"}},
		DoNothing: true,
	}).Create(model).Error; err != nil {
		return nil, err
	}

	var stored models.CategoryModel
	if err := db.First(&stored, "tenant_id = ? AND name = ? AND type = ?", tenantID, name, txType).Error; err != nil {
		return nil, err
	}
	return stored.ToDomain(), nil
}

// FindByIDForTenant finds a category by ID for a specific tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Category, error) {
	var model models.CategoryModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForTenant finds categories for a tenant, optionally filtered by type
func (r *GormCategoryRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, txType *ledger.TransactionType) ([]*ledger.Category, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("tenant_id = ?", tenantID)
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}

	var categoryModels []models.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*ledger.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToDomain()
	}
	return categories, nil
}

// Ensure GormCategoryRepository implements the interface
var _ ledger.CategoryRepository = (*GormCategoryRepository)(nil)
