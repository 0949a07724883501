package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus/backend/internal/domain/catalog"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceItemRepository implements ServiceItemRepository using GORM
type GormServiceItemRepository struct {
	db *gorm.DB
}

// NewGormServiceItemRepository creates a new GormServiceItemRepository
func NewGormServiceItemRepository(db *gorm.DB) *GormServiceItemRepository {
	return &GormServiceItemRepository{db: db}
}

// Save creates or updates a service item
func (r *GormServiceItemRepository) Save(ctx context.Context, item *catalog.ServiceItem) error {
	model := models.ServiceItemModelFromDomain(item)
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(model).Error
}

// FindByIDForTenant finds a service item by ID for a specific tenant
func (r *GormServiceItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ServiceItem, error) {
	var model models.ServiceItemModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForTenant finds service items by IDs for a specific tenant
func (r *GormServiceItemRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.ServiceItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var itemModels []models.ServiceItemModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainServiceItems(itemModels), nil
}

// FindActiveForTenant returns active catalog items with pagination
func (r *GormServiceItemRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*catalog.ServiceItem], error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Model(&models.ServiceItemModel{}).Count(&total).Error; err != nil {
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

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var itemModels []models.ServiceItemModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(toDomainServiceItems(itemModels), total, page, pageSize)
	return &paginated, nil
}

func toDomainServiceItems(itemModels []models.ServiceItemModel) []*catalog.ServiceItem {
	items := make([]*catalog.ServiceItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items
}

// Ensure GormServiceItemRepository implements the interface
var _ catalog.ServiceItemRepository = (*GormServiceItemRepository)(nil)
