package persistence

import (
	"context"
	"errors"

	"github.com/campus/backend/internal/domain/catalog"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentRepository implements StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// Save creates or updates a student record
func (r *GormStudentRepository) Save(ctx context.Context, student *catalog.Student) error {
	model := models.StudentModelFromDomain(student)
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(model).Error
}

// FindByIDForTenant finds a student by ID for a specific tenant
func (r *GormStudentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Student, error) {
	var model models.StudentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForTenant finds students by IDs for a specific tenant
func (r *GormStudentRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var studentModels []models.StudentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]*catalog.Student, len(studentModels))
	for i := range studentModels {
		students[i] = studentModels[i].ToDomain()
	}
	return students, nil
}

// Ensure GormStudentRepository implements the interface
var _ catalog.StudentRepository = (*GormStudentRepository)(nil)
