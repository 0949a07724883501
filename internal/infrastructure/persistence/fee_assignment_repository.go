package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFeeAssignmentRepository implements FeeAssignmentRepository using GORM
type GormFeeAssignmentRepository struct {
	db *gorm.DB
}

// NewGormFeeAssignmentRepository creates a new GormFeeAssignmentRepository
func NewGormFeeAssignmentRepository(db *gorm.DB) *GormFeeAssignmentRepository {
	return &GormFeeAssignmentRepository{db: db}
}

// Save creates or updates a fee assignment
func (r *GormFeeAssignmentRepository) Save(ctx context.Context, assignment *tuition.FeeAssignment) error {
	model := models.FeeAssignmentModelFromDomain(assignment)
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormFeeAssignmentRepository) SaveWithLock(ctx context.Context, assignment *tuition.FeeAssignment) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	// The aggregate already incremented its version in memory; the stored
	// row must still be at the previous version.
	previousVersion := assignment.Version - 1

	model := models.FeeAssignmentModelFromDomain(assignment)
	result := db.Model(model).
		Where("id = ? AND version = ?", assignment.ID, previousVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The fee assignment has been modified by another user")
	}
	return nil
}

// FindByIDForTenant finds a fee assignment by ID for a specific tenant
func (r *GormFeeAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tuition.FeeAssignment, error) {
	var model models.FeeAssignmentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForTenant finds fee assignments for a tenant with filtering and pagination
func (r *GormFeeAssignmentRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter tuition.AssignmentFilter) (*shared.Paginated[*tuition.FeeAssignment], error) {
	query := r.filteredQuery(ctx, tenantID, filter)

	var total int64
	if err := query.Model(&models.FeeAssignmentModel{}).Count(&total).Error; err != nil {
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

	orderBy := ValidateSortField(filter.OrderBy, FeeAssignmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var assignmentModels []models.FeeAssignmentModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*tuition.FeeAssignment, len(assignmentModels))
	for i := range assignmentModels {
		assignments[i] = assignmentModels[i].ToDomain()
	}

	paginated := shared.NewPaginated(assignments, total, page, pageSize)
	return &paginated, nil
}

// FindActiveByStudentAndServices returns the student's non-cancelled
// assignments in the given academic period whose service is in serviceIDs.
func (r *GormFeeAssignmentRepository) FindActiveByStudentAndServices(ctx context.Context, tenantID, studentID uuid.UUID, academicPeriod string, serviceIDs []uuid.UUID) ([]*tuition.FeeAssignment, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	var assignmentModels []models.FeeAssignmentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND student_id = ? AND academic_period = ? AND service_id IN ? AND status <> ?",
			tenantID, studentID, academicPeriod, serviceIDs, tuition.AssignmentStatusCancelled).
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*tuition.FeeAssignment, len(assignmentModels))
	for i := range assignmentModels {
		assignments[i] = assignmentModels[i].ToDomain()
	}
	return assignments, nil
}

// CountForTenant counts fee assignments for a tenant with optional filters
func (r *GormFeeAssignmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter tuition.AssignmentFilter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, tenantID, filter).
		Model(&models.FeeAssignmentModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFeeAssignmentRepository) filteredQuery(ctx context.Context, tenantID uuid.UUID, filter tuition.AssignmentFilter) *gorm.DB {
	query := dbFromContext(ctx, r.db).WithContext(ctx).Where("tenant_id = ?", tenantID)

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.AcademicPeriod != "" {
		query = query.Where("academic_period = ?", filter.AcademicPeriod)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.Search != "" {
		query = query.Where("service_name ILIKE ?", "%"+filter.Search+"%")
	}

	return query
}

// Ensure GormFeeAssignmentRepository implements the interface
var _ tuition.FeeAssignmentRepository = (*GormFeeAssignmentRepository)(nil)
