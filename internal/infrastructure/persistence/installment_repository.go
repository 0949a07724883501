package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/campus/backend/internal/domain/tuition"
	"github.com/campus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// SaveAll persists a batch of installments
func (r *GormInstallmentRepository) SaveAll(ctx context.Context, installments []*tuition.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	installmentModels := make([]*models.InstallmentModel, len(installments))
	for i, installment := range installments {
		installmentModels[i] = models.InstallmentModelFromDomain(installment)
	}
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(installmentModels).Error
}

// Save creates or updates an installment
func (r *GormInstallmentRepository) Save(ctx context.Context, installment *tuition.Installment) error {
	model := models.InstallmentModelFromDomain(installment)
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(model).Error
}

// FindByIDForTenant finds an installment by ID for a specific tenant
func (r *GormInstallmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tuition.Installment, error) {
	var model models.InstallmentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFeeID returns the fee's installments ordered by installment number
func (r *GormInstallmentRepository) FindByFeeID(ctx context.Context, tenantID, feeID uuid.UUID) ([]*tuition.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND fee_id = ?", tenantID, feeID).
		Order("number ASC").
		Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// FindDueBetween returns installments with a due date in [from, to], oldest first
func (r *GormInstallmentRepository) FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*tuition.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND due_date >= ? AND due_date <= ?", tenantID, from, to).
		Order("due_date ASC").
		Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// AllSettled reports whether every non-cancelled installment of the fee is paid
func (r *GormInstallmentRepository) AllSettled(ctx context.Context, tenantID, feeID uuid.UUID) (bool, error) {
	var open int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Where("tenant_id = ? AND fee_id = ? AND status NOT IN ?", tenantID, feeID,
			[]string{string(tuition.InstallmentStatusPaid), string(tuition.InstallmentStatusCancelled)}).
		Count(&open).Error; err != nil {
		return false, err
	}
	return open == 0, nil
}

func toDomainInstallments(installmentModels []models.InstallmentModel) []*tuition.Installment {
	installments := make([]*tuition.Installment, len(installmentModels))
	for i := range installmentModels {
		installments[i] = installmentModels[i].ToDomain()
	}
	return installments
}

// Ensure GormInstallmentRepository implements the interface
var _ tuition.InstallmentRepository = (*GormInstallmentRepository)(nil)
