package models

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeAssignmentModel is the persistence model for FeeAssignment.
type FeeAssignmentModel struct {
	TenantAggregateModel
	StudentID        uuid.UUID                `gorm:"type:uuid;not null;index:idx_fee_assignments_student_period"`
	ClassID          *uuid.UUID               `gorm:"type:uuid;index"`
	ServiceID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	ServiceName      string                   `gorm:"type:varchar(200);not null"`
	AcademicPeriod   string                   `gorm:"type:varchar(20);not null;index:idx_fee_assignments_student_period"`
	GrossListPrice   decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DiscountType     tuition.DiscountType     `gorm:"type:varchar(20);not null"`
	DiscountValue    decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DiscountAmount   decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DiscountReason   string                   `gorm:"type:varchar(500)"`
	VATRatePercent   decimal.Decimal          `gorm:"type:decimal(8,4);not null"`
	VATAmount        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	NetPayable       decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	InstallmentCount int                      `gorm:"not null"`
	Status           tuition.AssignmentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CancelledAt      *time.Time
	CancelReason     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FeeAssignmentModel) TableName() string {
	return "fee_assignments"
}

// ToDomain converts the persistence model to a domain FeeAssignment entity.
func (m *FeeAssignmentModel) ToDomain() *tuition.FeeAssignment {
	fa := &tuition.FeeAssignment{
		StudentID:        m.StudentID,
		ClassID:          m.ClassID,
		ServiceID:        m.ServiceID,
		ServiceName:      m.ServiceName,
		AcademicPeriod:   m.AcademicPeriod,
		GrossListPrice:   m.GrossListPrice,
		DiscountType:     m.DiscountType,
		DiscountValue:    m.DiscountValue,
		DiscountAmount:   m.DiscountAmount,
		DiscountReason:   m.DiscountReason,
		VATRatePercent:   m.VATRatePercent,
		VATAmount:        m.VATAmount,
		NetPayable:       m.NetPayable,
		InstallmentCount: m.InstallmentCount,
		Status:           m.Status,
		CancelledAt:      m.CancelledAt,
		CancelReason:     m.CancelReason,
	}
	m.PopulateTenantAggregateRoot(&fa.TenantAggregateRoot)
	return fa
}

// FromDomain populates the persistence model from a domain FeeAssignment entity.
func (m *FeeAssignmentModel) FromDomain(fa *tuition.FeeAssignment) {
	m.FromDomainTenantAggregateRoot(fa.TenantAggregateRoot)
	m.StudentID = fa.StudentID
	m.ClassID = fa.ClassID
	m.ServiceID = fa.ServiceID
	m.ServiceName = fa.ServiceName
	m.AcademicPeriod = fa.AcademicPeriod
	m.GrossListPrice = fa.GrossListPrice
	m.DiscountType = fa.DiscountType
	m.DiscountValue = fa.DiscountValue
	m.DiscountAmount = fa.DiscountAmount
	m.DiscountReason = fa.DiscountReason
	m.VATRatePercent = fa.VATRatePercent
	m.VATAmount = fa.VATAmount
	m.NetPayable = fa.NetPayable
	m.InstallmentCount = fa.InstallmentCount
	m.Status = fa.Status
	m.CancelledAt = fa.CancelledAt
	m.CancelReason = fa.CancelReason
}

// FeeAssignmentModelFromDomain creates a new persistence model from domain.
func FeeAssignmentModelFromDomain(fa *tuition.FeeAssignment) *FeeAssignmentModel {
	m := &FeeAssignmentModel{}
	m.FromDomain(fa)
	return m
}

// InstallmentModel is the persistence model for Installment.
type InstallmentModel struct {
	BaseModel
	TenantID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	FeeID      uuid.UUID                 `gorm:"type:uuid;not null;index:idx_installments_fee_number,unique"`
	Number     int                       `gorm:"not null;index:idx_installments_fee_number,unique"`
	Amount     decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	DueDate    time.Time                 `gorm:"not null;index"`
	Status     tuition.InstallmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	PaidAt     *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *tuition.Installment {
	return &tuition.Installment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:   m.TenantID,
		FeeID:      m.FeeID,
		Number:     m.Number,
		Amount:     m.Amount,
		DueDate:    m.DueDate,
		Status:     m.Status,
		PaidAmount: m.PaidAmount,
		PaidAt:     m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *tuition.Installment) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.TenantID = i.TenantID
	m.FeeID = i.FeeID
	m.Number = i.Number
	m.Amount = i.Amount
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidAmount = i.PaidAmount
	m.PaidAt = i.PaidAt
}

// InstallmentModelFromDomain creates a new persistence model from domain.
func InstallmentModelFromDomain(i *tuition.Installment) *InstallmentModel {
	m := &InstallmentModel{}
	m.FromDomain(i)
	return m
}
