package tuition

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the tuition domain
const (
	EventTypeFeeAssignmentCreated   = "tuition.fee_assignment.created"
	EventTypeFeeAssignmentCancelled = "tuition.fee_assignment.cancelled"
)

// AggregateTypeFeeAssignment identifies the aggregate in event metadata
const AggregateTypeFeeAssignment = "FeeAssignment"

// FeeAssignmentCreatedEvent is emitted when a fee assignment is created
type FeeAssignmentCreatedEvent struct {
	shared.BaseDomainEvent
	StudentID        string          `json:"student_id"`
	ServiceID        string          `json:"service_id"`
	AcademicPeriod   string          `json:"academic_period"`
	NetPayable       decimal.Decimal `json:"net_payable"`
	InstallmentCount int             `json:"installment_count"`
}

// NewFeeAssignmentCreatedEvent creates a new FeeAssignmentCreatedEvent
func NewFeeAssignmentCreatedEvent(fa *FeeAssignment) *FeeAssignmentCreatedEvent {
	return &FeeAssignmentCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeFeeAssignmentCreated, AggregateTypeFeeAssignment, fa.ID, fa.TenantID),
		StudentID:        fa.StudentID.String(),
		ServiceID:        fa.ServiceID.String(),
		AcademicPeriod:   fa.AcademicPeriod,
		NetPayable:       fa.NetPayable,
		InstallmentCount: fa.InstallmentCount,
	}
}

// FeeAssignmentCancelledEvent is emitted when a fee assignment is cancelled
type FeeAssignmentCancelledEvent struct {
	shared.BaseDomainEvent
	StudentID    string `json:"student_id"`
	CancelReason string `json:"cancel_reason"`
}

// NewFeeAssignmentCancelledEvent creates a new FeeAssignmentCancelledEvent
func NewFeeAssignmentCancelledEvent(fa *FeeAssignment) *FeeAssignmentCancelledEvent {
	return &FeeAssignmentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeeAssignmentCancelled, AggregateTypeFeeAssignment, fa.ID, fa.TenantID),
		StudentID:       fa.StudentID.String(),
		CancelReason:    fa.CancelReason,
	}
}
