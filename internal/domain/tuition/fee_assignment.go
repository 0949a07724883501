package tuition

import (
	"fmt"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentStatus represents the lifecycle state of a fee assignment
type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "ACTIVE"    // obligation is open
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED" // all installments settled (set administratively)
	AssignmentStatusCancelled AssignmentStatus = "CANCELLED" // terminal, obligation reversed
)

// IsValid checks if the status is a valid AssignmentStatus
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusActive, AssignmentStatusCompleted, AssignmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AssignmentStatus
func (s AssignmentStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the assignment is in a terminal state
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentStatusCancelled
}

// FeeAssignment is the aggregate root linking one student to one purchased
// service for one academic period, carrying the discount- and VAT-adjusted
// payable amount. Assignments are never deleted, only cancelled; CANCELLED is
// terminal and no field other than audit notes may change afterwards.
type FeeAssignment struct {
	shared.TenantAggregateRoot
	StudentID        uuid.UUID        `json:"student_id"`
	ClassID          *uuid.UUID       `json:"class_id,omitempty"`
	ServiceID        uuid.UUID        `json:"service_id"`
	ServiceName      string           `json:"service_name"`
	AcademicPeriod   string           `json:"academic_period"`
	GrossListPrice   decimal.Decimal  `json:"gross_list_price"`
	DiscountType     DiscountType     `json:"discount_type"`
	DiscountValue    decimal.Decimal  `json:"discount_value"`
	DiscountAmount   decimal.Decimal  `json:"discount_amount"` // absolute discount applied
	DiscountReason   string           `json:"discount_reason,omitempty"`
	VATRatePercent   decimal.Decimal  `json:"vat_rate_percent"`
	VATAmount        decimal.Decimal  `json:"vat_amount"`
	NetPayable       decimal.Decimal  `json:"net_payable"` // VAT-inclusive amount billed
	InstallmentCount int              `json:"installment_count"`
	Status           AssignmentStatus `json:"status"`
	CancelledAt      *time.Time       `json:"cancelled_at,omitempty"`
	CancelReason     string           `json:"cancel_reason,omitempty"`
}

// NewFeeAssignment creates an active fee assignment from validated pricing
// inputs and the calculated pricing result.
func NewFeeAssignment(
	tenantID uuid.UUID,
	studentID uuid.UUID,
	classID *uuid.UUID,
	serviceID uuid.UUID,
	serviceName string,
	academicPeriod string,
	input PricingInput,
	pricing PricingResult,
	discountReason string,
	installmentCount int,
) (*FeeAssignment, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if serviceName == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service name cannot be empty")
	}
	if academicPeriod == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Academic period cannot be empty")
	}
	if installmentCount < 1 {
		installmentCount = 1
	}

	fa := &FeeAssignment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StudentID:           studentID,
		ClassID:             classID,
		ServiceID:           serviceID,
		ServiceName:         serviceName,
		AcademicPeriod:      academicPeriod,
		GrossListPrice:      input.UnitPrice.Amount(),
		DiscountType:        input.DiscountType,
		DiscountValue:       input.DiscountValue,
		DiscountAmount:      pricing.DiscountAmount.Amount(),
		DiscountReason:      discountReason,
		VATRatePercent:      input.VATRatePercent,
		VATAmount:           pricing.VATAmount.Amount(),
		NetPayable:          pricing.GrossPayable.Amount(),
		InstallmentCount:    installmentCount,
		Status:              AssignmentStatusActive,
	}

	fa.AddDomainEvent(NewFeeAssignmentCreatedEvent(fa))

	return fa, nil
}

// Cancel transitions the assignment to its terminal CANCELLED state and stores
// the reason. Installment reversal and refund bookkeeping happen in the
// cancellation service; the aggregate only guards the state machine.
func (fa *FeeAssignment) Cancel(reason string, at time.Time) error {
	if fa.Status == AssignmentStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", fmt.Sprintf("Fee assignment %s is already cancelled", fa.ID))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	fa.Status = AssignmentStatusCancelled
	fa.CancelledAt = &at
	fa.CancelReason = reason
	fa.UpdatedAt = at
	fa.IncrementVersion()

	fa.AddDomainEvent(NewFeeAssignmentCancelledEvent(fa))

	return nil
}

// Complete marks the assignment as completed. This is an administrative
// transition; the engine never triggers it automatically when the last
// installment is paid.
func (fa *FeeAssignment) Complete(at time.Time) error {
	if fa.Status != AssignmentStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete assignment in %s status", fa.Status))
	}
	fa.Status = AssignmentStatusCompleted
	fa.UpdatedAt = at
	fa.IncrementVersion()
	return nil
}

// IsCancelled returns true if the assignment has been cancelled
func (fa *FeeAssignment) IsCancelled() bool {
	return fa.Status == AssignmentStatusCancelled
}

// GetNetPayableMoney returns the VAT-inclusive payable amount as Money
func (fa *FeeAssignment) GetNetPayableMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(fa.NetPayable)
}

// GetVATAmountMoney returns the VAT amount as Money
func (fa *FeeAssignment) GetVATAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(fa.VATAmount)
}
