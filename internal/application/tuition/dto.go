package tuition

import (
	"time"

	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignFeeRequest assigns a basket of service fees to a student. The
// discount, schedule and down-payment terms are shared: they are applied once
// per service in the basket.
type AssignFeeRequest struct {
	StudentID        uuid.UUID       `json:"student_id" binding:"required"`
	ServiceIDs       []uuid.UUID     `json:"service_ids" binding:"required,min=1"`
	AcademicPeriod   string          `json:"academic_period" binding:"required"`
	DiscountType     string          `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	DiscountReason   string          `json:"discount_reason"`
	InstallmentCount int             `json:"installment_count"`
	DueDay           int             `json:"due_day"`
	StartMonth       *time.Time      `json:"start_month,omitempty"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	AccountID        *uuid.UUID      `json:"account_id,omitempty"` // settlement account, required when down_payment > 0
	PaymentMethod    string          `json:"payment_method"`
	// ForceDuplicate skips the duplicate-assignment advisory and creates the
	// assignment even when the student already has one for the same service
	// and period.
	ForceDuplicate bool       `json:"force_duplicate"`
	CreatedBy      *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// ServiceAssignOutcome reports the result for one service of an assignment
// basket. Each service is its own unit of work, so one failing never rolls
// back or hides the others.
type ServiceAssignOutcome struct {
	ServiceID    uuid.UUID           `json:"service_id"`
	Success      bool                `json:"success"`
	Assignment   *AssignmentResponse `json:"assignment,omitempty"`
	ErrorCode    string              `json:"error_code,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// AssignFeesResponse summarizes an assignment basket for one student
type AssignFeesResponse struct {
	StudentID uuid.UUID              `json:"student_id"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
	Outcomes  []ServiceAssignOutcome `json:"outcomes"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     int             `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	Status     string          `json:"status"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// AssignmentResponse represents a fee assignment in API responses
type AssignmentResponse struct {
	ID               uuid.UUID             `json:"id"`
	TenantID         uuid.UUID             `json:"tenant_id"`
	StudentID        uuid.UUID             `json:"student_id"`
	ClassID          *uuid.UUID            `json:"class_id,omitempty"`
	ServiceID        uuid.UUID             `json:"service_id"`
	ServiceName      string                `json:"service_name"`
	AcademicPeriod   string                `json:"academic_period"`
	GrossListPrice   decimal.Decimal       `json:"gross_list_price"`
	DiscountType     string                `json:"discount_type"`
	DiscountValue    decimal.Decimal       `json:"discount_value"`
	DiscountAmount   decimal.Decimal       `json:"discount_amount"`
	DiscountReason   string                `json:"discount_reason,omitempty"`
	VATRatePercent   decimal.Decimal       `json:"vat_rate_percent"`
	VATAmount        decimal.Decimal       `json:"vat_amount"`
	NetPayable       decimal.Decimal       `json:"net_payable"`
	InstallmentCount int                   `json:"installment_count"`
	Status           string                `json:"status"`
	CancelledAt      *time.Time            `json:"cancelled_at,omitempty"`
	CancelReason     string                `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	Version          int                   `json:"version"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
}

// AssignmentListFilter defines filtering options for assignment list queries
type AssignmentListFilter struct {
	StudentID      *uuid.UUID `form:"student_id"`
	ClassID        *uuid.UUID `form:"class_id"`
	ServiceID      *uuid.UUID `form:"service_id"`
	AcademicPeriod string     `form:"academic_period"`
	Status         string     `form:"status"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
}

// DuplicateCheckRequest asks which of the given services the student already
// has an active assignment for in the academic period
type DuplicateCheckRequest struct {
	StudentID      uuid.UUID   `json:"student_id" binding:"required"`
	AcademicPeriod string      `json:"academic_period" binding:"required"`
	ServiceIDs     []uuid.UUID `json:"service_ids" binding:"required,min=1"`
}

// DuplicateConflict names one service the student is already assigned
type DuplicateConflict struct {
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	AssignmentID uuid.UUID `json:"assignment_id"`
}

// BulkAssignFeeRequest assigns one shared service basket to many students at
// once, applying the same fee terms once per service for each student
type BulkAssignFeeRequest struct {
	StudentIDs       []uuid.UUID     `json:"student_ids" binding:"required,min=1"`
	ServiceIDs       []uuid.UUID     `json:"service_ids" binding:"required,min=1"`
	AcademicPeriod   string          `json:"academic_period" binding:"required"`
	DiscountType     string          `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	DiscountReason   string          `json:"discount_reason"`
	InstallmentCount int             `json:"installment_count"`
	DueDay           int             `json:"due_day"`
	StartMonth       *time.Time      `json:"start_month,omitempty"`
	ForceDuplicate   bool            `json:"force_duplicate"`
	CreatedBy        *uuid.UUID      `json:"-"`
}

// BulkAssignOutcome reports the result for one student of a bulk assignment:
// the per-service outcomes of the student's basket, or a student-level error
// when the basket could not be attempted at all. A failure for one student
// never hides successes for the others.
type BulkAssignOutcome struct {
	StudentID    uuid.UUID              `json:"student_id"`
	Success      bool                   `json:"success"`
	Services     []ServiceAssignOutcome `json:"services,omitempty"`
	ErrorCode    string                 `json:"error_code,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
}

// BulkAssignResponse summarizes a bulk assignment run
type BulkAssignResponse struct {
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Outcomes  []BulkAssignOutcome `json:"outcomes"`
}

// CancelAssignmentRequest represents a request to cancel a fee assignment
type CancelAssignmentRequest struct {
	Reason string `json:"reason" binding:"required"`
	// Refund books the money already collected back out as an expense. Without
	// it, cancellation only voids the unpaid installments.
	Refund bool `json:"refund"`
	// RefundAccountID is the account the refund is paid out of; when omitted
	// the account of the first recorded payment is used.
	RefundAccountID *uuid.UUID `json:"refund_account_id,omitempty"`
}

// CancellationResult reports what a cancellation did
type CancellationResult struct {
	AssignmentID          uuid.UUID       `json:"assignment_id"`
	CancelledInstallments int             `json:"cancelled_installments"`
	RefundedAmount        decimal.Decimal `json:"refunded_amount"`
}

// RecordPaymentRequest represents a request to settle (part of) an installment
type RecordPaymentRequest struct {
	InstallmentID uuid.UUID       `json:"installment_id" binding:"required"`
	AccountID     uuid.UUID       `json:"account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Reference     string          `json:"reference"`
	ReceivedBy    *uuid.UUID      `json:"-"`
}

// PaymentResponse represents a recorded payment in API responses
type PaymentResponse struct {
	PaymentID         uuid.UUID       `json:"payment_id"`
	InstallmentID     uuid.UUID       `json:"installment_id"`
	Amount            decimal.Decimal `json:"amount"`
	InstallmentStatus string          `json:"installment_status"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	PaidAt            time.Time       `json:"paid_at"`
}

func toInstallmentResponse(inst *tuition.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:         inst.ID,
		Number:     inst.Number,
		Amount:     inst.Amount,
		DueDate:    inst.DueDate,
		Status:     inst.Status.String(),
		PaidAmount: inst.PaidAmount,
		PaidAt:     inst.PaidAt,
	}
}

func toAssignmentResponse(fa *tuition.FeeAssignment, installments []*tuition.Installment) *AssignmentResponse {
	resp := &AssignmentResponse{
		ID:               fa.ID,
		TenantID:         fa.TenantID,
		StudentID:        fa.StudentID,
		ClassID:          fa.ClassID,
		ServiceID:        fa.ServiceID,
		ServiceName:      fa.ServiceName,
		AcademicPeriod:   fa.AcademicPeriod,
		GrossListPrice:   fa.GrossListPrice,
		DiscountType:     fa.DiscountType.String(),
		DiscountValue:    fa.DiscountValue,
		DiscountAmount:   fa.DiscountAmount,
		DiscountReason:   fa.DiscountReason,
		VATRatePercent:   fa.VATRatePercent,
		VATAmount:        fa.VATAmount,
		NetPayable:       fa.NetPayable,
		InstallmentCount: fa.InstallmentCount,
		Status:           fa.Status.String(),
		CancelledAt:      fa.CancelledAt,
		CancelReason:     fa.CancelReason,
		CreatedAt:        fa.CreatedAt,
		UpdatedAt:        fa.UpdatedAt,
		Version:          fa.Version,
	}
	for _, inst := range installments {
		resp.Installments = append(resp.Installments, toInstallmentResponse(inst))
	}
	return resp
}
