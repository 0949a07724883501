package tuition

import (
	"fmt"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the settlement state of a single installment
type InstallmentStatus string

const (
	InstallmentStatusPending   InstallmentStatus = "PENDING"   // not yet paid
	InstallmentStatusPartial   InstallmentStatus = "PARTIAL"   // partially paid
	InstallmentStatusPaid      InstallmentStatus = "PAID"      // fully settled
	InstallmentStatusCancelled InstallmentStatus = "CANCELLED" // voided by assignment cancellation
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPending, InstallmentStatusPartial, InstallmentStatusPaid, InstallmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InstallmentStatus) CanApplyPayment() bool {
	return s == InstallmentStatusPending || s == InstallmentStatusPartial
}

// Installment is one scheduled or settled portion of a fee assignment's
// payable amount. Installment numbers within one fee start at 1 and are
// contiguous; a down payment, when present, occupies number 1 and is created
// already paid.
type Installment struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	FeeID      uuid.UUID
	Number     int
	Amount     decimal.Decimal
	DueDate    time.Time
	Status     InstallmentStatus
	PaidAmount decimal.Decimal
	PaidAt     *time.Time
}

// NewInstallmentFromDraft materializes a scheduler draft into an installment
// belonging to the given fee assignment.
func NewInstallmentFromDraft(tenantID, feeID uuid.UUID, draft InstallmentDraft, now time.Time) *Installment {
	return &Installment{
		BaseEntity: shared.NewBaseEntityAt(now),
		TenantID:   tenantID,
		FeeID:      feeID,
		Number:     draft.Number,
		Amount:     draft.Amount.Amount(),
		DueDate:    draft.DueDate,
		Status:     draft.Status,
		PaidAmount: draft.PaidAmount.Amount(),
		PaidAt:     draft.PaidAt,
	}
}

// GetAmountMoney returns the installment amount as Money
func (i *Installment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(i.Amount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (i *Installment) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(i.PaidAmount)
}

// Remaining returns the unpaid portion of the installment
func (i *Installment) Remaining() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsSettled returns true once the installment is fully paid
func (i *Installment) IsSettled() bool {
	return i.Status == InstallmentStatusPaid
}

// ApplyPayment records a payment against the installment. The paid amount may
// never exceed the installment amount; status moves to PARTIAL or PAID
// accordingly.
func (i *Installment) ApplyPayment(amount valueobject.Money, paidAt time.Time) error {
	if !i.Status.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to installment in %s status", i.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.Remaining()) {
		return shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Payment amount %s exceeds remaining amount %s", amount.StringFixed(2), i.Remaining().StringFixed(2)))
	}

	i.PaidAmount = i.PaidAmount.Add(amount.Amount())
	if i.PaidAmount.Equal(i.Amount) {
		i.Status = InstallmentStatusPaid
		i.PaidAt = &paidAt
	} else {
		i.Status = InstallmentStatusPartial
	}
	i.UpdatedAt = paidAt

	return nil
}

// MarkCancelled voids an unpaid installment. Paid installments are historical
// and must not be touched; callers skip them.
func (i *Installment) MarkCancelled(at time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a paid installment")
	}
	i.Status = InstallmentStatusCancelled
	i.UpdatedAt = at
	return nil
}
