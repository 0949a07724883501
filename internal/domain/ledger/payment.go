package ledger

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents the method of payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment records money received against a single installment, settled into a
// specific account. Down payments taken at assignment time produce a payment
// row the same way later manual collections do.
type Payment struct {
	shared.BaseEntity
	TenantID      uuid.UUID
	StudentID     uuid.UUID
	InstallmentID uuid.UUID
	AccountID     uuid.UUID
	Amount        decimal.Decimal
	Method        PaymentMethod
	Reference     string
	PaidAt        time.Time
	ReceivedBy    *uuid.UUID
	Remark        string
}

// NewPayment creates a payment record for an installment settlement.
func NewPayment(
	tenantID uuid.UUID,
	studentID uuid.UUID,
	installmentID uuid.UUID,
	accountID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	paidAt time.Time,
) (*Payment, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if installmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Settlement account is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntityAt(paidAt),
		TenantID:      tenantID,
		StudentID:     studentID,
		InstallmentID: installmentID,
		AccountID:     accountID,
		Amount:        amount.Amount(),
		Method:        method,
		PaidAt:        paidAt,
	}, nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(p.Amount)
}
