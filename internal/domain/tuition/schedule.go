package tuition

import (
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
)

// InstallmentDraft is one not-yet-persisted entry of a generated schedule
type InstallmentDraft struct {
	Number     int
	Amount     valueobject.Money
	DueDate    time.Time
	Status     InstallmentStatus
	PaidAmount valueobject.Money
	PaidAt     *time.Time
}

// ScheduleInput holds the inputs for installment schedule generation
type ScheduleInput struct {
	GrossPayable     valueobject.Money
	DownPayment      valueobject.Money
	InstallmentCount int       // normalized to 1 when < 1
	StartMonth       time.Time // any instant within the first due month; zero value falls back to the issue month
	DueDay           int       // day of month 1-31, clamped to the last valid day of each month
	IssueDate        time.Time // "now" from the caller's clock; due date of the down payment

	// HasSettlementAccount must be true when DownPayment > 0 so the caller can
	// book the settlement against an account.
	HasSettlementAccount bool
}

// BuildSchedule turns a payable amount into an ordered list of installment
// drafts. A positive down payment becomes installment #1, due on the issue
// date and already settled. The remainder is split across the requested number
// of monthly installments; the per-installment base is the floored 2-decimal
// share and the final installment absorbs the rounding remainder, so the draft
// amounts always sum to the payable amount exactly.
func BuildSchedule(in ScheduleInput) ([]InstallmentDraft, error) {
	if in.GrossPayable.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payable amount cannot be negative")
	}
	if in.DownPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	if exceeds, err := in.DownPayment.GreaterThan(in.GrossPayable); err != nil {
		return nil, err
	} else if exceeds {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot exceed the payable amount")
	}
	if in.DownPayment.IsPositive() && !in.HasSettlementAccount {
		return nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "A settlement account is required when a down payment is taken")
	}

	count := in.InstallmentCount
	if count < 1 {
		count = 1
	}

	startMonth := in.StartMonth
	if startMonth.IsZero() {
		startMonth = in.IssueDate
	}

	dueDay := in.DueDay
	if dueDay < 1 {
		dueDay = 1
	}
	if dueDay > 31 {
		dueDay = 31
	}

	var drafts []InstallmentDraft
	number := 1

	if in.DownPayment.IsPositive() {
		paidAt := in.IssueDate
		drafts = append(drafts, InstallmentDraft{
			Number:     number,
			Amount:     in.DownPayment,
			DueDate:    in.IssueDate,
			Status:     InstallmentStatusPaid,
			PaidAmount: in.DownPayment,
			PaidAt:     &paidAt,
		})
		number++
	}

	remaining, err := in.GrossPayable.Subtract(in.DownPayment)
	if err != nil {
		return nil, err
	}
	if !remaining.IsPositive() {
		// Fully settled by the down payment alone.
		return drafts, nil
	}

	parts, err := remaining.Allocate(count)
	if err != nil {
		return nil, err
	}
	for i, part := range parts {
		drafts = append(drafts, InstallmentDraft{
			Number:     number,
			Amount:     part,
			DueDate:    monthlyDueDate(startMonth, i, dueDay),
			Status:     InstallmentStatusPending,
			PaidAmount: valueobject.ZeroTRY(),
		})
		number++
	}

	return drafts, nil
}

// monthlyDueDate returns the due date in the month offset months after
// startMonth, with the day clamped to the last valid day of that month
// (e.g. day 31 in February becomes the 28th or 29th).
func monthlyDueDate(startMonth time.Time, offset, dueDay int) time.Time {
	year, month, _ := startMonth.Date()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)

	day := dueDay
	if lastDay := daysInMonth(firstOfMonth); day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the month of t
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}
