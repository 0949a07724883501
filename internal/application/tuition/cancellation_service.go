package tuition

import (
	"context"
	"fmt"
	"time"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationService cancels fee assignments. Unpaid installments are voided
// and settled ones stay untouched as history. A refund is booked only when the
// caller asks for one; it returns everything collected so far as an expense.
type CancellationService struct {
	assignmentRepo  tuition.FeeAssignmentRepository
	installmentRepo tuition.InstallmentRepository
	paymentRepo     ledger.PaymentRepository
	ledgerTxRepo    ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	accountRepo     ledger.AccountRepository
	txManager       shared.TransactionManager
	clock           shared.Clock
}

// NewCancellationService creates a new CancellationService
func NewCancellationService(
	assignmentRepo tuition.FeeAssignmentRepository,
	installmentRepo tuition.InstallmentRepository,
	paymentRepo ledger.PaymentRepository,
	ledgerTxRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	accountRepo ledger.AccountRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *CancellationService {
	return &CancellationService{
		assignmentRepo:  assignmentRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		ledgerTxRepo:    ledgerTxRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
		txManager:       txManager,
		clock:           clock,
	}
}

// CancelAssignment cancels a fee assignment in one transaction. It returns how
// many installments were voided and, when a refund was requested, the total
// paid back: the sum of every payment recorded against the fee's installments.
func (s *CancellationService) CancelAssignment(ctx context.Context, tenantID, assignmentID uuid.UUID, req CancelAssignmentRequest) (*CancellationResult, error) {
	assignment, err := s.assignmentRepo.FindByIDForTenant(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Fee assignment not found")
	}

	now := s.clock.Now()
	if err := assignment.Cancel(req.Reason, now); err != nil {
		return nil, err
	}

	installments, err := s.installmentRepo.FindByFeeID(ctx, tenantID, assignment.ID)
	if err != nil {
		return nil, err
	}

	var toCancel []*tuition.Installment
	for _, inst := range installments {
		if inst.Status == tuition.InstallmentStatusPending || inst.Status == tuition.InstallmentStatusPartial {
			toCancel = append(toCancel, inst)
		}
	}

	refund := decimal.Zero
	var refundAccountID *uuid.UUID
	if req.Refund {
		refund, refundAccountID, err = s.resolveRefund(ctx, tenantID, installments, req.RefundAccountID)
		if err != nil {
			return nil, err
		}
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.assignmentRepo.SaveWithLock(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to save assignment: %w", err)
		}

		for _, inst := range toCancel {
			if err := inst.MarkCancelled(now); err != nil {
				return err
			}
			if err := s.installmentRepo.Save(txCtx, inst); err != nil {
				return fmt.Errorf("failed to save installment: %w", err)
			}
		}

		if refund.IsPositive() {
			if err := s.bookRefund(txCtx, tenantID, assignment, valueobject.NewMoneyTRY(refund), *refundAccountID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CancellationResult{
		AssignmentID:          assignment.ID,
		CancelledInstallments: len(toCancel),
		RefundedAmount:        refund,
	}, nil
}

// resolveRefund sums the payments recorded against the fee's installments and
// picks the payout account: the one the caller named, falling back to the
// account of the first payment found.
func (s *CancellationService) resolveRefund(ctx context.Context, tenantID uuid.UUID, installments []*tuition.Installment, requested *uuid.UUID) (decimal.Decimal, *uuid.UUID, error) {
	refund := decimal.Zero
	if len(installments) == 0 {
		return refund, requested, nil
	}

	ids := make([]uuid.UUID, 0, len(installments))
	for _, inst := range installments {
		ids = append(ids, inst.ID)
	}
	payments, err := s.paymentRepo.FindByInstallmentIDs(ctx, tenantID, ids)
	if err != nil {
		return refund, nil, fmt.Errorf("failed to load payments: %w", err)
	}

	for _, p := range payments {
		refund = refund.Add(p.Amount)
	}

	accountID := requested
	if accountID == nil && len(payments) > 0 {
		accountID = &payments[0].AccountID
	}
	if refund.IsPositive() && accountID == nil {
		return refund, nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "No account to pay the refund out of")
	}
	return refund, accountID, nil
}

// bookRefund writes the expense ledger transaction for a refund and debits the
// refund account. Runs inside the cancellation transaction.
func (s *CancellationService) bookRefund(ctx context.Context, tenantID uuid.UUID, assignment *tuition.FeeAssignment, amount valueobject.Money, accountID uuid.UUID, at time.Time) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to load refund account: %w", err)
	}
	if account == nil {
		return shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Refund account not found")
	}

	category, err := s.categoryRepo.UpsertByName(ctx, tenantID, ledger.DefaultRefundExpenseCategory, ledger.TransactionTypeExpense)
	if err != nil {
		return fmt.Errorf("failed to resolve refund category: %w", err)
	}

	tx, err := ledger.NewExpenseTransaction(
		tenantID, category.ID, account.ID, amount,
		fmt.Sprintf("Refund to student %s for cancelled %s (%s): %s",
			assignment.StudentID, assignment.ServiceName, assignment.AcademicPeriod, assignment.CancelReason),
		&assignment.ID, at,
	)
	if err != nil {
		return err
	}
	tx.ServiceID = &assignment.ServiceID
	if err := s.ledgerTxRepo.Save(ctx, tx); err != nil {
		return fmt.Errorf("failed to save refund transaction: %w", err)
	}

	if err := s.accountRepo.AdjustBalance(ctx, tenantID, account.ID, amount.Amount().Neg()); err != nil {
		return fmt.Errorf("failed to adjust account balance: %w", err)
	}
	return nil
}
