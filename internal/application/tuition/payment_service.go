package tuition

import (
	"context"
	"fmt"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
)

// PaymentService records collections against installments and the matching
// income bookkeeping.
type PaymentService struct {
	assignmentRepo  tuition.FeeAssignmentRepository
	installmentRepo tuition.InstallmentRepository
	paymentRepo     ledger.PaymentRepository
	ledgerTxRepo    ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	accountRepo     ledger.AccountRepository
	txManager       shared.TransactionManager
	clock           shared.Clock
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	assignmentRepo tuition.FeeAssignmentRepository,
	installmentRepo tuition.InstallmentRepository,
	paymentRepo ledger.PaymentRepository,
	ledgerTxRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	accountRepo ledger.AccountRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *PaymentService {
	return &PaymentService{
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

// RecordPayment settles part or all of an installment in one transaction:
// the installment is updated, a payment row is written, the income is booked
// with its VAT split and the account balance is adjusted.
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	installment, err := s.installmentRepo.FindByIDForTenant(ctx, tenantID, req.InstallmentID)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Installment not found")
	}

	assignment, err := s.assignmentRepo.FindByIDForTenant(ctx, tenantID, installment.FeeID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Fee assignment not found")
	}
	if assignment.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot collect on a cancelled assignment")
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Settlement account not found")
	}

	now := s.clock.Now()
	amount := valueobject.NewMoneyTRY(req.Amount)

	if err := installment.ApplyPayment(amount, now); err != nil {
		return nil, err
	}

	payment, err := ledger.NewPayment(tenantID, assignment.StudentID, installment.ID, account.ID, amount, ledger.PaymentMethod(req.PaymentMethod), now)
	if err != nil {
		return nil, err
	}
	payment.Reference = req.Reference
	if req.ReceivedBy != nil {
		payment.ReceivedBy = req.ReceivedBy
	}

	subtotal, err := tuition.NetComponentOf(amount, assignment.VATRatePercent)
	if err != nil {
		return nil, err
	}
	vatPart, err := amount.Subtract(subtotal)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.installmentRepo.Save(txCtx, installment); err != nil {
			return fmt.Errorf("failed to save installment: %w", err)
		}
		if err := s.paymentRepo.Save(txCtx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		category, err := s.categoryRepo.UpsertByName(txCtx, tenantID, ledger.DefaultTuitionIncomeCategory, ledger.TransactionTypeIncome)
		if err != nil {
			return fmt.Errorf("failed to resolve income category: %w", err)
		}

		tx, err := ledger.NewIncomeTransaction(
			tenantID, category.ID, account.ID,
			amount, subtotal, vatPart,
			fmt.Sprintf("Installment #%d for %s (%s)", installment.Number, assignment.ServiceName, assignment.AcademicPeriod),
			&payment.ID, now,
		)
		if err != nil {
			return err
		}
		tx.ServiceID = &assignment.ServiceID
		if err := s.ledgerTxRepo.Save(txCtx, tx); err != nil {
			return fmt.Errorf("failed to save ledger transaction: %w", err)
		}

		return s.accountRepo.AdjustBalance(txCtx, tenantID, account.ID, amount.Amount())
	})
	if err != nil {
		return nil, err
	}

	return &PaymentResponse{
		PaymentID:         payment.ID,
		InstallmentID:     installment.ID,
		Amount:            payment.Amount,
		InstallmentStatus: installment.Status.String(),
		RemainingAmount:   installment.Remaining(),
		PaidAt:            now,
	}, nil
}
