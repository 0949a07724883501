package tuition

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cancellationServiceFixture struct {
	assignmentRepo  *MockFeeAssignmentRepository
	installmentRepo *MockInstallmentRepository
	paymentRepo     *MockPaymentRepository
	ledgerTxRepo    *MockLedgerTransactionRepository
	categoryRepo    *MockCategoryRepository
	accountRepo     *MockAccountRepository
	service         *CancellationService
}

func newCancellationServiceFixture() *cancellationServiceFixture {
	f := &cancellationServiceFixture{
		assignmentRepo:  new(MockFeeAssignmentRepository),
		installmentRepo: new(MockInstallmentRepository),
		paymentRepo:     new(MockPaymentRepository),
		ledgerTxRepo:    new(MockLedgerTransactionRepository),
		categoryRepo:    new(MockCategoryRepository),
		accountRepo:     new(MockAccountRepository),
	}
	f.service = NewCancellationService(
		f.assignmentRepo, f.installmentRepo, f.paymentRepo, f.ledgerTxRepo,
		f.categoryRepo, f.accountRepo, fakeTxManager{},
		shared.FixedClock{Instant: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)},
	)
	return f
}

func draftInstallment(tenantID, feeID uuid.UUID, number int, amount string) *tuition.Installment {
	return tuition.NewInstallmentFromDraft(tenantID, feeID, tuition.InstallmentDraft{
		Number:     number,
		Amount:     valueobject.NewMoneyTRY(decimal.RequireFromString(amount)),
		DueDate:    time.Date(2025, time.Month(9+number), 5, 0, 0, 0, 0, time.UTC),
		Status:     tuition.InstallmentStatusPending,
		PaidAmount: valueobject.ZeroTRY(),
	}, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
}

func installmentPayment(t *testing.T, tenantID, studentID, installmentID, accountID uuid.UUID, amount string) *ledger.Payment {
	t.Helper()
	p, err := ledger.NewPayment(
		tenantID, studentID, installmentID, accountID,
		valueobject.NewMoneyTRY(decimal.RequireFromString(amount)),
		ledger.PaymentMethodCash, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestCancellationService_CancelAssignment(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("unpaid assignment cancels all installments with no refund", func(t *testing.T) {
		f := newCancellationServiceFixture()
		fa := newTestDomainAssignment(t, tenantID, uuid.New(), uuid.New())
		installments := []*tuition.Installment{
			draftInstallment(tenantID, fa.ID, 1, "270"),
			draftInstallment(tenantID, fa.ID, 2, "270"),
		}

		f.assignmentRepo.On("FindByIDForTenant", mock.Anything, tenantID, fa.ID).Return(fa, nil)
		f.installmentRepo.On("FindByFeeID", mock.Anything, tenantID, fa.ID).Return(installments, nil)
		f.assignmentRepo.On("SaveWithLock", mock.Anything, fa).Return(nil)
		f.installmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*tuition.Installment")).Return(nil).Times(2)

		result, err := f.service.CancelAssignment(ctx, tenantID, fa.ID, CancelAssignmentRequest{Reason: "enrollment withdrawn"})
		require.NoError(t, err)

		assert.Equal(t, 2, result.CancelledInstallments)
		assert.True(t, result.RefundedAmount.IsZero())
		assert.Equal(t, tuition.AssignmentStatusCancelled, fa.Status)
		for _, inst := range installments {
			assert.Equal(t, tuition.InstallmentStatusCancelled, inst.Status)
		}
		f.ledgerTxRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancellation without a refund request leaves collected money alone", func(t *testing.T) {
		f := newCancellationServiceFixture()
		fa := newTestDomainAssignment(t, tenantID, uuid.New(), uuid.New())
		paid := draftInstallment(tenantID, fa.ID, 1, "270")
		require.NoError(t, paid.ApplyPayment(valueobject.NewMoneyTRY(decimal.RequireFromString("270")), time.Now()))
		pending := draftInstallment(tenantID, fa.ID, 2, "270")
		installments := []*tuition.Installment{paid, pending}

		f.assignmentRepo.On("FindByIDForTenant", mock.Anything, tenantID, fa.ID).Return(fa, nil)
		f.installmentRepo.On("FindByFeeID", mock.Anything, tenantID, fa.ID).Return(installments, nil)
		f.assignmentRepo.On("SaveWithLock", mock.Anything, fa).Return(nil)
		f.installmentRepo.On("Save", mock.Anything, pending).Return(nil)

		result, err := f.service.CancelAssignment(ctx, tenantID, fa.ID, CancelAssignmentRequest{Reason: "withdrawn"})
		require.NoError(t, err)

		assert.Equal(t, 1, result.CancelledInstallments)
		assert.True(t, result.RefundedAmount.IsZero())
		assert.Equal(t, tuition.InstallmentStatusPaid, paid.Status)
		assert.Equal(t, tuition.InstallmentStatusCancelled, pending.Status)
		f.paymentRepo.AssertNotCalled(t, "FindByInstallmentIDs", mock.Anything, mock.Anything, mock.Anything)
		f.ledgerTxRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("requested refund pays back every recorded payment", func(t *testing.T) {
		f := newCancellationServiceFixture()
		studentID := uuid.New()
		fa := newTestDomainAssignment(t, tenantID, studentID, uuid.New())
		account, _ := ledger.NewAccount(tenantID, "Main Cash", ledger.AccountTypeCash)
		category, _ := ledger.NewCategory(tenantID, ledger.DefaultRefundExpenseCategory, ledger.TransactionTypeExpense, true)

		paid := draftInstallment(tenantID, fa.ID, 1, "270")
		require.NoError(t, paid.ApplyPayment(valueobject.NewMoneyTRY(decimal.RequireFromString("270")), time.Now()))
		partial := draftInstallment(tenantID, fa.ID, 2, "270")
		require.NoError(t, partial.ApplyPayment(valueobject.NewMoneyTRY(decimal.RequireFromString("100")), time.Now()))
		pending := draftInstallment(tenantID, fa.ID, 3, "270")
		installments := []*tuition.Installment{paid, partial, pending}
		payments := []*ledger.Payment{
			installmentPayment(t, tenantID, studentID, paid.ID, account.ID, "270"),
			installmentPayment(t, tenantID, studentID, partial.ID, account.ID, "100"),
		}

		f.assignmentRepo.On("FindByIDForTenant", mock.Anything, tenantID, fa.ID).Return(fa, nil)
		f.installmentRepo.On("FindByFeeID", mock.Anything, tenantID, fa.ID).Return(installments, nil)
		f.paymentRepo.On("FindByInstallmentIDs", mock.Anything, tenantID, []uuid.UUID{paid.ID, partial.ID, pending.ID}).
			Return(payments, nil)
		f.assignmentRepo.On("SaveWithLock", mock.Anything, fa).Return(nil)
		f.installmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*tuition.Installment")).Return(nil).Times(2)
		f.accountRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.categoryRepo.On("UpsertByName", mock.Anything, tenantID, ledger.DefaultRefundExpenseCategory, ledger.TransactionTypeExpense).
			Return(category, nil)
		f.ledgerTxRepo.On("Save", mock.Anything, mock.MatchedBy(func(tx *ledger.LedgerTransaction) bool {
			return tx.Type == ledger.TransactionTypeExpense &&
				tx.Amount.Equal(decimal.RequireFromString("370")) &&
				strings.Contains(tx.Description, studentID.String()) &&
				strings.Contains(tx.Description, "moved away")
		})).Return(nil)
		f.accountRepo.On("AdjustBalance", mock.Anything, tenantID, account.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("-370"))
		})).Return(nil)

		result, err := f.service.CancelAssignment(ctx, tenantID, fa.ID, CancelAssignmentRequest{
			Reason:          "moved away",
			Refund:          true,
			RefundAccountID: &account.ID,
		})
		require.NoError(t, err)

		// pending and partial voided, fully paid kept as history
		assert.Equal(t, 2, result.CancelledInstallments)
		assert.Equal(t, "370", result.RefundedAmount.String())
		assert.Equal(t, tuition.InstallmentStatusPaid, paid.Status)
		assert.Equal(t, tuition.InstallmentStatusCancelled, partial.Status)
		assert.Equal(t, tuition.InstallmentStatusCancelled, pending.Status)
		f.ledgerTxRepo.AssertExpectations(t)
	})

	t.Run("refund account defaults to the first payment's account", func(t *testing.T) {
		f := newCancellationServiceFixture()
		studentID := uuid.New()
		fa := newTestDomainAssignment(t, tenantID, studentID, uuid.New())
		account, _ := ledger.NewAccount(tenantID, "Main Cash", ledger.AccountTypeCash)
		category, _ := ledger.NewCategory(tenantID, ledger.DefaultRefundExpenseCategory, ledger.TransactionTypeExpense, true)

		paid := draftInstallment(tenantID, fa.ID, 1, "270")
		require.NoError(t, paid.ApplyPayment(valueobject.NewMoneyTRY(decimal.RequireFromString("270")), time.Now()))
		payments := []*ledger.Payment{
			installmentPayment(t, tenantID, studentID, paid.ID, account.ID, "270"),
		}

		f.assignmentRepo.On("FindByIDForTenant", mock.Anything, tenantID, fa.ID).Return(fa, nil)
		f.installmentRepo.On("FindByFeeID", mock.Anything, tenantID, fa.ID).Return([]*tuition.Installment{paid}, nil)
		f.paymentRepo.On("FindByInstallmentIDs", mock.Anything, tenantID, []uuid.UUID{paid.ID}).Return(payments, nil)
		f.assignmentRepo.On("SaveWithLock", mock.Anything, fa).Return(nil)
		f.accountRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.categoryRepo.On("UpsertByName", mock.Anything, tenantID, ledger.DefaultRefundExpenseCategory, ledger.TransactionTypeExpense).
			Return(category, nil)
		f.ledgerTxRepo.On("Save", mock.Anything, mock.MatchedBy(func(tx *ledger.LedgerTransaction) bool {
			return tx.AccountID == account.ID && tx.Amount.Equal(decimal.RequireFromString("270"))
		})).Return(nil)
		f.accountRepo.On("AdjustBalance", mock.Anything, tenantID, account.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("-270"))
		})).Return(nil)

		result, err := f.service.CancelAssignment(ctx, tenantID, fa.ID, CancelAssignmentRequest{
			Reason: "withdrawn",
			Refund: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "270", result.RefundedAmount.String())
		f.ledgerTxRepo.AssertExpectations(t)
		f.accountRepo.AssertExpectations(t)
	})

	t.Run("cancelling an already cancelled assignment fails", func(t *testing.T) {
		f := newCancellationServiceFixture()
		fa := newTestDomainAssignment(t, tenantID, uuid.New(), uuid.New())
		require.NoError(t, fa.Cancel("earlier", time.Now()))

		f.assignmentRepo.On("FindByIDForTenant", mock.Anything, tenantID, fa.ID).Return(fa, nil)

		_, err := f.service.CancelAssignment(ctx, tenantID, fa.ID, CancelAssignmentRequest{Reason: "again"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_CANCELLED", domainErr.Code)
	})
}
