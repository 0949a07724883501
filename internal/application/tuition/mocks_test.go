package tuition

import (
	"context"
	"time"

	"github.com/campus/backend/internal/domain/catalog"
	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock repositories shared by the service tests in this package
// =============================================================================

type MockFeeAssignmentRepository struct {
	mock.Mock
}

func (m *MockFeeAssignmentRepository) Save(ctx context.Context, assignment *tuition.FeeAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockFeeAssignmentRepository) SaveWithLock(ctx context.Context, assignment *tuition.FeeAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockFeeAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tuition.FeeAssignment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tuition.FeeAssignment), args.Error(1)
}

func (m *MockFeeAssignmentRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter tuition.AssignmentFilter) (*shared.Paginated[*tuition.FeeAssignment], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*tuition.FeeAssignment]), args.Error(1)
}

func (m *MockFeeAssignmentRepository) FindActiveByStudentAndServices(ctx context.Context, tenantID, studentID uuid.UUID, academicPeriod string, serviceIDs []uuid.UUID) ([]*tuition.FeeAssignment, error) {
	args := m.Called(ctx, tenantID, studentID, academicPeriod, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tuition.FeeAssignment), args.Error(1)
}

func (m *MockFeeAssignmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter tuition.AssignmentFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) SaveAll(ctx context.Context, installments []*tuition.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Save(ctx context.Context, installment *tuition.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockInstallmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tuition.Installment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tuition.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByFeeID(ctx context.Context, tenantID, feeID uuid.UUID) ([]*tuition.Installment, error) {
	args := m.Called(ctx, tenantID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tuition.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*tuition.Installment, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tuition.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) AllSettled(ctx context.Context, tenantID, feeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, feeID)
	return args.Bool(0), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInstallmentIDs(ctx context.Context, tenantID uuid.UUID, installmentIDs []uuid.UUID) ([]*ledger.Payment, error) {
	args := m.Called(ctx, tenantID, installmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Payment), args.Error(1)
}

type MockLedgerTransactionRepository struct {
	mock.Mock
}

func (m *MockLedgerTransactionRepository) Save(ctx context.Context, tx *ledger.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.LedgerTransaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerTransactionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.TransactionFilter) (*shared.Paginated[*ledger.LedgerTransaction], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.LedgerTransaction]), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) UpsertByName(ctx context.Context, tenantID uuid.UUID, name string, txType ledger.TransactionType) (*ledger.Category, error) {
	args := m.Called(ctx, tenantID, name, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, txType *ledger.TransactionType) ([]*ledger.Category, error) {
	args := m.Called(ctx, tenantID, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Category), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*ledger.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, tenantID, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, tenantID, id, delta)
	return args.Error(0)
}

type MockServiceItemRepository struct {
	mock.Mock
}

func (m *MockServiceItemRepository) Save(ctx context.Context, item *catalog.ServiceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockServiceItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ServiceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServiceItem), args.Error(1)
}

func (m *MockServiceItemRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.ServiceItem, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ServiceItem), args.Error(1)
}

func (m *MockServiceItemRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*catalog.ServiceItem], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.ServiceItem]), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Save(ctx context.Context, student *catalog.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Student, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Student, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Student), args.Error(1)
}

// fakeTxManager runs the function directly without a database
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
