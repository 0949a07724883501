package tuition

import (
	"testing"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstallment(t *testing.T, amount string) *Installment {
	t.Helper()
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	return NewInstallmentFromDraft(uuid.New(), uuid.New(), InstallmentDraft{
		Number:     2,
		Amount:     money(amount),
		DueDate:    time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		Status:     InstallmentStatusPending,
		PaidAmount: valueobject.ZeroTRY(),
	}, now)
}

func TestInstallment_ApplyPayment_FullSettlement(t *testing.T) {
	inst := newTestInstallment(t, "270")
	paidAt := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	err := inst.ApplyPayment(money("270"), paidAt)
	require.NoError(t, err)

	assert.Equal(t, InstallmentStatusPaid, inst.Status)
	assert.Equal(t, "270.00", inst.PaidAmount.StringFixed(2))
	require.NotNil(t, inst.PaidAt)
	assert.Equal(t, paidAt, *inst.PaidAt)
	assert.True(t, inst.IsSettled())
	assert.True(t, inst.Remaining().IsZero())
}

func TestInstallment_ApplyPayment_PartialThenFull(t *testing.T) {
	inst := newTestInstallment(t, "270")
	paidAt := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, inst.ApplyPayment(money("100"), paidAt))
	assert.Equal(t, InstallmentStatusPartial, inst.Status)
	assert.Equal(t, "170.00", inst.Remaining().StringFixed(2))
	assert.Nil(t, inst.PaidAt)

	require.NoError(t, inst.ApplyPayment(money("170"), paidAt.AddDate(0, 0, 2)))
	assert.Equal(t, InstallmentStatusPaid, inst.Status)
	assert.True(t, inst.Remaining().IsZero())
}

func TestInstallment_ApplyPayment_Guards(t *testing.T) {
	paidAt := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	t.Run("overpayment is rejected", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		err := inst.ApplyPayment(money("300"), paidAt)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_REMAINING", domainErr.Code)
		assert.Equal(t, InstallmentStatusPending, inst.Status)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		err := inst.ApplyPayment(valueobject.ZeroTRY(), paidAt)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("paid installment rejects further payments", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		require.NoError(t, inst.ApplyPayment(money("270"), paidAt))
		err := inst.ApplyPayment(money("1"), paidAt)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("cancelled installment rejects payments", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		require.NoError(t, inst.MarkCancelled(paidAt))
		err := inst.ApplyPayment(money("100"), paidAt)
		require.Error(t, err)
	})
}

func TestInstallment_MarkCancelled(t *testing.T) {
	at := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pending installment can be cancelled", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		require.NoError(t, inst.MarkCancelled(at))
		assert.Equal(t, InstallmentStatusCancelled, inst.Status)
	})

	t.Run("partial installment can be cancelled", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		require.NoError(t, inst.ApplyPayment(money("100"), at))
		require.NoError(t, inst.MarkCancelled(at))
		assert.Equal(t, InstallmentStatusCancelled, inst.Status)
		// paid portion is preserved for refund bookkeeping
		assert.Equal(t, "100.00", inst.PaidAmount.StringFixed(2))
	})

	t.Run("paid installment cannot be cancelled", func(t *testing.T) {
		inst := newTestInstallment(t, "270")
		require.NoError(t, inst.ApplyPayment(money("270"), at))
		err := inst.MarkCancelled(at)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, InstallmentStatusPaid, inst.Status)
	})
}

func TestInstallmentStatus(t *testing.T) {
	assert.True(t, InstallmentStatusPending.IsValid())
	assert.True(t, InstallmentStatusPartial.IsValid())
	assert.True(t, InstallmentStatusPaid.IsValid())
	assert.True(t, InstallmentStatusCancelled.IsValid())
	assert.False(t, InstallmentStatus("UNKNOWN").IsValid())

	assert.True(t, InstallmentStatusPending.CanApplyPayment())
	assert.True(t, InstallmentStatusPartial.CanApplyPayment())
	assert.False(t, InstallmentStatusPaid.CanApplyPayment())
	assert.False(t, InstallmentStatusCancelled.CanApplyPayment())
}
