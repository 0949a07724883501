package tuition

import (
	"testing"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) valueobject.Money {
	return valueobject.NewMoneyTRY(decimal.RequireFromString(s))
}

func TestBuildSchedule_MonthlyInstallments(t *testing.T) {
	issue := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     money("1080"),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 4,
		StartMonth:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDay:           5,
		IssueDate:        issue,
	})
	require.NoError(t, err)
	require.Len(t, drafts, 4)

	wantDue := []time.Time{
		time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range drafts {
		assert.Equal(t, i+1, d.Number)
		assert.Equal(t, "270.00", d.Amount.StringFixed(2))
		assert.Equal(t, wantDue[i], d.DueDate)
		assert.Equal(t, InstallmentStatusPending, d.Status)
		assert.True(t, d.PaidAmount.IsZero())
		assert.Nil(t, d.PaidAt)
	}
}

func TestBuildSchedule_DownPaymentBecomesFirstPaidInstallment(t *testing.T) {
	issue := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:         money("1080"),
		DownPayment:          money("480"),
		InstallmentCount:     4,
		StartMonth:           time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDay:               5,
		IssueDate:            issue,
		HasSettlementAccount: true,
	})
	require.NoError(t, err)
	require.Len(t, drafts, 5)

	down := drafts[0]
	assert.Equal(t, 1, down.Number)
	assert.Equal(t, "480.00", down.Amount.StringFixed(2))
	assert.Equal(t, issue, down.DueDate)
	assert.Equal(t, InstallmentStatusPaid, down.Status)
	assert.Equal(t, "480.00", down.PaidAmount.StringFixed(2))
	require.NotNil(t, down.PaidAt)
	assert.Equal(t, issue, *down.PaidAt)

	for i, d := range drafts[1:] {
		assert.Equal(t, i+2, d.Number)
		assert.Equal(t, "150.00", d.Amount.StringFixed(2))
		assert.Equal(t, InstallmentStatusPending, d.Status)
	}
}

func TestBuildSchedule_LastInstallmentAbsorbsRemainder(t *testing.T) {
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     money("1000"),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 3,
		StartMonth:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDay:           1,
		IssueDate:        time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	assert.Equal(t, "333.33", drafts[0].Amount.StringFixed(2))
	assert.Equal(t, "333.33", drafts[1].Amount.StringFixed(2))
	assert.Equal(t, "333.34", drafts[2].Amount.StringFixed(2))
}

func TestBuildSchedule_DraftsAlwaysSumToPayable(t *testing.T) {
	gross := money("997.37")
	for count := 1; count <= 36; count++ {
		drafts, err := BuildSchedule(ScheduleInput{
			GrossPayable:     gross,
			DownPayment:      valueobject.ZeroTRY(),
			InstallmentCount: count,
			StartMonth:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			DueDay:           15,
			IssueDate:        time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, drafts, count)

		sum := decimal.Zero
		for _, d := range drafts {
			assert.False(t, d.Amount.IsNegative())
			sum = sum.Add(d.Amount.Amount())
		}
		assert.True(t, sum.Equal(gross.Amount()), "count=%d sum=%s", count, sum)
	}
}

func TestBuildSchedule_DueDayClampedToMonthEnd(t *testing.T) {
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     money("600"),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 3,
		StartMonth:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDay:           31,
		IssueDate:        time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), drafts[0].DueDate)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), drafts[1].DueDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), drafts[2].DueDate)
}

func TestBuildSchedule_LeapFebruary(t *testing.T) {
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     money("200"),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 1,
		StartMonth:       time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDay:           30,
		IssueDate:        time.Date(2028, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), drafts[0].DueDate)
}

func TestBuildSchedule_DownPaymentEqualToPayable(t *testing.T) {
	issue := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:         money("1080"),
		DownPayment:          money("1080"),
		InstallmentCount:     4,
		StartMonth:           time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDay:               5,
		IssueDate:            issue,
		HasSettlementAccount: true,
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, InstallmentStatusPaid, drafts[0].Status)
	assert.Equal(t, "1080.00", drafts[0].Amount.StringFixed(2))
}

func TestBuildSchedule_ZeroPayableYieldsNoDrafts(t *testing.T) {
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     valueobject.ZeroTRY(),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 4,
		StartMonth:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDay:           5,
		IssueDate:        time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestBuildSchedule_NormalizesDegenerateInputs(t *testing.T) {
	issue := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	drafts, err := BuildSchedule(ScheduleInput{
		GrossPayable:     money("500"),
		DownPayment:      valueobject.ZeroTRY(),
		InstallmentCount: 0, // treated as 1
		DueDay:           0, // treated as day 1
		IssueDate:        issue,
		// zero StartMonth falls back to the issue month
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "500.00", drafts[0].Amount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), drafts[0].DueDate)
}

func TestBuildSchedule_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    ScheduleInput
		wantCode string
	}{
		{
			name: "negative payable",
			input: ScheduleInput{
				GrossPayable: money("-1"),
				DownPayment:  valueobject.ZeroTRY(),
			},
			wantCode: "INVALID_INPUT",
		},
		{
			name: "negative down payment",
			input: ScheduleInput{
				GrossPayable: money("100"),
				DownPayment:  money("-10"),
			},
			wantCode: "INVALID_DOWN_PAYMENT",
		},
		{
			name: "down payment exceeds payable",
			input: ScheduleInput{
				GrossPayable:         money("100"),
				DownPayment:          money("150"),
				HasSettlementAccount: true,
			},
			wantCode: "INVALID_DOWN_PAYMENT",
		},
		{
			name: "down payment without settlement account",
			input: ScheduleInput{
				GrossPayable: money("100"),
				DownPayment:  money("50"),
			},
			wantCode: "MISSING_SETTLEMENT_ACCOUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.InstallmentCount = 3
			tt.input.DueDay = 5
			tt.input.IssueDate = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

			_, err := BuildSchedule(tt.input)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}
