package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(100.50), TRY)
	require.NoError(t, err)
	assert.Equal(t, "100.50", m.StringFixed(2))
	assert.Equal(t, TRY, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyTRYFromFloat(100.25)
	b := NewMoneyTRYFromFloat(50.75)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "151.00", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "49.50", diff.StringFixed(2))

	usd, err := NewMoney(decimal.NewFromInt(10), USD)
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.Error(t, err)
	_, err = a.Subtract(usd)
	assert.Error(t, err)
}

func TestMoney_RoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.015", "10.02"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			m := NewMoneyTRY(d)
			assert.Equal(t, tt.want, m.RoundHalfUp(2).StringFixed(2))
		})
	}
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyTRYFromFloat(900)
	vat := m.CalculatePercentage(decimal.NewFromInt(20))
	assert.Equal(t, "180.00", vat.StringFixed(2))
}

func TestMoney_Allocate(t *testing.T) {
	m := NewMoneyTRYFromFloat(100)
	parts, err := m.Allocate(3)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, "33.33", parts[0].StringFixed(2))
	assert.Equal(t, "33.33", parts[1].StringFixed(2))
	assert.Equal(t, "33.34", parts[2].StringFixed(2))

	total := ZeroTRY()
	for _, p := range parts {
		total, err = total.Add(p)
		require.NoError(t, err)
	}
	assert.True(t, total.Equals(m), "allocated parts must sum to the original amount")

	_, err = m.Allocate(0)
	assert.Error(t, err)

	single, err := m.Allocate(1)
	require.NoError(t, err)
	assert.True(t, single[0].Equals(m))
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyTRYFromFloat(10)
	b := NewMoneyTRYFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyTRYFromFloat(10)))
	assert.False(t, a.Equals(b))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyTRYFromFloat(1080)
	data, err := m.MarshalJSON()
	require.NoError(t, err)

	var parsed Money
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.True(t, m.Equals(parsed))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("270.00"))
	assert.Equal(t, "270.00", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
