package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"upitrack/internal/models"
)

func amt(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestComputeRollup(t *testing.T) {
	t.Run("empty inputs yield all zeros", func(t *testing.T) {
		r := ComputeRollup(nil, nil)
		assert.True(t, r.TotalPayments.IsZero())
		assert.Equal(t, 0, r.ActiveQrCodes)
		assert.Equal(t, 0, r.TotalTransactions)
		assert.Equal(t, 0, r.UniquePayers)
	})

	t.Run("counts and exact decimal sum", func(t *testing.T) {
		qrCodes := []models.QrCode{{ID: 1}, {ID: 2}}
		txs := []models.Transaction{
			{Amount: amt("1250"), PayerUpiID: "x@bank"},
			{Amount: amt("500"), PayerUpiID: "y@bank"},
		}
		r := ComputeRollup(qrCodes, txs)
		assert.Equal(t, "1750", r.TotalPayments.String())
		assert.Equal(t, 2, r.ActiveQrCodes)
		assert.Equal(t, 2, r.TotalTransactions)
		assert.Equal(t, 2, r.UniquePayers)
	})

	t.Run("empty payer does not count toward unique payers", func(t *testing.T) {
		txs := []models.Transaction{
			{Amount: amt("10"), PayerUpiID: "x@bank"},
			{Amount: amt("20"), PayerUpiID: ""},
			{Amount: amt("30"), PayerUpiID: "x@bank"},
		}
		r := ComputeRollup(nil, txs)
		assert.Equal(t, 3, r.TotalTransactions)
		assert.Equal(t, 1, r.UniquePayers)
		assert.Equal(t, "60", r.TotalPayments.String())
	})

	t.Run("sum is not floating-point lossy", func(t *testing.T) {
		txs := []models.Transaction{
			{Amount: amt("0.1")},
			{Amount: amt("0.2")},
		}
		r := ComputeRollup(nil, txs)
		assert.Equal(t, "0.3", r.TotalPayments.String())
	})
}

func TestRollupStats(t *testing.T) {
	r := ComputeRollup([]models.QrCode{{ID: 1}}, []models.Transaction{{Amount: amt("42"), PayerUpiID: "p@bank"}})
	st := r.Stats(7)
	assert.Equal(t, uint(7), st.UserID)
	assert.Equal(t, "42", st.TotalPayments.String())
	assert.Equal(t, 1, st.ActiveQrCodes)
	assert.Equal(t, 1, st.TotalTransactions)
	assert.Equal(t, 1, st.UniquePayers)
	assert.False(t, st.LastUpdated.IsZero())
}
