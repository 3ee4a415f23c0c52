package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestVoucher(t *testing.T, vType VoucherType, amount int64) *Voucher {
	v, err := NewVoucher("CV-2026-0001", uuid.New(), uuid.New(), vType, PaymentModeCash,
		decimal.NewFromInt(amount), time.Now().Add(-time.Hour), "Sharma Hardware", "materials", "", "", nil)
	require.NoError(t, err)
	return v
}

func TestNewCashbook(t *testing.T) {
	t.Run("valid cashbook", func(t *testing.T) {
		cb, err := NewCashbook(uuid.New(), "Tower A site cash", decimal.NewFromInt(50000), time.Now())
		require.NoError(t, err)
		assert.True(t, cb.OpeningBalance.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("negative opening balance", func(t *testing.T) {
		_, err := NewCashbook(uuid.New(), "Tower A site cash", decimal.NewFromInt(-1), time.Now())
		assert.Error(t, err)
	})
}

func TestNewVoucher(t *testing.T) {
	t.Run("valid payment", func(t *testing.T) {
		v := createTestVoucher(t, VoucherTypePayment, 12500)
		assert.Equal(t, VoucherTypePayment, v.Type)
		assert.False(t, v.Cancelled)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewVoucher("CV-2026-0002", uuid.New(), uuid.New(), VoucherTypePayment, PaymentModeCash,
			decimal.Zero, time.Now(), "Sharma Hardware", "materials", "", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := NewVoucher("CV-2026-0003", uuid.New(), uuid.New(), VoucherTypeReceipt, PaymentModeBank,
			decimal.NewFromInt(100), time.Now().Add(48*time.Hour), "Head office", "imprest", "", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid mode", func(t *testing.T) {
		_, err := NewVoucher("CV-2026-0004", uuid.New(), uuid.New(), VoucherTypeReceipt, PaymentMode("cheque"),
			decimal.NewFromInt(100), time.Now(), "Head office", "imprest", "", "", nil)
		assert.Error(t, err)
	})
}

func TestVoucher_SignedAmount(t *testing.T) {
	receipt := createTestVoucher(t, VoucherTypeReceipt, 1000)
	payment := createTestVoucher(t, VoucherTypePayment, 400)

	assert.True(t, receipt.SignedAmount().Equal(decimal.NewFromInt(1000)))
	assert.True(t, payment.SignedAmount().Equal(decimal.NewFromInt(-400)))

	require.NoError(t, payment.Cancel("entered twice"))
	assert.True(t, payment.SignedAmount().IsZero())
}

func TestVoucher_Cancel(t *testing.T) {
	v := createTestVoucher(t, VoucherTypePayment, 500)
	assert.Error(t, v.Cancel(""))
	require.NoError(t, v.Cancel("wrong party"))
	assert.Error(t, v.Cancel("again"))
}

func TestRentAgreement(t *testing.T) {
	agreement, err := NewRentAgreement("RA-AG-0001", uuid.New(), nil, "S. Patel", "Labour camp, 12 rooms",
		decimal.NewFromInt(45000), decimal.NewFromInt(90000), time.Now().AddDate(0, -3, 0))
	require.NoError(t, err)
	assert.True(t, agreement.IsActive())

	require.NoError(t, agreement.ReviseRent(decimal.NewFromInt(48000)))
	assert.True(t, agreement.MonthlyRent.Equal(decimal.NewFromInt(48000)))

	t.Run("end before start rejected", func(t *testing.T) {
		assert.Error(t, agreement.Close(agreement.StartDate.AddDate(0, 0, -1)))
	})

	require.NoError(t, agreement.Close(time.Now()))
	assert.False(t, agreement.IsActive())
	assert.Error(t, agreement.ReviseRent(decimal.NewFromInt(50000)))
	assert.Error(t, agreement.Close(time.Now()))
}

func TestNewRentPayment(t *testing.T) {
	t.Run("valid payment", func(t *testing.T) {
		p, err := NewRentPayment(uuid.New(), uuid.New(), 2026, 7, decimal.NewFromInt(45000), time.Now(), PaymentModeBank, "UTR123", "")
		require.NoError(t, err)
		assert.Equal(t, 7, p.Month)
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		_, err := NewRentPayment(uuid.New(), uuid.New(), 2026, 13, decimal.NewFromInt(45000), time.Now(), PaymentModeBank, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewRentPayment(uuid.New(), uuid.New(), 2026, 7, decimal.Zero, time.Now(), PaymentModeCash, "", "")
		assert.Error(t, err)
	})
}
