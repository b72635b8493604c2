package instrument

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetSubscription(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM subscriptions WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "treatment_id", "duration_id", "status", "remaining_quantity"}).
			AddRow(int64(5), int64(42), int64(2), int64(20), "active", 3))

	sub, err := repo.GetSubscription(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.Equal(t, int64(20), *sub.DurationID)
	assert.Equal(t, 3, sub.RemainingQuantity)

	mock.ExpectQuery(`FROM subscriptions`).WithArgs(int64(6)).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetSubscription(context.Background(), 6)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestRepository_GetVoucherByCode(t *testing.T) {
	repo, mock := newRepo(t)
	expires := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM vouchers WHERE code = \$1`).
		WithArgs("GIFT100").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "kind", "treatment_id", "duration_id", "remaining_balance", "status", "expires_at"}).
			AddRow(int64(8), "GIFT100", "monetary", nil, nil, "100.00", "active", expires))

	v, err := repo.GetVoucherByCode(context.Background(), " gift100 ")
	require.NoError(t, err)
	assert.Equal(t, domain.VoucherMonetary, v.Kind)
	assert.Nil(t, v.TreatmentID)
	assert.Equal(t, "100", v.RemainingBalance.String())
	assert.Equal(t, expires, *v.ExpiresAt)

	mock.ExpectQuery(`FROM vouchers`).WithArgs("NOPE").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetVoucherByCode(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestRepository_GetCouponByCode(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM coupons WHERE code = \$1`).
		WithArgs("SUMMER").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "discount_value", "discount_kind", "is_active", "valid_from", "valid_until",
			"usage_limit", "used_count", "per_user_limit", "min_amount", "treatment_ids",
		}).AddRow(int64(11), "SUMMER", "10", "percent", true, nil, nil, int64(100), 4, int64(1), "50.00", "{1,2}"))

	c, err := repo.GetCouponByCode(context.Background(), "summer")
	require.NoError(t, err)
	assert.Equal(t, domain.AmountPercent, c.Discount.Kind)
	assert.Equal(t, "10", c.Discount.Value.String())
	assert.Equal(t, 100, *c.UsageLimit)
	assert.Equal(t, 1, *c.PerUserLimit)
	assert.Equal(t, "50", c.MinAmount.String())
	assert.Equal(t, []int64{1, 2}, c.TreatmentIDs)
	assert.Nil(t, c.ValidFrom)
	assert.True(t, c.AppliesTo(2))
	assert.False(t, c.AppliesTo(3))
}

func TestRepository_CountCouponRedemptions(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM coupon_redemptions WHERE coupon_id = \$1 AND user_id = \$2`).
		WithArgs(int64(11), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountCouponRedemptions(context.Background(), 11, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
