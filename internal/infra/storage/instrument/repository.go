// Package instrument читает скидочные инструменты: абонементы, сертификаты и купоны.
// Репозиторий только читает - списание делает вызывающий при подтверждении записи.
package instrument

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий скидочных инструментов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSubscription получает абонемент по ID
func (r *Repository) GetSubscription(ctx context.Context, id int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"treatment_id",
		"duration_id",
		"status",
		"remaining_quantity",
	).
		From("subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscription - build select query: %v", ErrBuildQuery, err)
	}

	var (
		sub        domain.Subscription
		durationID sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.TreatmentID,
		&durationID,
		&sub.Status,
		&sub.RemainingQuantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscription - scan subscription: %v", ErrScanRow, err)
	}

	if durationID.Valid {
		sub.DurationID = &durationID.Int64
	}

	return &sub, nil
}

// GetVoucherByCode получает сертификат по коду (без учета регистра)
func (r *Repository) GetVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"kind",
		"treatment_id",
		"duration_id",
		"remaining_balance",
		"status",
		"expires_at",
	).
		From("vouchers").
		Where(squirrel.Eq{"code": normalizeCode(code)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVoucherByCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		v                       domain.Voucher
		treatmentID, durationID sql.NullInt64
		expiresAt               sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.Code,
		&v.Kind,
		&treatmentID,
		&durationID,
		&v.RemainingBalance,
		&v.Status,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVoucherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVoucherByCode - scan voucher: %v", ErrScanRow, err)
	}

	if treatmentID.Valid {
		v.TreatmentID = &treatmentID.Int64
	}
	if durationID.Valid {
		v.DurationID = &durationID.Int64
	}
	if expiresAt.Valid {
		v.ExpiresAt = &expiresAt.Time
	}

	return &v, nil
}

// GetCouponByCode получает купон по коду (без учета регистра)
func (r *Repository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"discount_value",
		"discount_kind",
		"is_active",
		"valid_from",
		"valid_until",
		"usage_limit",
		"used_count",
		"per_user_limit",
		"min_amount",
		"treatment_ids",
	).
		From("coupons").
		Where(squirrel.Eq{"code": normalizeCode(code)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c                        domain.Coupon
		validFrom, validUntil    sql.NullTime
		usageLimit, perUserLimit sql.NullInt32
		minAmount                decimal.NullDecimal
		treatmentIDs             []int64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Code,
		&c.Discount.Value,
		&c.Discount.Kind,
		&c.IsActive,
		&validFrom,
		&validUntil,
		&usageLimit,
		&c.UsedCount,
		&perUserLimit,
		&minAmount,
		pq.Array(&treatmentIDs),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByCode - scan coupon: %v", ErrScanRow, err)
	}

	if validFrom.Valid {
		c.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		c.ValidUntil = &validUntil.Time
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int32)
		c.UsageLimit = &limit
	}
	if perUserLimit.Valid {
		limit := int(perUserLimit.Int32)
		c.PerUserLimit = &limit
	}
	if minAmount.Valid {
		c.MinAmount = &minAmount.Decimal
	}
	c.TreatmentIDs = treatmentIDs

	return &c, nil
}

// CountCouponRedemptions считает, сколько раз пользователь уже применил купон
func (r *Repository) CountCouponRedemptions(ctx context.Context, couponID, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("coupon_redemptions").
		Where(squirrel.Eq{"coupon_id": couponID, "user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCouponRedemptions - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCouponRedemptions - scan count: %v", ErrExecQuery, err)
	}

	return count, nil
}

// Коды хранятся в верхнем регистре
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
