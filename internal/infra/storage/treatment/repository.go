package treatment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий процедур и их вариантов длительности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория процедур
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает процедуру вместе со всеми вариантами длительности.
// Неактивные варианты тоже возвращаются - их отсеивает домен.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Treatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"pricing_type",
		"fixed_price",
		"fixed_professional_price",
		"default_duration_minutes",
		"is_active",
	).
		From("treatments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		t                   domain.Treatment
		fixedPrice, fixedPP decimal.NullDecimal
		defaultDuration     sql.NullInt32
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.PricingType,
		&fixedPrice,
		&fixedPP,
		&defaultDuration,
		&t.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan treatment: %v", ErrScanRow, err)
	}

	if fixedPrice.Valid {
		t.FixedPrice = &fixedPrice.Decimal
	}
	if fixedPP.Valid {
		t.FixedProfessionalPrice = &fixedPP.Decimal
	}
	if defaultDuration.Valid {
		minutes := int(defaultDuration.Int32)
		t.DefaultDurationMinutes = &minutes
	}

	durations, err := r.getDurations(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	t.Durations = durations

	return &t, nil
}

func (r *Repository) getDurations(ctx context.Context, executor dbmetrics.DBExecutor, treatmentID int64) ([]domain.TreatmentDuration, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"treatment_id",
		"minutes",
		"price",
		"professional_price",
		"is_active",
	).
		From("treatment_durations").
		Where(squirrel.Eq{"treatment_id": treatmentID}).
		OrderBy("minutes ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getDurations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDurations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	durations := make([]domain.TreatmentDuration, 0)
	for rows.Next() {
		var d domain.TreatmentDuration
		if err := rows.Scan(&d.ID, &d.TreatmentID, &d.Minutes, &d.Price, &d.ProfessionalPrice, &d.IsActive); err != nil {
			return nil, fmt.Errorf("%w: getDurations - scan row: %v", ErrScanRow, err)
		}
		durations = append(durations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDurations - rows error: %v", ErrScanRow, err)
	}

	return durations, nil
}
