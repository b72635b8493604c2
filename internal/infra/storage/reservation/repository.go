package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"treatment_id",
	"duration_id",
	"start_at",
	"duration_minutes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с резервами времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резервов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый резерв.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"treatment_id",
			"duration_id",
			"start_at",
			"duration_minutes",
			"status",
		).
		Values(
			res.UserID,
			res.TreatmentID,
			res.DurationID,
			res.StartAt,
			res.DurationMinutes,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает резерв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByWindow получает резервы, пересекающиеся с окном [From, To).
// По умолчанию отдаёт только резервы, которые блокируют время.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы два параллельных
// резерва не прошли проверку на одном и том же снимке.
func (r *Repository) GetByWindow(ctx context.Context, filter domain.ReservationWindowFilter) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"start_at": filter.To}).
		Where(squirrel.Expr("start_at + duration_minutes * INTERVAL '1 minute' > ?", filter.From)).
		OrderBy("start_at ASC", "id ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatuses()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByWindow - scan row: %v", ErrScanRow, err)
		}
		result = append(result, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatusIf переводит резерв из статуса from в статус to.
// Если резерв уже в другом статусе, возвращает ErrStatusMismatch.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusMismatch
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		durationID           sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.TreatmentID,
		&durationID,
		&res.StartAt,
		&res.DurationMinutes,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if durationID.Valid {
		res.DurationID = &durationID.Int64
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func terminalStatuses() []string {
	out := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		out[i] = string(s)
	}
	return out
}
