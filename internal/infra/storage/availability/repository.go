package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/psqlbuilder"
	"github.com/tutoweb/booking-service/pkg/txmanager"
)

var windowColumns = []string{
	"id",
	"tutor_id",
	"day_of_week",
	"start_time",
	"end_time",
}

// Repository репозиторий окон доступности тьюторов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("tutor_id", "day_of_week", "start_time", "end_time").
		Values(w.TutorID, w.DayOfWeek, w.StartTime, w.EndTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return w, nil
}

// GetByID получает окно доступности по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.AvailabilityWindow
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&w.ID, &w.TutorID, &w.DayOfWeek, &w.StartTime, &w.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %w", ErrScanRow, err)
	}

	return &w, nil
}

// ListByTutor получает все окна доступности тьютора,
// по дню недели и времени начала
func (r *Repository) ListByTutor(ctx context.Context, tutorID int64) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, squirrel.Eq{"tutor_id": tutorID})
}

// ListByTutorAndDay получает окна доступности тьютора на день недели (ISO, 1..7).
// Внутри транзакции выборка блокируется FOR UPDATE: проверка пересечений
// окон и проверка покрытия резервации читают этот же набор.
func (r *Repository) ListByTutorAndDay(ctx context.Context, tutorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, squirrel.Eq{"tutor_id": tutorID, "day_of_week": dayOfWeek})
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(where).
		OrderBy("day_of_week ASC, start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.TutorID, &w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %w", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %w", ErrScanRow, err)
	}

	return windows, nil
}

// Update сохраняет изменённое окно доступности
func (r *Repository) Update(ctx context.Context, w *domain.AvailabilityWindow) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_windows").
		Set("day_of_week", w.DayOfWeek).
		Set("start_time", w.StartTime).
		Set("end_time", w.EndTime).
		Where(squirrel.Eq{"id": w.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// Delete физически удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}
