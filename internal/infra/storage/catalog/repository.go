package catalog

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

// Repository репозиторий каталога (пользователи и услуги тьюторства).
// Управление каталогом живёт вне этого сервиса: ядро бронирования читает
// его и обновляет только агрегат рейтинга тьютора.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUser получает пользователя по ID
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "role", "average_rating", "review_count").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Role, &u.AverageRating, &u.ReviewCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - scan user: %w", ErrScanRow, err)
	}

	return &u, nil
}

// GetService получает услугу тьюторства по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.TutoringService, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tutor_id", "subject_id", "price", "modality", "active").
		From("tutoring_services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.TutoringService
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.TutorID, &s.SubjectID, &s.Price, &s.Modality, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return &s, nil
}

// ListActiveServiceIDsByTutor получает ID активных услуг тьютора
func (r *Repository) ListActiveServiceIDsByTutor(ctx context.Context, tutorID int64) ([]int64, error) {
	return r.listServiceIDs(ctx, squirrel.Eq{"tutor_id": tutorID, "active": true})
}

// ListServiceIDsByTutor получает ID всех услуг тьютора
func (r *Repository) ListServiceIDsByTutor(ctx context.Context, tutorID int64) ([]int64, error) {
	return r.listServiceIDs(ctx, squirrel.Eq{"tutor_id": tutorID})
}

func (r *Repository) listServiceIDs(ctx context.Context, where squirrel.Eq) ([]int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("tutoring_services").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: listServiceIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// UpdateTutorRating сохраняет перерассчитанный агрегат рейтинга тьютора
func (r *Repository) UpdateTutorRating(ctx context.Context, tutorID int64, agg domain.RatingAggregate) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("average_rating", agg.Average).
		Set("review_count", agg.ReviewCount).
		Where(squirrel.Eq{"id": tutorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTutorRating - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTutorRating - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTutorRating - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
