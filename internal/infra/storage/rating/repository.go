package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/psqlbuilder"
	"github.com/tutoweb/booking-service/pkg/txmanager"
)

// uniqueViolation код SQLSTATE нарушения уникального индекса
const uniqueViolation = "23505"

var ratingColumns = []string{
	"id",
	"reservation_id",
	"rater_id",
	"rated_id",
	"score",
	"comment",
	"created_at",
}

// Repository репозиторий оценок
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория оценок
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую оценку.
// Нарушение уникального индекса по reservation_id транслируется
// в ErrDuplicateRating.
func (r *Repository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ratings").
		Columns("reservation_id", "rater_id", "rated_id", "score", "comment").
		Values(rating.ReservationID, rating.RaterID, rating.RatedID, rating.Score, rating.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateRating
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rating.CreatedAt = createdAt.Time
	return rating, nil
}

// GetByReservation получает оценку резервации
func (r *Repository) GetByReservation(ctx context.Context, reservationID int64) (*domain.Rating, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ratingColumns...).
		From("ratings").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var rating domain.Rating
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rating.ID,
		&rating.ReservationID,
		&rating.RaterID,
		&rating.RatedID,
		&rating.Score,
		&rating.Comment,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - scan rating: %w", ErrScanRow, err)
	}

	rating.CreatedAt = createdAt.Time
	return &rating, nil
}

// ListByRated получает все оценки, полученные тьютором, новые первыми
func (r *Repository) ListByRated(ctx context.Context, ratedID int64) ([]*domain.Rating, error) {
	return r.list(ctx, squirrel.Eq{"rated_id": ratedID})
}

// ListByRater получает все оценки, поставленные студентом, новые первыми
func (r *Repository) ListByRater(ctx context.Context, raterID int64) ([]*domain.Rating, error) {
	return r.list(ctx, squirrel.Eq{"rater_id": raterID})
}

// ListScoresByRated получает все баллы, полученные тьютором.
// Используется для полного перерасчёта агрегата.
func (r *Repository) ListScoresByRated(ctx context.Context, ratedID int64) ([]int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("score").
		From("ratings").
		Where(squirrel.Eq{"rated_id": ratedID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScoresByRated - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScoresByRated - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	scores := make([]int, 0)
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("%w: ListScoresByRated - scan score: %w", ErrScanRow, err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScoresByRated - rows error: %w", ErrScanRow, err)
	}

	return scores, nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Rating, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ratingColumns...).
		From("ratings").
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ratings := make([]*domain.Rating, 0)
	for rows.Next() {
		var rating domain.Rating
		var createdAt sql.NullTime
		err := rows.Scan(
			&rating.ID,
			&rating.ReservationID,
			&rating.RaterID,
			&rating.RatedID,
			&rating.Score,
			&rating.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %w", ErrScanRow, err)
		}
		rating.CreatedAt = createdAt.Time
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %w", ErrScanRow, err)
	}

	return ratings, nil
}
