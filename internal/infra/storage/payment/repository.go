package payment

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

// Repository read-only репозиторий платежей.
// Обработка платежей живёт вне этого сервиса; ядро бронирования только
// проверяет наличие завершённого платежа (гейт для оценок и удаления).
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCompletedByReservation получает завершённый платёж резервации.
// Возвращает ErrPaymentNotFound, если такого платежа нет.
func (r *Repository) GetCompletedByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"amount",
		"method",
		"state",
		"paid_at",
		"created_at",
	).
		From("payments").
		Where(squirrel.Eq{
			"reservation_id": reservationID,
			"state":          domain.PaymentCompleted,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompletedByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ReservationID,
		&p.Amount,
		&p.Method,
		&p.State,
		&p.PaidAt,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompletedByReservation - scan payment: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	return &p, nil
}
