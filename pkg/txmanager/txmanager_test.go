package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorageExec = errors.New("storage: failed to execute query")

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(serializationErr()))

	// Репозитории оборачивают ошибку драйвера — код 40001 должен быть
	// виден сквозь обёртку
	repoStyle := fmt.Errorf("%w: ListActiveByServicesAndDate - execute query: %w",
		errStorageExec, serializationErr())
	assert.True(t, isSerializationFailure(repoStyle))

	commitStyle := fmt.Errorf("%w: commit: %w", ErrTxFailed, serializationErr())
	assert.True(t, isSerializationFailure(commitStyle))

	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("plain error")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}

// withActiveTx кладёт транзакцию в контекст: run переиспользует её
// и не обращается к *sql.DB
func withActiveTx() context.Context {
	return context.WithValue(context.Background(), txKey{}, &sql.Tx{})
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m := NewTransactionManager(nil)

	attempts := 0
	err := m.DoSerializable(withActiveTx(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("%w: execute query: %w", errStorageExec, serializationErr())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m := NewTransactionManager(nil)

	attempts := 0
	err := m.DoSerializable(withActiveTx(), func(ctx context.Context) error {
		attempts++
		return serializationErr()
	})
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxSerializableRetries+1, attempts)
}

func TestDoSerializable_NonRetryableErrorReturnedImmediately(t *testing.T) {
	m := NewTransactionManager(nil)

	errBoom := errors.New("boom")
	attempts := 0
	err := m.DoSerializable(withActiveTx(), func(ctx context.Context) error {
		attempts++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, attempts)
}
