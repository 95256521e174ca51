package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryOnCollision(t *testing.T) {
	collision := &pgconn.PgError{Code: "23505"}

	t.Run("SucceedsFirstTry", func(t *testing.T) {
		calls := 0
		number, err := retryOnCollision(maxCounterRetries, func(attempt int) (int, error) {
			calls++
			return 7, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 7, number)
		assert.Equal(t, 1, calls)
	})

	t.Run("RegeneratesAfterCollision", func(t *testing.T) {
		calls := 0
		number, err := retryOnCollision(maxCounterRetries, func(attempt int) (int, error) {
			calls++
			if calls == 1 {
				return 0, collision
			}
			return 8, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 8, number)
		assert.Equal(t, 2, calls)
	})

	t.Run("ExhaustedAttempts", func(t *testing.T) {
		calls := 0
		_, err := retryOnCollision(maxCounterRetries, func(attempt int) (int, error) {
			calls++
			return 0, collision
		})

		assert.ErrorIs(t, err, ErrConcurrency)
		assert.Equal(t, maxCounterRetries, calls)
	})

	t.Run("WrappedCollisionStillRetries", func(t *testing.T) {
		calls := 0
		_, err := retryOnCollision(maxCounterRetries, func(attempt int) (int, error) {
			calls++
			return 0, fmt.Errorf("create invoice: %w", collision)
		})

		assert.ErrorIs(t, err, ErrConcurrency)
		assert.Equal(t, maxCounterRetries, calls)
	})

	t.Run("OtherErrorReturnedImmediately", func(t *testing.T) {
		broken := errors.New("connection refused")
		calls := 0
		_, err := retryOnCollision(maxCounterRetries, func(attempt int) (int, error) {
			calls++
			return 0, broken
		})

		assert.ErrorIs(t, err, broken)
		assert.Equal(t, 1, calls)
	})
}
