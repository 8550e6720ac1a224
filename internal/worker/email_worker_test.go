package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_ExitoAlPrimerIntento(t *testing.T) {
	llamadas := 0
	err := withRetry(context.Background(), maxEmailAttempts, func(int) error {
		llamadas++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, llamadas)
}

func TestWithRetry_ReintentaTrasFallo(t *testing.T) {
	llamadas := 0
	err := withRetry(context.Background(), maxEmailAttempts, func(attempt int) error {
		llamadas++
		if attempt == 0 {
			return errors.New("smtp timeout")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, llamadas)
}

func TestWithRetry_RespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	llamadas := 0
	err := withRetry(ctx, maxEmailAttempts, func(int) error {
		llamadas++
		return errors.New("smtp caído")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, llamadas)
}
