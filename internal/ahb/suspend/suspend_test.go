// SPDX-License-Identifier: Apache-2.0

package suspend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/suspend"
)

func TestCall_Success(t *testing.T) {
	got, err := suspend.Call(context.Background(), "run-1", "test.op", "key", func(_ context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestCall_NonRetryableErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := suspend.Call(context.Background(), "run-1", "test.op", "key", func(_ context.Context) (int, error) {
		calls++
		return 0, boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestCall_CancelledContextSurfacesAhberrCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suspend.Call(ctx, "run-1", "test.op", "key", func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	require.Error(t, err)
	assert.Equal(t, ahberr.CodeCancelled, ahberr.Code(err))
}
