//go:build unix

package shutdown_test

import (
	"context"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoppro/tiny-orders/shutdown"
	"github.com/leoppro/tiny-orders/testutil/helper"
)

func Test_Notify_CancelsContext_When_SignalArrives(t *testing.T) {
	// setup
	logger, spy := helper.NewSpyLogger()
	ctx, stop := shutdown.Notify(context.Background(), logger)
	defer stop()

	// act
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	// assert
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled by the signal")
	}

	assert.Eventually(t, func() bool {
		return spy.HasLog(slog.LevelInfo, "receive the exit signal, exit...")
	}, time.Second, 10*time.Millisecond)
}

func Test_Notify_Stop_CancelsContext(t *testing.T) {
	// setup
	ctx, stop := shutdown.Notify(context.Background(), nil)

	// act
	stop()
	stop()

	// assert
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func Test_Notify_FollowsParent(t *testing.T) {
	// setup
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := shutdown.Notify(parent, nil)
	defer stop()

	// act
	cancel()

	// assert
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
