package holdsweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBooking/internal/usecase/cleanup_holds"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

type MockCleanup struct {
	mock.Mock
}

func (m *MockCleanup) Execute(ctx context.Context, req *cleanup_holds.Request) (*cleanup_holds.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cleanup_holds.Response), args.Error(1)
}

func TestRun_SweepsUntilCancelled(t *testing.T) {
	cleanup := new(MockCleanup)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	cleanup.On("Execute", mock.Anything, &cleanup_holds.Request{Trigger: cleanup_holds.TriggerScheduler}).
		Run(func(mock.Arguments) {
			calls++
			if calls == 3 {
				cancel()
			}
		}).
		Return(&cleanup_holds.Response{CleanedUp: 1}, nil)

	done := make(chan struct{})
	go func() {
		New(cleanup, time.Millisecond, logger.Discard()).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
	cleanup.AssertNumberOfCalls(t, "Execute", 3)
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	cleanup := new(MockCleanup)
	ctx, cancel := context.WithCancel(context.Background())

	cleanup.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	cleanup.On("Execute", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(&cleanup_holds.Response{}, nil).Once()

	New(cleanup, time.Millisecond, logger.Discard()).Run(ctx)

	assert.True(t, cleanup.AssertNumberOfCalls(t, "Execute", 2))
}
