package cleanup_holds

import (
	"context"

	cleanupHolds "github.com/m04kA/SMC-RoomBooking/internal/usecase/cleanup_holds"
)

type CleanupHoldsUseCase interface {
	Execute(ctx context.Context, req *cleanupHolds.Request) (*cleanupHolds.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
