package holdsweeper

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/usecase/cleanup_holds"
)

// CleanupUseCase очистка просроченных бронирований
type CleanupUseCase interface {
	Execute(ctx context.Context, req *cleanup_holds.Request) (*cleanup_holds.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически запускает очистку просроченных бронирований
type Sweeper struct {
	cleanup  CleanupUseCase
	interval time.Duration
	logger   Logger
}

func New(cleanup CleanupUseCase, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{cleanup: cleanup, interval: interval, logger: logger}
}

// Run блокируется до отмены контекста. Первый проход выполняется сразу
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("holdsweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			s.logger.Info("holdsweeper: stopped")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	resp, err := s.cleanup.Execute(ctx, &cleanup_holds.Request{Trigger: cleanup_holds.TriggerScheduler})
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("holdsweeper: sweep failed: %v", err)
		}
		return
	}
	if resp.CleanedUp > 0 {
		s.logger.Info("holdsweeper: released %d expired bookings", resp.CleanedUp)
	}
}
