package stripe_webhook

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	applyWebhook "github.com/m04kA/SMC-RoomBooking/internal/usecase/apply_webhook"
)

// EventParser проверка подписи и разбор события провайдера
type EventParser interface {
	ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error)
}

type ApplyWebhookUseCase interface {
	Execute(ctx context.Context, event *domain.PaymentEvent) (*applyWebhook.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
