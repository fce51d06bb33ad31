package validate_promo_code

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
)

type PromoCodeService interface {
	Validate(ctx context.Context, code string) (*models.ValidationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
