package list_promo_codes

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
)

type PromoCodeService interface {
	List(ctx context.Context) (*models.PromoCodeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
