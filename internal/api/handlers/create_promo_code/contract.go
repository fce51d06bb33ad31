package create_promo_code

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
)

type PromoCodeService interface {
	Create(ctx context.Context, req *models.CreatePromoCodeRequest) (*models.PromoCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
