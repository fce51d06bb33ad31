package set_promo_code_active

import "context"

type PromoCodeService interface {
	SetActive(ctx context.Context, id int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
