package create_promo_code

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
)

// CreatePromoCodeRequest HTTP request model
type CreatePromoCodeRequest struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"` // "percentage" | "fixed"
	DiscountValue float64 `json:"discountValue"`
	ExpiryDate    string  `json:"expiryDate"` // YYYY-MM-DD или RFC3339
	UsageLimit    int     `json:"usageLimit"` // 0 = без ограничений
}

// ToServiceRequest дата без времени означает конец дня в UTC
func (r *CreatePromoCodeRequest) ToServiceRequest() (*models.CreatePromoCodeRequest, error) {
	expiry, err := time.Parse(time.RFC3339, r.ExpiryDate)
	if err != nil {
		day, dayErr := time.Parse(domain.DateFormat, r.ExpiryDate)
		if dayErr != nil {
			return nil, err
		}
		expiry = day.Add(24*time.Hour - time.Second)
	}

	return &models.CreatePromoCodeRequest{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		ExpiryDate:    expiry,
		UsageLimit:    r.UsageLimit,
	}, nil
}
