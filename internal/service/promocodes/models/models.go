package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Причины, по которым промокод нельзя применить
const (
	ReasonNotFound     = "not_found"
	ReasonInactive     = "inactive"
	ReasonExpired      = "expired"
	ReasonLimitReached = "limit_reached"
)

// CreatePromoCodeRequest запрос на создание промокода
type CreatePromoCodeRequest struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	ExpiryDate    time.Time
	UsageLimit    int
}

// PromoCodeResponse промокод для админки
type PromoCodeResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	ExpiryDate    time.Time `json:"expiryDate"`
	UsageLimit    int       `json:"usageLimit"`
	UsedCount     int       `json:"usedCount"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PromoCodeListResponse список промокодов
type PromoCodeListResponse struct {
	PromoCodes []PromoCodeResponse `json:"promoCodes"`
}

// ValidationResponse результат предварительной проверки кода клиентом
type ValidationResponse struct {
	Code          string  `json:"code"`
	Valid         bool    `json:"valid"`
	Reason        string  `json:"reason,omitempty"`
	DiscountType  string  `json:"discountType,omitempty"`
	DiscountValue float64 `json:"discountValue,omitempty"`
}

func FromDomainPromoCode(p *domain.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		ID:            p.ID,
		Code:          p.Code,
		DiscountType:  string(p.Discount.Type),
		DiscountValue: p.Discount.Value,
		ExpiryDate:    p.ExpiryDate,
		UsageLimit:    p.UsageLimit,
		UsedCount:     p.UsedCount,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

func FromDomainPromoCodeList(promos []*domain.PromoCode) *PromoCodeListResponse {
	resp := &PromoCodeListResponse{PromoCodes: make([]PromoCodeResponse, 0, len(promos))}
	for _, p := range promos {
		resp.PromoCodes = append(resp.PromoCodes, FromDomainPromoCode(p))
	}
	return resp
}
