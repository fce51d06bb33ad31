package promocodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	promoRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
)

const maxCodeLength = 64

// Service сервис промокодов: создание и управление администратором, проверка клиентом
type Service struct {
	promoRepo    PromoCodeRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(promoRepo PromoCodeRepository, logger Logger) *Service {
	return &Service{
		promoRepo:    promoRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Create создает промокод. Код хранится в верхнем регистре, срок действия должен быть в будущем
func (s *Service) Create(ctx context.Context, req *models.CreatePromoCodeRequest) (*models.PromoCodeResponse, error) {
	code := domain.NormalizePromoCode(req.Code)
	if code == "" || len(code) > maxCodeLength {
		return nil, fmt.Errorf("%w: code is required and must be at most %d characters", ErrInvalidInput, maxCodeLength)
	}
	if !req.ExpiryDate.After(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: expiryDate must be in the future", ErrInvalidInput)
	}
	if req.UsageLimit < 0 {
		return nil, fmt.Errorf("%w: usageLimit must not be negative", ErrInvalidInput)
	}

	discount, err := domain.NewDiscount(req.DiscountType, req.DiscountValue)
	if err != nil {
		s.logger.Warn("Create: invalid discount for code %s: %v", code, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.promoRepo.Create(ctx, &domain.PromoCode{
		Code:       code,
		Discount:   discount,
		ExpiryDate: req.ExpiryDate,
		UsageLimit: req.UsageLimit,
		Active:     true,
	})
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeExists) {
			s.logger.Warn("Create: promo code %s already exists", code)
			return nil, ErrPromoCodeExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: promo code %s created id=%d", created.Code, created.ID)
	resp := models.FromDomainPromoCode(created)
	return &resp, nil
}

// List все промокоды
func (s *Service) List(ctx context.Context) (*models.PromoCodeListResponse, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainPromoCodeList(promos), nil
}

// SetActive включает или выключает промокод
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.promoRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			s.logger.Warn("SetActive: promo code id=%d not found", id)
			return ErrPromoCodeNotFound
		}
		s.logger.Error("SetActive: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("SetActive: promo code id=%d active=%t", id, active)
	return nil
}

// Validate проверяет код без его применения. Непригодный код не ошибка, причина в ответе
func (s *Service) Validate(ctx context.Context, code string) (*models.ValidationResponse, error) {
	code = domain.NormalizePromoCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			return &models.ValidationResponse{Code: code, Reason: models.ReasonNotFound}, nil
		}
		s.logger.Error("Validate: repository error for code %s: %v", code, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	resp := &models.ValidationResponse{Code: promo.Code}
	switch err := promo.CheckRedeemable(s.timeProvider.Now()); {
	case err == nil:
		resp.Valid = true
		resp.DiscountType = string(promo.Discount.Type)
		resp.DiscountValue = promo.Discount.Value
	case errors.Is(err, domain.ErrPromoInactive):
		resp.Reason = models.ReasonInactive
	case errors.Is(err, domain.ErrPromoExpired):
		resp.Reason = models.ReasonExpired
	case errors.Is(err, domain.ErrPromoLimitReached):
		resp.Reason = models.ReasonLimitReached
	default:
		return nil, fmt.Errorf("%w: Validate - %w", ErrInternal, err)
	}
	return resp, nil
}
