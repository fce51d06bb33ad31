package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/catalog"
	promoRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-RoomBooking/internal/service/pricing"
	"github.com/m04kA/SMC-RoomBooking/internal/usecase/check_availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	checker      AvailabilityChecker
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	promoRepo    PromoCodeRepository
	pricing      PricingEngine
	dispatcher   Dispatcher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	pendingTTL   time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	checker AvailabilityChecker,
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	promoRepo PromoCodeRepository,
	pricing PricingEngine,
	dispatcher Dispatcher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		checker:      checker,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		promoRepo:    promoRepo,
		pricing:      pricing,
		dispatcher:   dispatcher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		pendingTTL:   domain.PendingTTL,
	}
}

// WithPendingTTL срок оплаты онлайн-бронирования
func (uc *UseCase) WithPendingTTL(ttl time.Duration) *UseCase {
	if ttl > 0 {
		uc.pendingTTL = ttl
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка слотов, расчет цены и вставка идут в одной сериализуемой транзакции,
// последний рубеж против двойного бронирования - исключающее ограничение в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, room=%d, service=%d, date=%s, slots=%d, manual=%t",
		req.Email, req.RoomID, req.ServiceID, req.Date, len(req.TimeSlots), req.Manual)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Помещение
	room, err := uc.roomRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
	}
	if !room.IsBookable() {
		uc.logger.Warn("CreateBooking: room id=%d has status %s", room.ID, room.Status)
		return nil, ErrRoomUnavailable
	}

	now := uc.timeProvider.Now()
	event := domain.EventCreate
	if req.Manual {
		event = domain.EventManualCreate
	}

	var result *Response

	// 3. Сериализуемая транзакция: повторная проверка, цена, вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		avail, err := uc.checker.Execute(txCtx, &check_availability.Request{
			Date:      req.Date,
			ServiceID: req.ServiceID,
			RoomID:    req.RoomID,
		})
		if err != nil {
			return uc.mapAvailabilityError(err)
		}
		if !avail.Available {
			uc.logger.Warn("CreateBooking: service id=%d is not offered on %s", req.ServiceID, avail.Weekday)
			return fmt.Errorf("%w: service is not available on %s", ErrInvalidInput, avail.Weekday)
		}

		if err := validateParty(req.PartySize, avail.Service, room); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		anchor, err := domain.WindowAnchor(avail.Service.TimeRange.Start)
		if err != nil {
			uc.logger.Error("CreateBooking: invalid time range of service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: invalid time range: %w", ErrInternal, err)
		}
		if err := validateDistinctSlots(req.TimeSlots, anchor); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		for _, slot := range req.TimeSlots {
			if !avail.FreeSlot(slot) {
				uc.logger.Warn("CreateBooking: slot %s of room id=%d on %s is taken", slot, req.RoomID, req.Date)
				uc.metrics.IncSlotConflict("recheck")
				return &SlotError{Slot: slot}
			}
		}

		promo, err := uc.resolvePromo(txCtx, req.PromoCode)
		if err != nil {
			return err
		}

		loyalty, err := uc.loyalty(txCtx, req.Email)
		if err != nil {
			return err
		}

		quote, err := uc.pricing.Quote(pricing.Input{
			PricePerSlot: avail.Service.PricePerSlot,
			SlotCount:    len(req.TimeSlots),
			PartySize:    req.PartySize,
			Promo:        promo,
			Loyalty:      loyalty,
			ClientTotal:  req.ClientTotal,
			Now:          now,
		})
		if err != nil {
			return uc.mapPricingError(err)
		}
		if quote.PricingDiscrepancy != nil {
			uc.logger.Warn("CreateBooking: client total differs from server total %.2f by %.2f",
				quote.Total, *quote.PricingDiscrepancy)
		}

		status, err := domain.InitialStatus(event)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			Customer: domain.Customer{
				FirstName:      strings.TrimSpace(req.FirstName),
				LastName:       strings.TrimSpace(req.LastName),
				Email:          strings.TrimSpace(req.Email),
				Phone:          strings.TrimSpace(req.Phone),
				NumberOfPeople: req.PartySize,
			},
			RoomID:               req.RoomID,
			ServiceID:            req.ServiceID,
			Date:                 avail.Date,
			TimeSlots:            req.TimeSlots,
			SlotAnchor:           anchor,
			Total:                quote.Total,
			Status:               status,
			FreeSlotsAwarded:     quote.FreeSlotsAwarded,
			IsManual:             req.Manual,
			OriginalServicePrice: quote.OriginalServicePrice,
			PriceAtCheckout:      quote.PriceAtCheckout,
			PricingDiscrepancy:   quote.PricingDiscrepancy,
		}
		if promo != nil {
			booking.PromoCodeID = &promo.ID
		}
		if status == domain.StatusPending {
			expiresAt := now.Add(uc.pendingTTL)
			booking.ExpiresAt = &expiresAt
		} else {
			confirmedAt := now
			booking.ConfirmedAt = &confirmedAt
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: storage rejected overlapping slots for room id=%d on %s", req.RoomID, req.Date)
				uc.metrics.IncSlotConflict("storage")
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// ручная бронь подтверждена сразу, поэтому промокод считается использованным здесь
		if promo != nil && status == domain.StatusConfirmed {
			ok, err := uc.promoRepo.IncrementUsage(txCtx, promo.ID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to increment promo id=%d usage: %v", promo.ID, err)
				return fmt.Errorf("%w: failed to increment promo usage: %w", ErrInternal, err)
			}
			if !ok {
				return fmt.Errorf("%w: %w", ErrPromoInvalid, domain.ErrPromoLimitReached)
			}
		}

		result = &Response{Booking: created, Quote: quote}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := "online"
	notification := domain.NotificationCreated
	if req.Manual {
		kind = "manual"
		notification = domain.NotificationConfirmed
	}
	uc.metrics.IncBookingCreated(kind)

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s, total=%.2f",
		result.Booking.ID, result.Booking.Status, result.Booking.Total)

	if err := uc.dispatcher.Dispatch(ctx, domain.Notification{
		Kind:       notification,
		BookingID:  result.Booking.ID,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Error("CreateBooking: failed to dispatch %s notification for booking id=%d: %v",
			notification, result.Booking.ID, err)
	}

	return result, nil
}

func (uc *UseCase) resolvePromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	code = domain.NormalizePromoCode(code)
	if code == "" {
		return nil, nil
	}

	promo, err := uc.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			uc.logger.Warn("CreateBooking: promo code %s not found", code)
			return nil, fmt.Errorf("%w: %w", ErrPromoInvalid, ErrPromoNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get promo code %s: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get promo code: %w", ErrInternal, err)
	}
	return promo, nil
}

// loyalty снимок истории клиента. Счетчик бесплатных слотов берется из последней брони
func (uc *UseCase) loyalty(ctx context.Context, email string) (domain.LoyaltySnapshot, error) {
	count, err := uc.bookingRepo.CountConfirmedByEmail(ctx, email)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count confirmed bookings: %v", err)
		return domain.LoyaltySnapshot{}, fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
	}

	snapshot := domain.LoyaltySnapshot{ConfirmedCount: count}

	latest, err := uc.bookingRepo.GetLatestByEmail(ctx, email)
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
	case err != nil:
		uc.logger.Error("CreateBooking: failed to get latest booking: %v", err)
		return domain.LoyaltySnapshot{}, fmt.Errorf("%w: failed to get latest booking: %w", ErrInternal, err)
	default:
		snapshot.FreeSlotsAwarded = latest.FreeSlotsAwarded
	}
	return snapshot, nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, check_availability.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, check_availability.ErrInvalidDate):
		return ErrInvalidDate
	case errors.Is(err, check_availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: availability re-check failed: %v", err)
		return fmt.Errorf("%w: availability re-check: %w", ErrInternal, err)
	}
}

func (uc *UseCase) mapPricingError(err error) error {
	switch {
	case errors.Is(err, domain.ErrPromoInactive),
		errors.Is(err, domain.ErrPromoExpired),
		errors.Is(err, domain.ErrPromoLimitReached):
		uc.logger.Warn("CreateBooking: promo rejected: %v", err)
		return fmt.Errorf("%w: %w", ErrPromoInvalid, err)
	case errors.Is(err, pricing.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: pricing failed: %v", err)
		return fmt.Errorf("%w: pricing: %w", ErrInternal, err)
	}
}
