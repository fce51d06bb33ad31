package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
)

// причина снятия hold при ручном возврате в pending
const holdReleaseAdmin = "admin"

// Service сервис для работы с бронированиями: чтение, hold и ручные операции администратора
type Service struct {
	bookingRepo  BookingRepository
	promoRepo    PromoCodeRepository
	dispatcher   Dispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	pendingTTL   time.Duration
	holdTTL      time.Duration
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	promoRepo PromoCodeRepository,
	dispatcher Dispatcher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		promoRepo:    promoRepo,
		dispatcher:   dispatcher,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
		pendingTTL:   domain.PendingTTL,
		holdTTL:      domain.HoldTTL,
	}
}

// WithTTL сроки ожидания оплаты для pending и hold, нулевые значения игнорируются
func (s *Service) WithTTL(pending, hold time.Duration) *Service {
	if pending > 0 {
		s.pendingTTL = pending
	}
	if hold > 0 {
		s.holdTTL = hold
	}
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByEmail история бронирований клиента, email без учета регистра
func (s *Service) ListByEmail(ctx context.Context, email string) (*models.BookingListResponse, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Email: &email, Limit: models.MaxLimit})
	if err != nil {
		s.logger.Error("ListByEmail: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByEmail: fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingList(bookings, total), nil
}

// List бронирования для админки: период, статус, помещение и пагинация
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings (limit=%d, offset=%d)", len(bookings), total, filter.Limit, filter.Offset)
	return models.FromDomainBookingList(bookings, total), nil
}

// PlaceHold переводит pending бронирование в hold на holdTTL
func (s *Service) PlaceHold(ctx context.Context, id int64) (*models.BookingResponse, error) {
	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.load(txCtx, "PlaceHold", id)
		if err != nil {
			return err
		}

		if booking.IsExpired(now) {
			s.logger.Warn("PlaceHold: booking id=%d expired at %v", id, booking.ExpiresAt)
			return ErrBookingExpired
		}

		to, err := domain.Transition(booking.Status, domain.EventPlaceHold)
		if err != nil {
			s.logger.Warn("PlaceHold: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrIllegalTransition, err)
		}

		holdExpiresAt := now.Add(s.holdTTL)
		patch := domain.TransitionPatch{HoldExpiresAt: &holdExpiresAt}
		if err := s.transition(txCtx, "PlaceHold", id, booking.Status, to, patch); err != nil {
			return err
		}

		booking.Status = to
		booking.HoldExpiresAt = &holdExpiresAt
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("PlaceHold: booking id=%d is on hold until %s", id, result.HoldExpiresAt.Format("15:04:05"))
	return models.FromDomainBooking(result), nil
}

// UpdateStatus ручная смена статуса администратором.
// Разрешенные переходы задает domain.AdminTransition, смена на тот же статус ничего не делает.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	target, err := domain.ParseStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	var (
		result  *domain.Booking
		changed bool
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.load(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}
		result = booking

		if err := domain.AdminTransition(booking.Status, target); err != nil {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, target)
		}
		if booking.Status == target {
			return nil
		}

		patch := adminPatch(booking.Status, target, now, s.pendingTTL)
		if err := s.transition(txCtx, "UpdateStatus", id, booking.Status, target, patch); err != nil {
			return err
		}

		if target == domain.StatusConfirmed && booking.PromoCodeID != nil {
			ok, err := s.promoRepo.IncrementUsage(txCtx, *booking.PromoCodeID)
			if err != nil {
				s.logger.Error("UpdateStatus: failed to increment promo id=%d usage: %v", *booking.PromoCodeID, err)
				return fmt.Errorf("%w: increment promo usage: %w", ErrInternal, err)
			}
			if !ok {
				s.logger.Warn("UpdateStatus: promo id=%d usage limit already reached", *booking.PromoCodeID)
			}
		}

		applyPatch(booking, target, patch)
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("UpdateStatus: booking id=%d is now %s", id, target)
		s.notify(ctx, id, target, now)
	}
	return models.FromDomainBooking(result), nil
}

// Delete удаляет бронирование вместе со слотами
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// transition условный UPDATE: строка меняется, только если статус всё ещё from
func (s *Service) transition(ctx context.Context, op string, id int64, from, to domain.Status, patch domain.TransitionPatch) error {
	ok, err := s.bookingRepo.Transition(ctx, id, []domain.Status{from}, to, patch)
	if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
		s.logger.Warn("%s: slots of booking id=%d are taken, cannot move %s -> %s", op, id, from, to)
		return ErrSlotTaken
	}
	if err != nil {
		s.logger.Error("%s: failed to move booking id=%d %s -> %s: %v", op, id, from, to, err)
		return fmt.Errorf("%w: %s - transition: %w", ErrInternal, op, err)
	}
	if !ok {
		s.logger.Warn("%s: booking id=%d is no longer %s", op, id, from)
		return ErrStatusChanged
	}
	return nil
}

func (s *Service) notify(ctx context.Context, id int64, status domain.Status, now time.Time) {
	kind, ok := notificationFor(status)
	if !ok {
		return
	}
	err := s.dispatcher.Dispatch(ctx, domain.Notification{Kind: kind, BookingID: id, OccurredAt: now})
	if err != nil {
		s.logger.Error("notify: failed to dispatch %s for booking id=%d: %v", kind, id, err)
	}
}

// notificationFor письмо, которое отправляется при переходе в статус
func notificationFor(status domain.Status) (domain.NotificationKind, bool) {
	switch status {
	case domain.StatusConfirmed:
		return domain.NotificationConfirmed, true
	case domain.StatusCancelled:
		return domain.NotificationCancelled, true
	case domain.StatusRefunded:
		return domain.NotificationRefunded, true
	default:
		return "", false
	}
}

func adminPatch(from, to domain.Status, now time.Time, pendingTTL time.Duration) domain.TransitionPatch {
	var patch domain.TransitionPatch
	switch to {
	case domain.StatusConfirmed:
		patch.ConfirmedAt = &now
	case domain.StatusCancelled:
		patch.CancelledAt = &now
	case domain.StatusRefunded:
		patch.RefundedAt = &now
	}
	if to == domain.StatusPending {
		expiresAt := now.Add(pendingTTL)
		patch.ExpiresAt = &expiresAt
	}
	if from == domain.StatusHold {
		reason := holdReleaseAdmin
		patch.HoldReleasedAt = &now
		patch.HoldReleaseReason = &reason
	}
	return patch
}

func applyPatch(b *domain.Booking, status domain.Status, patch domain.TransitionPatch) {
	b.Status = status
	if patch.ExpiresAt != nil {
		b.ExpiresAt = patch.ExpiresAt
	}
	if patch.ConfirmedAt != nil {
		b.ConfirmedAt = patch.ConfirmedAt
	}
	if patch.CancelledAt != nil {
		b.CancelledAt = patch.CancelledAt
	}
	if patch.RefundedAt != nil {
		b.RefundedAt = patch.RefundedAt
	}
	if patch.HoldReleasedAt != nil {
		b.HoldReleasedAt = patch.HoldReleasedAt
		b.HoldReleaseReason = patch.HoldReleaseReason
	}
}
