package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/catalog"
)

// UseCase проверка доступности слотов услуги в помещении
type UseCase struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	calendar    Calendar
	holdBlocks  bool
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// holdBlocks определяет, занимают ли слоты бронирования в статусе hold.
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	calendar Calendar,
	holdBlocks bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		calendar:    calendar,
		holdBlocks:  holdBlocks,
		logger:      logger,
	}
}

// Execute строит слоты услуги на дату и помечает занятые.
// Внутри транзакции бронирования помещения за день блокируются, поэтому
// create_booking вызывает этот же use case для повторной проверки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID <= 0 || req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: serviceId and roomId must be positive", ErrInvalidInput)
	}

	// 1. Услуга
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	// 2. Дата и день недели в поясе бизнеса
	date, err := uc.calendar.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid date %q: %v", req.Date, err)
		return nil, ErrInvalidDate
	}
	weekday := uc.calendar.WeekdayCode(date)

	resp := &Response{
		Weekday: weekday,
		Date:    date,
		Service: service,
		Slots:   []domain.AnnotatedSlot{},
	}

	if !service.IsAvailableOn(weekday) {
		uc.logger.Info("CheckAvailability: service id=%d is not available on %s", service.ID, weekday)
		return resp, nil
	}
	resp.Available = true

	// 3. Слоты
	slots, err := uc.generate(ctx, service)
	if err != nil {
		return nil, err
	}

	// 4. Занятые интервалы помещения
	bookings, err := uc.bookingRepo.GetByRoomAndDate(ctx, req.RoomID, date, domain.BlockingStatuses(uc.holdBlocks))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	anchor, err := domain.WindowAnchor(service.TimeRange.Start)
	if err != nil {
		uc.logger.Error("CheckAvailability: invalid time range of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: invalid time range: %w", ErrInternal, err)
	}

	resp.Slots, err = annotate(slots, bookings, anchor)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to compare slots: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: service=%d, room=%d, date=%s: %d slots, %d bookings",
		service.ID, req.RoomID, date.Format(domain.DateFormat), len(resp.Slots), len(bookings))

	return resp, nil
}

func (uc *UseCase) generate(ctx context.Context, service *domain.Service) ([]domain.Slot, error) {
	hours := service.SlotDurationHours
	step := domain.DefaultSlotStepMinutes

	isPackage, err := uc.isPackage(ctx, service)
	if err != nil {
		return nil, err
	}
	if isPackage {
		hours, step, err = domain.PackageWindow(service.TimeRange.Start, service.TimeRange.End)
		if err != nil {
			uc.logger.Error("CheckAvailability: invalid time range of service id=%d: %v", service.ID, err)
			return nil, fmt.Errorf("%w: invalid time range: %w", ErrInternal, err)
		}
	}

	slots, err := domain.GenerateSlots(service.TimeRange.Start, service.TimeRange.End, hours, step)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to generate slots for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
	}
	return slots, nil
}

// isPackage категория без типа или не найденная считается почасовой
func (uc *UseCase) isPackage(ctx context.Context, service *domain.Service) (bool, error) {
	category, err := uc.catalogRepo.GetCategoryByID(ctx, service.CategoryID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCategoryNotFound) {
			uc.logger.Warn("CheckAvailability: category id=%d of service id=%d not found, using hourly slots",
				service.CategoryID, service.ID)
			return false, nil
		}
		uc.logger.Error("CheckAvailability: failed to get category id=%d: %v", service.CategoryID, err)
		return false, fmt.Errorf("%w: failed to get category: %w", ErrInternal, err)
	}
	return category.IsPackage(), nil
}

// annotate помечает слот занятым, если он пересекается хотя бы с одним слотом бронирований
func annotate(slots []domain.Slot, bookings []*domain.Booking, anchor int) ([]domain.AnnotatedSlot, error) {
	result := make([]domain.AnnotatedSlot, 0, len(slots))
	for _, slot := range slots {
		available := true
	loop:
		for _, b := range bookings {
			for _, taken := range b.TimeSlots {
				overlaps, err := domain.Overlaps(slot, taken, anchor)
				if err != nil {
					return nil, fmt.Errorf("booking id=%d: %w", b.ID, err)
				}
				if overlaps {
					available = false
					break loop
				}
			}
		}
		result = append(result, domain.AnnotatedSlot{Slot: slot, Available: available})
	}
	return result, nil
}
