package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/businesscal"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/types"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByRoomAndDate(ctx context.Context, roomID int64, date time.Time, statuses []domain.Status) ([]*domain.Booking, error) {
	args := m.Called(ctx, roomID, date, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

// 2025-01-06 понедельник
const monday = "2025-01-06"

func hourlyService(start, end string) *domain.Service {
	return &domain.Service{
		ID:                7,
		CategoryID:        3,
		AvailableDays:     []string{"Mon", "Tue"},
		TimeRange:         domain.TimeRange{Start: ts(start), End: ts(end)},
		SlotDurationHours: 1,
		PricePerSlot:      9.9,
		MaxPeopleAllowed:  4,
	}
}

func ts(s string) types.TimeString { return types.TimeString(s) }

func slot(start, end string) domain.Slot {
	return domain.Slot{Start: ts(start), End: ts(end)}
}

func newUseCase(catalog *MockCatalogRepository, bookings *MockBookingRepository, holdBlocks bool) *UseCase {
	return NewUseCase(catalog, bookings, businesscal.MustNew("Asia/Singapore"), holdBlocks, logger.Discard())
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := new(MockCatalogRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(nil, catalogRepo.ErrServiceNotFound)

	_, err := newUseCase(catalog, new(MockBookingRepository), true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, "Service not found", err.Error())
}

func TestExecute_InvalidDate(t *testing.T) {
	catalog := new(MockCatalogRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "12:00"), nil)

	_, err := newUseCase(catalog, new(MockBookingRepository), true).
		Execute(context.Background(), &Request{Date: "06/01/2025", ServiceID: 7, RoomID: 1})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DayNotAvailable(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "12:00"), nil)

	// 2025-01-08 среда
	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: "2025-01-08", ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "Wed", resp.Weekday)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	bookings.AssertNotCalled(t, "GetByRoomAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_MarksOverlappingSlots(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "12:00"), nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: domain.CategoryHourly}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, domain.BlockingStatuses(true)).
		Return([]*domain.Booking{{ID: 10, TimeSlots: []domain.Slot{slot("10:00", "11:00")}}}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "Mon", resp.Weekday)
	assert.Equal(t, []domain.AnnotatedSlot{
		{Slot: slot("09:00", "10:00"), Available: true},
		{Slot: slot("10:00", "11:00"), Available: false},
		{Slot: slot("11:00", "12:00"), Available: true},
	}, resp.Slots)
	assert.True(t, resp.FreeSlot(slot("11:00", "12:00")))
	assert.False(t, resp.FreeSlot(slot("10:00", "11:00")))
	assert.False(t, resp.FreeSlot(slot("12:00", "13:00")))
}

func TestExecute_PackageCategoryGivesSingleSlot(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "17:00"), nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: domain.CategoryPackage}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.AnnotatedSlot{{Slot: slot("09:00", "17:00"), Available: true}}, resp.Slots)
}

func TestExecute_WindowEndingAtMidnight(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("22:00", "00:00"), nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(nil, catalogRepo.ErrCategoryNotFound)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.Booking{{ID: 11, TimeSlots: []domain.Slot{slot("23:00", "00:00")}}}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.AnnotatedSlot{
		{Slot: slot("22:00", "23:00"), Available: true},
		{Slot: slot("23:00", "00:00"), Available: false},
	}, resp.Slots)
}

func TestExecute_HoldBlockingIsConfigurable(t *testing.T) {
	for _, holdBlocks := range []bool{true, false} {
		catalog := new(MockCatalogRepository)
		bookings := new(MockBookingRepository)
		catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "10:00"), nil)
		catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{Type: domain.CategoryHourly}, nil)
		bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, domain.BlockingStatuses(holdBlocks)).
			Return([]*domain.Booking{}, nil)

		_, err := newUseCase(catalog, bookings, holdBlocks).
			Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

		require.NoError(t, err)
		bookings.AssertExpectations(t)
	}
}

func TestExecute_BookingsLoadFailure(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "12:00"), nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{Type: domain.CategoryHourly}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_HourlyStepForLongerSlots(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	service := hourlyService("10:00", "14:00")
	service.SlotDurationHours = 2
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(service, nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: domain.CategoryHourly}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.AnnotatedSlot{
		{Slot: slot("10:00", "12:00"), Available: true},
		{Slot: slot("11:00", "13:00"), Available: true},
		{Slot: slot("12:00", "14:00"), Available: true},
	}, resp.Slots)
	assert.True(t, resp.FreeSlot(slot("11:00", "13:00")))
}

func TestExecute_FractionalDurationKeepsHourlyStep(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	service := hourlyService("10:00", "13:00")
	service.SlotDurationHours = 1.5
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(service, nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: domain.CategoryHourly}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.Booking{{ID: 12, TimeSlots: []domain.Slot{slot("12:00", "13:00")}}}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.AnnotatedSlot{
		{Slot: slot("10:00", "11:30"), Available: true},
		{Slot: slot("11:00", "12:30"), Available: false},
	}, resp.Slots)
}

func TestExecute_WindowPastMidnightDetectsClash(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	service := hourlyService("22:00", "03:00")
	service.SlotDurationHours = 2
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(service, nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(&domain.Category{ID: 3, Type: domain.CategoryHourly}, nil)
	bookings.On("GetByRoomAndDate", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.Booking{{ID: 13, TimeSlots: []domain.Slot{slot("23:00", "01:00")}}}, nil)

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	require.NoError(t, err)
	assert.Equal(t, []domain.AnnotatedSlot{
		{Slot: slot("22:00", "00:00"), Available: false},
		{Slot: slot("23:00", "01:00"), Available: false},
		{Slot: slot("00:00", "02:00"), Available: false},
		{Slot: slot("01:00", "03:00"), Available: true},
	}, resp.Slots)
}

func TestExecute_CategoryLoadFailure(t *testing.T) {
	catalog := new(MockCatalogRepository)
	bookings := new(MockBookingRepository)
	catalog.On("GetServiceByID", mock.Anything, int64(7)).Return(hourlyService("09:00", "17:00"), nil)
	catalog.On("GetCategoryByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	resp, err := newUseCase(catalog, bookings, true).
		Execute(context.Background(), &Request{Date: monday, ServiceID: 7, RoomID: 1})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
	bookings.AssertNotCalled(t, "GetByRoomAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
