package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkNotificationSent(ctx context.Context, bookingID int64, receipt domain.NotificationReceipt) (bool, error) {
	args := m.Called(ctx, bookingID, receipt)
	return args.Bool(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        12,
		Customer:  domain.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", NumberOfPeople: 2},
		Date:      time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		TimeSlots: []domain.Slot{{Start: "10:00", End: "11:00"}},
		Total:     19.8,
		Status:    domain.StatusConfirmed,
	}
}

func newWorker(repo *MockBookingRepository, sender *MockSender) (*Worker, *[]time.Duration) {
	w := NewWorker(repo, sender, (*metrics.Metrics)(nil), 3, 2*time.Second, logger.Discard())
	var delays []time.Duration
	w.sleep = func(_ context.Context, d time.Duration) bool {
		delays = append(delays, d)
		return true
	}
	return w, &delays
}

func TestHandle_SendsAndRecords(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)
	repo.On("GetByID", mock.Anything, int64(12)).Return(testBooking(), nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m Message) bool {
		return m.To == "ada@example.com" && strings.Contains(m.Subject, "confirmed")
	})).Return("<m1@mail>", nil)
	repo.On("MarkNotificationSent", mock.Anything, int64(12), mock.MatchedBy(func(r domain.NotificationReceipt) bool {
		return r.Kind == domain.NotificationConfirmed && r.MessageID == "<m1@mail>"
	})).Return(true, nil)

	w, _ := newWorker(repo, sender)
	err := w.Handle(context.Background(), domain.Notification{Kind: domain.NotificationConfirmed, BookingID: 12})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestHandle_SkipsAlreadySentKind(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)
	b := testBooking()
	b.Notifications = []domain.NotificationReceipt{{Kind: domain.NotificationConfirmed}}
	repo.On("GetByID", mock.Anything, int64(12)).Return(b, nil)

	w, _ := newWorker(repo, sender)
	err := w.Handle(context.Background(), domain.Notification{Kind: domain.NotificationConfirmed, BookingID: 12})

	require.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandle_RetriesWithExponentialBackoff(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)
	repo.On("GetByID", mock.Anything, int64(12)).Return(testBooking(), nil)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("421 try later")).Twice()
	sender.On("Send", mock.Anything, mock.Anything).Return("<m2@mail>", nil).Once()
	repo.On("MarkNotificationSent", mock.Anything, int64(12), mock.Anything).Return(true, nil)

	w, delays := newWorker(repo, sender)
	err := w.Handle(context.Background(), domain.Notification{Kind: domain.NotificationCreated, BookingID: 12})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
	sender.AssertNumberOfCalls(t, "Send", 3)
}

func TestHandle_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)
	repo.On("GetByID", mock.Anything, int64(12)).Return(testBooking(), nil)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	w, delays := newWorker(repo, sender)
	err := w.Handle(context.Background(), domain.Notification{Kind: domain.NotificationCreated, BookingID: 12})

	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Len(t, *delays, 2)
	sender.AssertNumberOfCalls(t, "Send", 3)
	repo.AssertNotCalled(t, "MarkNotificationSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_DeletedBookingIsDropped(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, bookingRepo.ErrBookingNotFound)

	w, _ := newWorker(repo, sender)
	err := w.Handle(context.Background(), domain.Notification{Kind: domain.NotificationCreated, BookingID: 99})

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRender(t *testing.T) {
	b := testBooking()

	msg, err := Render(domain.NotificationCancelled, b, map[string]string{"reason": "expired"})
	require.NoError(t, err)
	assert.Equal(t, "Your booking #12 was cancelled", msg.Subject)
	assert.Contains(t, msg.Body, "not completed in time")
	assert.Contains(t, msg.Body, "10:00 - 11:00")
	assert.Contains(t, msg.Body, "Total: 19.80")

	msg, err = Render(domain.NotificationRefunded, b, map[string]string{"refund_id": "re_9"})
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "re_9")

	_, err = Render("reminder", b, nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "user", "secret", "bookings@example.com")

	var gotAddr string
	var gotTo []string
	var gotBody string
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	id, err := s.Send(context.Background(), Message{To: "ada@example.com", Subject: "Hi", Body: "line1\nline2"})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "@smtp.example.com>"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Subject: Hi\r\n")
	assert.Contains(t, gotBody, "line1\r\nline2")
}
