package stripe

// CheckoutRequest параметры сессии оплаты
type CheckoutRequest struct {
	BookingID     int64
	AmountCents   int64
	CustomerEmail string
}

// CheckoutSession созданная сессия оплаты
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string // может быть пустым до завершения оплаты
}

// Типы событий Stripe, которые влияют на бронирования
const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventPaymentFailed     = "payment_intent.payment_failed"
	eventChargeRefunded    = "charge.refunded"
	eventRefundUpdated     = "refund.updated"
	eventRefundSucceeded   = "refund.succeeded"

	checkoutLineItemName  = "Room Booking"
	checkoutPaymentMethod = "card"
	successPathTemplate   = "%s/payment-success?session_id={CHECKOUT_SESSION_ID}"
	cancelPathTemplate    = "%s/payment-cancelled?booking_id=%d"
	metadataBookingID     = "bookingId"
)
