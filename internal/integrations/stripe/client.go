package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sessionCreator часть Stripe API для создания checkout-сессий
type sessionCreator interface {
	New(params *stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
}

// Client клиент Stripe: создание сессий оплаты и разбор вебхуков
type Client struct {
	sessions      sessionCreator
	webhookSecret string
	currency      string
	frontendURL   string
	log           Logger
}

// NewClient создает клиент Stripe
func NewClient(secretKey, webhookSecret, currency, frontendURL string, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		sessions:      api.CheckoutSessions,
		webhookSecret: webhookSecret,
		currency:      strings.ToLower(currency),
		frontendURL:   strings.TrimRight(frontendURL, "/"),
		log:           log,
	}
}

// CreateCheckoutSession создает сессию оплаты с одной позицией на всю сумму бронирования
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{
		PaymentMethodTypes: stripeapi.StringSlice([]string{checkoutPaymentMethod}),
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency: stripeapi.String(c.currency),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(checkoutLineItemName),
					},
					UnitAmount: stripeapi.Int64(req.AmountCents),
				},
				Quantity: stripeapi.Int64(1),
			},
		},
		SuccessURL:        stripeapi.String(fmt.Sprintf(successPathTemplate, c.frontendURL)),
		CancelURL:         stripeapi.String(fmt.Sprintf(cancelPathTemplate, c.frontendURL, req.BookingID)),
		ClientReferenceID: stripeapi.String(strconv.FormatInt(req.BookingID, 10)),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata(metadataBookingID, strconv.FormatInt(req.BookingID, 10))

	s, err := c.sessions.New(params)
	if err != nil {
		c.log.Error("Stripe: failed to create checkout session for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrInternal, err)
	}

	out := &CheckoutSession{ID: s.ID, URL: s.URL}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out, nil
}

// ParseWebhook проверяет подпись и переводит событие Stripe в domain.PaymentEvent.
// Для событий, не влияющих на бронирования, возвращает ErrIgnoredEvent.
func (c *Client) ParseWebhook(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return mapEvent(event)
}

func mapEvent(event stripeapi.Event) (*domain.PaymentEvent, error) {
	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidPayload, event.ID)
	}
	raw := event.Data.Raw

	switch event.Type {
	case eventCheckoutCompleted:
		var s stripeapi.CheckoutSession
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: checkout session: %v", ErrInvalidPayload, err)
		}
		ev := &domain.PaymentEvent{ID: event.ID, Type: domain.PaymentEventCompleted, SessionID: s.ID}
		if s.PaymentIntent != nil {
			ev.PaymentIntentID = s.PaymentIntent.ID
		}
		return ev, nil

	case eventPaymentFailed:
		var pi stripeapi.PaymentIntent
		if err := json.Unmarshal(raw, &pi); err != nil {
			return nil, fmt.Errorf("%w: payment intent: %v", ErrInvalidPayload, err)
		}
		return &domain.PaymentEvent{ID: event.ID, Type: domain.PaymentEventFailed, PaymentIntentID: pi.ID}, nil

	case eventChargeRefunded:
		var ch stripeapi.Charge
		if err := json.Unmarshal(raw, &ch); err != nil {
			return nil, fmt.Errorf("%w: charge: %v", ErrInvalidPayload, err)
		}
		if ch.PaymentIntent == nil {
			return nil, fmt.Errorf("%w: charge %s without payment intent", ErrIgnoredEvent, ch.ID)
		}
		ev := &domain.PaymentEvent{ID: event.ID, Type: domain.PaymentEventRefunded, PaymentIntentID: ch.PaymentIntent.ID}
		if ch.Refunds != nil && len(ch.Refunds.Data) > 0 {
			ev.RefundID = ch.Refunds.Data[0].ID
		}
		return ev, nil

	case eventRefundUpdated, eventRefundSucceeded:
		var rf stripeapi.Refund
		if err := json.Unmarshal(raw, &rf); err != nil {
			return nil, fmt.Errorf("%w: refund: %v", ErrInvalidPayload, err)
		}
		if rf.Status != "" && rf.Status != stripeapi.RefundStatusSucceeded {
			return nil, fmt.Errorf("%w: refund %s is %s", ErrIgnoredEvent, rf.ID, rf.Status)
		}
		if rf.PaymentIntent == nil {
			return nil, fmt.Errorf("%w: refund %s without payment intent", ErrIgnoredEvent, rf.ID)
		}
		return &domain.PaymentEvent{
			ID:              event.ID,
			Type:            domain.PaymentEventRefunded,
			PaymentIntentID: rf.PaymentIntent.ID,
			RefundID:        rf.ID,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrIgnoredEvent, event.Type)
	}
}
