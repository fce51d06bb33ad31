package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// ErrInvalidInput некорректные параметры расчета
var ErrInvalidInput = errors.New("pricing: invalid input")

// Input данные для расчета стоимости
type Input struct {
	PricePerSlot float64
	SlotCount    int
	PartySize    int
	Promo        *domain.PromoCode // nil, если промокод не указан
	Loyalty      domain.LoyaltySnapshot
	ClientTotal  *float64 // сумма, которую показал клиент; только для аудита
	Now          time.Time
}

// Quote результат расчета
type Quote struct {
	Subtotal         float64
	PromoDiscount    float64
	LoyaltyDiscount  float64
	Total            float64
	FreeSlotsAwarded int // значение счетчика для нового бронирования

	OriginalServicePrice float64
	PriceAtCheckout      float64
	PricingDiscrepancy   *float64
}

// Engine считает стоимость бронирования. Клиентской сумме не доверяет
type Engine struct {
	surchargePerSlot float64
}

// NewEngine surchargePerSlot добавляется к цене каждого слота
func NewEngine(surchargePerSlot float64) *Engine {
	return &Engine{surchargePerSlot: surchargePerSlot}
}

// Quote считает итоговую сумму: слоты x люди, затем промокод, затем бесплатный слот за лояльность
func (e *Engine) Quote(in Input) (*Quote, error) {
	if in.SlotCount < 1 || in.PartySize < 1 || in.PricePerSlot < 0 {
		return nil, fmt.Errorf("%w: slots=%d, party=%d, price=%.2f", ErrInvalidInput, in.SlotCount, in.PartySize, in.PricePerSlot)
	}

	unit := in.PricePerSlot + e.surchargePerSlot
	subtotal := unit * float64(in.SlotCount) * float64(in.PartySize)
	total := subtotal

	q := &Quote{
		Subtotal:             Round(subtotal),
		OriginalServicePrice: in.PricePerSlot,
		FreeSlotsAwarded:     in.Loyalty.FreeSlotsAwarded,
	}

	if in.Promo != nil {
		if err := in.Promo.CheckRedeemable(in.Now); err != nil {
			return nil, err
		}
		discounted := in.Promo.Discount.Apply(total)
		q.PromoDiscount = Round(total - discounted)
		total = discounted
	}

	if owed := FreeSlotsOwed(in.Loyalty.ConfirmedCount); owed > in.Loyalty.FreeSlotsAwarded {
		// скидка один слот, без умножения на количество людей
		discounted := math.Max(0, total-in.PricePerSlot)
		q.LoyaltyDiscount = Round(total - discounted)
		q.FreeSlotsAwarded = in.Loyalty.FreeSlotsAwarded + 1
		total = discounted
	}

	q.Total = Round(total)
	q.PriceAtCheckout = q.Total

	if in.ClientTotal != nil {
		if diff := Round(*in.ClientTotal - q.Total); diff != 0 {
			q.PricingDiscrepancy = &diff
		}
	}

	return q, nil
}

// FreeSlotsOwed сколько бесплатных слотов заработано за confirmedCount подтвержденных бронирований
func FreeSlotsOwed(confirmedCount int) int {
	if confirmedCount <= 0 {
		return 0
	}
	return confirmedCount / domain.LoyaltyThreshold
}

// Round округление до копеек, половина от нуля
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
