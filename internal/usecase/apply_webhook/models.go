package apply_webhook

// Result итог обработки события
type Result string

const (
	ResultApplied        Result = "applied"         // бронирование сменило статус
	ResultNoop           Result = "noop"            // статус уже не позволяет переход, платеж обновлен
	ResultDuplicate      Result = "duplicate"       // событие уже обрабатывалось
	ResultUnknownPayment Result = "unknown_payment" // платеж не найден, событие подтверждается
)

// Response результат применения события
type Response struct {
	Result    Result
	BookingID int64
}
