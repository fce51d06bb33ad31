package create_payment_session

// Request запрос на создание сессии оплаты
type Request struct {
	BookingID int64
}

// Response сессия оплаты, на URL которой нужно перенаправить клиента
type Response struct {
	SessionID   string
	URL         string
	AmountCents int64
	Currency    string
}
