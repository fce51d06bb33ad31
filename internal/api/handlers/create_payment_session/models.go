package create_payment_session

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	BookingID int64 `json:"bookingId"`
}

// CreateSessionResponse HTTP response model
type CreateSessionResponse struct {
	SessionID string  `json:"sessionId"`
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}
