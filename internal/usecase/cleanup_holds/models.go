package cleanup_holds

const (
	TriggerScheduler = "scheduler"
	TriggerAdmin     = "admin"
)

// Request кто запустил очистку, попадает в метрики
type Request struct {
	Trigger string
}

// Response количество отмененных бронирований
type Response struct {
	CleanedUp  int
	BookingIDs []int64
}
