package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

const (
	tableBookings      = "bookings"
	tableSlots         = "booking_slots"
	tableNotifications = "booking_notifications"

	// SQLSTATE нарушения исключающего ограничения booking_slots_no_overlap
	codeExclusionViolation = "23P01"

	savepointTransition = "booking_transition"
)

var bookingColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"number_of_people",
	"room_id",
	"service_id",
	"promo_code_id",
	"booking_date",
	"total",
	"status",
	"expires_at",
	"hold_expires_at",
	"confirmed_at",
	"cancelled_at",
	"refunded_at",
	"hold_released_at",
	"hold_release_reason",
	"stripe_session_id",
	"payment_intent_id",
	"refund_id",
	"free_slots_awarded",
	"is_manual",
	"original_service_price",
	"price_at_checkout",
	"pricing_discrepancy",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db         DBExecutor
	holdBlocks bool
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, holdBlocks: true}
}

// WithHoldBlocks занимают ли слоты бронирования в статусе hold.
// Значение сохраняется в каждой новой брони, триггер БД сверяется с ним при смене статуса.
func (r *Repository) WithHoldBlocks(holdBlocks bool) *Repository {
	r.holdBlocks = holdBlocks
	return r
}

// Create сохраняет бронирование вместе со слотами.
// Пересечение с активным бронированием того же помещения отсекается ограничением БД
// и возвращается как ErrSlotNotAvailable. Вызывать внутри транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"first_name",
			"last_name",
			"email",
			"phone",
			"number_of_people",
			"room_id",
			"service_id",
			"promo_code_id",
			"booking_date",
			"total",
			"status",
			"payment_status",
			"expires_at",
			"confirmed_at",
			"free_slots_awarded",
			"is_manual",
			"original_service_price",
			"price_at_checkout",
			"pricing_discrepancy",
			"hold_blocks_slots",
		).
		Values(
			booking.Customer.FirstName,
			booking.Customer.LastName,
			booking.Customer.Email,
			booking.Customer.Phone,
			booking.Customer.NumberOfPeople,
			booking.RoomID,
			booking.ServiceID,
			booking.PromoCodeID,
			booking.Date.Format(domain.DateFormat),
			booking.Total,
			booking.Status,
			booking.Status.PaymentStatus(),
			booking.ExpiresAt,
			booking.ConfirmedAt,
			booking.FreeSlotsAwarded,
			booking.IsManual,
			booking.OriginalServicePrice,
			booking.PriceAtCheckout,
			booking.PricingDiscrepancy,
			r.holdBlocks,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.insertSlots(ctx, executor, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if len(booking.TimeSlots) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableSlots).
		Columns("booking_id", "position", "room_id", "booking_date", "slot_start", "slot_end", "start_min", "end_min", "active")

	active := booking.Status.Blocks(r.holdBlocks)
	for i, slot := range booking.TimeSlots {
		start, end, err := domain.SlotBounds(slot, booking.SlotAnchor)
		if err != nil {
			return fmt.Errorf("%w: Create - slot %s: %v", ErrBuildQuery, slot, err)
		}
		insert = insert.Values(
			booking.ID,
			i,
			booking.RoomID,
			booking.Date.Format(domain.DateFormat),
			slot.Start,
			slot.End,
			start,
			end,
			active,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build slots insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isExclusionViolation(err) {
			return ErrSlotNotAvailable
		}
		return fmt.Errorf("%w: Create - insert slots: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает бронирование по ID вместе со слотами и отметками об отправленных письмах
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	receipts, err := r.notificationReceipts(ctx, executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Notifications = receipts

	return booking, nil
}

// GetByRoomAndDate бронирования помещения на календарную дату с указанными статусами.
// В транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByRoomAndDate(ctx context.Context, roomID int64, date time.Time, statuses []domain.Status) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"room_id":      roomID,
			"booking_date": date.Format(domain.DateFormat),
			"status":       statusStrings(statuses),
		}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountConfirmedByEmail число подтвержденных бронирований клиента, email без учета регистра
func (r *Repository) CountConfirmedByEmail(ctx context.Context, email string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableBookings).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByEmail - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// GetLatestByEmail последнее бронирование клиента (по времени создания)
func (r *Repository) GetLatestByEmail(ctx context.Context, email string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByEmail - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByEmail - scan booking: %w", ErrScanRow, err)
	}
	return booking, nil
}

// List бронирования по фильтру и общее количество без учета пагинации
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.RoomID != nil {
		where = append(where, squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.Email != nil {
		where = append(where, squirrel.Expr("LOWER(email) = ?", domain.NormalizeEmail(*filter.Email)))
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(tableBookings).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %w", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		OrderBy("booking_date DESC", "id DESC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachSlots(ctx, executor, bookings); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Transition условный переход: статус меняется, только если текущий входит в from.
// Возвращает false, если бронирование уже в другом статусе (или не существует).
// Если переход снова занимает слоты, а их успели забронировать, возвращается ErrSlotNotAvailable;
// внутри транзакции она остается рабочей благодаря точке сохранения.
func (r *Repository) Transition(ctx context.Context, id int64, from []domain.Status, to domain.Status, patch domain.TransitionPatch) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	inTx := dbmetrics.IsInTransaction(ctx)

	update := psqlbuilder.Update(tableBookings).
		Set("status", to).
		Set("payment_status", to.PaymentStatus()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)})

	update = applyPatch(update, patch)

	query, args, err := update.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	if inTx {
		if _, err := executor.ExecContext(ctx, "SAVEPOINT "+savepointTransition); err != nil {
			return false, fmt.Errorf("%w: Transition - create savepoint: %w", ErrExecQuery, err)
		}
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if !isExclusionViolation(err) {
			return false, fmt.Errorf("%w: Transition - execute update: %w", ErrExecQuery, err)
		}
		if inTx {
			if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointTransition); rbErr != nil {
				return false, fmt.Errorf("%w: Transition - rollback to savepoint: %w", ErrExecQuery, rbErr)
			}
		}
		return false, ErrSlotNotAvailable
	}

	if inTx {
		if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT "+savepointTransition); err != nil {
			return false, fmt.Errorf("%w: Transition - release savepoint: %w", ErrExecQuery, err)
		}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Transition - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected > 0, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}

func applyPatch(update squirrel.UpdateBuilder, patch domain.TransitionPatch) squirrel.UpdateBuilder {
	set := func(column string, value interface{}, present bool) {
		if present {
			update = update.Set(column, value)
		}
	}
	set("expires_at", patch.ExpiresAt, patch.ExpiresAt != nil)
	set("confirmed_at", patch.ConfirmedAt, patch.ConfirmedAt != nil)
	set("cancelled_at", patch.CancelledAt, patch.CancelledAt != nil)
	set("refunded_at", patch.RefundedAt, patch.RefundedAt != nil)
	set("hold_expires_at", patch.HoldExpiresAt, patch.HoldExpiresAt != nil)
	set("hold_released_at", patch.HoldReleasedAt, patch.HoldReleasedAt != nil)
	set("hold_release_reason", patch.HoldReleaseReason, patch.HoldReleaseReason != nil)
	set("payment_intent_id", patch.PaymentIntentID, patch.PaymentIntentID != nil)
	set("refund_id", patch.RefundID, patch.RefundID != nil)
	return update
}

// ExpireStale отменяет неоплаченные бронирования с истекшим сроком.
// Условия на статус и срок проверяются в самом UPDATE, поэтому параллельное подтверждение оплаты не теряется.
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := []squirrel.Sqlizer{
		squirrel.And{squirrel.Eq{"status": domain.StatusPending}, squirrel.Lt{"expires_at": now}},
		squirrel.And{squirrel.Eq{"status": domain.StatusHold}, squirrel.Lt{"hold_expires_at": now}},
	}

	target := domain.Target(domain.EventExpire)
	ids := make([]int64, 0)
	for _, cond := range conditions {
		query, args, err := psqlbuilder.Update(tableBookings).
			Set("status", target).
			Set("payment_status", target.PaymentStatus()).
			Set("cancelled_at", now).
			Set("hold_released_at", now).
			Set("hold_release_reason", domain.HoldReleaseExpired).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(cond).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: ExpireStale - execute update: %w", ErrExecQuery, err)
		}
		expired, err := scanIDs(rows)
		if err != nil {
			return nil, err
		}
		ids = append(ids, expired...)
	}

	return ids, nil
}

// SetStripeSession привязывает сессию оплаты к бронированию
func (r *Repository) SetStripeSession(ctx context.Context, id int64, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("stripe_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStripeSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStripeSession - execute update: %w", ErrExecQuery, err)
	}
	return requireAffected(result, "SetStripeSession")
}

// MarkNotificationSent записывает отметку об отправке письма.
// Возвращает false, если письмо этого типа уже было отмечено.
func (r *Repository) MarkNotificationSent(ctx context.Context, bookingID int64, receipt domain.NotificationReceipt) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableNotifications).
		Columns("booking_id", "kind", "sent_at", "message_id").
		Values(bookingID, receipt.Kind, receipt.SentAt, receipt.MessageID).
		Suffix("ON CONFLICT (booking_id, kind) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotificationSent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotificationSent - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkNotificationSent - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected > 0, nil
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	return requireAffected(result, "Delete")
}

// attachSlots загружает слоты одним запросом для всех бронирований
func (r *Repository) attachSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "slot_start", "slot_end").
		From(tableSlots).
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var slot domain.Slot
		if err := rows.Scan(&bookingID, &slot.Start, &slot.End); err != nil {
			return fmt.Errorf("%w: attachSlots - scan slot: %w", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.TimeSlots = append(b.TimeSlots, slot)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %w", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) notificationReceipts(ctx context.Context, executor DBExecutor, bookingID int64) ([]domain.NotificationReceipt, error) {
	query, args, err := psqlbuilder.Select("kind", "sent_at", "message_id").
		From(tableNotifications).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("sent_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: notificationReceipts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: notificationReceipts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	receipts := make([]domain.NotificationReceipt, 0)
	for rows.Next() {
		var rc domain.NotificationReceipt
		if err := rows.Scan(&rc.Kind, &rc.SentAt, &rc.MessageID); err != nil {
			return nil, fmt.Errorf("%w: notificationReceipts - scan row: %w", ErrScanRow, err)
		}
		receipts = append(receipts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: notificationReceipts - rows error: %w", ErrScanRow, err)
	}
	return receipts, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.Customer.FirstName,
		&b.Customer.LastName,
		&b.Customer.Email,
		&b.Customer.Phone,
		&b.Customer.NumberOfPeople,
		&b.RoomID,
		&b.ServiceID,
		&b.PromoCodeID,
		&b.Date,
		&b.Total,
		&b.Status,
		&b.ExpiresAt,
		&b.HoldExpiresAt,
		&b.ConfirmedAt,
		&b.CancelledAt,
		&b.RefundedAt,
		&b.HoldReleasedAt,
		&b.HoldReleaseReason,
		&b.StripeSessionID,
		&b.PaymentIntentID,
		&b.RefundID,
		&b.FreeSlotsAwarded,
		&b.IsManual,
		&b.OriginalServicePrice,
		&b.PriceAtCheckout,
		&b.PricingDiscrepancy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}
	return bookings, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanIDs - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIDs - rows error: %w", ErrScanRow, err)
	}
	return ids, nil
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
