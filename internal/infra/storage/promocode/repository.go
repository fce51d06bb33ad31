package promocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

const (
	tablePromoCodes = "promo_codes"

	codeUniqueViolation = "23505"
)

var promoColumns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"expiry_date",
	"usage_limit",
	"used_count",
	"active",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий промокодов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет промокод. Код должен быть уже нормализован
func (r *Repository) Create(ctx context.Context, promo *domain.PromoCode) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tablePromoCodes).
		Columns("code", "discount_type", "discount_value", "expiry_date", "usage_limit", "used_count", "active").
		Values(
			promo.Code,
			promo.Discount.Type,
			promo.Discount.Value,
			promo.ExpiryDate,
			promo.UsageLimit,
			promo.UsedCount,
			promo.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&promo.ID, &promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
			return nil, ErrPromoCodeExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return promo, nil
}

// GetByCode ищет промокод по нормализованному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": domain.NormalizePromoCode(code)})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PromoCode, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).
		From(tablePromoCodes).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	promo, err := scanPromo(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promo code: %v", ErrScanRow, op, err)
	}
	return promo, nil
}

// List все промокоды, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoColumns...).
		From(tablePromoCodes).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	promos := make([]*domain.PromoCode, 0)
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}
	return promos, nil
}

// SetActive включает или выключает промокод
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tablePromoCodes).
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPromoCodeNotFound
	}
	return nil
}

// IncrementUsage атомарно увеличивает счетчик использований, не выходя за лимит.
// Возвращает false, если лимит уже исчерпан или промокода нет.
func (r *Repository) IncrementUsage(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tablePromoCodes).
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": 0},
			squirrel.Expr("used_count < usage_limit"),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected > 0, nil
}

func scanPromo(row rowScanner) (*domain.PromoCode, error) {
	var (
		p            domain.PromoCode
		discountType string
		value        float64
	)
	err := row.Scan(
		&p.ID,
		&p.Code,
		&discountType,
		&value,
		&p.ExpiryDate,
		&p.UsageLimit,
		&p.UsedCount,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	discount, err := domain.NewDiscount(discountType, value)
	if err != nil {
		return nil, err
	}
	p.Discount = discount
	return &p, nil
}
