package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
)

var businessColumns = []string{
	"id",
	"code",
	"name",
	"open_days",
	"opening_time",
	"closing_time",
	"saturday_closing_time",
	"slot_interval_minutes",
	"categories",
	"review_order",
	"active",
	"owner_email",
	"created_at",
	"updated_at",
}

// Repository репозиторий бизнесов (negocios)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бизнес
func (r *Repository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("businesses").
		Columns(
			"code",
			"name",
			"open_days",
			"opening_time",
			"closing_time",
			"saturday_closing_time",
			"slot_interval_minutes",
			"categories",
			"review_order",
			"active",
			"owner_email",
		).
		Values(
			b.Code,
			b.Name,
			pq.Array(toInt64s(b.OpenDays)),
			b.OpeningTime,
			b.ClosingTime,
			b.SaturdayClosingTime,
			b.SlotIntervalMinutes,
			pq.Array(b.Categories),
			b.ReviewOrder,
			b.Active,
			b.OwnerEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrDuplicateCode
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByCode получает бизнес по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Business, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": code})
}

// GetByOwnerEmail получает бизнес администратора
func (r *Repository) GetByOwnerEmail(ctx context.Context, email string) (*domain.Business, error) {
	return r.getOne(ctx, "GetByOwnerEmail", squirrel.Eq{"owner_email": email})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}
	return b, nil
}

// List все бизнесы (для суперадмина)
func (r *Repository) List(ctx context.Context) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan business: %v", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// UpdateSchedule обновляет рабочие дни и часы
func (r *Repository) UpdateSchedule(ctx context.Context, b *domain.Business) error {
	return r.update(ctx, "UpdateSchedule", b.Code, map[string]interface{}{
		"open_days":             pq.Array(toInt64s(b.OpenDays)),
		"opening_time":          b.OpeningTime,
		"closing_time":          b.ClosingTime,
		"saturday_closing_time": b.SaturdayClosingTime,
		"slot_interval_minutes": b.SlotIntervalMinutes,
	})
}

// UpdateCategories обновляет список категорий услуг
func (r *Repository) UpdateCategories(ctx context.Context, code string, categories []string) error {
	return r.update(ctx, "UpdateCategories", code, map[string]interface{}{
		"categories": pq.Array(categories),
	})
}

// UpdateReviewOrder обновляет порядок отзывов
func (r *Repository) UpdateReviewOrder(ctx context.Context, code string, order domain.ReviewOrder) error {
	return r.update(ctx, "UpdateReviewOrder", code, map[string]interface{}{
		"review_order": order,
	})
}

// UpdateProfile обновляет название, владельца и активность (суперадмин)
func (r *Repository) UpdateProfile(ctx context.Context, b *domain.Business) error {
	return r.update(ctx, "UpdateProfile", b.Code, map[string]interface{}{
		"name":        b.Name,
		"owner_email": b.OwnerEmail,
		"active":      b.Active,
	})
}

func (r *Repository) update(ctx context.Context, op, code string, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// Delete удаляет бизнес вместе со всеми данными (каскад)
func (r *Repository) Delete(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("businesses").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*domain.Business, error) {
	var (
		b                    domain.Business
		openDays             pq.Int64Array
		categories           pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.Name,
		&openDays,
		&b.OpeningTime,
		&b.ClosingTime,
		&b.SaturdayClosingTime,
		&b.SlotIntervalMinutes,
		&categories,
		&b.ReviewOrder,
		&b.Active,
		&b.OwnerEmail,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.OpenDays = make([]int, len(openDays))
	for i, d := range openDays {
		b.OpenDays[i] = int(d)
	}
	b.Categories = []string(categories)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func toInt64s(v []int) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}
