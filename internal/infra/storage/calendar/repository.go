package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Repository отмененные дни, восстановленные воскресенья и заблокированные слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListCancelledDays отмененные дни бизнеса в диапазоне [from, to]. Нулевые границы не ограничивают.
func (r *Repository) ListCancelledDays(ctx context.Context, businessCode string, from, to time.Time) ([]*domain.CancelledDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Select("id", "business_code", "day", "reason", "created_at").
		From("cancelled_days").
		Where(squirrel.Eq{"business_code": businessCode}).
		OrderBy("day ASC")
	if !from.IsZero() {
		qb = qb.Where(squirrel.GtOrEq{"day": dateArg(from)})
	}
	if !to.IsZero() {
		qb = qb.Where(squirrel.LtOrEq{"day": dateArg(to)})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCancelledDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCancelledDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CancelledDay, 0)
	for rows.Next() {
		var (
			d         domain.CancelledDay
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.BusinessCode, &d.Day, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListCancelledDays - scan: %v", ErrScanRow, err)
		}
		d.Day = types.LocalDate(d.Day)
		if reason.Valid {
			d.Reason = &reason.String
		}
		d.CreatedAt = createdAt.Time
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCancelledDays - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// IsDayCancelled проверяет, отменен ли день
func (r *Repository) IsDayCancelled(ctx context.Context, businessCode string, day time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("cancelled_days").
		Where(squirrel.Eq{"business_code": businessCode, "day": dateArg(day)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsDayCancelled - build select query: %v", ErrBuildQuery, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: IsDayCancelled - scan: %v", ErrScanRow, err)
	}
	return n > 0, nil
}

// CancelDay помечает день отмененным. Повторная отмена ничего не меняет; возвращает true, если запись добавлена.
func (r *Repository) CancelDay(ctx context.Context, businessCode string, day time.Time, reason *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancelled_days").
		Columns("business_code", "day", "reason").
		Values(businessCode, dateArg(day), reason).
		Suffix("ON CONFLICT (business_code, day) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CancelDay - build insert query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "CancelDay", query, args)
}

// RestoreDay снимает отмену дня
func (r *Repository) RestoreDay(ctx context.Context, businessCode string, day time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cancelled_days").
		Where(squirrel.Eq{"business_code": businessCode, "day": dateArg(day)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: RestoreDay - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "RestoreDay", query, args)
}

// ListRestoredSundays восстановленные воскресенья бизнеса
func (r *Repository) ListRestoredSundays(ctx context.Context, businessCode string) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day").
		From("restored_sundays").
		Where(squirrel.Eq{"business_code": businessCode}).
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRestoredSundays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRestoredSundays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: ListRestoredSundays - scan: %v", ErrScanRow, err)
		}
		result = append(result, types.LocalDate(day))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRestoredSundays - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// RestoreSunday открывает воскресенье
func (r *Repository) RestoreSunday(ctx context.Context, businessCode string, day time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("restored_sundays").
		Columns("business_code", "day").
		Values(businessCode, dateArg(day)).
		Suffix("ON CONFLICT (business_code, day) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: RestoreSunday - build insert query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "RestoreSunday", query, args)
}

// UnrestoreSunday возвращает воскресенье к авто-закрытию
func (r *Repository) UnrestoreSunday(ctx context.Context, businessCode string, day time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("restored_sundays").
		Where(squirrel.Eq{"business_code": businessCode, "day": dateArg(day)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UnrestoreSunday - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "UnrestoreSunday", query, args)
}

// ListBlockedSlots блокировки дня. staffID == nil возвращает блокировки всех сотрудников.
func (r *Repository) ListBlockedSlots(ctx context.Context, businessCode string, day time.Time, staffID *int64) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Select("id", "business_code", "day", "start_time", "staff_id", "reason", "created_at").
		From("blocked_slots").
		Where(squirrel.Eq{"business_code": businessCode, "day": dateArg(day)}).
		OrderBy("start_time ASC", "staff_id ASC")
	if staffID != nil {
		qb = qb.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var (
			s         domain.BlockedSlot
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.BusinessCode, &s.Day, &s.StartTime, &s.StaffID, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedSlots - scan: %v", ErrScanRow, err)
		}
		s.Day = types.LocalDate(s.Day)
		if reason.Valid {
			s.Reason = &reason.String
		}
		s.CreatedAt = createdAt.Time
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedSlots - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// BlockSlot блокирует время сотрудника. Уже заблокированное время не дублируется.
func (r *Repository) BlockSlot(ctx context.Context, slot *domain.BlockedSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("business_code", "day", "start_time", "staff_id", "reason").
		Values(slot.BusinessCode, dateArg(slot.Day), slot.StartTime, slot.StaffID, slot.Reason).
		Suffix("ON CONFLICT (business_code, day, start_time, staff_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: BlockSlot - build insert query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "BlockSlot", query, args)
}

// UnblockSlot снимает блокировку времени сотрудника
func (r *Repository) UnblockSlot(ctx context.Context, businessCode string, day time.Time, start types.TimeString, staffID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{
			"business_code": businessCode,
			"day":           dateArg(day),
			"start_time":    start,
			"staff_id":      staffID,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UnblockSlot - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffected(ctx, executor, "UnblockSlot", query, args)
}

func execAffected(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (bool, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	return n > 0, nil
}

func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}
