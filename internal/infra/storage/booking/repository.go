package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
	"github.com/maxturnos/turnos-service/pkg/types"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"business_code",
	"booking_date",
	"start_time",
	"status",
	"service_id",
	"service_name",
	"service_duration",
	"service_price",
	"duration_minutes",
	"staff_id",
	"staff_name",
	"customer_email",
	"customer_name",
	"note",
	"cancellation_note",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Частичный уникальный индекс (business_code, booking_date, start_time, staff_id) по активным
// бронированиям не допускает двойной записи; нарушение превращается в ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"business_code",
			"booking_date",
			"start_time",
			"status",
			"service_id",
			"service_name",
			"service_duration",
			"service_price",
			"duration_minutes",
			"staff_id",
			"staff_name",
			"customer_email",
			"customer_name",
			"note",
		).
		Values(
			booking.BusinessCode,
			dateArg(booking.BookingDate),
			booking.StartTime,
			booking.Status,
			booking.ServiceID,
			booking.ServiceName,
			booking.ServiceDuration,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.StaffID,
			booking.StaffName,
			booking.CustomerEmail,
			booking.CustomerName,
			booking.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
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
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования бизнеса с фильтрацией по сотруднику, периоду и клиенту.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка коллизий была атомарной.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_code": filter.BusinessCode})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": dateArg(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": dateArg(*filter.EndDate)})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_email": *filter.CustomerEmail})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer история бронирований клиента по всем бизнесам
func (r *Repository) GetByCustomer(ctx context.Context, email string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("booking_date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveByDay количество активных бронирований по дням периода
func (r *Repository) CountActiveByDay(ctx context.Context, businessCode string, from, to time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("to_char(booking_date, 'YYYY-MM-DD')", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"business_code": businessCode, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"booking_date": dateArg(from)}).
		Where(squirrel.LtOrEq{"booking_date": dateArg(to)}).
		GroupBy("booking_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDay - scan: %v", ErrScanRow, err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDay - rows iteration: %v", ErrScanRow, err)
	}
	return counts, nil
}

// Cancel мягко отменяет бронирование с необязательной заметкой
func (r *Repository) Cancel(ctx context.Context, id int64, note *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_note", note).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCannotCancel
	}
	return nil
}

// Reschedule переносит бронирование на другую дату, время и сотрудника
func (r *Repository) Reschedule(ctx context.Context, id int64, day time.Time, start types.TimeString, staffID int64, staffName string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", dateArg(day)).
		Set("start_time", start).
		Set("staff_id", staffID).
		Set("staff_name", staffName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return ErrSlotNotAvailable
	}
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListBefore бронирования всех бизнесов раньше указанной даты (для архивации)
func (r *Repository) ListBefore(ctx context.Context, day time.Time, limit int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Lt{"booking_date": dateArg(day)}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// DeleteByIDs удаляет бронирования (после переноса в архив)
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		customerName, note   sql.NullString
		cancellationNote     sql.NullString
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BusinessCode,
		&b.BookingDate,
		&b.StartTime,
		&b.Status,
		&b.ServiceID,
		&b.ServiceName,
		&b.ServiceDuration,
		&b.ServicePrice,
		&b.DurationMinutes,
		&b.StaffID,
		&b.StaffName,
		&b.CustomerEmail,
		&customerName,
		&note,
		&cancellationNote,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.BookingDate = types.LocalDate(b.BookingDate)
	if customerName.Valid {
		b.CustomerName = &customerName.String
	}
	if note.Valid {
		b.Note = &note.String
	}
	if cancellationNote.Valid {
		b.CancellationNote = &cancellationNote.String
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}
	return bookings, nil
}

// dateArg передает дату строкой по локальному календарю, чтобы смещение зоны
// не сдвигало значение колонки DATE
func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
