package catalog

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

var staffColumns = []string{
	"id", "business_code", "name", "role", "avatar", "specialties", "certificate_title", "position", "created_at", "updated_at",
}

// StaffRepository репозиторий сотрудников
type StaffRepository struct {
	db DBExecutor
}

// NewStaffRepository создает репозиторий сотрудников
func NewStaffRepository(db DBExecutor) *StaffRepository {
	return &StaffRepository{db: db}
}

// List сотрудники бизнеса в порядке position
func (r *StaffRepository) List(ctx context.Context, businessCode string) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"business_code": businessCode}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// GetByID сотрудник бизнеса по ID
func (r *StaffRepository) GetByID(ctx context.Context, businessCode string, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id, "business_code": businessCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan: %v", ErrScanRow, err)
	}
	return s, nil
}

// Create добавляет сотрудника в конец списка
func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	position, err := nextPosition(ctx, r.db, "staff", s.BusinessCode)
	if err != nil {
		return nil, err
	}
	s.Position = position

	query, args, err := psqlbuilder.Insert("staff").
		Columns("business_code", "name", "role", "avatar", "specialties", "certificate_title", "position").
		Values(s.BusinessCode, s.Name, s.Role, s.Avatar, pq.Array(s.Specialties), s.CertificateTitle, s.Position).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - execute insert: %v", ErrExecQuery, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// Update обновляет сотрудника
func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("name", s.Name).
		Set("role", s.Role).
		Set("avatar", s.Avatar).
		Set("specialties", pq.Array(s.Specialties)).
		Set("certificate_title", s.CertificateTitle).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "business_code": s.BusinessCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStaff - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStaff - execute update: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	return affectedOrNotFound("UpdateStaff", n, err, ErrStaffNotFound)
}

// Delete удаляет сотрудника
func (r *StaffRepository) Delete(ctx context.Context, businessCode string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff").
		Where(squirrel.Eq{"id": id, "business_code": businessCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteStaff - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteStaff - execute delete: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	return affectedOrNotFound("DeleteStaff", n, err, ErrStaffNotFound)
}

// Reorder задает порядок сотрудников
func (r *StaffRepository) Reorder(ctx context.Context, businessCode string, ids []int64) error {
	return reorder(ctx, r.db, "staff", businessCode, ids)
}

func scanStaff(row interface{ Scan(...interface{}) error }) (*domain.Staff, error) {
	var (
		s                    domain.Staff
		specialties          pq.StringArray
		certificate          sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(&s.ID, &s.BusinessCode, &s.Name, &s.Role, &s.Avatar, &specialties,
		&certificate, &s.Position, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.Specialties = []string(specialties)
	if certificate.Valid {
		s.CertificateTitle = &certificate.String
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
