package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id", "business_code", "name", "category", "duration", "price", "description", "position", "created_at", "updated_at",
}

// ServiceRepository репозиторий услуг
type ServiceRepository struct {
	db DBExecutor
}

// NewServiceRepository создает репозиторий услуг
func NewServiceRepository(db DBExecutor) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List услуги бизнеса в порядке position
func (r *ServiceRepository) List(ctx context.Context, businessCode string) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"business_code": businessCode}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// GetByID услуга бизнеса по ID
func (r *ServiceRepository) GetByID(ctx context.Context, businessCode string, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id, "business_code": businessCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan: %v", ErrScanRow, err)
	}
	return s, nil
}

// Create добавляет услугу в конец списка
func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	position, err := nextPosition(ctx, r.db, "services", s.BusinessCode)
	if err != nil {
		return nil, err
	}
	s.Position = position

	query, args, err := psqlbuilder.Insert("services").
		Columns("business_code", "name", "category", "duration", "price", "description", "position").
		Values(s.BusinessCode, s.Name, s.Category, s.Duration, s.Price, s.Description, s.Position).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// Update обновляет услугу
func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("category", s.Category).
		Set("duration", s.Duration).
		Set("price", s.Price).
		Set("description", s.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "business_code": s.BusinessCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateService - execute update: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	return affectedOrNotFound("UpdateService", n, err, ErrServiceNotFound)
}

// Delete удаляет услугу
func (r *ServiceRepository) Delete(ctx context.Context, businessCode string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id, "business_code": businessCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteService - execute delete: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	return affectedOrNotFound("DeleteService", n, err, ErrServiceNotFound)
}

// Reorder задает порядок услуг
func (r *ServiceRepository) Reorder(ctx context.Context, businessCode string, ids []int64) error {
	return reorder(ctx, r.db, "services", businessCode, ids)
}

func scanService(row interface{ Scan(...interface{}) error }) (*domain.Service, error) {
	var (
		s                    domain.Service
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(&s.ID, &s.BusinessCode, &s.Name, &s.Category, &s.Duration, &s.Price,
		&s.Description, &s.Position, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
