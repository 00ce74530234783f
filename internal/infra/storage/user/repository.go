package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
)

var userColumns = []string{
	"id", "email", "first_name", "last_name", "business_name", "business_code", "password_hash", "role", "created_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пользователя. Email хранится в нижнем регистре.
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "first_name", "last_name", "business_name", "business_code", "password_hash", "role").
		Values(u.Email, u.FirstName, u.LastName, u.BusinessName, u.BusinessCode, u.PasswordHash, u.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	u.CreatedAt = createdAt.Time
	return u, nil
}

// GetByEmail пользователь по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var (
		u                          domain.User
		businessName, businessCode sql.NullString
		createdAt                  sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&businessName, &businessCode, &u.PasswordHash, &u.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan: %v", ErrScanRow, err)
	}
	if businessName.Valid {
		u.BusinessName = &businessName.String
	}
	if businessCode.Valid {
		u.BusinessCode = &businessCode.String
	}
	u.CreatedAt = createdAt.Time
	return &u, nil
}

// AttachBusiness привязывает бизнес к администратору
func (r *Repository) AttachBusiness(ctx context.Context, email, businessCode, businessName string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("business_code", businessCode).
		Set("business_name", businessName).
		Set("role", domain.RoleAdmin).
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachBusiness - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachBusiness - execute update: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachBusiness - get rows affected: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
