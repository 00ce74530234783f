package review

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id", "business_code", "author_email", "author_name", "rating", "text", "approved", "moderated_at", "created_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв в состоянии "ожидает модерации"
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("business_code", "author_email", "author_name", "rating", "text").
		Values(review.BusinessCode, review.AuthorEmail, review.AuthorName, review.Rating, review.Text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	review.CreatedAt = createdAt.Time
	review.Approved = nil
	return review, nil
}

// List отзывы бизнеса в заданном порядке. onlyApproved оставляет только одобренные (публичная витрина).
func (r *Repository) List(ctx context.Context, businessCode string, order domain.ReviewOrder, onlyApproved bool) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"business_code": businessCode}).
		OrderBy(orderClause(order)...)
	if onlyApproved {
		qb = qb.Where(squirrel.Eq{"approved": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan: %v", ErrScanRow, err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}
	return result, nil
}

// Moderate одобряет или отклоняет отзыв; nil возвращает отзыв в ожидание модерации
func (r *Repository) Moderate(ctx context.Context, businessCode string, id int64, approved *bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	qb := psqlbuilder.Update("reviews").
		Where(squirrel.Eq{"id": id, "business_code": businessCode})
	if approved == nil {
		qb = qb.Set("approved", nil).Set("moderated_at", nil)
	} else {
		qb = qb.Set("approved", *approved).Set("moderated_at", squirrel.Expr("NOW()"))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Moderate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Moderate - execute update: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Moderate - get rows affected: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, businessCode string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id, "business_code": businessCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// PurgeRejected удаляет отклоненные отзывы, модерированные раньше before
func (r *Repository) PurgeRejected(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"approved": false}).
		Where(squirrel.Lt{"moderated_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeRejected - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeRejected - execute delete: %v", ErrExecQuery, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeRejected - get rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}

func orderClause(order domain.ReviewOrder) []string {
	switch order {
	case domain.ReviewOrderOldestFirst:
		return []string{"created_at ASC", "id ASC"}
	case domain.ReviewOrderHighestFirst:
		return []string{"rating DESC", "created_at DESC"}
	case domain.ReviewOrderLowestFirst:
		return []string{"rating ASC", "created_at DESC"}
	default:
		return []string{"created_at DESC", "id DESC"}
	}
}

func scanReview(row interface{ Scan(...interface{}) error }) (*domain.Review, error) {
	var (
		rv          domain.Review
		approved    sql.NullBool
		moderatedAt sql.NullTime
		createdAt   sql.NullTime
	)
	err := row.Scan(&rv.ID, &rv.BusinessCode, &rv.AuthorEmail, &rv.AuthorName, &rv.Rating, &rv.Text,
		&approved, &moderatedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	if approved.Valid {
		v := approved.Bool
		rv.Approved = &v
	}
	if moderatedAt.Valid {
		t := moderatedAt.Time
		rv.ModeratedAt = &t
	}
	rv.CreatedAt = createdAt.Time
	return &rv, nil
}
