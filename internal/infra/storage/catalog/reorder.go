package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/psqlbuilder"
)

// reorder проставляет position по порядку ids. Вызывается внутри транзакции (TxManager.Do).
func reorder(ctx context.Context, db DBExecutor, table, businessCode string, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, db)

	for position, id := range ids {
		query, args, err := psqlbuilder.Update(table).
			Set("position", position).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "business_code": businessCode}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Reorder - build update query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Reorder - execute update: %v", ErrExecQuery, err)
		}
	}
	return nil
}

// nextPosition позиция для нового элемента (в конец списка)
func nextPosition(ctx context.Context, db DBExecutor, table, businessCode string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(position) + 1, 0)").
		From(table).
		Where(squirrel.Eq{"business_code": businessCode}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: nextPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		return 0, fmt.Errorf("%w: nextPosition - scan: %v", ErrScanRow, err)
	}
	return position, nil
}

func affectedOrNotFound(op string, n int64, err error, notFound error) error {
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
