package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type QueryRunner interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// DoInTx runs fn in a transaction, committing on success and rolling back on
// any error, including a context canceled while fn ran.
func DoInTx[T any](ctx context.Context, db *sql.DB, fn func(*sql.Tx) (T, error)) (result T, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				zap.L().Error("failed to rollback transaction", zap.Error(rbErr))
			}
			return
		}
		if cmErr := tx.Commit(); cmErr != nil {
			zap.L().Error("failed to commit transaction", zap.Error(cmErr))
			err = fmt.Errorf("failed to commit transaction: %w", cmErr)
		}
	}()

	result, err = fn(tx)
	if err != nil {
		return result, fmt.Errorf("failed to execute transaction: %w", err)
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		return result, fmt.Errorf("context canceled before commit: %w", err)
	}

	return result, nil
}

type RowScanner interface {
	Scan(dest ...interface{}) error
}

type Scannable interface {
	ScanRow(scanner RowScanner) error
}

func ScanAll[T Scannable](rows *sql.Rows, factory func() T) ([]T, error) {
	var items []T
	for rows.Next() {
		item := factory()
		if err := item.ScanRow(rows); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type QueryDirection string

const (
	QueryDirectionAsc  QueryDirection = "ASC"
	QueryDirectionDesc QueryDirection = "DESC"
)

// PageQuery describes one page of a single-table listing. Where may use ?
// placeholders bound from Params.
type PageQuery struct {
	Table     string
	Columns   []string
	Where     string
	Params    []interface{}
	OrderBy   []string
	Direction QueryDirection
	Page      int
	PageSize  int
}

// QueryPage returns the rows of the requested page plus the total number of
// rows matching the filter.
func QueryPage[T Scannable](rq QueryRunner, q PageQuery, factory func() T) (total int, data []T, err error) {
	if len(q.OrderBy) == 0 {
		return 0, nil, errors.New("no order columns provided")
	}
	if q.Direction == "" {
		q.Direction = QueryDirectionAsc
	}

	whereClause := ""
	if q.Where != "" {
		whereClause = "WHERE " + q.Where
	}

	orders := make([]string, 0, len(q.OrderBy))
	for _, col := range q.OrderBy {
		orders = append(orders, fmt.Sprintf("%s %s", col, q.Direction))
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s LIMIT ? OFFSET ?",
		strings.Join(q.Columns, ", "), q.Table, whereClause, strings.Join(orders, ", "))
	params := append(append([]interface{}{}, q.Params...), q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := rq.Query(query, params...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	data, err = ScanAll(rows, factory)
	if err != nil {
		return 0, nil, err
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", q.Table, whereClause)
	if err = rq.QueryRow(countQuery, q.Params...).Scan(&total); err != nil {
		return 0, nil, err
	}

	return total, data, nil
}
