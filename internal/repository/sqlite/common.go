package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"task-manager/internal/errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// storeError classifies a driver error raised during op
func storeError(op string, err error) error {
	return errors.FromStoreError(op, err)
}

// requireOneRow turns a write that matched nothing into a not found error for id
func requireOneRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return storeError("get rows affected", err)
	}
	if n == 0 {
		return errors.NewNotFoundError("task", id)
	}
	return nil
}

// exec runs a statement whose row count does not matter
func exec(ctx context.Context, q Querier, op, query string, args ...interface{}) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return storeError(op, err)
	}
	return nil
}

// execOne runs a statement that must touch the task with id
func execOne(ctx context.Context, q Querier, op, id, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return storeError(op, err)
	}
	return requireOneRow(result, id)
}

// queryOne scans the single task row selected by query
func queryOne(ctx context.Context, q Querier, id, query string, args ...interface{}) (*Task, error) {
	task, err := ScanTask(q.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("task", id)
	}
	if err != nil {
		return nil, storeError("scan task", err)
	}
	return task, nil
}

// queryAll scans every task row selected by query
func queryAll(ctx context.Context, q Querier, query string, args ...interface{}) ([]*Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("query tasks", err)
	}
	defer rows.Close()

	tasks, err := ScanTasks(rows)
	if err != nil {
		return nil, storeError("scan tasks", err)
	}
	return tasks, nil
}

// inTx runs fn in a transaction, committing only when fn succeeds
func inTx(ctx context.Context, db *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("begin "+op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeError("commit "+op, err)
	}
	return nil
}
