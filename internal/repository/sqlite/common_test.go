package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-manager/internal/errors"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestStoreError(t *testing.T) {
	result := storeError("list tasks", errors.New("database connection failed"))

	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "list tasks")
	assert.Contains(t, result.Error(), "database connection failed")

	assert.True(t, apperrors.IsErrorType(storeError("list tasks", context.DeadlineExceeded), apperrors.ErrorTypeTimeout))
}

func TestRequireOneRow(t *testing.T) {
	tests := []struct {
		name           string
		result         sql.Result
		expectError    bool
		expectNotFound bool
	}{
		{"Successful update", &MockResult{rowsAffected: 1}, false, false},
		{"No rows affected", &MockResult{rowsAffected: 0}, true, true},
		{"Error getting rows affected", &MockResult{rowsErr: errors.New("database error")}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := requireOneRow(tt.result, "123")

			if !tt.expectError {
				assert.NoError(t, result)
				return
			}
			assert.Error(t, result)
			if tt.expectNotFound {
				assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeNotFound))
				assert.Contains(t, result.Error(), "task not found: 123")
			} else {
				assert.Contains(t, result.Error(), "database error")
			}
		})
	}
}

func TestInTx_RollsBackOnError(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Title: "kept"}
	require.NoError(t, repo.CreateTask(ctx, task))

	boom := errors.New("boom")
	err := inTx(ctx, repo.db, "rename", func(tx *sql.Tx) error {
		if err := execOne(ctx, tx, "rename", task.ID, `UPDATE tasks SET title = ? WHERE id = ?`, "changed", task.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := getTask(ctx, repo.db, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestQueryOne_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := queryOne(context.Background(), repo.db, "missing", `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, "missing")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}
