package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// Repository is the persistence collaborator for tasks. It assigns ids and
// timestamps and enforces no other invariants.
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error)
	DeleteTask(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

// Options tunes a repository. Zero values fall back to defaults.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	BusyTimeout  time.Duration

	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = 10 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = 5 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath, runs pending migrations and returns
// the repository.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	opts = opts.withDefaults()

	db, err := sql.Open("sqlite", dataSourceName(dbPath, opts.BusyTimeout))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if dbPath == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.WriteTimeout)
	defer cancel()
	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

func dataSourceName(dbPath string, busy time.Duration) string {
	if dbPath == memoryPath {
		return dbPath
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=busy_timeout(" + formatMillis(busy) + ")&_pragma=journal_mode(WAL)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// RollbackMigration reverts the latest applied schema migration and returns its
// version, or 0 when none is applied.
func (r *SQLiteRepository) RollbackMigration(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()
	return migrations.Rollback(ctx, r.db)
}

// MigrationVersions lists the applied schema migration versions in ascending order
func (r *SQLiteRepository) MigrationVersions(ctx context.Context) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()
	return migrations.AppliedVersions(ctx, r.db)
}

// Ping verifies the database is reachable
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

// CreateTask inserts a task, assigning its id and timestamps
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	now := r.opts.Now().UTC()
	row := Task{
		ID:        r.opts.NewID(),
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
	INSERT INTO tasks (id, title, completed, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`

	err := exec(ctx, r.db, "insert task", query,
		row.ID, row.Title, boolToDB(row.Completed), FormatTimeForDB(row.CreatedAt), FormatTimeForDB(row.UpdatedAt))
	if err != nil {
		return err
	}

	*task = row
	return nil
}

// getTask reads one task through q, which may be a transaction
func getTask(ctx context.Context, q Querier, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return queryOne(ctx, q, id, query, id)
}

// ListTasks retrieves all tasks, newest first
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, rowid DESC`
	return queryAll(ctx, r.db, query)
}

// UpdateTask writes only the supplied columns and returns the stored row
func (r *SQLiteRepository) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	sets := []string{"updated_at = ?"}
	args := []interface{}{FormatTimeForDB(r.opts.Now())}
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToDB(*update.Completed))
	}
	args = append(args, id)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	var updated *Task
	err := inTx(ctx, r.db, "update task", func(tx *sql.Tx) error {
		if err := execOne(ctx, tx, "update task", id, query, args...); err != nil {
			return err
		}
		var err error
		updated, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return execOne(ctx, r.db, "delete task", id, query, id)
}
