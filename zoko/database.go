package zoko

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dbTypeSQLite   = "sqlite"
	dbTypePostgres = "postgres"
)

var (
	sqliteMaxOpenConns    = 1
	sqliteMaxIdleConns    = 1
	sqliteMaxConnLifetime = 5 * time.Minute
	sqliteExecPragma      = []string{
		"pragma journal_mode=WAL;",
		"pragma synchronous = normal;",
		"pragma temp_store = memory;",
		"pragma foreign_keys = ON;",
	}
	dbOperationTimeout = 30 * time.Second
)

// ModelUnixTime is an embeddable model with Unix-millisecond
// timestamps for creation, update and (soft) deletion.
type ModelUnixTime struct {
	CreatedAt int64          `gorm:"autoCreateTime:milli" json:"created_at,omitempty"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type ModelUintID struct {
	ID uint `gorm:"primaryKey" json:"id"`
}

// databaseModels is every table the bot migrates on startup.
func databaseModels() []any {
	return []any{
		&Warning{},
		&FAQEntry{},
		&RegistrationSettings{},
		&LevelSettings{},
		&LevelUser{},
		&Ticket{},
		&ReleaseNote{},
		&GameLog{},
	}
}

// CreateDB opens (and migrates) the bot database. dbType is either
// 'sqlite' or 'postgres'; dsn is a file path or connection string.
func CreateDB(
	ctx context.Context,
	dbType string,
	dsn string,
	gormLogger ...*gormStructuredLogger,
) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if len(gormLogger) > 0 && gormLogger[0] != nil {
		cfg.Logger = gormLogger[0]
	}

	var db *gorm.DB
	var err error

	switch dbType {
	case dbTypeSQLite:
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	case dbTypePostgres:
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("invalid database type: %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db = db.WithContext(ctx)

	if dbType == dbTypeSQLite {
		sqlDB, e := db.DB()
		if e != nil {
			return nil, fmt.Errorf("error getting sql.DB: %w", e)
		}
		sqlDB.SetMaxOpenConns(sqliteMaxOpenConns)
		sqlDB.SetMaxIdleConns(sqliteMaxIdleConns)
		sqlDB.SetConnMaxLifetime(sqliteMaxConnLifetime)
		if rv := db.Exec(strings.Join(sqliteExecPragma, " ")); rv.Error != nil {
			return nil, fmt.Errorf("error setting sqlite pragma: %w", rv.Error)
		}
	}

	if err = db.AutoMigrate(databaseModels()...); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}
	return db, nil
}

// database wraps the GORM handle for write operations. With SQLite a
// mutex serializes writers; with postgres the mutex is skipped and
// writes go through concurrently.
type database struct {
	db                     *gorm.DB
	mu                     sync.Mutex
	logger                 *slog.Logger
	enableConcurrentWrites bool
}

func newWriteDB(db *gorm.DB, log *slog.Logger, concurrentWrites bool) *database {
	if log == nil {
		log = slog.Default()
	}
	return &database{
		db:                     db,
		logger:                 log.With(loggerNameKey, "writedb"),
		enableConcurrentWrites: concurrentWrites,
	}
}

func (d *database) lock() func() {
	if d.enableConcurrentWrites {
		return func() {}
	}
	d.mu.Lock()
	return d.mu.Unlock
}

func (d *database) withTimeout(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dbOperationTimeout)
		return d.db.WithContext(ctx), cancel
	}
	return d.db.WithContext(ctx), func() {}
}

func (d *database) Create(ctx context.Context, value any) error {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	return db.Create(value).Error
}

func (d *database) Save(ctx context.Context, value any) error {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	return db.Save(value).Error
}

func (d *database) Updates(ctx context.Context, model, values any) error {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	return db.Model(model).Updates(values).Error
}

// Upsert inserts value or, on a conflict over the given columns,
// updates only the named fields.
func (d *database) Upsert(
	ctx context.Context,
	value any,
	conflictColumns []clause.Column,
	updateColumns ...string,
) error {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	return db.Clauses(
		clause.OnConflict{
			Columns:   conflictColumns,
			DoUpdates: clause.AssignmentColumns(updateColumns),
		},
	).Create(value).Error
}

func (d *database) Delete(ctx context.Context, value any) (int64, error) {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	rv := db.Delete(value)
	return rv.RowsAffected, rv.Error
}

func (d *database) DeleteWhere(
	ctx context.Context,
	model any,
	query any,
	args ...any,
) (int64, error) {
	defer d.lock()()
	db, cancel := d.withTimeout(ctx)
	defer cancel()
	rv := db.Where(query, args...).Delete(model)
	return rv.RowsAffected, rv.Error
}
