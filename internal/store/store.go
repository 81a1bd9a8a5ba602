// Package store is the Bucket/Item data access layer on top of gorm.
//
// All reads and writes go through a *Tx obtained from Store.Tx, so every
// request runs inside exactly one unit of work that either commits as a
// whole or is rolled back.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/logger"
)

// ErrNotFound is returned (wrapped) by point lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// Dialect identifies the database engine behind a URL.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Options configures Open.
type Options struct {
	URL             string        // see ParseURL
	MaxOpenConns    int           // PostgreSQL pool size, SQLite always uses 1
	ConnMaxLifetime time.Duration // PostgreSQL only
	SlowThreshold   time.Duration // queries slower than this are logged at warn
}

// Store owns the database handle.
type Store struct {
	db      *gorm.DB
	dialect Dialect
	logger  logger.Logger
}

// Open connects to the database described by opts.URL.
func Open(opts Options, log logger.Logger) (*Store, error) {
	dialect, dsn, err := ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	case DialectPostgres:
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: conn})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(log, opts.SlowThreshold),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if dialect == DialectSQLite {
		// One connection: an in-memory database lives and dies with it, and
		// SQLite serializes writers anyway.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		if opts.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
			sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
		}
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	log.Info("database opened", logger.String("dialect", string(dialect)))

	return &Store{db: db, dialect: dialect, logger: log}, nil
}

// ParseURL maps a database URL to a dialect and a driver DSN.
//
//	sqlite://               -> in-memory SQLite
//	sqlite:///data/x.db     -> SQLite file "data/x.db"
//	sqlite:////var/x.db     -> SQLite file "/var/x.db"
//	postgres://... | postgresql://... -> PostgreSQL, URL passed through
func ParseURL(url string) (Dialect, string, error) {
	const fk = "_pragma=foreign_keys(1)"

	switch {
	case url == "sqlite://" || url == "sqlite:":
		return DialectSQLite, "file::memory:?" + fk, nil
	case strings.HasPrefix(url, "sqlite:///"):
		path := strings.TrimPrefix(url, "sqlite:///")
		if path == "" {
			return "", "", fmt.Errorf("sqlite url %q has no path", url)
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return DialectSQLite, path + sep + fk, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", url)
	}
}

// Dialect returns the engine in use.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Migrate creates or updates the schema. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&domain.Bucket{}, &domain.Item{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset drops both tables and recreates them empty.
func (s *Store) Reset(ctx context.Context) error {
	m := s.db.WithContext(ctx).Migrator()
	if err := m.DropTable(&domain.Item{}, &domain.Bucket{}); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return s.Migrate(ctx)
}

// Tx runs fn inside one transaction. fn's writes are committed when it
// returns nil and rolled back otherwise.
func (s *Store) Tx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Tx{db: db})
	})
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tx is the unit of work handed to request handlers. It is only valid
// inside the Store.Tx callback that created it.
type Tx struct {
	db *gorm.DB
}

// lookupErr maps gorm's record-not-found to ErrNotFound.
func lookupErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
