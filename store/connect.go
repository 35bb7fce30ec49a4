package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/leoppro/tiny-orders/store/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	dialectMySQL    = "mysql"
	dialectSQLite   = "sqlite3"

	sqlitePrefix     = "sqlite:"
	sqliteMemory     = ":memory:"
	sqlitePragmas    = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	cockroachVersion = "CockroachDB"
)

const (
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
)

type backend struct {
	db        adapters.DBAdapter
	dialect   string
	cockroach bool
}

// connect resolves the scheme of rawURL to a backend.
func (s *Store) connect(ctx context.Context, rawURL string) (backend, error) {
	if strings.HasPrefix(rawURL, sqlitePrefix) {
		path := strings.TrimPrefix(strings.TrimPrefix(rawURL, sqlitePrefix), "//")
		return connectSQLite(ctx, path)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return backend{}, errors.Join(ErrUnsupportedURL, err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return s.connectPostgres(ctx, rawURL, false)

	case "cockroachdb", "cockroach":
		u.Scheme = "postgres"
		return s.connectPostgres(ctx, u.String(), true)

	case "mysql":
		return s.connectMySQL(ctx, u)

	default:
		return backend{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}
}

func (s *Store) connectPostgres(ctx context.Context, dsn string, cockroach bool) (backend, error) {
	var db adapters.DBAdapter

	switch s.driver {
	case DriverPQ:
		sqlxDB, err := sqlx.ConnectContext(ctx, "postgres", dsn)
		if err != nil {
			return backend{}, errors.Join(ErrConnectFailed, err)
		}

		if s.maxConns > 0 {
			sqlxDB.SetMaxOpenConns(s.maxConns)
			sqlxDB.SetMaxIdleConns(s.maxConns)
		}

		sqlxDB.SetConnMaxLifetime(defaultMaxConnLifetime)
		sqlxDB.SetConnMaxIdleTime(defaultMaxConnIdleTime)
		db = adapters.NewSQLXAdapter(sqlxDB)

	default:
		pool, err := s.newPGXPool(ctx, dsn)
		if err != nil {
			return backend{}, errors.Join(ErrConnectFailed, err)
		}

		db = adapters.NewPGXAdapter(pool)
	}

	if !cockroach {
		detected, err := isCockroach(ctx, db)
		if err != nil {
			_ = db.Close()
			return backend{}, errors.Join(ErrConnectFailed, err)
		}

		cockroach = detected
	}

	return backend{db: db, dialect: dialectPostgres, cockroach: cockroach}, nil
}

func (s *Store) newPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if s.maxConns > 0 {
		config.MaxConns = int32(s.maxConns)
	}

	config.MaxConnLifetime = defaultMaxConnLifetime
	config.MaxConnIdleTime = defaultMaxConnIdleTime
	config.HealthCheckPeriod = defaultHealthCheckPeriod
	config.ConnConfig.ConnectTimeout = defaultConnectTimeout

	// goqu renders fully interpolated statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func (s *Store) connectMySQL(ctx context.Context, u *url.URL) (backend, error) {
	config := mysql.NewConfig()
	config.Net = "tcp"
	config.Addr = u.Host
	config.DBName = strings.TrimPrefix(u.Path, "/")
	config.ParseTime = true

	if u.User != nil {
		config.User = u.User.Username()
		config.Passwd, _ = u.User.Password()
	}

	sqlxDB, err := sqlx.ConnectContext(ctx, "mysql", config.FormatDSN())
	if err != nil {
		return backend{}, errors.Join(ErrConnectFailed, err)
	}

	if s.maxConns > 0 {
		sqlxDB.SetMaxOpenConns(s.maxConns)
		sqlxDB.SetMaxIdleConns(s.maxConns)
	}

	sqlxDB.SetConnMaxLifetime(defaultMaxConnLifetime)

	return backend{db: adapters.NewSQLXAdapter(sqlxDB), dialect: dialectMySQL}, nil
}

func connectSQLite(ctx context.Context, path string) (backend, error) {
	if path == "" {
		return backend{}, fmt.Errorf("%w: missing sqlite path", ErrUnsupportedURL)
	}

	dsn := sqliteMemory
	if path != sqliteMemory {
		dsn = path + sqlitePragmas
	}

	sqlxDB, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return backend{}, errors.Join(ErrConnectFailed, err)
	}

	// SQLite serializes writers, a single connection also keeps an in-memory database alive.
	sqlxDB.SetMaxOpenConns(1)
	sqlxDB.SetMaxIdleConns(1)
	sqlxDB.SetConnMaxLifetime(0)

	return backend{db: adapters.NewSQLXAdapter(sqlxDB), dialect: dialectSQLite}, nil
}

func isCockroach(ctx context.Context, db adapters.DBAdapter) (bool, error) {
	rows, err := db.Query(ctx, "SELECT version()")
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()

	var version string
	if rows.Next() {
		if err = rows.Scan(&version); err != nil {
			return false, err
		}
	}

	if err = rows.Err(); err != nil {
		return false, err
	}

	return strings.Contains(version, cockroachVersion), nil
}
