package store

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/leoppro/tiny-orders/entity"
	"github.com/leoppro/tiny-orders/store/internal/adapters"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

// Store is a connection to one of the supported relational databases.
type Store struct {
	db          adapters.DBAdapter
	dialect     goqu.DialectWrapper
	dialectName string
	cockroach   bool
	tables      entity.Tables
	tablePrefix string
	driver      Driver
	maxConns    int
	logger      Logger
}

// Open connects to the database addressed by rawURL and applies the options.
func Open(ctx context.Context, rawURL string, options ...Option) (*Store, error) {
	s := &Store{
		tablePrefix: entity.DefaultTablePrefix,
		driver:      DriverPGX,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	b, err := s.connect(ctx, rawURL)
	if err != nil {
		s.logError(logMsgConnectFailed, logAttrError, err.Error())
		return nil, err
	}

	s.db = b.db
	s.dialectName = b.dialect
	s.dialect = goqu.Dialect(b.dialect)
	s.cockroach = b.cockroach
	s.tables = entity.TablesWithPrefix(s.tablePrefix)

	s.logInfo(logMsgConnected,
		logAttrDialect, s.dialectName,
		logAttrDriver, s.driverName(),
		logAttrCockroach, s.cockroach)

	return s, nil
}

// Close releases all connections.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tables returns the resolved table names.
func (s *Store) Tables() entity.Tables {
	return s.tables
}

// Dialect returns the goqu dialect name of the backend: postgres, mysql or sqlite3.
func (s *Store) Dialect() string {
	return s.dialectName
}

// IsCockroach reports whether the backend speaks PostgreSQL but is a CockroachDB cluster.
func (s *Store) IsCockroach() bool {
	return s.cockroach
}

// InTx runs fn inside one transaction and returns the row count fn reports.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) (uint32, error)) (uint32, error) {
	txa, err := s.db.Begin(ctx)
	if err != nil {
		s.logError(logMsgBeginFailed, logAttrError, err.Error())
		return 0, errors.Join(ErrBeginTxFailed, err)
	}

	rows, fnErr := fn(&Tx{tx: txa, store: s})
	if fnErr != nil {
		if rollbackErr := txa.Rollback(ctx); rollbackErr != nil {
			s.logWarn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}

		return 0, fnErr
	}

	if err = txa.Commit(ctx); err != nil {
		s.logError(logMsgCommitFailed, logAttrError, err.Error())
		return 0, errors.Join(ErrCommitFailed, err)
	}

	return rows, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	sqlQuery, _, err := s.dialect.From(table).Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return 0, errors.Join(ErrBuildQueryFailed, err)
	}

	rows, err := s.db.Query(ctx, sqlQuery)
	if err != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(ErrQueryFailed, err)
	}

	var count int64
	if err = s.scanSingleRow(rows, &count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Store) driverName() string {
	if s.dialectName == dialectPostgres {
		return string(s.driver)
	}

	return s.dialectName
}

func (s *Store) supportsReturning() bool {
	return s.dialectName == dialectPostgres
}

func (s *Store) supportsRowLocks() bool {
	return s.dialectName != dialectSQLite
}

// timestamp renders t in a form every backend accepts for its timestamp column type.
func (s *Store) timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func (s *Store) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		s.logWarn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

// scanSingleRow scans the first row and closes rows. It returns ErrNotFound for an empty result.
func (s *Store) scanSingleRow(rows adapters.DBRows, dest ...any) error {
	defer s.closeRows(rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
			return errors.Join(ErrQueryFailed, err)
		}

		return ErrNotFound
	}

	if err := rows.Scan(dest...); err != nil {
		s.logError(logMsgScanRowFailed, logAttrError, err.Error())
		return errors.Join(ErrScanRowFailed, err)
	}

	return nil
}
