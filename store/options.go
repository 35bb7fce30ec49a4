package store

// Logger interface for SQL query logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Driver selects the client library used for postgres:// and cockroachdb:// URLs.
type Driver string

// Supported PostgreSQL drivers.
const (
	DriverPGX Driver = "pgx"
	DriverPQ  Driver = "pq"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
//
// Debug level: every executed SQL statement
// Info level: schema changes and the detected backend
// Warn level: rollback failures
// Error level: failures that abort an operation.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithTablePrefix overrides the default "tiny_orders_" table prefix.
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return ErrEmptyTablePrefix
		}

		s.tablePrefix = prefix

		return nil
	}
}

// WithDriver selects the PostgreSQL client library. It has no effect for other schemes.
func WithDriver(driver Driver) Option {
	return func(s *Store) error {
		switch driver {
		case DriverPGX, DriverPQ:
			s.driver = driver
			return nil
		default:
			return ErrUnknownDriver
		}
	}
}

// WithMaxConns caps the size of the connection pool. Zero keeps the driver default.
// SQLite always uses a single connection.
func WithMaxConns(maxConns int) Option {
	return func(s *Store) error {
		if maxConns < 0 {
			return ErrInvalidMaxConns
		}

		s.maxConns = maxConns

		return nil
	}
}
