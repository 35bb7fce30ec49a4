package helper

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leoppro/tiny-orders/store"
)

// Environment variables pointing the store tests at server databases. Unset variables skip that backend.
const (
	EnvPostgresURL  = "TINY_ORDERS_TEST_POSTGRES_URL"
	EnvCockroachURL = "TINY_ORDERS_TEST_COCKROACH_URL"
	EnvMySQLURL     = "TINY_ORDERS_TEST_MYSQL_URL"
)

// Backend is one database the store tests run against.
type Backend struct {
	Name    string
	URL     string
	Options []store.Option
}

// Backends returns a file based SQLite backend plus every server database configured
// through the environment. PostgreSQL is listed once per driver.
func Backends(t testing.TB) []Backend {
	t.Helper()

	url, _ := SQLiteURL(t)
	backends := []Backend{{Name: "sqlite", URL: url}}

	if url := os.Getenv(EnvPostgresURL); url != "" {
		backends = append(backends,
			Backend{Name: "postgres-pgx", URL: url, Options: []store.Option{store.WithDriver(store.DriverPGX)}},
			Backend{Name: "postgres-pq", URL: url, Options: []store.Option{store.WithDriver(store.DriverPQ)}},
		)
	}

	if url := os.Getenv(EnvCockroachURL); url != "" {
		backends = append(backends, Backend{Name: "cockroach", URL: url})
	}

	if url := os.Getenv(EnvMySQLURL); url != "" {
		backends = append(backends, Backend{Name: "mysql", URL: url})
	}

	return backends
}

// OpenBackend opens b with a table prefix unique to the test and creates the schema.
// The tables are dropped and the store is closed when the test ends.
func OpenBackend(t testing.TB, b Backend, options ...store.Option) *store.Store {
	t.Helper()

	ctx := context.Background()
	prefix := "t" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "_"

	all := append([]store.Option{store.WithTablePrefix(prefix)}, b.Options...)
	all = append(all, options...)

	st, err := store.Open(ctx, b.URL, all...)
	require.NoError(t, err, "error connecting to %s in test setup", b.Name)

	t.Cleanup(func() {
		_ = st.DropSchema(context.Background())
		_ = st.Close()
	})

	require.NoError(t, st.SetupSchema(ctx), "error creating the schema in test setup")

	return st
}
