package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "merchant"
	pgPassword = "merchant"
	pgDatabase = "merchant_test"
)

// TestDatabase is a throwaway Postgres holding the order store schema.
type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase starts Postgres in a container and applies every up
// migration in db/migrations. It skips under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// Postgres logs readiness twice: once for the init run, once for real.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	cfg := containerConfig(ctx, t, container)
	logger := config.LoggerConfig{Level: "error"}.NewLogger()

	db, err := postgres.Connect(ctx, cfg, logger)
	require.NoError(t, err)

	td := &TestDatabase{Container: container, DB: db, Config: cfg}
	td.migrate(ctx, t)
	return td
}

func containerConfig(ctx context.Context, t *testing.T, c testcontainers.Container) *config.DatabaseConfig {
	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

func (td *TestDatabase) migrate(ctx context.Context, t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations under %s", dir)
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f) //nolint:gosec // fixed directory inside the repository
		require.NoError(t, err)
		_, err = td.DB.Pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply %s", filepath.Base(f))
	}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	if td == nil {
		return
	}
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(context.Background()))
}

// CleanTables empties the order store and restarts order numbering.
func (td *TestDatabase) CleanTables(t *testing.T) {
	_, err := td.DB.Pool.Exec(context.Background(),
		"TRUNCATE TABLE order_metadata, cart_lines, orders RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
