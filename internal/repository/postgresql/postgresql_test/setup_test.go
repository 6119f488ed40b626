package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
	"github.com/redeposto/ponto-backend-go/migrations"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, migrations.Apply(ctx, db))
	require.NoError(t, truncateAllTables(ctx, db))
	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{"leave_grants", "punches", "shift_templates", "employees"}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func createTestEmployee(t *testing.T, db *database.DB, stationID, name, shift string, active bool) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (id, station_id, employee_code, full_name, shift_name, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, stationID, "EMP-"+id[len(id)-6:], name, shift, active)
	require.NoError(t, err)
	return id
}
