package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/trip-planner/backend/testutil"
)

// TestMain runs before any test in the repo_test package.
// When a test database is configured it applies all pending migrations, which
// create and seed the catalog tables, so individual tests never need to think
// about schema state. The in-memory session tests run either way.
func TestMain(m *testing.M) {
	if dsn := os.Getenv(testutil.DSNEnv); dsn != "" {
		if err := testutil.MigrateUp(context.Background(), dsn); err != nil {
			log.Fatalf("TestMain: %v", err)
		}
	}
	os.Exit(m.Run())
}
