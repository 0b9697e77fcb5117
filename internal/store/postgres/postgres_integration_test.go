package postgres

import (
	"os"
	"testing"

	"github.com/courtprep/backend/internal/store"
	"github.com/courtprep/backend/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("COURTPREP_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("COURTPREP_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
