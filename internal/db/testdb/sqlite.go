package testdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/6529-Collections/nftactions/internal/db"
	"github.com/stretchr/testify/require"
)

// SetupTestDB opens a migrated SQLite database in a per-test temp directory.
func SetupTestDB(t *testing.T) (*sql.DB, func()) {
	sqlite, err := db.OpenSqlite(filepath.Join(t.TempDir(), "sqlite"))
	require.NoError(t, err)

	cleanup := func() {
		_ = sqlite.Close()
	}
	return sqlite, cleanup
}
