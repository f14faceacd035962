package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createTxJournalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tx_journal (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		kind TEXT NOT NULL,
		asset TEXT NOT NULL,
		base_amount TEXT NOT NULL,
		tx_hash TEXT NOT NULL UNIQUE,
		ad_id INTEGER,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
