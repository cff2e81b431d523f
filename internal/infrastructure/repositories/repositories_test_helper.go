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

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT UNIQUE NOT NULL,
		custom_referral_code TEXT UNIQUE NOT NULL,
		referrer_wallet_address TEXT,
		referrer_code TEXT,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		mobile_number TEXT,
		address TEXT,
		zip_code TEXT,
		country TEXT,
		is_active BOOLEAN DEFAULT 1,
		email_verified BOOLEAN DEFAULT 0,
		mobile_verified BOOLEAN DEFAULT 0,
		profile_completed BOOLEAN DEFAULT 0,
		referrer_set_onchain BOOLEAN DEFAULT 0,
		referrer_set_tx_hash TEXT,
		last_login DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE referral_links (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		wallet_address TEXT NOT NULL,
		referral_code TEXT NOT NULL,
		link TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createInvestmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		order_id TEXT,
		token_address TEXT NOT NULL,
		token_symbol TEXT NOT NULL,
		order_count INTEGER NOT NULL,
		amount_per_order TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		locked_apr INTEGER NOT NULL,
		locked_maturity_duration INTEGER NOT NULL,
		stake_timestamp DATETIME NOT NULL,
		maturity_timestamp DATETIME NOT NULL,
		epoch_id INTEGER,
		paid_order_count INTEGER DEFAULT 0,
		fully_paid BOOLEAN DEFAULT 0,
		is_reinvestment BOOLEAN DEFAULT 0,
		status TEXT NOT NULL,
		stake_tx_hash TEXT UNIQUE NOT NULL,
		last_payout_tx_hash TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createReferralTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE referral_earnings (
		id TEXT PRIMARY KEY,
		referrer_user_id TEXT NOT NULL,
		referee_wallet TEXT NOT NULL,
		level INTEGER NOT NULL,
		amount TEXT NOT NULL,
		percentage INTEGER NOT NULL,
		investment_amount TEXT NOT NULL,
		claimed BOOLEAN DEFAULT 0,
		earned_at DATETIME NOT NULL,
		tx_hash TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE team_stats (
		user_id TEXT PRIMARY KEY,
		wallet_address TEXT UNIQUE NOT NULL,
		total_team_size INTEGER DEFAULT 0,
		level1_count INTEGER DEFAULT 0,
		level2_count INTEGER DEFAULT 0,
		level3_count INTEGER DEFAULT 0,
		active_members INTEGER DEFAULT 0,
		inactive_members INTEGER DEFAULT 0,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE activity_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		payload TEXT,
		tx_hash TEXT,
		created_at DATETIME
	);`)
}
