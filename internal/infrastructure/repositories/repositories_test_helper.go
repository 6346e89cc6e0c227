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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		full_name TEXT,
		password_hash TEXT,
		role TEXT,
		is_verified BOOLEAN,
		is_blocked BOOLEAN,
		google_linked BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAdminTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admins (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		full_name TEXT,
		password_hash TEXT,
		role TEXT,
		is_blocked BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPlanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscription_plans (
		id TEXT PRIMARY KEY,
		plan_name TEXT UNIQUE NOT NULL,
		description TEXT,
		price INTEGER NOT NULL,
		currency TEXT NOT NULL,
		interval TEXT NOT NULL,
		stripe_price_id TEXT,
		simulations_limit INTEGER,
		features TEXT,
		is_active BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		first_name TEXT,
		last_name TEXT,
		phone TEXT,
		date_of_birth DATETIME,
		currency TEXT,
		monthly_income INTEGER,
		savings_goal INTEGER,
		risk_tolerance TEXT,
		plan_id TEXT,
		plan_name TEXT,
		started_at DATETIME,
		expires_at DATETIME,
		stripe_customer_id TEXT,
		stripe_subscription_id TEXT,
		stripe_price_id TEXT,
		sub_is_active BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTicketTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tickets (
		id TEXT PRIMARY KEY,
		ticket_number TEXT UNIQUE NOT NULL,
		user_id TEXT,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		reply TEXT,
		replied_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOTPChallengeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otp_challenges (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		kind TEXT NOT NULL,
		code TEXT NOT NULL,
		password_hash TEXT,
		full_name TEXT,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		UNIQUE (email, kind)
	);`)
}
