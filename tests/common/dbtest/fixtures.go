//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courtside/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"; generating one per test is too slow at cost 12.
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestVenue(t *testing.T, db DBLike, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	venueID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO venues (id, owner_id, name, address, status, is_active) VALUES ($1, $2, $3, '1 Test St', 'approved', true)",
		venueID, ownerID, name)
	require.NoError(t, err)

	return venueID
}

func CreateTestCourt(t *testing.T, db DBLike, venueID uuid.UUID, name string, pricePerHourCents int64) uuid.UUID {
	t.Helper()

	courtID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO courts (id, venue_id, name, sport, price_per_hour_cents, is_active) VALUES ($1, $2, $3, 'tennis', $4, true)",
		courtID, venueID, name, pricePerHourCents)
	require.NoError(t, err)

	return courtID
}

// SeedWeeklyGrid opens the default hourly template on every day of the week
// for the court, going through the same grid the owner flow starts from.
func SeedWeeklyGrid(t *testing.T, db DBLike, courtID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	for day := 0; day <= 6; day++ {
		for _, slot := range schedule.DefaultGrid(courtID, schedule.DayOfWeek(day)) {
			_, err := db.Exec(ctx, `
				INSERT INTO weekly_slots (id, court_id, day_of_week, start_time, end_time, is_available, is_maintenance)
				VALUES ($1, $2, $3, $4::time, $5::time, $6, $7)
				ON CONFLICT (court_id, day_of_week, start_time, end_time) DO NOTHING`,
				slot.ID(), slot.CourtID(), slot.Day().Int(),
				slot.Interval().Start().String(), slot.Interval().End().String(),
				slot.Available(), slot.Maintenance())
			require.NoError(t, err)
		}
	}
}

// SeedReferenceData exists as the reseed hook for ResetDB. The schema has no
// static lookup tables; every fixture row is created per test.
func SeedReferenceData(pool *pgxpool.Pool) error {
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
