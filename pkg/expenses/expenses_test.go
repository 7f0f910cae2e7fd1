package expenses

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nathakritbc/expense-tracker-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection so every statement sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Expense{}))
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func dateP(t *testing.T, s string) *time.Time {
	t.Helper()
	d := mustDate(t, s)
	return &d
}

func seedExpense(t *testing.T, db *gorm.DB, userID, title, amount, category, date, notes string) models.Expense {
	t.Helper()
	e := models.Expense{
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Date:     mustDate(t, date),
		Category: category,
		Notes:    notes,
		UserID:   userID,
	}
	require.NoError(t, Create(db, &e))
	return e
}

func titles(result []models.Expense) []string {
	out := make([]string, 0, len(result))
	for _, e := range result {
		out = append(out, e.Title)
	}
	return out
}
