package expenses

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userOne = "11111111-1111-1111-1111-111111111111"
	userTwo = "22222222-2222-2222-2222-222222222222"
)

func TestGetAllScopesToUser(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Coffee", "3.50", "Food", "2024-01-05", "")
	seedExpense(t, db, userOne, "Bus", "2.00", "Transport", "2024-01-06", "")
	seedExpense(t, db, userTwo, "Rent", "1000", "Housing", "2024-01-01", "")

	result, meta, err := GetAll(db, ListQuery{UserID: userOne})
	require.NoError(t, err)
	// default sort is date descending
	assert.Equal(t, []string{"Bus", "Coffee"}, titles(result))
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	for _, e := range result {
		assert.Equal(t, userOne, e.UserID)
	}
}

func TestGetAllSearchMatchesTitleOrNotes(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Morning coffee", "3.50", "Food", "2024-01-05", "")
	seedExpense(t, db, userOne, "Bus ticket", "2.00", "Transport", "2024-01-06", "for coffee meetup")
	seedExpense(t, db, userOne, "Groceries", "40.00", "Food", "2024-01-07", "")

	result, meta, err := GetAll(db, ListQuery{UserID: userOne, Search: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	assert.ElementsMatch(t, []string{"Morning coffee", "Bus ticket"}, titles(result))
}

func TestGetAllSearchTreatsWildcardsAsLiterals(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Discount 100%", "9.99", "Shopping", "2024-01-05", "")
	seedExpense(t, db, userOne, "Discount 100x", "9.99", "Shopping", "2024-01-06", "")

	result, meta, err := GetAll(db, ListQuery{UserID: userOne, Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, []string{"Discount 100%"}, titles(result))

	// underscore must not act as a single-character wildcard either
	result, _, err = GetAll(db, ListQuery{UserID: userOne, Search: "100_"})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetAllCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Coffee", "3.50", "Food", "2024-01-05", "")
	seedExpense(t, db, userOne, "Lunch", "12.00", "Food", "2024-01-06", "")
	seedExpense(t, db, userOne, "Bus", "2.00", "Transport", "2024-01-06", "")

	result, meta, err := GetAll(db, ListQuery{UserID: userOne, Category: "Food"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	assert.ElementsMatch(t, []string{"Coffee", "Lunch"}, titles(result))
}

func TestGetAllDateRangeInclusive(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Before", "1.00", "Misc", "2024-01-01", "")
	seedExpense(t, db, userOne, "Start", "1.00", "Misc", "2024-01-05", "")
	seedExpense(t, db, userOne, "Middle", "1.00", "Misc", "2024-01-10", "")
	seedExpense(t, db, userOne, "End", "1.00", "Misc", "2024-01-15", "")
	seedExpense(t, db, userOne, "After", "1.00", "Misc", "2024-01-20", "")

	result, meta, err := GetAll(db, ListQuery{
		UserID:    userOne,
		StartDate: dateP(t, "2024-01-05"),
		EndDate:   dateP(t, "2024-01-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.Total)
	assert.ElementsMatch(t, []string{"Start", "Middle", "End"}, titles(result))
}

func TestGetAllSortAllowList(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Banana", "2.00", "Food", "2024-01-05", "")
	seedExpense(t, db, userOne, "Apple", "3.00", "Food", "2024-01-06", "")
	seedExpense(t, db, userOne, "Cherry", "1.00", "Food", "2024-01-07", "")

	result, _, err := GetAll(db, ListQuery{UserID: userOne, Sort: "title", Order: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, titles(result))

	// direction defaults to DESC unless the order is exactly "ASC"
	result, _, err = GetAll(db, ListQuery{UserID: userOne, Sort: "title", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, titles(result))

	result, _, err = GetAll(db, ListQuery{UserID: userOne, Sort: "amount", Order: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, titles(result))
}

func TestGetAllUnknownSortFallsBackToDateDesc(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userOne, "Oldest", "1.00", "Misc", "2024-01-01", "")
	seedExpense(t, db, userOne, "Newest", "1.00", "Misc", "2024-01-09", "")

	for _, sortKey := range []string{"foo", "; DROP TABLE expenses", "user_id"} {
		result, _, err := GetAll(db, ListQuery{UserID: userOne, Sort: sortKey})
		require.NoError(t, err, "sort %q must not error", sortKey)
		assert.Equal(t, []string{"Newest", "Oldest"}, titles(result), "sort %q", sortKey)
	}
}

func TestGetAllPagination(t *testing.T) {
	db := newTestDB(t)
	for i := 1; i <= 25; i++ {
		seedExpense(t, db, userOne, fmt.Sprintf("Item %02d", i), "1.00", "Misc",
			fmt.Sprintf("2024-01-%02d", i), "")
	}

	result, meta, err := GetAll(db, ListQuery{UserID: userOne, Page: 2, Limit: 10, Sort: "date", Order: "ASC"})
	require.NoError(t, err)
	assert.Len(t, result, 10)
	assert.Equal(t, "Item 11", result[0].Title)
	assert.Equal(t, "Item 20", result[9].Title)
	// total is unaffected by slicing
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)

	// last, partial page
	result, meta, err = GetAll(db, ListQuery{UserID: userOne, Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result, 5)
	assert.Equal(t, int64(25), meta.Total)
}

func TestGetAllNoLimitReturnsEverything(t *testing.T) {
	db := newTestDB(t)
	for i := 1; i <= 15; i++ {
		seedExpense(t, db, userOne, fmt.Sprintf("Item %02d", i), "1.00", "Misc",
			fmt.Sprintf("2024-01-%02d", i), "")
	}

	result, meta, err := GetAll(db, ListQuery{UserID: userOne, Limit: NoLimit})
	require.NoError(t, err)
	assert.Len(t, result, 15)
	assert.Equal(t, NoLimit, meta.Limit)
	assert.Equal(t, int64(15), meta.Total)
}

func TestGetAllEmptyResultIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	seedExpense(t, db, userTwo, "Rent", "1000", "Housing", "2024-01-01", "")

	result, meta, err := GetAll(db, ListQuery{UserID: userOne})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(0), meta.Total)
}
