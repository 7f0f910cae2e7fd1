package expenses

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nathakritbc/expense-tracker-api/models"
)

// NoLimit disables pagination: every matching row is returned in one page.
const NoLimit = -1

const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortableColumns maps accepted sort keys to column names. Anything outside
// this allow-list silently falls back to the default ordering.
var sortableColumns = map[string]string{
	"title":     "title",
	"amount":    "amount",
	"date":      "date",
	"category":  "category",
	"createdAt": "created_at",
}

// ListQuery carries the filter, sort and pagination parameters for GetAll.
// UserID is mandatory; everything else is optional.
type ListQuery struct {
	UserID    string
	Search    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Sort      string
	Order     string
	Page      int
	Limit     int
}

// Meta describes one page of results. Total counts every row matching the
// filters, independent of page and limit.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so a search string matches as a
// literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// filters applies the userId, search, category and date predicates. It is
// used as a gorm scope and re-invoked per statement, so the count query and
// the page query never share builder state.
func (q ListQuery) filters(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", q.UserID)
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		db = db.Where(`title LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.StartDate != nil {
		db = db.Where("date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("date <= ?", *q.EndDate)
	}
	return db
}

// orderClause resolves the sort request against the allow-list. Unknown
// columns fall back to date descending; the direction is ascending only when
// the order string is exactly "ASC".
func (q ListQuery) orderClause() string {
	col, ok := sortableColumns[q.Sort]
	if !ok {
		return "date DESC"
	}
	dir := "DESC"
	if q.Order == "ASC" {
		dir = "ASC"
	}
	return col + " " + dir
}

// GetAll returns one page of the user's expenses plus pagination metadata.
// No matching rows is not an error: the result is empty with Total zero.
func GetAll(tx *gorm.DB, q ListQuery) ([]models.Expense, Meta, error) {
	page := q.Page
	if page == 0 {
		page = defaultPage
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	var total int64
	if err := tx.Model(&models.Expense{}).Scopes(q.filters).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}

	stmt := tx.Model(&models.Expense{}).Scopes(q.filters).Order(q.orderClause())
	if limit != NoLimit {
		stmt = stmt.Offset((page - 1) * limit).Limit(limit)
	}
	result := []models.Expense{}
	if err := stmt.Find(&result).Error; err != nil {
		return nil, Meta{}, err
	}
	return result, Meta{Page: page, Limit: limit, Total: total}, nil
}
