package expenses

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nathakritbc/expense-tracker-api/models"
)

// ReportQuery selects the rows to aggregate: all of the user's expenses,
// optionally narrowed to an inclusive date range.
type ReportQuery struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// CategorySummary is the aggregate for one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// Report is the derived aggregate over a filtered expense set. It is never
// persisted.
type Report struct {
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	TotalExpenses int64             `json:"totalExpenses"`
	Categories    []CategorySummary `json:"categories"`
	StartDate     *time.Time        `json:"startDate,omitempty"`
	EndDate       *time.Time        `json:"endDate,omitempty"`
}

func (q ReportQuery) filters(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", q.UserID)
	if q.StartDate != nil {
		db = db.Where("date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("date <= ?", *q.EndDate)
	}
	return db
}

// GetReport aggregates the user's expenses within the optional date range.
// The grand total and the per-category summaries are both computed from a
// single row fetch, so the category totals always add up to TotalAmount and
// the category counts to TotalExpenses. All sums use decimal arithmetic.
// Categories are ordered by total descending; equal totals order by category
// name ascending.
func GetReport(tx *gorm.DB, q ReportQuery) (Report, error) {
	var rows []struct {
		Category string
		Amount   decimal.Decimal
	}
	if err := tx.Model(&models.Expense{}).Scopes(q.filters).
		Select("category", "amount").Find(&rows).Error; err != nil {
		return Report{}, err
	}

	report := Report{
		TotalAmount:   decimal.Zero,
		TotalExpenses: int64(len(rows)),
		Categories:    []CategorySummary{},
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
	}
	sums := make(map[string]CategorySummary)
	for _, r := range rows {
		report.TotalAmount = report.TotalAmount.Add(r.Amount)
		s := sums[r.Category]
		s.Category = r.Category
		s.Total = s.Total.Add(r.Amount)
		s.Count++
		sums[r.Category] = s
	}
	for _, s := range sums {
		report.Categories = append(report.Categories, s)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		a, b := report.Categories[i], report.Categories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	return report, nil
}
