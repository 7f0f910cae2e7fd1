package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single monetary record belonging to a user.
// Amount is a fixed-point decimal with two fraction digits; float64 is not
// safe for money and must not appear anywhere in the amount path.
type Expense struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Title     string          `gorm:"size:255;not null" json:"title"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date      time.Time       `gorm:"type:date;not null;index:idx_expenses_user_date,priority:2;index:idx_expenses_user_category_date,priority:3" json:"date"`
	Category  string          `gorm:"size:255;not null;index:idx_expenses_user_category,priority:2;index:idx_expenses_user_category_date,priority:2" json:"category"`
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
	UserID    string          `gorm:"type:uuid;index;not null;index:idx_expenses_user_date,priority:1;index:idx_expenses_user_category,priority:1;index:idx_expenses_user_category_date,priority:1" json:"userId"`
}

func (Expense) TableName() string {
	return "expenses"
}
