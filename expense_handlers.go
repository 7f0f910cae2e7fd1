package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nathakritbc/expense-tracker-api/models"
	"github.com/nathakritbc/expense-tracker-api/pkg/expenses"
)

const dateLayout = "2006-01-02"

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// createExpenseHandler creates an expense for the authenticated user.
func createExpenseHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var req struct {
		Title    string          `json:"title" binding:"required"`
		Amount   decimal.Decimal `json:"amount" binding:"required"`
		Date     string          `json:"date" binding:"required"`
		Category string          `json:"category" binding:"required"`
		Notes    string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	expense := models.Expense{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     date,
		Category: req.Category,
		Notes:    req.Notes,
		UserID:   userID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return expenses.Create(tx, &expense)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// listExpensesHandler returns a filtered, sorted, paginated page of the
// authenticated user's expenses.
func listExpensesHandler(c *gin.Context) {
	userID := c.GetString("userID")
	q := expenses.ListQuery{
		UserID:   userID,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	var err error
	if q.StartDate, err = parseDateParam(c, "startDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	if q.EndDate, err = parseDateParam(c, "endDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}
	if v := c.Query("page"); v != "" {
		if q.Page, err = strconv.Atoi(v); err != nil || q.Page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
	}
	if v := c.Query("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil || (q.Limit < 1 && q.Limit != expenses.NoLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer or -1"})
			return
		}
	}

	var (
		result []models.Expense
		meta   expenses.Meta
	)
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, meta, err = expenses.GetAll(tx, q)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "meta": meta})
}

func getExpenseHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")
	var expense *models.Expense
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = expenses.GetByIDAndUserID(tx, id, userID)
		return err
	})
	if errors.Is(err, expenses.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpenseHandler applies a partial update to the user's expense. The
// existence check and the update run in the same transaction.
func updateExpenseHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")
	var req struct {
		Title    *string          `json:"title"`
		Amount   *decimal.Decimal `json:"amount"`
		Date     *string          `json:"date"`
		Category *string          `json:"category"`
		Notes    *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		updates["date"] = date
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	var expense *models.Expense
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := expenses.GetByIDAndUserID(tx, id, userID); err != nil {
			return err
		}
		var err error
		expense, err = expenses.UpdateByIDAndUserID(tx, id, userID, updates)
		return err
	})
	if errors.Is(err, expenses.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// deleteExpenseHandler removes the user's expense. Missing or foreign rows
// yield 404 and no mutation.
func deleteExpenseHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := expenses.GetByIDAndUserID(tx, id, userID); err != nil {
			return err
		}
		return expenses.DeleteByIDAndUserID(tx, id, userID)
	})
	if errors.Is(err, expenses.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// expenseReportHandler returns sum/count aggregates for the user's expenses
// within an optional date range.
func expenseReportHandler(c *gin.Context) {
	userID := c.GetString("userID")
	q := expenses.ReportQuery{UserID: userID}
	var err error
	if q.StartDate, err = parseDateParam(c, "startDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	if q.EndDate, err = parseDateParam(c, "endDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}
	var report expenses.Report
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		report, err = expenses.GetReport(tx, q)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
