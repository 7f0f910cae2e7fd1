package expenses

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nathakritbc/expense-tracker-api/models"
)

// ErrNotFound is returned when no expense matches the (id, userId) pair.
var ErrNotFound = errors.New("expense not found")

// Create persists a new expense, assigning its id. Timestamps are set by the
// ORM.
func Create(tx *gorm.DB, e *models.Expense) error {
	e.ID = uuid.NewString()
	return tx.Create(e).Error
}

// GetByIDAndUserID fetches one expense scoped to its owner. A row owned by a
// different user is indistinguishable from a missing one.
func GetByIDAndUserID(tx *gorm.DB, id, userID string) (*models.Expense, error) {
	var e models.Expense
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateByIDAndUserID applies a partial column update to the user's expense
// and returns the refreshed record. Callers check existence first; the WHERE
// clause still scopes by owner as defense in depth, so a lost race is a
// no-op, never a cross-tenant write.
func UpdateByIDAndUserID(tx *gorm.DB, id, userID string, updates map[string]any) (*models.Expense, error) {
	if len(updates) > 0 {
		if err := tx.Model(&models.Expense{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return GetByIDAndUserID(tx, id, userID)
}

// DeleteByIDAndUserID hard-deletes the user's expense. Deleting a row that is
// already gone is not an error at this layer.
func DeleteByIDAndUserID(tx *gorm.DB, id, userID string) error {
	return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{}).Error
}
