package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// saveChildren replaces the child rows of an aggregate inside the
// caller's transaction. Documents here are small (tens of lines), so a
// delete-and-reinsert keeps the reconciliation simple and the rows
// exactly matching the aggregate.
func saveChildren[T any](tx *gorm.DB, fkColumn string, parentID uuid.UUID, children []T) error {
	var model T
	if err := tx.Where(fkColumn+" = ?", parentID).Delete(&model).Error; err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	return tx.Create(&children).Error
}
