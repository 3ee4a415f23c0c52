package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// nextSequence fetches the next value of a named database sequence.
// Document numbers (IND-000001, PO-000001, ...) are formatted from the
// returned value, so each sequence must exist in the schema.
func nextSequence(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var seq int64
	if err := db.WithContext(ctx).Raw("SELECT nextval(?)", name).Scan(&seq).Error; err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return seq, nil
}
