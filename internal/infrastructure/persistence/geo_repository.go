package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormStateRepository implements StateRepository using GORM
type GormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new GormStateRepository
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

// FindByID finds a state by its ID
func (r *GormStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.State, error) {
	var state masterdata.State
	if err := r.db.WithContext(ctx).First(&state, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// FindAll finds all states matching the filter
func (r *GormStateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.State, error) {
	var states []masterdata.State
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.State{}), filter, CodedSortFields, "name ASC", "name", "code")
	if err := query.Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// Count counts states matching the filter
func (r *GormStateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.State{}), filter, "name", "code")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a state with the given name exists
func (r *GormStateRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.State{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a state
func (r *GormStateRepository) Save(ctx context.Context, state *masterdata.State) error {
	return r.db.WithContext(ctx).Save(state).Error
}

// Delete deletes a state
func (r *GormStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.State{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCityRepository implements CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by its ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.City, error) {
	var city masterdata.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindByState finds cities belonging to a state
func (r *GormCityRepository) FindByState(ctx context.Context, stateID uuid.UUID, filter shared.Filter) ([]masterdata.City, error) {
	var cities []masterdata.City
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&masterdata.City{}).Where("state_id = ?", stateID),
		filter, CommonSortFields, "name ASC", "name")
	if err := query.Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// FindAll finds all cities matching the filter
func (r *GormCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.City, error) {
	var cities []masterdata.City
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.City{}), filter, CommonSortFields, "name ASC", "name")
	if err := query.Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Count counts cities matching the filter
func (r *GormCityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.City{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a city with the given name exists within a state
func (r *GormCityRepository) ExistsByName(ctx context.Context, stateID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.City{}).
		Where("state_id = ? AND LOWER(name) = LOWER(?)", stateID, name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *masterdata.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

// Delete deletes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.City{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure implementations satisfy the repository interfaces
var (
	_ masterdata.StateRepository = (*GormStateRepository)(nil)
	_ masterdata.CityRepository  = (*GormCityRepository)(nil)
)

// applyListFilter applies search, extra filters, pagination and ordering
// to a list query. searchColumns are matched with ILIKE against
// filter.Search.
func applyListFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, defaultOrder string, searchColumns ...string) *gorm.DB {
	query = applySearch(query, filter, searchColumns...)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, sortFields, "")
		if field != "" {
			query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
			return query
		}
	}
	return query.Order(defaultOrder)
}

// applySearch applies search and the status filter shared by most
// list queries
func applySearch(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		clauses := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, col := range searchColumns {
			clauses[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}
