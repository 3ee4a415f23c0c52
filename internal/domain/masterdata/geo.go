package masterdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siteops/backend/internal/domain/shared"
)

// State represents a state/province in the location master
type State struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code string `gorm:"type:varchar(10);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (State) TableName() string {
	return "states"
}

// NewState creates a new state
func NewState(name, code string) (*State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "State name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "State name cannot exceed 100 characters")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 10 {
		return nil, shared.NewDomainError("INVALID_CODE", "State code must be 1-10 characters")
	}

	return &State{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
	}, nil
}

// Rename updates the state name
func (s *State) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "State name must be 1-100 characters")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// City represents a city belonging to a state
type City struct {
	shared.BaseAggregateRoot
	Name    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_city_state_name,priority:2"`
	StateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_city_state_name,priority:1;index"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// NewCity creates a new city under a state
func NewCity(stateID uuid.UUID, name string) (*City, error) {
	if stateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STATE_ID", "City requires a state")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "City name must be 1-100 characters")
	}

	return &City{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		StateID:           stateID,
	}, nil
}

// Rename updates the city name
func (c *City) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "City name must be 1-100 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
