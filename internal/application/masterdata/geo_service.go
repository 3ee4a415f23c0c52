package masterdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// GeoService handles state and city master data operations
type GeoService struct {
	stateRepo masterdata.StateRepository
	cityRepo  masterdata.CityRepository
}

// NewGeoService creates a new GeoService
func NewGeoService(stateRepo masterdata.StateRepository, cityRepo masterdata.CityRepository) *GeoService {
	return &GeoService{
		stateRepo: stateRepo,
		cityRepo:  cityRepo,
	}
}

// CreateState creates a new state
func (s *GeoService) CreateState(ctx context.Context, req CreateStateRequest) (*StateResponse, error) {
	exists, err := s.stateRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "State with this name already exists")
	}

	state, err := masterdata.NewState(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.stateRepo.Save(ctx, state); err != nil {
		return nil, err
	}

	resp := ToStateResponse(state)
	return &resp, nil
}

// GetState retrieves a state by ID
func (s *GeoService) GetState(ctx context.Context, id uuid.UUID) (*StateResponse, error) {
	state, err := s.stateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStateResponse(state)
	return &resp, nil
}

// ListStates lists states with pagination
func (s *GeoService) ListStates(ctx context.Context, filter shared.Filter) (*shared.Paginated[StateResponse], error) {
	filter.Normalize()

	states, err := s.stateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StateResponse, 0, len(states))
	for i := range states {
		items = append(items, ToStateResponse(&states[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateState renames a state
func (s *GeoService) UpdateState(ctx context.Context, id uuid.UUID, req UpdateStateRequest) (*StateResponse, error) {
	state, err := s.stateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := state.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.stateRepo.Save(ctx, state); err != nil {
		return nil, err
	}
	resp := ToStateResponse(state)
	return &resp, nil
}

// DeleteState removes a state. Fails if any city still references it.
func (s *GeoService) DeleteState(ctx context.Context, id uuid.UUID) error {
	cities, err := s.cityRepo.FindByState(ctx, id, shared.DefaultFilter())
	if err != nil {
		return err
	}
	if len(cities) > 0 {
		return shared.NewDomainError("STATE_IN_USE", "State has cities and cannot be deleted")
	}
	return s.stateRepo.Delete(ctx, id)
}

// CreateCity creates a city under a state
func (s *GeoService) CreateCity(ctx context.Context, req CreateCityRequest) (*CityResponse, error) {
	if _, err := s.stateRepo.FindByID(ctx, req.StateID); err != nil {
		return nil, err
	}
	exists, err := s.cityRepo.ExistsByName(ctx, req.StateID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "City with this name already exists in the state")
	}

	city, err := masterdata.NewCity(req.StateID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	resp := ToCityResponse(city)
	return &resp, nil
}

// GetCity retrieves a city by ID
func (s *GeoService) GetCity(ctx context.Context, id uuid.UUID) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCityResponse(city)
	return &resp, nil
}

// ListCities lists cities, optionally scoped to a state
func (s *GeoService) ListCities(ctx context.Context, stateID *uuid.UUID, filter shared.Filter) (*shared.Paginated[CityResponse], error) {
	filter.Normalize()

	var (
		cities []masterdata.City
		err    error
	)
	if stateID != nil {
		cities, err = s.cityRepo.FindByState(ctx, *stateID, filter)
	} else {
		cities, err = s.cityRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.cityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CityResponse, 0, len(cities))
	for i := range cities {
		items = append(items, ToCityResponse(&cities[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateCity renames a city
func (s *GeoService) UpdateCity(ctx context.Context, id uuid.UUID, req UpdateCityRequest) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := city.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}
	resp := ToCityResponse(city)
	return &resp, nil
}

// DeleteCity removes a city
func (s *GeoService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cityRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.cityRepo.Delete(ctx, id)
}
