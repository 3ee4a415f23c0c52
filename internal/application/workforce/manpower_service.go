package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// ManpowerService handles worker registration and lifecycle
type ManpowerService struct {
	manpowerRepo workforce.ManpowerRepository
	siteRepo     masterdata.SiteRepository
	vendorRepo   masterdata.VendorRepository
}

// NewManpowerService creates a new manpower service
func NewManpowerService(
	manpowerRepo workforce.ManpowerRepository,
	siteRepo masterdata.SiteRepository,
	vendorRepo masterdata.VendorRepository,
) *ManpowerService {
	return &ManpowerService{
		manpowerRepo: manpowerRepo,
		siteRepo:     siteRepo,
		vendorRepo:   vendorRepo,
	}
}

// Create registers a worker at a site
func (s *ManpowerService) Create(ctx context.Context, req CreateManpowerRequest) (*ManpowerResponse, error) {
	exists, err := s.manpowerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Worker with this code already exists")
	}

	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.IsActive() {
		return nil, shared.NewDomainError("SITE_NOT_ACTIVE", "Workers can only be registered at active sites")
	}

	if req.ContractorID != nil {
		contractor, err := s.vendorRepo.FindByID(ctx, *req.ContractorID)
		if err != nil {
			return nil, err
		}
		if !contractor.IsContractor() {
			return nil, shared.NewDomainError("NOT_A_CONTRACTOR", "Supplying vendor must be of type contractor")
		}
	}

	worker, err := workforce.NewManpower(req.Code, req.Name, req.Trade, req.SiteID, req.ContractorID, req.DailyWage, req.JoinedOn)
	if err != nil {
		return nil, err
	}
	worker.Phone = req.Phone
	worker.IDProof = req.IDProof
	worker.Notes = req.Notes

	if err := s.manpowerRepo.Save(ctx, worker); err != nil {
		return nil, err
	}

	resp := ToManpowerResponse(worker)
	return &resp, nil
}

// GetByID retrieves a worker by ID
func (s *ManpowerService) GetByID(ctx context.Context, id uuid.UUID) (*ManpowerResponse, error) {
	worker, err := s.manpowerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToManpowerResponse(worker)
	return &resp, nil
}

// GetByCode retrieves a worker by code
func (s *ManpowerService) GetByCode(ctx context.Context, code string) (*ManpowerResponse, error) {
	worker, err := s.manpowerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToManpowerResponse(worker)
	return &resp, nil
}

// List retrieves workers with pagination, optionally scoped to a site
func (s *ManpowerService) List(ctx context.Context, siteID *uuid.UUID, filter shared.Filter) (*shared.Paginated[ManpowerResponse], error) {
	filter.Normalize()

	var (
		workers []*workforce.Manpower
		err     error
	)
	if siteID != nil {
		filter.Filters["site_id"] = *siteID
		workers, err = s.manpowerRepo.FindBySite(ctx, *siteID, filter)
	} else {
		workers, err = s.manpowerRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.manpowerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ManpowerResponse, 0, len(workers))
	for _, worker := range workers {
		items = append(items, ToManpowerResponse(worker))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a worker's profile
func (s *ManpowerService) Update(ctx context.Context, id uuid.UUID, req UpdateManpowerRequest) (*ManpowerResponse, error) {
	return s.mutate(ctx, id, func(m *workforce.Manpower) error {
		name := m.Name
		trade := m.Trade
		phone := m.Phone
		idProof := m.IDProof
		notes := m.Notes
		if req.Name != nil {
			name = *req.Name
		}
		if req.Trade != nil {
			trade = *req.Trade
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.IDProof != nil {
			idProof = *req.IDProof
		}
		if req.Notes != nil {
			notes = *req.Notes
		}
		return m.Update(name, trade, phone, idProof, notes)
	})
}

// ReviseWage changes a worker's daily wage
func (s *ManpowerService) ReviseWage(ctx context.Context, id uuid.UUID, dailyWage decimal.Decimal) (*ManpowerResponse, error) {
	return s.mutate(ctx, id, func(m *workforce.Manpower) error {
		return m.ReviseWage(dailyWage)
	})
}

// Deactivate temporarily removes a worker from the muster
func (s *ManpowerService) Deactivate(ctx context.Context, id uuid.UUID) (*ManpowerResponse, error) {
	return s.mutate(ctx, id, (*workforce.Manpower).Deactivate)
}

// Activate puts a deactivated worker back on the muster
func (s *ManpowerService) Activate(ctx context.Context, id uuid.UUID) (*ManpowerResponse, error) {
	return s.mutate(ctx, id, (*workforce.Manpower).Activate)
}

// Exit permanently marks a worker as exited
func (s *ManpowerService) Exit(ctx context.Context, id uuid.UUID, exitedOn time.Time) (*ManpowerResponse, error) {
	return s.mutate(ctx, id, func(m *workforce.Manpower) error {
		return m.Exit(exitedOn)
	})
}

func (s *ManpowerService) mutate(ctx context.Context, id uuid.UUID, fn func(*workforce.Manpower) error) (*ManpowerResponse, error) {
	worker, err := s.manpowerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(worker); err != nil {
		return nil, err
	}
	if err := s.manpowerRepo.Save(ctx, worker); err != nil {
		return nil, err
	}
	resp := ToManpowerResponse(worker)
	return &resp, nil
}
