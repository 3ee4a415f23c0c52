package masterdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// VendorService handles vendor master data operations
type VendorService struct {
	vendorRepo masterdata.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo masterdata.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	exists, err := s.vendorRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this code already exists")
	}

	vendor, err := masterdata.NewVendor(req.Code, req.Name, masterdata.VendorType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.GSTIN != "" || req.Address != "" || req.Notes != "" {
		if err := vendor.Update(req.Name, req.GSTIN, req.Address, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := vendor.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.BankName != "" || req.BankAccount != "" || req.IFSC != "" {
		if err := vendor.SetBankInfo(req.BankName, req.BankAccount, req.IFSC); err != nil {
			return nil, err
		}
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetByCode retrieves a vendor by its code
func (s *VendorService) GetByCode(ctx context.Context, code string) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// List lists vendors with pagination
func (s *VendorService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[VendorResponse], error) {
	filter.Normalize()

	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.vendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		items = append(items, ToVendorResponse(&vendors[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes vendor details
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := vendor.Name
	if req.Name != nil {
		name = *req.Name
	}
	gstin := vendor.GSTIN
	if req.GSTIN != nil {
		gstin = *req.GSTIN
	}
	address := vendor.Address
	if req.Address != nil {
		address = *req.Address
	}
	notes := vendor.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := vendor.Update(name, gstin, address, notes); err != nil {
		return nil, err
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := vendor.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := vendor.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		email := vendor.Email
		if req.Email != nil {
			email = *req.Email
		}
		if err := vendor.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.BankName != nil || req.BankAccount != nil || req.IFSC != nil {
		bankName := vendor.BankName
		if req.BankName != nil {
			bankName = *req.BankName
		}
		bankAccount := vendor.BankAccount
		if req.BankAccount != nil {
			bankAccount = *req.BankAccount
		}
		ifsc := vendor.IFSC
		if req.IFSC != nil {
			ifsc = *req.IFSC
		}
		if err := vendor.SetBankInfo(bankName, bankAccount, ifsc); err != nil {
			return nil, err
		}
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Activate restores an inactive or blocked vendor
func (s *VendorService) Activate(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	return s.transition(ctx, id, (*masterdata.Vendor).Activate)
}

// Deactivate suspends a vendor
func (s *VendorService) Deactivate(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	return s.transition(ctx, id, (*masterdata.Vendor).Deactivate)
}

// Block blocks a vendor over a dispute
func (s *VendorService) Block(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	return s.transition(ctx, id, (*masterdata.Vendor).Block)
}

func (s *VendorService) transition(ctx context.Context, id uuid.UUID, fn func(*masterdata.Vendor) error) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(vendor); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}
