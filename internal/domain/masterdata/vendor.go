package masterdata

import (
	"strings"
	"time"

	"github.com/siteops/backend/internal/domain/shared"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
	VendorStatusBlocked  VendorStatus = "blocked" // Blocked due to quality/payment disputes
)

// VendorType represents the kind of services a vendor provides
type VendorType string

const (
	VendorTypeSupplier    VendorType = "supplier"    // Material supplier
	VendorTypeContractor  VendorType = "contractor"  // Work-order contractor
	VendorTypeTransporter VendorType = "transporter" // Logistics
	VendorTypeService     VendorType = "service"     // Other services
)

// Vendor represents a supplier/contractor in the vendor master.
// Purchase orders are placed on supplier vendors and work orders are
// awarded to contractor vendors.
type Vendor struct {
	shared.BaseAggregateRoot
	Code        string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string       `gorm:"type:varchar(200);not null"`
	Type        VendorType   `gorm:"type:varchar(20);not null;default:'supplier'"`
	Status      VendorStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	GSTIN       string       `gorm:"type:varchar(20)"`
	ContactName string       `gorm:"type:varchar(100)"`
	Phone       string       `gorm:"type:varchar(50);index"`
	Email       string       `gorm:"type:varchar(200);index"`
	Address     string       `gorm:"type:text"`
	BankName    string       `gorm:"type:varchar(200)"`
	BankAccount string       `gorm:"type:varchar(100)"`
	IFSC        string       `gorm:"type:varchar(20)"`
	Notes       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(code, name string, vendorType VendorType) (*Vendor, error) {
	if err := validateCode(code, "Vendor"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name must be 1-200 characters")
	}
	if err := validateVendorType(vendorType); err != nil {
		return nil, err
	}

	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              name,
		Type:              vendorType,
		Status:            VendorStatusActive,
	}, nil
}

// Update updates the vendor's basic information
func (v *Vendor) Update(name, gstin, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name must be 1-200 characters")
	}
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	v.Name = name
	v.GSTIN = strings.ToUpper(gstin)
	v.Address = address
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetContact sets the vendor's contact information
func (v *Vendor) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && (len(email) > 200 || !strings.Contains(email, "@")) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	v.ContactName = contactName
	v.Phone = phone
	v.Email = strings.ToLower(email)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetBankInfo sets the vendor's bank details used on payment vouchers
func (v *Vendor) SetBankInfo(bankName, bankAccount, ifsc string) error {
	if bankName != "" && len(bankName) > 200 {
		return shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot exceed 200 characters")
	}
	if bankAccount != "" && len(bankAccount) > 100 {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account cannot exceed 100 characters")
	}
	if ifsc != "" && len(ifsc) > 20 {
		return shared.NewDomainError("INVALID_IFSC", "IFSC cannot exceed 20 characters")
	}
	v.BankName = bankName
	v.BankAccount = bankAccount
	v.IFSC = strings.ToUpper(ifsc)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Activate activates the vendor
func (v *Vendor) Activate() error {
	if v.Status == VendorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Vendor is already active")
	}
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Deactivate deactivates the vendor
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Vendor is already inactive")
	}
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Block blocks the vendor from new orders
func (v *Vendor) Block() error {
	if v.Status == VendorStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Vendor is already blocked")
	}
	v.Status = VendorStatusBlocked
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// IsActive returns true if the vendor can receive new orders
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// IsContractor returns true if the vendor takes work orders
func (v *Vendor) IsContractor() bool {
	return v.Type == VendorTypeContractor
}

func validateVendorType(t VendorType) error {
	switch t {
	case VendorTypeSupplier, VendorTypeContractor, VendorTypeTransporter, VendorTypeService:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid vendor type")
	}
}
