package service

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// VendorService handles vendor-related operations
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// VendorInput represents vendor create/update fields
type VendorInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      *bool
}

// CreateVendor creates a new vendor
func (s *VendorService) CreateVendor(ctx context.Context, input *VendorInput) (*entity.Vendor, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Vendor name is required.")
	}

	vendor := &entity.Vendor{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		IsActive:      true,
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id int64) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// UpdateVendor applies changes to a vendor
func (s *VendorService) UpdateVendor(ctx context.Context, id int64, input *VendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	if input.Name != "" {
		vendor.Name = input.Name
	}
	vendor.ContactPerson = input.ContactPerson
	vendor.Email = input.Email
	vendor.Phone = input.Phone
	vendor.Address = input.Address
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// DeleteVendor soft deletes a vendor once no procurements reference it
func (s *VendorService) DeleteVendor(ctx context.Context, id int64) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}

	count, err := s.vendorRepo.CountProcurements(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Vendor cannot be deleted while procurements reference it.")
	}

	return s.vendorRepo.Delete(ctx, id)
}

// ListVendors lists vendors with filtering
func (s *VendorService) ListVendors(ctx context.Context, params *repository.PartnerFilterParams) (*pagination.PaginatedResult[entity.Vendor], error) {
	vendors, total, err := s.vendorRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(vendors, pag), nil
}

// LocationService handles location-related operations
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// LocationInput represents location create/update fields
type LocationInput struct {
	Name     string
	Address  string
	Phone    string
	IsActive *bool
}

// CreateLocation creates a new location
func (s *LocationService) CreateLocation(ctx context.Context, input *LocationInput) (*entity.Location, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Location name is required.")
	}

	location := &entity.Location{
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		IsActive: true,
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetLocation retrieves a location by ID
func (s *LocationService) GetLocation(ctx context.Context, id int64) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}
	return location, nil
}

// UpdateLocation applies changes to a location
func (s *LocationService) UpdateLocation(ctx context.Context, id int64, input *LocationInput) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}

	if input.Name != "" {
		location.Name = input.Name
	}
	location.Address = input.Address
	location.Phone = input.Phone
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation soft deletes a location
func (s *LocationService) DeleteLocation(ctx context.Context, id int64) error {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}
	return s.locationRepo.Delete(ctx, id)
}

// ListLocations lists locations with filtering
func (s *LocationService) ListLocations(ctx context.Context, params *repository.PartnerFilterParams) (*pagination.PaginatedResult[entity.Location], error) {
	locations, total, err := s.locationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(locations, pag), nil
}
