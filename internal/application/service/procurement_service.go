package service

import (
	"context"
	"fmt"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/collinsdev/marketplace-api/pkg/utils"
)

// ProcurementService coordinates procurement aggregate operations. Detail
// line mutations shift the parent's total amount and the product's stock in
// the same transaction.
type ProcurementService struct {
	procurementRepo repository.ProcurementRepository
	detailRepo      repository.ProcurementDetailRepository
	productRepo     repository.ProductRepository
	validator       *validator.ProcurementValidator
	detailValidator *validator.ProcurementDetailValidator
	tx              repository.TxManager
}

// NewProcurementService creates a new procurement service
func NewProcurementService(
	procurementRepo repository.ProcurementRepository,
	detailRepo repository.ProcurementDetailRepository,
	productRepo repository.ProductRepository,
	procurementValidator *validator.ProcurementValidator,
	detailValidator *validator.ProcurementDetailValidator,
	tx repository.TxManager,
) *ProcurementService {
	return &ProcurementService{
		procurementRepo: procurementRepo,
		detailRepo:      detailRepo,
		productRepo:     productRepo,
		validator:       procurementValidator,
		detailValidator: detailValidator,
		tx:              tx,
	}
}

// ProcurementItemInput represents a line item in a procurement
type ProcurementItemInput struct {
	ProductID     int64
	Quantity      int
	PurchasePrice float64
}

// CreateProcurementInput represents the create procurement input
type CreateProcurementInput struct {
	ReferenceNo     string
	VendorID        int64
	LocationID      int64
	ProcurementDate time.Time
	Notes           string
	Items           []ProcurementItemInput
}

// CreateProcurement creates a procurement together with its detail lines.
// Received stock is added to each product inside the same transaction.
func (s *ProcurementService) CreateProcurement(ctx context.Context, input *CreateProcurementInput) (*entity.Procurement, error) {
	referenceNo := input.ReferenceNo
	if referenceNo == "" {
		referenceNo = utils.GenerateReferenceNo("PR")
	}

	procurementDate := input.ProcurementDate
	if procurementDate.IsZero() {
		procurementDate = time.Now()
	}

	var totalAmount float64
	details := make([]entity.ProcurementDetail, 0, len(input.Items))
	for _, item := range input.Items {
		lineTotal := float64(item.Quantity) * item.PurchasePrice
		totalAmount += lineTotal
		details = append(details, entity.ProcurementDetail{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			LineTotal:     lineTotal,
		})
	}

	procurement := &entity.Procurement{
		ReferenceNo:     referenceNo,
		VendorID:        input.VendorID,
		LocationID:      input.LocationID,
		ProcurementDate: procurementDate,
		TotalAmount:     totalAmount,
		Notes:           input.Notes,
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateCreate(ctx, procurement); err != nil {
			return err
		}
		if err := s.procurementRepo.Create(ctx, procurement); err != nil {
			return err
		}

		for i := range details {
			details[i].ProcurementID = procurement.ID

			product, err := s.productRepo.GetByID(ctx, details[i].ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %d", details[i].ProductID))
			}

			if err := s.detailValidator.ValidateAdd(ctx, procurement, product, &details[i]); err != nil {
				return err
			}
			if err := s.detailRepo.Create(ctx, &details[i]); err != nil {
				return err
			}
			if err := s.productRepo.IncrementStock(ctx, details[i].ProductID, details[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.procurementRepo.GetWithDetails(ctx, procurement.ID)
}

// GetProcurement retrieves a procurement with its details
func (s *ProcurementService) GetProcurement(ctx context.Context, id int64) (*entity.Procurement, error) {
	procurement, err := s.procurementRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if procurement == nil {
		return nil, apperror.NewNotFoundError("Procurement")
	}
	return procurement, nil
}

// UpdateProcurementInput represents the mutable header fields of a procurement
type UpdateProcurementInput struct {
	ReferenceNo     *string
	VendorID        *int64
	LocationID      *int64
	ProcurementDate *time.Time
	Notes           *string
}

// UpdateProcurement applies header-level changes to a procurement
func (s *ProcurementService) UpdateProcurement(ctx context.Context, id int64, input *UpdateProcurementInput) (*entity.Procurement, error) {
	current, err := s.procurementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Procurement")
	}

	updated := *current
	if input.ReferenceNo != nil {
		updated.ReferenceNo = *input.ReferenceNo
	}
	if input.VendorID != nil {
		updated.VendorID = *input.VendorID
	}
	if input.LocationID != nil {
		updated.LocationID = *input.LocationID
	}
	if input.ProcurementDate != nil {
		updated.ProcurementDate = *input.ProcurementDate
	}
	if input.Notes != nil {
		updated.Notes = *input.Notes
	}

	if err := s.validator.ValidateUpdate(ctx, current, &updated); err != nil {
		return nil, err
	}
	if err := s.procurementRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProcurement removes a procurement once no detail lines remain
func (s *ProcurementService) DeleteProcurement(ctx context.Context, id int64) error {
	procurement, err := s.procurementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if procurement == nil {
		return apperror.NewNotFoundError("Procurement")
	}

	if err := s.validator.ValidateDelete(ctx, procurement); err != nil {
		return err
	}
	return s.procurementRepo.Delete(ctx, id)
}

// ListProcurements lists procurements with filtering
func (s *ProcurementService) ListProcurements(ctx context.Context, params *repository.ProcurementFilterParams) (*pagination.PaginatedResult[entity.Procurement], error) {
	procurements, total, err := s.procurementRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(procurements, pag), nil
}

// AddProcurementDetail appends a line to a procurement. The parent's total
// shifts by the line total and the product's stock rises by the received
// quantity, all in one transaction.
func (s *ProcurementService) AddProcurementDetail(ctx context.Context, procurementID int64, input *ProcurementItemInput) (*entity.ProcurementDetail, error) {
	var result *entity.ProcurementDetail
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		procurement, err := s.procurementRepo.GetByID(ctx, procurementID)
		if err != nil {
			return err
		}
		if procurement == nil {
			return apperror.NewNotFoundError("Procurement")
		}

		product, err := s.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		detail := &entity.ProcurementDetail{
			ProcurementID: procurementID,
			ProductID:     input.ProductID,
			Quantity:      input.Quantity,
			PurchasePrice: input.PurchasePrice,
			LineTotal:     float64(input.Quantity) * input.PurchasePrice,
		}

		if err := s.detailValidator.ValidateAdd(ctx, procurement, product, detail); err != nil {
			return err
		}
		if err := s.detailValidator.ValidateTotalDelta(procurement, detail.LineTotal); err != nil {
			return err
		}

		if err := s.detailRepo.Create(ctx, detail); err != nil {
			return err
		}
		if err := s.procurementRepo.ApplyTotalDelta(ctx, procurementID, detail.LineTotal); err != nil {
			return err
		}
		if err := s.productRepo.IncrementStock(ctx, detail.ProductID, detail.Quantity); err != nil {
			return err
		}
		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateProcurementDetail changes the quantity or purchase price of a line.
// The parent's total shifts by the line-total difference and the product's
// stock by the quantity difference.
func (s *ProcurementService) UpdateProcurementDetail(ctx context.Context, procurementID, detailID int64, input *ProcurementItemInput) (*entity.ProcurementDetail, error) {
	var result *entity.ProcurementDetail
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		procurement, err := s.procurementRepo.GetByID(ctx, procurementID)
		if err != nil {
			return err
		}
		if procurement == nil {
			return apperror.NewNotFoundError("Procurement")
		}

		detail, err := s.detailRepo.GetByID(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil || detail.ProcurementID != procurementID {
			return apperror.NewNotFoundError("Procurement detail")
		}

		product, err := s.productRepo.GetByID(ctx, detail.ProductID)
		if err != nil {
			return err
		}

		oldQuantity := detail.Quantity
		oldLineTotal := detail.LineTotal

		updated := *detail
		updated.Quantity = input.Quantity
		if input.PurchasePrice != 0 {
			updated.PurchasePrice = input.PurchasePrice
		}
		updated.LineTotal = float64(updated.Quantity) * updated.PurchasePrice

		if err := s.detailValidator.ValidateUpdate(ctx, procurement, product, &updated); err != nil {
			return err
		}
		if err := s.detailValidator.ValidateTotalDelta(procurement, updated.LineTotal-oldLineTotal); err != nil {
			return err
		}

		if err := s.detailRepo.Update(ctx, &updated); err != nil {
			return err
		}
		if err := s.procurementRepo.ApplyTotalDelta(ctx, procurementID, updated.LineTotal-oldLineTotal); err != nil {
			return err
		}

		if diff := updated.Quantity - oldQuantity; diff > 0 {
			if err := s.productRepo.IncrementStock(ctx, updated.ProductID, diff); err != nil {
				return err
			}
		} else if diff < 0 {
			ok, err := s.productRepo.DecrementStock(ctx, updated.ProductID, -diff)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewConflictError(fmt.Sprintf(
					"Cannot reduce received quantity: product '%s' no longer holds the stock.", product.Name))
			}
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteProcurementDetail removes a line, shifting the parent's total down by
// the line total and taking the received quantity back out of stock.
func (s *ProcurementService) DeleteProcurementDetail(ctx context.Context, procurementID, detailID int64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		procurement, err := s.procurementRepo.GetByID(ctx, procurementID)
		if err != nil {
			return err
		}
		if procurement == nil {
			return apperror.NewNotFoundError("Procurement")
		}

		detail, err := s.detailRepo.GetByID(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil || detail.ProcurementID != procurementID {
			return apperror.NewNotFoundError("Procurement detail")
		}

		product, err := s.productRepo.GetByID(ctx, detail.ProductID)
		if err != nil {
			return err
		}

		ok, err := s.productRepo.DecrementStock(ctx, detail.ProductID, detail.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			name := fmt.Sprintf("%d", detail.ProductID)
			if product != nil {
				name = product.Name
			}
			return apperror.NewConflictError(fmt.Sprintf(
				"Cannot remove line: product '%s' no longer holds the received stock.", name))
		}

		if err := s.detailRepo.Delete(ctx, detail.ID); err != nil {
			return err
		}
		return s.procurementRepo.ApplyTotalDelta(ctx, procurementID, -detail.LineTotal)
	})
}
