package handler

import (
	"strconv"
	"time"

	"github.com/collinsdev/marketplace-api/internal/application/service"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/dto/response"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// ProcurementHandler handles procurement-related HTTP requests
type ProcurementHandler struct {
	procurementService *service.ProcurementService
}

// NewProcurementHandler creates a new procurement handler
func NewProcurementHandler(procurementService *service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurementService: procurementService}
}

// List handles listing procurements
func (h *ProcurementHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ProcurementFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_direction"),
	}

	if vendorIDStr := c.Query("vendor_id"); vendorIDStr != "" {
		if vendorID, err := strconv.ParseInt(vendorIDStr, 10, 64); err == nil {
			params.VendorID = &vendorID
		}
	}
	if locationIDStr := c.Query("location_id"); locationIDStr != "" {
		if locationID, err := strconv.ParseInt(locationIDStr, 10, 64); err == nil {
			params.LocationID = &locationID
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}
	if minAmountStr := c.Query("min_amount"); minAmountStr != "" {
		if minAmount, err := strconv.ParseFloat(minAmountStr, 64); err == nil {
			params.MinAmount = &minAmount
		}
	}
	if maxAmountStr := c.Query("max_amount"); maxAmountStr != "" {
		if maxAmount, err := strconv.ParseFloat(maxAmountStr, 64); err == nil {
			params.MaxAmount = &maxAmount
		}
	}

	result, err := h.procurementService.ListProcurements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Procurements retrieved successfully", result)
}

// Create handles creating a procurement
func (h *ProcurementHandler) Create(c *gin.Context) {
	var req struct {
		ReferenceNo     string     `json:"reference_no"`
		VendorID        int64      `json:"vendor_id" binding:"required"`
		LocationID      int64      `json:"location_id" binding:"required"`
		ProcurementDate *time.Time `json:"procurement_date"`
		Notes           string     `json:"notes"`
		Items           []struct {
			ProductID     int64   `json:"product_id" binding:"required"`
			Quantity      int     `json:"quantity" binding:"required"`
			PurchasePrice float64 `json:"purchase_price" binding:"required"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.ProcurementItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ProcurementItemInput{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
		}
	}

	input := &service.CreateProcurementInput{
		ReferenceNo: req.ReferenceNo,
		VendorID:    req.VendorID,
		LocationID:  req.LocationID,
		Notes:       req.Notes,
		Items:       items,
	}
	if req.ProcurementDate != nil {
		input.ProcurementDate = *req.ProcurementDate
	}

	procurement, err := h.procurementService.CreateProcurement(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Procurement created successfully", procurement)
}

// Get handles getting a single procurement
func (h *ProcurementHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}

	procurement, err := h.procurementService.GetProcurement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procurement retrieved successfully", procurement)
}

// Update handles updating procurement header fields
func (h *ProcurementHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req struct {
		ReferenceNo     *string    `json:"reference_no"`
		VendorID        *int64     `json:"vendor_id"`
		LocationID      *int64     `json:"location_id"`
		ProcurementDate *time.Time `json:"procurement_date"`
		Notes           *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	procurement, err := h.procurementService.UpdateProcurement(c.Request.Context(), id, &service.UpdateProcurementInput{
		ReferenceNo:     req.ReferenceNo,
		VendorID:        req.VendorID,
		LocationID:      req.LocationID,
		ProcurementDate: req.ProcurementDate,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procurement updated successfully", procurement)
}

// Delete handles deleting a procurement
func (h *ProcurementHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}

	if err := h.procurementService.DeleteProcurement(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddDetail handles appending a line to a procurement
func (h *ProcurementHandler) AddDetail(c *gin.Context) {
	procurementID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req struct {
		ProductID     int64   `json:"product_id" binding:"required"`
		Quantity      int     `json:"quantity" binding:"required"`
		PurchasePrice float64 `json:"purchase_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.procurementService.AddProcurementDetail(c.Request.Context(), procurementID, &service.ProcurementItemInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Procurement detail added successfully", detail)
}

// UpdateDetail handles updating a procurement line
func (h *ProcurementHandler) UpdateDetail(c *gin.Context) {
	procurementID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}
	detailID, ok := ParseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid procurement detail ID")
		return
	}

	var req struct {
		Quantity      int     `json:"quantity" binding:"required"`
		PurchasePrice float64 `json:"purchase_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.procurementService.UpdateProcurementDetail(c.Request.Context(), procurementID, detailID, &service.ProcurementItemInput{
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procurement detail updated successfully", detail)
}

// DeleteDetail handles removing a procurement line
func (h *ProcurementHandler) DeleteDetail(c *gin.Context) {
	procurementID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid procurement ID")
		return
	}
	detailID, ok := ParseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid procurement detail ID")
		return
	}

	if err := h.procurementService.DeleteProcurementDetail(c.Request.Context(), procurementID, detailID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
