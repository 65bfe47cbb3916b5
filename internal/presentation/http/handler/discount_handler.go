package handler

import (
	"time"

	"github.com/collinsdev/marketplace-api/internal/application/service"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DiscountHandler handles discount-related HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	result, err := h.discountService.ListDiscounts(c.Request.Context(), partnerFilterParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Discounts retrieved successfully", result)
}

type discountRequest struct {
	DiscountCode string     `json:"discount_code"`
	Percentage   float64    `json:"percentage"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	LocationID   *int64     `json:"location_id"`
	VendorID     *int64     `json:"vendor_id"`
	IsActive     *bool      `json:"is_active"`
}

// Create handles creating a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), &service.DiscountInput{
		DiscountCode: req.DiscountCode,
		Percentage:   req.Percentage,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		LocationID:   req.LocationID,
		VendorID:     req.VendorID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", discount)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", discount)
}

// Update handles updating a discount
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), id, &service.DiscountInput{
		DiscountCode: req.DiscountCode,
		Percentage:   req.Percentage,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		LocationID:   req.LocationID,
		VendorID:     req.VendorID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", discount)
}

// Delete handles deleting a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
