package handler

import (
	"strconv"
	"time"

	"github.com/collinsdev/marketplace-api/internal/application/service"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/dto/response"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_direction"),
	}

	if orderIDStr := c.Query("order_id"); orderIDStr != "" {
		if orderID, err := strconv.ParseInt(orderIDStr, 10, 64); err == nil {
			params.OrderID = &orderID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.PaymentStatus(statusInt)
			params.Status = &status
		}
	}
	if methodStr := c.Query("method"); methodStr != "" {
		if methodInt, err := strconv.Atoi(methodStr); err == nil {
			method := enum.PaymentMethod(methodInt)
			params.Method = &method
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

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Create handles recording a payment against an order
func (h *PaymentHandler) Create(c *gin.Context) {
	var req struct {
		OrderID       int64              `json:"order_id" binding:"required"`
		Amount        float64            `json:"amount" binding:"required"`
		PaymentMethod enum.PaymentMethod `json:"payment_method"`
		Status        enum.PaymentStatus `json:"status"`
		PaymentDate   *time.Time         `json:"payment_date"`
		Reference     string             `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreatePaymentInput{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		Reference:     req.Reference,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// ListByOrder handles listing the payments of one order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.GetOrderPayments(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// Update handles updating a payment
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req struct {
		Amount        *float64            `json:"amount"`
		PaymentMethod *enum.PaymentMethod `json:"payment_method"`
		Status        *enum.PaymentStatus `json:"status"`
		PaymentDate   *time.Time          `json:"payment_date"`
		Reference     *string             `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), id, &service.UpdatePaymentInput{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		PaymentDate:   req.PaymentDate,
		Reference:     req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", payment)
}

// Delete handles deleting a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
