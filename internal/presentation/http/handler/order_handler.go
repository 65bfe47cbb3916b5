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

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_direction"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}
	if locationIDStr := c.Query("location_id"); locationIDStr != "" {
		if locationID, err := strconv.ParseInt(locationIDStr, 10, 64); err == nil {
			params.LocationID = &locationID
		}
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseInt(userIDStr, 10, 64); err == nil {
			params.UserID = &userID
		}
	}
	if discountIDStr := c.Query("discount_id"); discountIDStr != "" {
		if discountID, err := strconv.ParseInt(discountIDStr, 10, 64); err == nil {
			params.DiscountID = &discountID
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
	if minTotalStr := c.Query("min_total"); minTotalStr != "" {
		if minTotal, err := strconv.ParseFloat(minTotalStr, 64); err == nil {
			params.MinTotal = &minTotal
		}
	}
	if maxTotalStr := c.Query("max_total"); maxTotalStr != "" {
		if maxTotal, err := strconv.ParseFloat(maxTotalStr, 64); err == nil {
			params.MaxTotal = &maxTotal
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

func (h *OrderHandler) listWithCursor(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
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

	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		OrderNumber    string     `json:"order_number"`
		OrderDate      *time.Time `json:"order_date"`
		LocationID     int64      `json:"location_id" binding:"required"`
		DiscountID     *int64     `json:"discount_id"`
		DiscountAmount float64    `json:"discount_amount"`
		CustomerName   string     `json:"customer_name"`
		CustomerPhone  string     `json:"customer_phone"`
		Notes          string     `json:"notes"`
		Items          []struct {
			ProductID int64   `json:"product_id" binding:"required"`
			Quantity  int     `json:"quantity" binding:"required"`
			UnitPrice float64 `json:"unit_price"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	input := &service.CreateOrderInput{
		OrderNumber:    req.OrderNumber,
		LocationID:     req.LocationID,
		UserID:         *userID,
		DiscountID:     req.DiscountID,
		DiscountAmount: req.DiscountAmount,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		Items:          items,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles updating order header fields
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		OrderNumber    *string           `json:"order_number"`
		OrderDate      *time.Time        `json:"order_date"`
		Status         *enum.OrderStatus `json:"status"`
		DiscountAmount *float64          `json:"discount_amount"`
		CustomerName   *string           `json:"customer_name"`
		CustomerPhone  *string           `json:"customer_phone"`
		Notes          *string           `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, &service.UpdateOrderInput{
		OrderNumber:    req.OrderNumber,
		OrderDate:      req.OrderDate,
		Status:         req.Status,
		DiscountAmount: req.DiscountAmount,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddDetail handles appending a line to an order
func (h *OrderHandler) AddDetail(c *gin.Context) {
	orderID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		ProductID int64   `json:"product_id" binding:"required"`
		Quantity  int     `json:"quantity" binding:"required"`
		UnitPrice float64 `json:"unit_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.orderService.AddOrderDetail(c.Request.Context(), orderID, &service.OrderDetailInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order detail added successfully", detail)
}

// UpdateDetail handles updating an order line
func (h *OrderHandler) UpdateDetail(c *gin.Context) {
	orderID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	detailID, ok := ParseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid order detail ID")
		return
	}

	var req struct {
		Quantity  int     `json:"quantity" binding:"required"`
		UnitPrice float64 `json:"unit_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.orderService.UpdateOrderDetail(c.Request.Context(), orderID, detailID, &service.OrderDetailInput{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order detail updated successfully", detail)
}

// DeleteDetail handles removing an order line
func (h *OrderHandler) DeleteDetail(c *gin.Context) {
	orderID, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	detailID, ok := ParseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid order detail ID")
		return
	}

	if err := h.orderService.DeleteOrderDetail(c.Request.Context(), orderID, detailID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
