package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clipperroom/clipperroom-api/internal/audit"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/order"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/httpresp"
	"github.com/clipperroom/clipperroom-api/internal/middleware"
	ucOrder "github.com/clipperroom/clipperroom-api/internal/usecase/order"
)

type OrderHandler struct {
	createUC *ucOrder.CreateOrder
	repo     domain.Repository
	audit    *audit.Dispatcher
}

func NewOrderHandler(
	createUC *ucOrder.CreateOrder,
	repo domain.Repository,
	audit *audit.Dispatcher,
) *OrderHandler {
	return &OrderHandler{
		createUC: createUC,
		repo:     repo,
		audit:    audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone"`

	Items []domain.ItemRequest `json:"items" binding:"required,dive"`

	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

type SetOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid order data.")
		return
	}

	o, err := h.createUC.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		UserID:          middleware.CallerID(c),
	})
	if err != nil {
		var stockErr domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			httperr.WriteDetails(c, http.StatusConflict,
				"insufficient_stock", "Not enough stock for an item.", stockErr)
			return
		}

		for _, code := range []string{"missing_name", "missing_email", "missing_items", "invalid_payment_method"} {
			if httperr.IsBusiness(err, code) {
				httperr.BadRequest(c, code, "Invalid order data.")
				return
			}
		}

		httperr.Internal(c, "failed_to_create_order", "Failed to create order.")
		return
	}

	httpresp.Created(c, o)
}

// ======================================================
// STATUS / CANCEL (staff; cancel also for the owner)
// ======================================================

func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid order id.")
		return
	}

	var req SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	o, err := h.repo.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	}

	if err := domain.SetStatus(o, domain.Status(req.Status)); err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown order status.")
		default:
			httperr.BadRequest(c, "invalid_state", "Invalid status transition.")
		}
		return
	}

	if err := h.repo.UpdateOrder(c.Request.Context(), o); err != nil {
		httperr.Internal(c, "failed_to_update_status", "Failed to update status.")
		return
	}

	staffID := middleware.CallerID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   staffID,
		Action:   "order_status_" + req.Status,
		Entity:   "order",
		EntityID: &o.ID,
	})

	httpresp.OK(c, o)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid order id.")
		return
	}

	o, err := h.repo.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	}

	callerID := middleware.CallerID(c)
	if !middleware.CallerIsStaff(c) {
		if callerID == nil || o.UserID == nil || *o.UserID != *callerID {
			httperr.Forbidden(c, "not_owner", "You may only cancel your own orders.")
			return
		}
	}

	if err := domain.CanCancel(domain.Status(o.Status)); err != nil {
		httperr.BadRequest(c, "invalid_state", "This order cannot be cancelled.")
		return
	}

	o.Status = string(domain.StatusCancelled)
	if err := h.repo.UpdateOrder(c.Request.Context(), o); err != nil {
		httperr.Internal(c, "failed_to_cancel", "Failed to cancel order.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   callerID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})

	httpresp.OK(c, o)
}

// ======================================================
// LIST
// ======================================================

func (h *OrderHandler) ListAdmin(c *gin.Context) {
	orders, err := h.repo.ListOrders(c.Request.Context(), domain.ListFilter{
		Status: c.Query("status"),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Failed to list orders.")
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.repo.ListOrders(c.Request.Context(), domain.ListFilter{
		UserID: middleware.CallerID(c),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Failed to list orders.")
		return
	}

	httpresp.List(c, orders)
}
