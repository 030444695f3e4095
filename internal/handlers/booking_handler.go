package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/httpresp"
	"github.com/clipperroom/clipperroom-api/internal/middleware"
	ucBooking "github.com/clipperroom/clipperroom-api/internal/usecase/booking"
	"github.com/clipperroom/clipperroom-api/internal/views"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC    *ucBooking.CreateBooking
	cancelUC    *ucBooking.CancelBooking
	setStatusUC *ucBooking.SetBookingStatus
	slotsUC     *ucBooking.GetSlotStatus
	repo        domain.Repository
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	setStatusUC *ucBooking.SetBookingStatus,
	slotsUC *ucBooking.GetSlotStatus,
	repo domain.Repository,
) *BookingHandler {
	return &BookingHandler{
		createUC:    createUC,
		cancelUC:    cancelUC,
		setStatusUC: setStatusUC,
		slotsUC:     slotsUC,
		repo:        repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type SetBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// SLOT STATUS
// ======================================================

func (h *BookingHandler) SlotStatus(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barberId"), 10, 64)
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "missing_barber", "barberId is required.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	var serviceIDs []uint
	if raw := strings.TrimSpace(c.Query("services")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				httperr.BadRequest(c, "invalid_services", "services must be a comma-separated id list.")
				return
			}
			serviceIDs = append(serviceIDs, uint(id))
		}
	}

	statuses, err := h.slotsUC.Execute(c.Request.Context(), ucBooking.SlotStatusInput{
		BarberID:   uint(barberID),
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		if httperr.IsBusiness(err, "barber_not_found") {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_compute_slots", "Failed to compute availability.")
		return
	}

	httpresp.List(c, statuses)
}

// ======================================================
// CREATE
// ======================================================

var createBookingErrors = map[string]func(*gin.Context){
	"missing_barber":       func(c *gin.Context) { httperr.BadRequest(c, "missing_barber", "Barber is required.") },
	"missing_services":     func(c *gin.Context) { httperr.BadRequest(c, "missing_services", "At least one service is required.") },
	"missing_name":         func(c *gin.Context) { httperr.BadRequest(c, "missing_name", "Name is required.") },
	"missing_email":        func(c *gin.Context) { httperr.BadRequest(c, "missing_email", "Email is required.") },
	"missing_phone":        func(c *gin.Context) { httperr.BadRequest(c, "missing_phone", "Phone is required.") },
	"missing_date_or_time": func(c *gin.Context) { httperr.BadRequest(c, "missing_date_or_time", "Date and time are required.") },
	"invalid_date_or_time": func(c *gin.Context) { httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.") },
	"too_soon":             func(c *gin.Context) { httperr.BadRequest(c, "too_soon", "This slot is in the past or too soon.") },
	"barber_not_found":     func(c *gin.Context) { httperr.NotFound(c, "barber_not_found", "Barber not found.") },
	"service_not_found":    func(c *gin.Context) { httperr.BadRequest(c, "service_not_found", "Unknown service selected.") },
	"slot_taken":           func(c *gin.Context) { httperr.Conflict(c, "slot_taken", "This slot is no longer available.") },
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:      req.BarberID,
		ServiceIDs:    req.ServiceIDs,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		UserID:        middleware.CallerID(c),
	})
	if err != nil {
		for code, write := range createBookingErrors {
			if httperr.IsBusiness(err, code) {
				write(c)
				return
			}
		}
		httperr.Internal(c, "failed_to_create_booking", "Failed to create booking.")
		return
	}

	httpresp.Created(c, views.Booking(b))
}

// ======================================================
// CANCEL (owner or staff)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(
		c.Request.Context(),
		uint(id),
		middleware.CallerID(c),
		middleware.CallerIsStaff(c),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "not_owner"):
			httperr.Forbidden(c, "not_owner", "You may only cancel your own bookings.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "This booking cannot be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel", "Failed to cancel booking.")
		}
		return
	}

	httpresp.OK(c, views.Booking(b))
}

// ======================================================
// SET STATUS (staff)
// ======================================================

func (h *BookingHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req SetBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	b, err := h.setStatusUC.Execute(
		c.Request.Context(),
		uint(id),
		req.Status,
		middleware.CallerID(c),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Invalid status transition.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Failed to update status.")
		}
		return
	}

	httpresp.OK(c, views.Booking(b))
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListAdmin(c *gin.Context) {
	f := domain.ListFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}
	if v, err := strconv.ParseUint(c.Query("barberId"), 10, 64); err == nil {
		f.BarberID = uint(v)
	}

	bookings, err := h.repo.ListBookings(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, views.Bookings(bookings))
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := middleware.CallerID(c)

	bookings, err := h.repo.ListBookings(c.Request.Context(), domain.ListFilter{
		UserID: userID,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, views.Bookings(bookings))
}
