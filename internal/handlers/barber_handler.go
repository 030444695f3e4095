package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/httpresp"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name           string            `json:"name" binding:"required"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Description    string            `json:"description"`
	Specialization string            `json:"specialization"`
	ImageURL       string            `json:"image_url"`
	WorkingDays    models.WeekdayMap `json:"working_days"`
	StartTime      string            `json:"start_time"`
	EndTime        string            `json:"end_time"`
}

type UpdateBarberRequest struct {
	Name           *string            `json:"name,omitempty"`
	Email          *string            `json:"email,omitempty"`
	Phone          *string            `json:"phone,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Specialization *string            `json:"specialization,omitempty"`
	ImageURL       *string            `json:"image_url,omitempty"`
	WorkingDays    *models.WeekdayMap `json:"working_days,omitempty"`
	StartTime      *string            `json:"start_time,omitempty"`
	EndTime        *string            `json:"end_time,omitempty"`
	Active         *bool              `json:"active,omitempty"`
}

// --------- Handlers ---------

// ListPublic returns only active barbers for the customer site.
func (h *BarberHandler) ListPublic(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("active = ?", true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barber data.")
		return
	}

	barber := models.Barber{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Description:    req.Description,
		Specialization: req.Specialization,
		ImageURL:       req.ImageURL,
		WorkingDays:    req.WorkingDays,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Active:         true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Failed to create barber.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barber data.")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Email != nil {
		barber.Email = *req.Email
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Description != nil {
		barber.Description = *req.Description
	}
	if req.Specialization != nil {
		barber.Specialization = *req.Specialization
	}
	if req.ImageURL != nil {
		barber.ImageURL = *req.ImageURL
	}
	if req.WorkingDays != nil {
		barber.WorkingDays = *req.WorkingDays
	}
	if req.StartTime != nil {
		barber.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		barber.EndTime = *req.EndTime
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to update barber.")
		return
	}

	httpresp.OK(c, barber)
}
