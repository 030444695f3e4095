package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/httpresp"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// List returns registered customer accounts for the admin panel.
// Guest bookings and orders carry their own contact snapshot and do not
// show up here.
func (h *CustomerHandler) List(c *gin.Context) {
	query := c.Query("query")

	q := h.db.
		Model(&models.User{}).
		Where("role = ?", models.RoleCustomer)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var customers []models.User
	if err := q.Order("created_at DESC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Failed to list customers.")
		return
	}

	httpresp.List(c, customers)
}
