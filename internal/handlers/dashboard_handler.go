package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

const (
	statsCacheKey = "clipperroom:dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	db    *gorm.DB
	cache *redis.Client
	loc   *time.Location
}

// NewDashboardHandler builds the stats endpoint. cache may be nil, in
// which case every request hits the database.
func NewDashboardHandler(db *gorm.DB, cache *redis.Client, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cache, loc: loc}
}

type DashboardStats struct {
	BookingsToday    map[string]int64 `json:"bookings_today"`
	PendingOrders    int64            `json:"pending_orders"`
	DeliveredRevenue float64          `json:"delivered_revenue"`
	Customers        int64            `json:"customers"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.cache != nil {
		if raw, err := h.cache.Get(c.Request.Context(), statsCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(raw), &stats) == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	stats, err := h.collect()
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Failed to load dashboard stats.")
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			h.cache.Set(c.Request.Context(), statsCacheKey, raw, statsCacheTTL)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) collect() (*DashboardStats, error) {
	today := time.Now().In(h.loc).Format("2006-01-02")

	stats := &DashboardStats{
		BookingsToday: map[string]int64{},
		GeneratedAt:   time.Now().In(h.loc),
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	if err := h.db.
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("date = ?", today).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, sc := range counts {
		stats.BookingsToday[sc.Status] = sc.Count
	}

	if err := h.db.
		Model(&models.Order{}).
		Where("status = ?", "pending").
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	if err := h.db.
		Model(&models.Order{}).
		Where("status = ?", "delivered").
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.DeliveredRevenue).Error; err != nil {
		return nil, err
	}

	if err := h.db.
		Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&stats.Customers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
