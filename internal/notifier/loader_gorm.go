package notifier

import (
	"context"

	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/models"
	"github.com/clipperroom/clipperroom-api/internal/views"
)

// GormLoader resolves change-event row ids into full documents.
type GormLoader struct {
	db *gorm.DB
}

func NewGormLoader(db *gorm.DB) *GormLoader {
	return &GormLoader{db: db}
}

func (l *GormLoader) LoadBooking(ctx context.Context, id uint) (any, error) {
	var b models.Booking
	if err := l.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return views.Booking(&b), nil
}

func (l *GormLoader) LoadOrder(ctx context.Context, id uint) (any, error) {
	var o models.Order
	if err := l.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return o, nil
}

var _ DocLoader = (*GormLoader)(nil)
