package order

import (
	"context"

	"github.com/clipperroom/clipperroom-api/internal/models"
)

type ListFilter struct {
	Status string
	UserID *uint
}

type Repository interface {
	GetProducts(
		ctx context.Context,
		ids []uint,
	) (map[uint]models.Product, error)

	// CreateOrder persists the order and its items and decrements stock,
	// all inside one transaction with the product rows locked.
	// Insufficient stock at commit time aborts the whole thing.
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	GetOrder(
		ctx context.Context,
		id uint,
	) (*models.Order, error)

	UpdateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	ListOrders(
		ctx context.Context,
		f ListFilter,
	) ([]models.Order, error)
}
