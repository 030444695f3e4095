package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clipperroom/clipperroom-api/internal/domain/order"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) GetProducts(
	ctx context.Context,
	ids []uint,
) (map[uint]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// CreateOrder is the one multi-step transactional boundary in the system:
// lock each product row, re-check stock, decrement, then persist the order
// with its items. Any failure rolls the whole thing back.
func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for i := range o.Items {
			item := &o.Items[i]

			var p models.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, item.ProductID).Error; err != nil {
				return err
			}

			if p.Stock < item.Quantity {
				return domain.InsufficientStockError{
					ProductID: p.ID,
					Name:      p.Name,
					Available: p.Stock,
					Requested: item.Quantity,
				}
			}

			if err := tx.
				Model(&models.Product{}).
				Where("id = ?", p.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Create(o).Error
	})
}

func (r *OrderGormRepository) GetOrder(
	ctx context.Context,
	id uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Order, error) {

	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var orders []models.Order
	if err := q.
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
