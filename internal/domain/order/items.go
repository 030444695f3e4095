package order

import (
	"fmt"

	"github.com/clipperroom/clipperroom-api/internal/models"
)

type ItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// InsufficientStockError names the first line item that cannot be filled.
type InsufficientStockError struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %d (%s): have %d, want %d",
		e.ProductID, e.Name, e.Available, e.Requested,
	)
}

// BuildItems turns item requests into order lines, freezing each product's
// current price, and verifies stock. Returns the lines and the order total.
// Pure: the stock decrement happens later, inside the store transaction.
func BuildItems(products map[uint]models.Product, reqs []ItemRequest) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	total := 0.0

	for _, req := range reqs {
		p, ok := products[req.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product %d not found", req.ProductID)
		}

		if p.Stock < req.Quantity {
			return nil, 0, InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.Stock,
				Requested: req.Quantity,
			}
		}

		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  req.Quantity,
			UnitPrice: p.Price,
		})
		total += p.Price * float64(req.Quantity)
	}

	return items, total, nil
}
