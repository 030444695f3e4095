package payments

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/clipperroom/clipperroom-api/internal/models"
)

// Client creates an external checkout for an order and returns a payment
// reference. Optional: a nil Client disables online payment entirely.
type Client interface {
	CreateCheckout(ctx context.Context, o *models.Order) (string, error)
}

type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, o *models.Order) (string, error) {
	items := make([]preference.ItemRequest, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, preference.ItemRequest{
			ID:        strconv.FormatUint(uint64(it.ProductID), 10),
			Title:     it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	resp, err := m.prefs.Create(ctx, preference.Request{
		Items:             items,
		ExternalReference: o.Number,
	})
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

var _ Client = (*MercadoPago)(nil)
