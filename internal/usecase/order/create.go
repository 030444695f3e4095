package order

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clipperroom/clipperroom-api/internal/audit"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/order"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/metrics"
	"github.com/clipperroom/clipperroom-api/internal/models"
	"github.com/clipperroom/clipperroom-api/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Items []domain.ItemRequest

	ShippingAddress string
	PaymentMethod   string

	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo     domain.Repository
	payments payments.Client
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewCreateOrder(
	repo domain.Repository,
	payments payments.Client,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *CreateOrder {
	return &CreateOrder{
		repo:     repo,
		payments: payments,
		audit:    audit,
		log:      log,
	}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.Order, error) {

	if err := validateInput(in); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := uc.repo.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items, total, err := domain.BuildItems(products, in.Items)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		Number:          uuid.NewString(),
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		Items:           items,
		Total:           total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          string(domain.StatusPending),
	}

	// All-or-nothing: stock re-check + decrement + order + items in one
	// transaction inside the repository.
	if err := uc.repo.CreateOrder(ctx, o); err != nil {
		var stockErr domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		return nil, err
	}

	metrics.IncOrderCreated()

	// A payment preference failing must not fail the order.
	if in.PaymentMethod == domain.PaymentCredit && uc.payments != nil {
		if ref, err := uc.payments.CreateCheckout(ctx, o); err != nil {
			uc.log.Warn().Err(err).Str("order", o.Number).Msg("checkout preference failed")
		} else {
			o.PaymentRef = ref
			if err := uc.repo.UpdateOrder(ctx, o); err != nil {
				uc.log.Warn().Err(err).Str("order", o.Number).Msg("failed to store payment ref")
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}

func validateInput(in CreateOrderInput) error {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return httperr.ErrBusiness("missing_name")
	case strings.TrimSpace(in.CustomerEmail) == "":
		return httperr.ErrBusiness("missing_email")
	case len(in.Items) == 0:
		return httperr.ErrBusiness("missing_items")
	case !domain.ValidPaymentMethod(in.PaymentMethod):
		return httperr.ErrBusiness("invalid_payment_method")
	}
	return nil
}
