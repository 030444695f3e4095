package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

func catalog() map[uint]models.Product {
	return map[uint]models.Product{
		1: {ID: 1, Name: "Pomade", Price: 18.50, Stock: 5},
		2: {ID: 2, Name: "Beard Oil", Price: 12.00, Stock: 1},
	}
}

func TestBuildItems(t *testing.T) {
	t.Run("freezes price and totals", func(t *testing.T) {
		items, total, err := BuildItems(catalog(), []ItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 18.50, items[0].UnitPrice)
		assert.Equal(t, 12.00, items[1].UnitPrice)
		assert.InDelta(t, 49.00, total, 0.001)
	})

	t.Run("insufficient stock names the product", func(t *testing.T) {
		_, _, err := BuildItems(catalog(), []ItemRequest{
			{ProductID: 2, Quantity: 2},
		})

		var stockErr InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, uint(2), stockErr.ProductID)
		assert.Equal(t, "Beard Oil", stockErr.Name)
		assert.Equal(t, 1, stockErr.Available)
		assert.Equal(t, 2, stockErr.Requested)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, err := BuildItems(catalog(), []ItemRequest{
			{ProductID: 99, Quantity: 1},
		})

		require.Error(t, err)
		var stockErr InsufficientStockError
		assert.False(t, errors.As(err, &stockErr))
	})

	t.Run("exact stock passes", func(t *testing.T) {
		items, total, err := BuildItems(catalog(), []ItemRequest{
			{ProductID: 2, Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.InDelta(t, 12.00, total, 0.001)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Run("cancel while pending", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		require.NoError(t, SetStatus(o, StatusCancelled))
		assert.Equal(t, string(StatusCancelled), o.Status)
	})

	t.Run("cancel while processing", func(t *testing.T) {
		o := &models.Order{Status: string(StatusProcessing)}
		require.NoError(t, SetStatus(o, StatusCancelled))
		assert.Equal(t, string(StatusCancelled), o.Status)
	})

	t.Run("shipped refuses cancel", func(t *testing.T) {
		o := &models.Order{Status: string(StatusShipped)}
		require.Error(t, SetStatus(o, StatusCancelled))
		assert.Equal(t, string(StatusShipped), o.Status)
	})

	t.Run("delivered refuses cancel", func(t *testing.T) {
		o := &models.Order{Status: string(StatusDelivered)}
		require.Error(t, SetStatus(o, StatusCancelled))
	})

	t.Run("forward flow", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		for _, s := range []Status{StatusProcessing, StatusShipped, StatusDelivered} {
			require.NoError(t, SetStatus(o, s))
			assert.Equal(t, string(s), o.Status)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		o := &models.Order{Status: string(StatusPending)}
		require.Error(t, SetStatus(o, Status("returned")))
	})

	t.Run("delivered cannot move backward", func(t *testing.T) {
		o := &models.Order{Status: string(StatusDelivered)}
		err := SetStatus(o, StatusPending)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, string(StatusDelivered), o.Status)
	})

	t.Run("shipped cannot return to processing", func(t *testing.T) {
		o := &models.Order{Status: string(StatusShipped)}
		require.Error(t, SetStatus(o, StatusProcessing))
		assert.Equal(t, string(StatusShipped), o.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		o := &models.Order{Status: string(StatusShipped)}
		require.NoError(t, SetStatus(o, StatusShipped))
		assert.Equal(t, string(StatusShipped), o.Status)
	})

	t.Run("cancelled is final", func(t *testing.T) {
		o := &models.Order{Status: string(StatusCancelled)}
		require.Error(t, SetStatus(o, StatusProcessing))
		require.Error(t, SetStatus(o, StatusCancelled))
		assert.Equal(t, string(StatusCancelled), o.Status)
	})
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentCredit))
	assert.True(t, ValidPaymentMethod(PaymentPaypal))
	assert.True(t, ValidPaymentMethod(PaymentCashOnDelivery))
	assert.False(t, ValidPaymentMethod("bitcoin"))
	assert.False(t, ValidPaymentMethod(""))
}
