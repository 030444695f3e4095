package order

import (
	"time"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

const (
	PaymentCredit         = "credit"
	PaymentPaypal         = "paypal"
	PaymentCashOnDelivery = "cash_on_delivery"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCredit, PaymentPaypal, PaymentCashOnDelivery:
		return true
	}
	return false
}

// statusRank orders the fulfilment flow pending -> processing -> shipped
// -> delivered. Cancelled sits outside the flow.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// CanCancel: an order may be cancelled only while pending or processing.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusProcessing {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func Cancel(o *models.Order, _ time.Time) error {
	if err := CanCancel(Status(o.Status)); err != nil {
		return err
	}
	o.Status = string(StatusCancelled)
	return nil
}

func SetStatus(o *models.Order, target Status) error {
	if !ValidStatus(target) {
		return httperr.ErrBusiness("invalid_status")
	}
	current := Status(o.Status)
	if target == StatusCancelled {
		if err := CanCancel(current); err != nil {
			return err
		}
		o.Status = string(target)
		return nil
	}
	// Cancelled orders are final, and the flow only moves forward.
	if current == StatusCancelled || statusRank[target] < statusRank[current] {
		return httperr.ErrBusiness("invalid_state")
	}
	o.Status = string(target)
	return nil
}
