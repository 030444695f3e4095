package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number string `gorm:"size:36;uniqueIndex;not null" json:"number"`

	// Guest checkout leaves UserID nil; the snapshot below is authoritative.
	UserID *uint `json:"user_id"`
	User   User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	Total           float64 `json:"total"`
	ShippingAddress string  `gorm:"size:255" json:"shipping_address"`

	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	PaymentRef    string `gorm:"size:255" json:"payment_ref,omitempty"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index" json:"order_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity int `gorm:"not null" json:"quantity"`

	// Price at purchase time; later product price changes do not touch it.
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
