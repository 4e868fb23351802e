package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer order. Product data is copied in at checkout and is
// not linked to the dashboard table.
type Order struct {
	ID                 uint            `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProductID          uint            `json:"product_id" gorm:"column:product_id"`
	UserName           *string         `json:"user_name" gorm:"column:user_name;type:varchar(255)"`
	Phone              *string         `json:"phone" gorm:"column:phone;type:varchar(32)"`
	ProductName        *string         `json:"product_name" gorm:"column:product_name;type:varchar(255)"`
	ProductURL         *string         `json:"product_url" gorm:"column:product_url;type:varchar(1024)"`
	ProductDescription *string         `json:"description" gorm:"column:description;type:text"`
	Price              decimal.Decimal `json:"price" gorm:"column:price;type:decimal(10,2)"`
	Address            *string         `json:"address" gorm:"column:address;type:text"`
	PaymentMethod      *string         `json:"payment_method" gorm:"column:payment_method;type:varchar(64)"`
	OrderDate          time.Time       `json:"order_date" gorm:"column:order_date;autoCreateTime"`
}

// TableName returns the orders table name.
func (Order) TableName() string {
	return "orders"
}

// Order event types published after a successful write.
const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
	OrderDeleted = "order.deleted"
)

// OrderEvent describes a change to an order.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Order      *Order    `json:"order,omitempty"`
}

// OrderContact holds the only order columns that can change after checkout.
type OrderContact struct {
	UserName      *string
	Phone         *string
	Address       *string
	PaymentMethod *string
}
