package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Number          string          `json:"number" gorm:"uniqueIndex;not null"`
	UserID          uint            `json:"user_id" gorm:"not null"`
	User            User            `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RestaurantID    uint            `json:"restaurant_id" gorm:"not null"`
	Restaurant      Restaurant      `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"not null;type:decimal(10,2)"`
	DeliveryAddress string          `json:"delivery_address" gorm:"not null"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null"`
	MenuItemID uint            `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null;default:1"`
	Price      decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2)"` // snapshot price at time of order
	Name       string          `json:"name"`                                     // snapshot name
}
