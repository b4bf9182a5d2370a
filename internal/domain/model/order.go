package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Order struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	BookID        string        `gorm:"type:varchar(36);not null;index" json:"bookId"`
	BookName      string        `gorm:"type:varchar(255);not null" json:"bookName"`
	AuthorName    string        `gorm:"type:varchar(255);not null" json:"authorName"`
	AuthorEmail   string        `gorm:"type:varchar(255);not null;index" json:"authorEmail"`
	CustomerEmail string        `gorm:"type:varchar(255);not null;index" json:"customerEmail"`
	CustomerName  string        `gorm:"type:varchar(255)" json:"customerName"`
	Price         float64       `gorm:"not null" json:"price"`
	Quantity      int64         `gorm:"not null" json:"quantity"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	OrderDate     time.Time     `gorm:"not null" json:"order_date"`
}
