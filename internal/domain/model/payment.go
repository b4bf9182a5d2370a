package model

import "time"

type Payment struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID       string    `gorm:"type:varchar(36);not null;index" json:"orderId"`
	TransactionID string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"transactionId"`
	BookName      string    `gorm:"type:varchar(255);not null" json:"bookName"`
	AuthorName    string    `gorm:"type:varchar(255);not null" json:"authorName"`
	AuthorEmail   string    `gorm:"type:varchar(255);not null;index" json:"authorEmail"`
	CustomerEmail string    `gorm:"type:varchar(255);not null;index" json:"customerEmail"`
	CustomerName  string    `gorm:"type:varchar(255)" json:"customerName"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	Price         float64   `gorm:"not null" json:"price"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
}
