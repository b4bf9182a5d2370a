package model

import "time"

type BookStatus string

const (
	BookStatusPending     BookStatus = "pending"
	BookStatusPublished   BookStatus = "published"
	BookStatusUnpublished BookStatus = "unpublished"
)

func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusPending, BookStatusPublished, BookStatusUnpublished:
		return true
	}
	return false
}

type Book struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	AuthorName   string     `gorm:"type:varchar(255);not null" json:"authorName"`
	AuthorEmail  string     `gorm:"type:varchar(255);not null;index" json:"authorEmail"`
	CustomerName string     `gorm:"type:varchar(255)" json:"customerName,omitempty"`
	Image        string     `gorm:"type:varchar(1024)" json:"image"`
	Description  string     `gorm:"type:text" json:"description"`
	Price        float64    `gorm:"not null" json:"price"`
	Quantity     int64      `gorm:"not null" json:"quantity"`
	Status       BookStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreateDate   time.Time  `gorm:"not null;index" json:"create_date"`
}
