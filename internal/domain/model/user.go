package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAuthor   Role = "author"
	RoleAdmin    Role = "admin"
)

// 許可されたロールかどうか
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Image        string    `gorm:"type:varchar(1024)" json:"image"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreateDate   time.Time `gorm:"not null" json:"create_date"`
	LastLoggedIn time.Time `gorm:"not null" json:"last_loggedIn"`
}
