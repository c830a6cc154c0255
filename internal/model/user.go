package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleCashier  Role = "CASHIER"
	RoleDriver   Role = "DRIVER"
	RoleOwner    Role = "OWNER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCashier, RoleDriver, RoleOwner:
		return true
	}
	return false
}

// IsStaff reports whether the role is one the owner provisions and may remove.
func (r Role) IsStaff() bool {
	return r == RoleCashier || r == RoleDriver
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"size:191;uniqueIndex;not null"`
	Password     *string   `json:"-" gorm:"size:128"`
	GoogleID     *string   `json:"googleId,omitempty" gorm:"column:google_id;size:64;index"`
	Name         string    `json:"name" gorm:"size:120;not null"`
	Role         Role      `json:"role" gorm:"size:16;not null;default:'CUSTOMER'"`
	Phone        string    `json:"phone" gorm:"size:32"`
	Address      string    `json:"address" gorm:"type:text"`
	Province     string    `json:"province" gorm:"size:64"`
	City         string    `json:"city" gorm:"size:64"`
	District     string    `json:"district" gorm:"size:64"`
	Village      string    `json:"village" gorm:"size:64"`
	PostalCode   string    `json:"postalCode" gorm:"size:16"`
	ProfileImage *string   `json:"profileImage,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
