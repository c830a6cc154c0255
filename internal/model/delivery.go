package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryOnTheWay  DeliveryStatus = "ON_THE_WAY"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
)

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryTransitions[s]
	return ok
}

// deliveryTransitions is strictly linear: no backward moves, no skipping.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:   {DeliveryPickedUp},
	DeliveryPickedUp:  {DeliveryOnTheWay},
	DeliveryOnTheWay:  {DeliveryDelivered},
	DeliveryDelivered: {},
}

func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveDeliveryStatuses are the in-flight states counted by dashboard stats.
var ActiveDeliveryStatuses = []DeliveryStatus{
	DeliveryPending, DeliveryPickedUp, DeliveryOnTheWay,
}

type Delivery struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	TransactionID string         `json:"transactionId" gorm:"column:transaction_id;size:36;uniqueIndex;not null"`
	Transaction   *Transaction   `json:"transaction,omitempty" gorm:"foreignKey:TransactionID"`
	DriverID      string         `json:"driverId" gorm:"column:driver_id;size:36;index;not null"`
	Driver        *User          `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Address       string         `json:"address" gorm:"type:text;not null"`
	Status        DeliveryStatus `json:"status" gorm:"size:16;not null;default:'PENDING';index"`
	Notes         *string        `json:"notes,omitempty" gorm:"type:text"`
	DeliveredAt   *time.Time     `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
