package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderPaid       OrderStatus = "PAID"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// orderTransitions is the authoritative lifecycle. COMPLETED and CANCELLED
// are terminal; CANCELLED is reachable from PENDING only.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderPaid, OrderCancelled},
	OrderPaid:       {OrderProcessing},
	OrderProcessing: {OrderDelivering},
	OrderDelivering: {OrderDelivered},
	OrderDelivered:  {OrderCompleted},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RevenueStatuses are the order statuses counted by every revenue
// aggregate: everything past payment confirmation.
var RevenueStatuses = []OrderStatus{
	OrderPaid, OrderProcessing, OrderDelivering, OrderDelivered, OrderCompleted,
}

func (s OrderStatus) RevenueEligible() bool {
	for _, rs := range RevenueStatuses {
		if s == rs {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID             string      `json:"id" gorm:"primaryKey;size:36"`
	UserID         string      `json:"userId" gorm:"column:user_id;size:36;index;not null"`
	User           *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MotorID        string      `json:"motorId" gorm:"column:motor_id;size:36;index;not null"`
	Motor          *Motor      `json:"motor,omitempty" gorm:"foreignKey:MotorID"`
	Quantity       int         `json:"quantity" gorm:"not null"`
	TotalPrice     int64       `json:"totalPrice" gorm:"not null"`
	Status         OrderStatus `json:"status" gorm:"size:16;not null;default:'PENDING';index"`
	PaymentMethod  string      `json:"paymentMethod" gorm:"size:32;not null;default:'CASH'"`
	CashierID      *string     `json:"cashierId,omitempty" gorm:"column:cashier_id;size:36"`
	Cashier        *User       `json:"cashier,omitempty" gorm:"foreignKey:CashierID"`
	ShippingCost   int64       `json:"shippingCost" gorm:"not null;default:0"`
	ShippingAddr   string      `json:"shippingAddress" gorm:"column:shipping_address;type:text"`
	ShippingProv   string      `json:"shippingProvince" gorm:"column:shipping_province;size:64"`
	ShippingCity   string      `json:"shippingCity" gorm:"column:shipping_city;size:64"`
	ShippingDist   string      `json:"shippingDistrict" gorm:"column:shipping_district;size:64"`
	ShippingVill   string      `json:"shippingVillage" gorm:"column:shipping_village;size:64"`
	ShippingPostal string      `json:"shippingPostalCode" gorm:"column:shipping_postal_code;size:16"`
	ShippingPhone  string      `json:"shippingPhone" gorm:"column:shipping_phone;size:32"`
	Latitude       *float64    `json:"latitude,omitempty"`
	Longitude      *float64    `json:"longitude,omitempty"`
	VirtualAccount *string     `json:"virtualAccount,omitempty" gorm:"column:virtual_account;size:64"`
	Delivery       *Delivery   `json:"delivery,omitempty" gorm:"foreignKey:TransactionID"`
	CreatedAt      time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
