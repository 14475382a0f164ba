package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	CustomerName  string `json:"customerName" gorm:"size:200;not null"`
	CustomerEmail string `json:"customerEmail" gorm:"size:200;not null;index"`

	Status     string  `json:"status" gorm:"size:20;default:'pending';index"` // pending | paid | shipped | cancelled
	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency" gorm:"size:3;default:'EUR'"`

	ShippingAddress string `json:"shippingAddress" gorm:"type:text"`
	Notes           string `json:"notes" gorm:"type:text"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderID" gorm:"not null;index"`
	ProductID uint    `json:"productID" gorm:"not null;index"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`

	Quantity  int     `json:"quantity" gorm:"default:1"`
	UnitPrice float64 `json:"unitPrice"` // price at purchase time
}
