package model

import "time"

// OrderModel mirrors the 'orders' table. Status and DriverID are only ever
// advanced through conditional updates keyed on the current status, so
// lifecycle writes stay atomic without row locks.
type OrderModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	RiderID         int64  `gorm:"not null;index"`
	Destination     string `gorm:"type:varchar(64);not null"`
	DriverID        *int64
	Status          string `gorm:"type:varchar(16);not null"`
	DriverRequested bool   `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
