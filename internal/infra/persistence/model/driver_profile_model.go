package model

import "time"

// DriverProfileModel mirrors the 'driver_profiles' table. ParticipantID
// references participants.id. Coordinates keeps the "lat,lon" string encoding
// the rest of the system parses at the boundary.
type DriverProfileModel struct {
	ParticipantID  int64  `gorm:"primaryKey"`
	CarClass       string `gorm:"type:varchar(16);not null;index:idx_driver_profiles_class_active"`
	Coordinates    string `gorm:"type:varchar(64);not null"`
	Active         bool   `gorm:"not null;index:idx_driver_profiles_class_active"`
	CurrentOrderID *int64
	DeviceToken    string `gorm:"type:varchar(255)"`
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (DriverProfileModel) TableName() string {
	return "driver_profiles"
}
