package model

import "time"

// ParticipantModel mirrors the 'participants' table. The unique index on name
// makes the store the arbiter of name collisions under concurrent sign-ups.
type ParticipantModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(32);not null"`
	Role         string `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	DriverProfile *DriverProfileModel `gorm:"foreignKey:ParticipantID"`
}

// TableName explicitly sets the table name for GORM.
func (ParticipantModel) TableName() string {
	return "participants"
}
