package entity

import "time"

// CarClass is the service tier a driver's vehicle is registered under.
type CarClass string

const (
	// CarClassEconomy is the base service tier.
	CarClassEconomy CarClass = "ECONOMY"
	// CarClassComfort is the mid service tier.
	CarClassComfort CarClass = "COMFORT"
	// CarClassBusiness is the premium service tier.
	CarClassBusiness CarClass = "BUSINESS"
)

// String returns the string representation of the CarClass.
func (c CarClass) String() string {
	return string(c)
}

// IsValid checks if the CarClass is a valid value.
func (c CarClass) IsValid() bool {
	switch c {
	case CarClassEconomy, CarClassComfort, CarClassBusiness:
		return true
	default:
		return false
	}
}

// DriverProfile holds data specific to the driver role. A driver serves at
// most one order at a time; CurrentOrderID is nil while idle.
type DriverProfile struct {
	ParticipantID  int64       // Foreign key to the owning Participant.
	CarClass       CarClass    // Vehicle service tier.
	Coordinates    Coordinates // Last reported position.
	Active         bool        // Whether the driver is currently accepting rides.
	CurrentOrderID *int64      // Order the driver is currently serving, if any.
	DeviceToken    string      // FCM device token for dispatch pushes, may be empty.
	UpdatedAt      time.Time
}

// Driver pairs a participant with its driver profile for matching results.
type Driver struct {
	Participant
}

// Profile returns the driver profile, which is always present on a Driver.
func (d *Driver) Profile() *DriverProfile {
	return d.DriverProfile
}
