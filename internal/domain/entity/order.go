package entity

import "time"

// OrderStatus is the lifecycle state of an order. Transitions never skip a
// state: CREATED -> REQUESTED -> ASSIGNED -> IN_PROGRESS -> COMPLETED.
type OrderStatus string

const (
	// OrderCreated is the initial state after the rider places an order.
	OrderCreated OrderStatus = "CREATED"
	// OrderRequested means the rider has requested a specific driver.
	OrderRequested OrderStatus = "REQUESTED"
	// OrderAssigned means the requested driver accepted the order.
	OrderAssigned OrderStatus = "ASSIGNED"
	// OrderInProgress means the trip has started.
	OrderInProgress OrderStatus = "IN_PROGRESS"
	// OrderCompleted is the terminal state after the trip ends.
	OrderCompleted OrderStatus = "COMPLETED"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is the single legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderCreated:
		return next == OrderRequested
	case OrderRequested:
		return next == OrderAssigned
	case OrderAssigned:
		return next == OrderInProgress
	case OrderInProgress:
		return next == OrderCompleted
	default:
		return false
	}
}

// IsTerminal reports whether the order has reached its final state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted
}

// Order is a single ride request and its lifecycle. It references exactly one
// rider and at most one driver.
type Order struct {
	ID              int64
	RiderID         int64       // Owning rider.
	Destination     Coordinates // Trip destination.
	DriverID        *int64      // Assigned driver, nil until requested.
	Status          OrderStatus
	DriverRequested bool // Set when the rider has requested a driver.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Open reports whether the order is still in flight.
func (o *Order) Open() bool {
	return !o.Status.IsTerminal()
}
