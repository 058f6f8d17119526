package models

import (
	"time"
)

// Status is a flat reference table; terminal statuses are recognized by name.
type Status struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
}

const (
	StatusPending            = "Pending"
	StatusSentToOffice       = "Sent to Office"
	StatusWaitingForPurchase = "Waiting for Purchase"
	StatusPurchased          = "Purchased"
	StatusCompleted          = "Completed"
	StatusOnHold             = "On Hold"
	StatusCancelled          = "Cancelled"
)

// AllStatusNames is the seed set, in workflow order.
var AllStatusNames = []string{
	StatusPending,
	StatusSentToOffice,
	StatusWaitingForPurchase,
	StatusPurchased,
	StatusCompleted,
	StatusOnHold,
	StatusCancelled,
}

var finalStatuses = []string{StatusCompleted, StatusCancelled}

// IsFinalStatus reports whether a status name is terminal by convention.
func IsFinalStatus(name string) bool {
	for _, s := range finalStatuses {
		if s == name {
			return true
		}
	}
	return false
}

// StatusTrackerEntry is the append-only audit log of order status transitions.
// Entries are never updated or deleted.
type StatusTrackerEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	StatusID  uint      `json:"status_id" gorm:"not null"`
	ActorID   uint      `json:"actor_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Status *Status `json:"status,omitempty" gorm:"foreignKey:StatusID"`
}
