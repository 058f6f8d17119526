package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderKind scopes an order to a specific machine or to central storage restocking.
type OrderKind string

const (
	KindMachine OrderKind = "machine"
	KindStorage OrderKind = "storage"
)

type Order struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Kind             OrderKind      `json:"kind" gorm:"not null;index"`
	Note             string         `json:"note" gorm:"type:text"`
	CreatedByID      uint           `json:"created_by_id" gorm:"not null"`
	DepartmentID     uint           `json:"department_id" gorm:"not null;index"`
	FactoryID        uint           `json:"factory_id" gorm:"not null;index"`
	FactorySectionID *uint          `json:"factory_section_id" gorm:"index"` // required for machine orders
	MachineID        *uint          `json:"machine_id" gorm:"index"`         // required for machine orders
	CurrentStatusID  uint           `json:"current_status_id" gorm:"not null;index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	CurrentStatus *Status       `json:"current_status,omitempty" gorm:"foreignKey:CurrentStatusID"`
	Lines         []OrderedPart `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderFilter narrows ListOrders queries. Nil fields are ignored.
type OrderFilter struct {
	Kind             *OrderKind
	StatusID         *uint
	DepartmentID     *uint
	FactoryID        *uint
	FactorySectionID *uint
	MachineID        *uint
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	IDQuery          string // free-text match against the order id
	Limit            int
	Offset           int
}
