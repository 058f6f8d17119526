package models

import (
	"time"
)

// MachinePart is the quantity ledger of a part allocated to one machine.
type MachinePart struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MachineID    uint      `json:"machine_id" gorm:"not null;uniqueIndex:idx_machine_part"`
	PartID       uint      `json:"part_id" gorm:"not null;uniqueIndex:idx_machine_part"`
	Qty          int       `json:"qty" gorm:"not null;default:0"`
	ReqQty       int       `json:"req_qty" gorm:"not null;default:0"`
	DefectiveQty int       `json:"defective_qty" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoragePart is the quantity ledger of a part held in a factory's central storage.
// Qty never goes negative; decrements are conditional updates.
type StoragePart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FactoryID uint      `json:"factory_id" gorm:"not null;uniqueIndex:idx_storage_part"`
	PartID    uint      `json:"part_id" gorm:"not null;uniqueIndex:idx_storage_part"`
	Qty       int       `json:"qty" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DamagedGoods is the quantity ledger of stock marked unusable, moved out of storage.
type DamagedGoods struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FactoryID uint      `json:"factory_id" gorm:"not null;uniqueIndex:idx_damaged_goods"`
	PartID    uint      `json:"part_id" gorm:"not null;uniqueIndex:idx_damaged_goods"`
	Qty       int       `json:"qty" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
