package models

import (
	"time"
)

// Reference-data catalogs. Looked up by id by the order/inventory core,
// never mutated by it.

type Factory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FactorySection struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FactoryID uint      `json:"factory_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Machine struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FactorySectionID uint      `json:"factory_section_id" gorm:"not null;index"`
	Name             string    `json:"name" gorm:"not null"`
	Number           int       `json:"number"`
	IsRunning        bool      `json:"is_running" gorm:"not null;default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Department struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Part struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Unit        string    `json:"unit" gorm:"default:'pcs'"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
