package repository

import (
	"errors"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithStatus(order *models.Order, actorID uint) error
	GetByID(id uint) (*models.Order, error)
	GetByIDWithLines(id uint) (*models.Order, error)
	List(filter models.OrderFilter) ([]models.Order, int64, error)
	SetStatus(orderID, statusID, actorID uint) error
	CountByCurrentStatus(statusIDs []uint) (int64, error)
	TopSectionsByOrderCount(limit int) ([]SectionOrderCount, error)
}

// SectionOrderCount is a derived aggregate for the maintenance-hotspot metric.
type SectionOrderCount struct {
	FactorySectionID uint   `json:"factory_section_id"`
	SectionName      string `json:"section_name"`
	OrderCount       int64  `json:"order_count"`
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithStatus inserts the order and its initial tracker entry in one
// transaction, so no order exists without a status history.
func (r *orderRepository) CreateWithStatus(order *models.Order, actorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		entry := &models.StatusTrackerEntry{
			OrderID:  order.ID,
			StatusID: order.CurrentStatusID,
			ActorID:  actorID,
		}
		return tx.Create(entry).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("CurrentStatus").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", id)
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithLines(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("CurrentStatus").Preload("Lines").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", id)
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(filter models.OrderFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.StatusID != nil {
		query = query.Where("current_status_id = ?", *filter.StatusID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.FactoryID != nil {
		query = query.Where("factory_id = ?", *filter.FactoryID)
	}
	if filter.FactorySectionID != nil {
		query = query.Where("factory_section_id = ?", *filter.FactorySectionID)
	}
	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	if filter.IDQuery != "" {
		query = query.Where("CAST(id AS TEXT) LIKE ?", "%"+filter.IDQuery+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var orders []models.Order
	err := query.Preload("CurrentStatus").
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&orders).Error
	return orders, total, err
}

// SetStatus appends a tracker entry and moves the order's current status in
// one transaction. Tracker rows are insert-only.
func (r *orderRepository) SetStatus(orderID, statusID, actorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("current_status_id", statusID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("order %d not found", orderID)
		}
		entry := &models.StatusTrackerEntry{
			OrderID:  orderID,
			StatusID: statusID,
			ActorID:  actorID,
		}
		return tx.Create(entry).Error
	})
}

func (r *orderRepository) CountByCurrentStatus(statusIDs []uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("current_status_id IN ?", statusIDs).
		Count(&count).Error
	return count, err
}

func (r *orderRepository) TopSectionsByOrderCount(limit int) ([]SectionOrderCount, error) {
	var results []SectionOrderCount
	err := r.db.Model(&models.Order{}).
		Select("orders.factory_section_id, factory_sections.name AS section_name, COUNT(orders.id) AS order_count").
		Joins("JOIN factory_sections ON factory_sections.id = orders.factory_section_id").
		Where("orders.factory_section_id IS NOT NULL").
		Group("orders.factory_section_id, factory_sections.name").
		Order("order_count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
