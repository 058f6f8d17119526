package repository

import (
	"errors"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"

	"gorm.io/gorm"
)

// StatusTrackerRepository is insert-and-read only. The tracker is the audit
// log of order status transitions; nothing updates or deletes its rows.
type StatusTrackerRepository interface {
	Append(entry *models.StatusTrackerEntry) error
	ListByOrder(orderID uint) ([]models.StatusTrackerEntry, error)
	GetStatusByID(id uint) (*models.Status, error)
	GetStatusByName(name string) (*models.Status, error)
	ListStatuses() ([]models.Status, error)
}

type statusTrackerRepository struct {
	db *gorm.DB
}

func NewStatusTrackerRepository(db *gorm.DB) StatusTrackerRepository {
	return &statusTrackerRepository{db: db}
}

func (r *statusTrackerRepository) Append(entry *models.StatusTrackerEntry) error {
	return r.db.Create(entry).Error
}

func (r *statusTrackerRepository) ListByOrder(orderID uint) ([]models.StatusTrackerEntry, error) {
	var entries []models.StatusTrackerEntry
	err := r.db.Preload("Status").
		Where("order_id = ?", orderID).
		Order("created_at, id").
		Find(&entries).Error
	return entries, err
}

func (r *statusTrackerRepository) GetStatusByID(id uint) (*models.Status, error) {
	var status models.Status
	err := r.db.First(&status, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("status %d not found", id)
		}
		return nil, err
	}
	return &status, nil
}

func (r *statusTrackerRepository) GetStatusByName(name string) (*models.Status, error) {
	var status models.Status
	err := r.db.Where("name = ?", name).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("status %q not found", name)
		}
		return nil, err
	}
	return &status, nil
}

func (r *statusTrackerRepository) ListStatuses() ([]models.Status, error) {
	var statuses []models.Status
	err := r.db.Order("id").Find(&statuses).Error
	return statuses, err
}
