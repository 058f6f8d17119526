package repository

import (
	"errors"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"

	"gorm.io/gorm"
)

type OrderedPartRepository interface {
	Create(line *models.OrderedPart) error
	GetByID(id uint) (*models.OrderedPart, error)
	GetByOrderID(orderID uint) ([]models.OrderedPart, error)
	Update(line *models.OrderedPart) error
	Delete(id uint) error
	MostOrderedParts(limit int) ([]PartOrderTotal, error)
}

// PartOrderTotal is a derived aggregate for the most-ordered-parts metric.
type PartOrderTotal struct {
	PartID   uint   `json:"part_id"`
	PartName string `json:"part_name"`
	TotalQty int64  `json:"total_qty"`
}

type orderedPartRepository struct {
	db *gorm.DB
}

func NewOrderedPartRepository(db *gorm.DB) OrderedPartRepository {
	return &orderedPartRepository{db: db}
}

func (r *orderedPartRepository) Create(line *models.OrderedPart) error {
	return translateLineError(r.db.Create(line).Error)
}

func (r *orderedPartRepository) GetByID(id uint) (*models.OrderedPart, error) {
	var line models.OrderedPart
	err := r.db.First(&line, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order line %d not found", id)
		}
		return nil, err
	}
	return &line, nil
}

func (r *orderedPartRepository) GetByOrderID(orderID uint) ([]models.OrderedPart, error) {
	var lines []models.OrderedPart
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&lines).Error
	return lines, err
}

func (r *orderedPartRepository) Update(line *models.OrderedPart) error {
	// Save writes every field, including zeroed ones, which ReturnLine relies on.
	return translateLineError(r.db.Save(line).Error)
}

func (r *orderedPartRepository) Delete(id uint) error {
	return r.db.Delete(&models.OrderedPart{}, id).Error
}

func (r *orderedPartRepository) MostOrderedParts(limit int) ([]PartOrderTotal, error) {
	var results []PartOrderTotal
	err := r.db.Model(&models.OrderedPart{}).
		Select("ordered_parts.part_id, parts.name AS part_name, SUM(ordered_parts.qty) AS total_qty").
		Joins("JOIN parts ON parts.id = ordered_parts.part_id").
		Group("ordered_parts.part_id, parts.name").
		Order("total_qty DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

// translateLineError maps the MRR unique-index violation to a conflict. The
// constraint lives in the database so it holds under concurrent writers.
func translateLineError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("mrr number already in use")
	}
	return err
}
