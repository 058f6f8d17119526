package repository

import (
	"errors"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository reads the reference-data catalogs. The order/inventory
// core looks these up by id and never writes them.
type CatalogRepository interface {
	GetFactory(id uint) (*models.Factory, error)
	GetFactorySection(id uint) (*models.FactorySection, error)
	GetMachine(id uint) (*models.Machine, error)
	GetDepartment(id uint) (*models.Department, error)
	GetPart(id uint) (*models.Part, error)
	ListFactories() ([]models.Factory, error)
	ListSectionsByFactory(factoryID uint) ([]models.FactorySection, error)
	ListMachinesBySection(sectionID uint) ([]models.Machine, error)
	ListDepartments() ([]models.Department, error)
	ListParts() ([]models.Part, error)
	CountMachinesByRunning() (running int64, notRunning int64, err error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetFactory(id uint) (*models.Factory, error) {
	var factory models.Factory
	if err := r.db.First(&factory, id).Error; err != nil {
		return nil, notFoundOr(err, "factory %d not found", id)
	}
	return &factory, nil
}

func (r *catalogRepository) GetFactorySection(id uint) (*models.FactorySection, error) {
	var section models.FactorySection
	if err := r.db.First(&section, id).Error; err != nil {
		return nil, notFoundOr(err, "factory section %d not found", id)
	}
	return &section, nil
}

func (r *catalogRepository) GetMachine(id uint) (*models.Machine, error) {
	var machine models.Machine
	if err := r.db.First(&machine, id).Error; err != nil {
		return nil, notFoundOr(err, "machine %d not found", id)
	}
	return &machine, nil
}

func (r *catalogRepository) GetDepartment(id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, notFoundOr(err, "department %d not found", id)
	}
	return &department, nil
}

func (r *catalogRepository) GetPart(id uint) (*models.Part, error) {
	var part models.Part
	if err := r.db.First(&part, id).Error; err != nil {
		return nil, notFoundOr(err, "part %d not found", id)
	}
	return &part, nil
}

func (r *catalogRepository) ListFactories() ([]models.Factory, error) {
	var factories []models.Factory
	err := r.db.Order("id").Find(&factories).Error
	return factories, err
}

func (r *catalogRepository) ListSectionsByFactory(factoryID uint) ([]models.FactorySection, error) {
	var sections []models.FactorySection
	err := r.db.Where("factory_id = ?", factoryID).Order("id").Find(&sections).Error
	return sections, err
}

func (r *catalogRepository) ListMachinesBySection(sectionID uint) ([]models.Machine, error) {
	var machines []models.Machine
	err := r.db.Where("factory_section_id = ?", sectionID).Order("number").Find(&machines).Error
	return machines, err
}

func (r *catalogRepository) ListDepartments() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Order("id").Find(&departments).Error
	return departments, err
}

func (r *catalogRepository) ListParts() ([]models.Part, error) {
	var parts []models.Part
	err := r.db.Order("id").Find(&parts).Error
	return parts, err
}

func (r *catalogRepository) CountMachinesByRunning() (int64, int64, error) {
	var running, notRunning int64
	if err := r.db.Model(&models.Machine{}).Where("is_running = ?", true).Count(&running).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.Machine{}).Where("is_running = ?", false).Count(&notRunning).Error; err != nil {
		return 0, 0, err
	}
	return running, notRunning, nil
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(format, args...)
	}
	return err
}
