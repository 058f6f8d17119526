package repository

import (
	"errors"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository is the only writer of the quantity ledgers. Every
// mutation runs in a single transaction; decrements are conditional updates
// (qty >= n in the WHERE clause) so concurrent withdrawals cannot drive a
// ledger negative.
type InventoryRepository interface {
	GetMachinePart(machineID, partID uint) (*models.MachinePart, error)
	GetStoragePart(factoryID, partID uint) (*models.StoragePart, error)
	GetDamagedGoods(factoryID, partID uint) (*models.DamagedGoods, error)
	ListMachineParts(machineID uint) ([]models.MachinePart, error)
	ListStorageParts(factoryID uint) ([]models.StoragePart, error)
	ListDamagedGoods(factoryID uint) ([]models.DamagedGoods, error)

	ReceiveIntoMachine(line *models.OrderedPart, machineID uint, receivedAt time.Time) error
	ReceiveWithoutStock(line *models.OrderedPart, receivedAt time.Time) error
	TransferFromStorage(line *models.OrderedPart, factoryID, machineID uint) error
	AdjustDefective(machineID, partID uint, delta int) error
	SetMachinePartCounts(machineID, partID uint, qty, reqQty int) error
	MoveToDamaged(factoryID, partID uint, qty int) error
	AddStorageStock(factoryID, partID uint, qty int) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetMachinePart(machineID, partID uint) (*models.MachinePart, error) {
	var mp models.MachinePart
	err := r.db.Where("machine_id = ? AND part_id = ?", machineID, partID).First(&mp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no machine part record for machine %d part %d", machineID, partID)
		}
		return nil, err
	}
	return &mp, nil
}

func (r *inventoryRepository) GetStoragePart(factoryID, partID uint) (*models.StoragePart, error) {
	var sp models.StoragePart
	err := r.db.Where("factory_id = ? AND part_id = ?", factoryID, partID).First(&sp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent row means zero stock, not an error
			return &models.StoragePart{FactoryID: factoryID, PartID: partID, Qty: 0}, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *inventoryRepository) GetDamagedGoods(factoryID, partID uint) (*models.DamagedGoods, error) {
	var dg models.DamagedGoods
	err := r.db.Where("factory_id = ? AND part_id = ?", factoryID, partID).First(&dg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DamagedGoods{FactoryID: factoryID, PartID: partID, Qty: 0}, nil
		}
		return nil, err
	}
	return &dg, nil
}

func (r *inventoryRepository) ListMachineParts(machineID uint) ([]models.MachinePart, error) {
	var parts []models.MachinePart
	err := r.db.Where("machine_id = ?", machineID).Order("part_id").Find(&parts).Error
	return parts, err
}

func (r *inventoryRepository) ListStorageParts(factoryID uint) ([]models.StoragePart, error) {
	var parts []models.StoragePart
	err := r.db.Where("factory_id = ?", factoryID).Order("part_id").Find(&parts).Error
	return parts, err
}

func (r *inventoryRepository) ListDamagedGoods(factoryID uint) ([]models.DamagedGoods, error) {
	var goods []models.DamagedGoods
	err := r.db.Where("factory_id = ?", factoryID).Order("part_id").Find(&goods).Error
	return goods, err
}

// ReceiveIntoMachine records a vendor receipt for a machine order: sets the
// line's received date and adds the full quantity to the machine ledger.
// Storage is never touched here; vendor receipts are new stock, not transfers.
func (r *inventoryRepository) ReceiveIntoMachine(line *models.OrderedPart, machineID uint, receivedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		line.PartReceivedByFactoryDate = &receivedAt
		if err := tx.Save(line).Error; err != nil {
			return translateLineError(err)
		}
		return upsertMachineQty(tx, machineID, line.PartID, line.Qty)
	})
}

// ReceiveWithoutStock records the receipt date only, for storage orders whose
// stock lands via AddStorageStock.
func (r *inventoryRepository) ReceiveWithoutStock(line *models.OrderedPart, receivedAt time.Time) error {
	line.PartReceivedByFactoryDate = &receivedAt
	return translateLineError(r.db.Save(line).Error)
}

// TransferFromStorage is zero-sum: the storage decrement and the machine
// increment commit together or not at all. The stock check happens here, at
// commit time, in the WHERE clause of the decrement.
func (r *inventoryRepository) TransferFromStorage(line *models.OrderedPart, factoryID, machineID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StoragePart{}).
			Where("factory_id = ? AND part_id = ? AND qty >= ?", factoryID, line.PartID, line.Qty).
			UpdateColumn("qty", gorm.Expr("qty - ?", line.Qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.InsufficientStock("storage has less than %d of part %d", line.Qty, line.PartID)
		}

		if err := upsertMachineQty(tx, machineID, line.PartID, line.Qty); err != nil {
			return err
		}

		line.QtyTakenFromStorage = line.Qty
		return translateLineError(tx.Save(line).Error)
	})
}

// AdjustDefective applies a signed delta to the defective count; a decrement
// below zero is refused.
func (r *inventoryRepository) AdjustDefective(machineID, partID uint, delta int) error {
	if delta >= 0 {
		return r.db.Transaction(func(tx *gorm.DB) error {
			return upsertMachineDefective(tx, machineID, partID, delta)
		})
	}
	res := r.db.Model(&models.MachinePart{}).
		Where("machine_id = ? AND part_id = ? AND defective_qty >= ?", machineID, partID, -delta).
		UpdateColumn("defective_qty", gorm.Expr("defective_qty + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.InsufficientStock("defective count for machine %d part %d cannot go below zero", machineID, partID)
	}
	return nil
}

// SetMachinePartCounts is the administrative override for physical recounts.
func (r *inventoryRepository) SetMachinePartCounts(machineID, partID uint, qty, reqQty int) error {
	mp := models.MachinePart{MachineID: machineID, PartID: partID, Qty: qty, ReqQty: reqQty}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "machine_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"qty": qty, "req_qty": reqQty}),
	}).Create(&mp).Error
}

// MoveToDamaged moves qty out of storage into the damaged-goods ledger for the
// same (factory, part), atomically.
func (r *inventoryRepository) MoveToDamaged(factoryID, partID uint, qty int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StoragePart{}).
			Where("factory_id = ? AND part_id = ? AND qty >= ?", factoryID, partID, qty).
			UpdateColumn("qty", gorm.Expr("qty - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.InsufficientStock("storage has less than %d of part %d", qty, partID)
		}

		dg := models.DamagedGoods{FactoryID: factoryID, PartID: partID, Qty: qty}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "factory_id"}, {Name: "part_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"qty": gorm.Expr("damaged_goods.qty + ?", qty)}),
		}).Create(&dg).Error
	})
}

// AddStorageStock is the central storage intake path.
func (r *inventoryRepository) AddStorageStock(factoryID, partID uint, qty int) error {
	sp := models.StoragePart{FactoryID: factoryID, PartID: partID, Qty: qty}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "factory_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"qty": gorm.Expr("storage_parts.qty + ?", qty)}),
	}).Create(&sp).Error
}

func upsertMachineQty(tx *gorm.DB, machineID, partID uint, qty int) error {
	mp := models.MachinePart{MachineID: machineID, PartID: partID, Qty: qty}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "machine_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"qty": gorm.Expr("machine_parts.qty + ?", qty)}),
	}).Create(&mp).Error
}

func upsertMachineDefective(tx *gorm.DB, machineID, partID uint, delta int) error {
	mp := models.MachinePart{MachineID: machineID, PartID: partID, DefectiveQty: delta}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "machine_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"defective_qty": gorm.Expr("machine_parts.defective_qty + ?", delta)}),
	}).Create(&mp).Error
}
