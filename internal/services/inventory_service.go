package services

import (
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"parts_manager/internal/repository"
	"time"
)

// InventoryService commits order lines against the quantity ledgers. All
// mutations go through InventoryRepository transactions; nothing here does a
// read-then-write on a quantity.
type InventoryService interface {
	ReceivePart(lineID uint, receivedDate time.Time) (*models.OrderedPart, error)
	TransferFromStorage(lineID uint) (*models.OrderedPart, error)
	MarkDefective(machineID, partID uint, delta int) error
	AdjustMachinePart(machineID, partID uint, qty, reqQty int) error
	Damage(factoryID, partID uint, qty int) error
	RestockStorage(factoryID, partID uint, qty int) error

	GetMachinePart(machineID, partID uint) (*models.MachinePart, error)
	ListMachineParts(machineID uint) ([]models.MachinePart, error)
	ListStorageParts(factoryID uint) ([]models.StoragePart, error)
	ListDamagedGoods(factoryID uint) ([]models.DamagedGoods, error)
}

type inventoryService struct {
	invRepo     repository.InventoryRepository
	lineRepo    repository.OrderedPartRepository
	orderRepo   repository.OrderRepository
	catalogRepo repository.CatalogRepository
}

func NewInventoryService(
	invRepo repository.InventoryRepository,
	lineRepo repository.OrderedPartRepository,
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
) InventoryService {
	return &inventoryService{invRepo: invRepo, lineRepo: lineRepo, orderRepo: orderRepo, catalogRepo: catalogRepo}
}

// ReceivePart records a vendor receipt. Machine orders gain stock on the
// machine ledger; storage never changes here, receipts are new stock rather
// than transfers.
func (s *inventoryService) ReceivePart(lineID uint, receivedDate time.Time) (*models.OrderedPart, error) {
	if receivedDate.IsZero() {
		return nil, apperrors.Validation("received date is required")
	}
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.Fulfilled() {
		return nil, apperrors.State("line %d is already fulfilled", lineID)
	}
	order, err := s.orderRepo.GetByID(line.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Kind == models.KindMachine {
		if err := s.invRepo.ReceiveIntoMachine(line, *order.MachineID, receivedDate); err != nil {
			return nil, err
		}
		return line, nil
	}
	if err := s.invRepo.ReceiveWithoutStock(line, receivedDate); err != nil {
		return nil, err
	}
	return line, nil
}

// TransferFromStorage fulfills a machine line directly out of central storage.
// The in_storage flag from add time is not trusted; available stock is checked
// inside the transaction's conditional decrement.
func (s *inventoryService) TransferFromStorage(lineID uint) (*models.OrderedPart, error) {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.Fulfilled() {
		return nil, apperrors.State("line %d is already fulfilled", lineID)
	}
	order, err := s.orderRepo.GetByID(line.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Kind != models.KindMachine {
		return nil, apperrors.State("only machine orders can be fulfilled from storage")
	}

	if err := s.invRepo.TransferFromStorage(line, order.FactoryID, *order.MachineID); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *inventoryService) MarkDefective(machineID, partID uint, delta int) error {
	if delta == 0 {
		return apperrors.Validation("delta must be non-zero")
	}
	if _, err := s.catalogRepo.GetMachine(machineID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetPart(partID); err != nil {
		return err
	}
	return s.invRepo.AdjustDefective(machineID, partID, delta)
}

func (s *inventoryService) AdjustMachinePart(machineID, partID uint, qty, reqQty int) error {
	if qty < 0 || reqQty < 0 {
		return apperrors.Validation("counts cannot be negative")
	}
	if _, err := s.catalogRepo.GetMachine(machineID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetPart(partID); err != nil {
		return err
	}
	return s.invRepo.SetMachinePartCounts(machineID, partID, qty, reqQty)
}

// Damage moves stock out of storage into the damaged-goods ledger.
func (s *inventoryService) Damage(factoryID, partID uint, qty int) error {
	if qty <= 0 {
		return apperrors.Validation("qty must be greater than zero")
	}
	if _, err := s.catalogRepo.GetFactory(factoryID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetPart(partID); err != nil {
		return err
	}
	return s.invRepo.MoveToDamaged(factoryID, partID, qty)
}

// RestockStorage is the intake path for central storage.
func (s *inventoryService) RestockStorage(factoryID, partID uint, qty int) error {
	if qty <= 0 {
		return apperrors.Validation("qty must be greater than zero")
	}
	if _, err := s.catalogRepo.GetFactory(factoryID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetPart(partID); err != nil {
		return err
	}
	return s.invRepo.AddStorageStock(factoryID, partID, qty)
}

func (s *inventoryService) GetMachinePart(machineID, partID uint) (*models.MachinePart, error) {
	return s.invRepo.GetMachinePart(machineID, partID)
}

func (s *inventoryService) ListMachineParts(machineID uint) ([]models.MachinePart, error) {
	if _, err := s.catalogRepo.GetMachine(machineID); err != nil {
		return nil, err
	}
	return s.invRepo.ListMachineParts(machineID)
}

func (s *inventoryService) ListStorageParts(factoryID uint) ([]models.StoragePart, error) {
	if _, err := s.catalogRepo.GetFactory(factoryID); err != nil {
		return nil, err
	}
	return s.invRepo.ListStorageParts(factoryID)
}

func (s *inventoryService) ListDamagedGoods(factoryID uint) ([]models.DamagedGoods, error) {
	if _, err := s.catalogRepo.GetFactory(factoryID); err != nil {
		return nil, err
	}
	return s.invRepo.ListDamagedGoods(factoryID)
}
