package services

import (
	"log"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"parts_manager/internal/repository"
)

type PartLineService interface {
	AddLine(orderID, partID uint, qty int, sampleFlag bool, note string) (*models.OrderedPart, error)
	GetLine(id uint) (*models.OrderedPart, error)
	GetOrderLines(orderID uint) ([]models.OrderedPart, error)
	UpdateQty(lineID uint, newQty int) (*models.OrderedPart, error)
	SetCosting(lineID uint, vendor, brand string, unitCost float64) (*models.OrderedPart, error)
	SetMRR(lineID uint, mrr string) (*models.OrderedPart, error)
	SetOfficeNote(lineID uint, note string) (*models.OrderedPart, error)
	ReturnLine(lineID uint) (*models.OrderedPart, error)
	DeleteLine(lineID uint) error
	ToggleApproval(lineID uint, gate models.ApprovalGate, value bool, actorID uint) (*models.OrderedPart, error)
}

type partLineService struct {
	lineRepo    repository.OrderedPartRepository
	orderRepo   repository.OrderRepository
	invRepo     repository.InventoryRepository
	catalogRepo repository.CatalogRepository
}

func NewPartLineService(
	lineRepo repository.OrderedPartRepository,
	orderRepo repository.OrderRepository,
	invRepo repository.InventoryRepository,
	catalogRepo repository.CatalogRepository,
) PartLineService {
	return &partLineService{lineRepo: lineRepo, orderRepo: orderRepo, invRepo: invRepo, catalogRepo: catalogRepo}
}

// AddLine creates a line on an order. For machine orders, when central storage
// already holds enough of the part, the line is flagged in_storage so it can
// skip procurement. The flag is advisory; stock is re-checked at transfer time.
func (s *partLineService) AddLine(orderID, partID uint, qty int, sampleFlag bool, note string) (*models.OrderedPart, error) {
	if qty <= 0 {
		return nil, apperrors.Validation("qty must be greater than zero")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.GetPart(partID); err != nil {
		return nil, err
	}

	inStorage := false
	if order.Kind == models.KindMachine {
		sp, err := s.invRepo.GetStoragePart(order.FactoryID, partID)
		if err != nil {
			return nil, err
		}
		inStorage = sp.Qty >= qty
	}

	line := &models.OrderedPart{
		OrderID:              orderID,
		PartID:               partID,
		Qty:                  qty,
		InStorage:            inStorage,
		IsSampleSentToOffice: sampleFlag,
		Note:                 note,
	}
	if err := s.lineRepo.Create(line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *partLineService) GetLine(id uint) (*models.OrderedPart, error) {
	return s.lineRepo.GetByID(id)
}

func (s *partLineService) GetOrderLines(orderID uint) ([]models.OrderedPart, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.lineRepo.GetByOrderID(orderID)
}

func (s *partLineService) UpdateQty(lineID uint, newQty int) (*models.OrderedPart, error) {
	if newQty <= 0 {
		return nil, apperrors.Validation("qty must be greater than zero")
	}
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.Fulfilled() {
		return nil, apperrors.State("cannot change qty of a fulfilled line")
	}
	if line.ApprovedStorageWithdrawal {
		return nil, apperrors.State("cannot change qty after storage withdrawal approval")
	}
	line.Qty = newQty
	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *partLineService) SetCosting(lineID uint, vendor, brand string, unitCost float64) (*models.OrderedPart, error) {
	if vendor == "" {
		return nil, apperrors.Validation("vendor is required")
	}
	if unitCost < 0 {
		return nil, apperrors.Validation("unit cost cannot be negative")
	}
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.Fulfilled() {
		return nil, apperrors.State("cannot cost a fulfilled line")
	}
	line.Vendor = vendor
	line.Brand = brand
	line.UnitCost = unitCost
	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

// SetMRR records the goods-received reference. Uniqueness across lines is a
// database constraint; re-saving the same value on the same line is a no-op
// and succeeds.
func (s *partLineService) SetMRR(lineID uint, mrr string) (*models.OrderedPart, error) {
	if mrr == "" {
		return nil, apperrors.Validation("mrr number is required")
	}
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.MRRNumber != nil && *line.MRRNumber == mrr {
		return line, nil
	}
	line.MRRNumber = &mrr
	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *partLineService) SetOfficeNote(lineID uint, note string) (*models.OrderedPart, error) {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	line.OfficeNote = note
	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

// ReturnLine resets a line to its pre-procurement state: vendor, brand, unit
// cost, the procurement dates, the MRR number and the budget approval are
// cleared; qty and part are preserved. This is the only reset/abort path.
func (s *partLineService) ReturnLine(lineID uint) (*models.OrderedPart, error) {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.Fulfilled() {
		return nil, apperrors.State("cannot return a fulfilled line")
	}
	line.Vendor = ""
	line.Brand = ""
	line.UnitCost = 0
	line.PartPurchasedDate = nil
	line.PartSentByOfficeDate = nil
	line.PartReceivedByFactoryDate = nil
	line.MRRNumber = nil
	line.ApprovedBudget = false
	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine is only allowed before receipt or storage-withdrawal approval,
// so committed inventory is never orphaned.
func (s *partLineService) DeleteLine(lineID uint) error {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if line.Fulfilled() {
		return apperrors.State("cannot delete a fulfilled line")
	}
	if line.ApprovedStorageWithdrawal {
		return apperrors.State("cannot delete a line after storage withdrawal approval")
	}
	return s.lineRepo.Delete(lineID)
}

// ToggleApproval flips one of the four approval gates. Setting a gate is
// guarded centrally: budget approval requires costing, office-order approval
// requires budget approval. Clearing a gate is always allowed.
func (s *partLineService) ToggleApproval(lineID uint, gate models.ApprovalGate, value bool, actorID uint) (*models.OrderedPart, error) {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return nil, err
	}

	switch gate {
	case models.GateBudget:
		if value && !line.Costed() {
			return nil, apperrors.State("budget approval requires costing to be set first")
		}
		line.ApprovedBudget = value
	case models.GatePendingOrder:
		line.ApprovedPendingOrder = value
	case models.GateOfficeOrder:
		if value && !line.ApprovedBudget {
			return nil, apperrors.State("office order approval requires budget approval first")
		}
		line.ApprovedOfficeOrder = value
	case models.GateStorageWithdrawal:
		line.ApprovedStorageWithdrawal = value
	default:
		return nil, apperrors.Validation("unknown approval gate %q", gate)
	}

	if err := s.lineRepo.Update(line); err != nil {
		return nil, err
	}
	log.Printf("approval %s set to %v on line %d by actor %d", gate, value, lineID, actorID)
	return line, nil
}
