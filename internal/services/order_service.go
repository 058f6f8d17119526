package services

import (
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"parts_manager/internal/repository"
)

type CreateOrderInput struct {
	Kind             models.OrderKind
	Note             string
	CreatedByID      uint
	DepartmentID     uint
	FactoryID        uint
	FactorySectionID *uint
	MachineID        *uint
}

// OrderDetail pairs an order with its lines and their derived states, so the
// manually tracked order status and the line progress can be compared side by
// side instead of drifting invisibly.
type OrderDetail struct {
	Order      *models.Order              `json:"order"`
	LineStates map[uint]models.LineState  `json:"line_states"`
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetOrderDetail(id uint) (*OrderDetail, error)
	ListOrders(filter models.OrderFilter) ([]models.Order, int64, error)
	SetStatus(orderID, statusID, actorID uint) error
	GetTimeline(orderID uint) ([]models.StatusTrackerEntry, error)
	ListStatuses() ([]models.Status, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	trackerRepo repository.StatusTrackerRepository
	catalogRepo repository.CatalogRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	trackerRepo repository.StatusTrackerRepository,
	catalogRepo repository.CatalogRepository,
) OrderService {
	return &orderService{orderRepo: orderRepo, trackerRepo: trackerRepo, catalogRepo: catalogRepo}
}

func (s *orderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.Kind != models.KindMachine && input.Kind != models.KindStorage {
		return nil, apperrors.Validation("kind must be %q or %q", models.KindMachine, models.KindStorage)
	}
	if input.Kind == models.KindMachine && (input.FactorySectionID == nil || input.MachineID == nil) {
		return nil, apperrors.Validation("machine orders require a factory section and a machine")
	}

	if _, err := s.catalogRepo.GetFactory(input.FactoryID); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.GetDepartment(input.DepartmentID); err != nil {
		return nil, err
	}
	if input.Kind == models.KindMachine {
		section, err := s.catalogRepo.GetFactorySection(*input.FactorySectionID)
		if err != nil {
			return nil, err
		}
		if section.FactoryID != input.FactoryID {
			return nil, apperrors.Validation("factory section %d does not belong to factory %d", section.ID, input.FactoryID)
		}
		machine, err := s.catalogRepo.GetMachine(*input.MachineID)
		if err != nil {
			return nil, err
		}
		if machine.FactorySectionID != section.ID {
			return nil, apperrors.Validation("machine %d does not belong to section %d", machine.ID, section.ID)
		}
	}

	initial, err := s.trackerRepo.GetStatusByName(models.StatusPending)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Kind:             input.Kind,
		Note:             input.Note,
		CreatedByID:      input.CreatedByID,
		DepartmentID:     input.DepartmentID,
		FactoryID:        input.FactoryID,
		FactorySectionID: input.FactorySectionID,
		MachineID:        input.MachineID,
		CurrentStatusID:  initial.ID,
	}
	if err := s.orderRepo.CreateWithStatus(order, input.CreatedByID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrderDetail(id uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByIDWithLines(id)
	if err != nil {
		return nil, err
	}
	states := make(map[uint]models.LineState, len(order.Lines))
	for i := range order.Lines {
		states[order.Lines[i].ID] = order.Lines[i].State()
	}
	return &OrderDetail{Order: order, LineStates: states}, nil
}

func (s *orderService) ListOrders(filter models.OrderFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// SetStatus is a manual transition. It is deliberately independent of line
// progress so an order can be put on hold or completed by hand.
func (s *orderService) SetStatus(orderID, statusID, actorID uint) error {
	if _, err := s.trackerRepo.GetStatusByID(statusID); err != nil {
		return err
	}
	return s.orderRepo.SetStatus(orderID, statusID, actorID)
}

func (s *orderService) GetTimeline(orderID uint) ([]models.StatusTrackerEntry, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.trackerRepo.ListByOrder(orderID)
}

func (s *orderService) ListStatuses() ([]models.Status, error) {
	return s.trackerRepo.ListStatuses()
}
