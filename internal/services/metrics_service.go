package services

import (
	"log"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"parts_manager/internal/repository"
	"time"
)

// MetricsCache is what the metrics service needs from the redis client.
type MetricsCache interface {
	SetMetric(key string, value interface{}, ttl time.Duration) error
	GetMetric(key string, dest interface{}) error
}

type MachineStatusCounts struct {
	Running    int64 `json:"running"`
	NotRunning int64 `json:"not_running"`
}

// manageableStatuses maps a role to the status names whose orders await that
// role's action. Manageable is derived from the order's current status, never
// stored.
var manageableStatuses = map[models.UserRole][]string{
	models.RoleFactory: {models.StatusPending, models.StatusOnHold},
	models.RoleOffice:  {models.StatusSentToOffice, models.StatusWaitingForPurchase, models.StatusPurchased},
	models.RoleAdmin: {
		models.StatusPending, models.StatusSentToOffice, models.StatusWaitingForPurchase,
		models.StatusPurchased, models.StatusOnHold,
	},
}

type MetricsService interface {
	MachineCounts() (*MachineStatusCounts, error)
	ManageableOrderCount(role models.UserRole) (int64, error)
	MostOrderedParts(limit int) ([]repository.PartOrderTotal, error)
	TopMaintenanceSections(limit int) ([]repository.SectionOrderCount, error)
}

type metricsService struct {
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderedPartRepository
	trackerRepo repository.StatusTrackerRepository
	catalogRepo repository.CatalogRepository
	cache       MetricsCache
	cacheTTL    time.Duration
}

func NewMetricsService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderedPartRepository,
	trackerRepo repository.StatusTrackerRepository,
	catalogRepo repository.CatalogRepository,
	cache MetricsCache,
	cacheTTL time.Duration,
) MetricsService {
	return &metricsService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		trackerRepo: trackerRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (s *metricsService) MachineCounts() (*MachineStatusCounts, error) {
	var counts MachineStatusCounts
	if err := s.cache.GetMetric("machine_counts", &counts); err == nil {
		return &counts, nil
	}

	running, notRunning, err := s.catalogRepo.CountMachinesByRunning()
	if err != nil {
		return nil, err
	}
	counts = MachineStatusCounts{Running: running, NotRunning: notRunning}
	s.cacheSet("machine_counts", counts)
	return &counts, nil
}

func (s *metricsService) ManageableOrderCount(role models.UserRole) (int64, error) {
	names, ok := manageableStatuses[role]
	if !ok {
		return 0, apperrors.Validation("unknown role %q", role)
	}

	var count int64
	key := "manageable:" + string(role)
	if err := s.cache.GetMetric(key, &count); err == nil {
		return count, nil
	}

	statusIDs := make([]uint, 0, len(names))
	for _, name := range names {
		status, err := s.trackerRepo.GetStatusByName(name)
		if err != nil {
			return 0, err
		}
		statusIDs = append(statusIDs, status.ID)
	}

	count, err := s.orderRepo.CountByCurrentStatus(statusIDs)
	if err != nil {
		return 0, err
	}
	s.cacheSet(key, count)
	return count, nil
}

func (s *metricsService) MostOrderedParts(limit int) ([]repository.PartOrderTotal, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var totals []repository.PartOrderTotal
	if err := s.cache.GetMetric("top_parts", &totals); err == nil {
		return totals, nil
	}

	totals, err := s.lineRepo.MostOrderedParts(limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet("top_parts", totals)
	return totals, nil
}

func (s *metricsService) TopMaintenanceSections(limit int) ([]repository.SectionOrderCount, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var counts []repository.SectionOrderCount
	if err := s.cache.GetMetric("top_sections", &counts); err == nil {
		return counts, nil
	}

	counts, err := s.orderRepo.TopSectionsByOrderCount(limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet("top_sections", counts)
	return counts, nil
}

// cacheSet failures only lose the cache, not the response.
func (s *metricsService) cacheSet(key string, value interface{}) {
	if err := s.cache.SetMetric(key, value, s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache metric %s: %v", key, err)
	}
}
