package services

import (
	"encoding/json"
	"fmt"
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"parts_manager/internal/repository"
	"sync"
	"time"
)

// In-memory repository fakes. The inventory fake mirrors the conditional-
// update contract of the real repository: decrements only succeed when the
// ledger holds enough stock, checked and applied under one lock.

type ledgerKey struct {
	ownerID uint // factory or machine
	partID  uint
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	storage map[ledgerKey]int
	machine map[ledgerKey]*models.MachinePart
	damaged map[ledgerKey]int
	lines   *fakeLineRepo
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		storage: make(map[ledgerKey]int),
		machine: make(map[ledgerKey]*models.MachinePart),
		damaged: make(map[ledgerKey]int),
	}
}

func (f *fakeInventoryRepo) GetMachinePart(machineID, partID uint) (*models.MachinePart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mp, ok := f.machine[ledgerKey{machineID, partID}]
	if !ok {
		return nil, apperrors.NotFound("no machine part record for machine %d part %d", machineID, partID)
	}
	copied := *mp
	return &copied, nil
}

func (f *fakeInventoryRepo) GetStoragePart(factoryID, partID uint) (*models.StoragePart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.StoragePart{FactoryID: factoryID, PartID: partID, Qty: f.storage[ledgerKey{factoryID, partID}]}, nil
}

func (f *fakeInventoryRepo) GetDamagedGoods(factoryID, partID uint) (*models.DamagedGoods, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.DamagedGoods{FactoryID: factoryID, PartID: partID, Qty: f.damaged[ledgerKey{factoryID, partID}]}, nil
}

func (f *fakeInventoryRepo) ListMachineParts(machineID uint) ([]models.MachinePart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var parts []models.MachinePart
	for key, mp := range f.machine {
		if key.ownerID == machineID {
			parts = append(parts, *mp)
		}
	}
	return parts, nil
}

func (f *fakeInventoryRepo) ListStorageParts(factoryID uint) ([]models.StoragePart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var parts []models.StoragePart
	for key, qty := range f.storage {
		if key.ownerID == factoryID {
			parts = append(parts, models.StoragePart{FactoryID: factoryID, PartID: key.partID, Qty: qty})
		}
	}
	return parts, nil
}

func (f *fakeInventoryRepo) ListDamagedGoods(factoryID uint) ([]models.DamagedGoods, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var goods []models.DamagedGoods
	for key, qty := range f.damaged {
		if key.ownerID == factoryID {
			goods = append(goods, models.DamagedGoods{FactoryID: factoryID, PartID: key.partID, Qty: qty})
		}
	}
	return goods, nil
}

func (f *fakeInventoryRepo) machineEntry(machineID, partID uint) *models.MachinePart {
	key := ledgerKey{machineID, partID}
	mp, ok := f.machine[key]
	if !ok {
		mp = &models.MachinePart{MachineID: machineID, PartID: partID}
		f.machine[key] = mp
	}
	return mp
}

// saveLine mirrors the real repository's tx.Save(line): mutations made inside
// a fulfillment method must be visible to later reads of the line store.
func (f *fakeInventoryRepo) saveLine(line *models.OrderedPart) error {
	if f.lines == nil {
		return nil
	}
	return f.lines.Update(line)
}

func (f *fakeInventoryRepo) ReceiveIntoMachine(line *models.OrderedPart, machineID uint, receivedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	line.PartReceivedByFactoryDate = &receivedAt
	f.machineEntry(machineID, line.PartID).Qty += line.Qty
	return f.saveLine(line)
}

func (f *fakeInventoryRepo) ReceiveWithoutStock(line *models.OrderedPart, receivedAt time.Time) error {
	line.PartReceivedByFactoryDate = &receivedAt
	return f.saveLine(line)
}

func (f *fakeInventoryRepo) TransferFromStorage(line *models.OrderedPart, factoryID, machineID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ledgerKey{factoryID, line.PartID}
	if f.storage[key] < line.Qty {
		return apperrors.InsufficientStock("storage has less than %d of part %d", line.Qty, line.PartID)
	}
	f.storage[key] -= line.Qty
	f.machineEntry(machineID, line.PartID).Qty += line.Qty
	line.QtyTakenFromStorage = line.Qty
	return f.saveLine(line)
}

func (f *fakeInventoryRepo) AdjustDefective(machineID, partID uint, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mp := f.machineEntry(machineID, partID)
	if mp.DefectiveQty+delta < 0 {
		return apperrors.InsufficientStock("defective count for machine %d part %d cannot go below zero", machineID, partID)
	}
	mp.DefectiveQty += delta
	return nil
}

func (f *fakeInventoryRepo) SetMachinePartCounts(machineID, partID uint, qty, reqQty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mp := f.machineEntry(machineID, partID)
	mp.Qty = qty
	mp.ReqQty = reqQty
	return nil
}

func (f *fakeInventoryRepo) MoveToDamaged(factoryID, partID uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ledgerKey{factoryID, partID}
	if f.storage[key] < qty {
		return apperrors.InsufficientStock("storage has less than %d of part %d", qty, partID)
	}
	f.storage[key] -= qty
	f.damaged[key] += qty
	return nil
}

func (f *fakeInventoryRepo) AddStorageStock(factoryID, partID uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storage[ledgerKey{factoryID, partID}] += qty
	return nil
}

type fakeLineRepo struct {
	mu     sync.Mutex
	lines  map[uint]*models.OrderedPart
	nextID uint
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: make(map[uint]*models.OrderedPart), nextID: 1}
}

func (f *fakeLineRepo) mrrTaken(mrr string, exceptID uint) bool {
	for id, line := range f.lines {
		if id != exceptID && line.MRRNumber != nil && *line.MRRNumber == mrr {
			return true
		}
	}
	return false
}

func (f *fakeLineRepo) Create(line *models.OrderedPart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if line.MRRNumber != nil && f.mrrTaken(*line.MRRNumber, 0) {
		return apperrors.Conflict("mrr number already in use")
	}
	line.ID = f.nextID
	f.nextID++
	copied := *line
	f.lines[line.ID] = &copied
	return nil
}

func (f *fakeLineRepo) GetByID(id uint) (*models.OrderedPart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	line, ok := f.lines[id]
	if !ok {
		return nil, apperrors.NotFound("order line %d not found", id)
	}
	copied := *line
	return &copied, nil
}

func (f *fakeLineRepo) GetByOrderID(orderID uint) ([]models.OrderedPart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var lines []models.OrderedPart
	for _, line := range f.lines {
		if line.OrderID == orderID {
			lines = append(lines, *line)
		}
	}
	return lines, nil
}

func (f *fakeLineRepo) Update(line *models.OrderedPart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[line.ID]; !ok {
		return apperrors.NotFound("order line %d not found", line.ID)
	}
	if line.MRRNumber != nil && f.mrrTaken(*line.MRRNumber, line.ID) {
		return apperrors.Conflict("mrr number already in use")
	}
	copied := *line
	f.lines[line.ID] = &copied
	return nil
}

func (f *fakeLineRepo) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lines, id)
	return nil
}

func (f *fakeLineRepo) MostOrderedParts(limit int) ([]repository.PartOrderTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[uint]int64)
	for _, line := range f.lines {
		totals[line.PartID] += int64(line.Qty)
	}
	var result []repository.PartOrderTotal
	for partID, total := range totals {
		result = append(result, repository.PartOrderTotal{PartID: partID, TotalQty: total})
	}
	return result, nil
}

type fakeTrackerRepo struct {
	statuses []models.Status
	entries  []models.StatusTrackerEntry
}

func newFakeTrackerRepo() *fakeTrackerRepo {
	f := &fakeTrackerRepo{}
	for i, name := range models.AllStatusNames {
		f.statuses = append(f.statuses, models.Status{ID: uint(i + 1), Name: name})
	}
	return f
}

func (f *fakeTrackerRepo) Append(entry *models.StatusTrackerEntry) error {
	entry.ID = uint(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeTrackerRepo) ListByOrder(orderID uint) ([]models.StatusTrackerEntry, error) {
	var entries []models.StatusTrackerEntry
	for _, e := range f.entries {
		if e.OrderID == orderID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *fakeTrackerRepo) GetStatusByID(id uint) (*models.Status, error) {
	for i := range f.statuses {
		if f.statuses[i].ID == id {
			return &f.statuses[i], nil
		}
	}
	return nil, apperrors.NotFound("status %d not found", id)
}

func (f *fakeTrackerRepo) GetStatusByName(name string) (*models.Status, error) {
	for i := range f.statuses {
		if f.statuses[i].Name == name {
			return &f.statuses[i], nil
		}
	}
	return nil, apperrors.NotFound("status %q not found", name)
}

func (f *fakeTrackerRepo) ListStatuses() ([]models.Status, error) {
	return f.statuses, nil
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[uint]*models.Order
	nextID  uint
	tracker *fakeTrackerRepo
	lines   *fakeLineRepo
}

func newFakeOrderRepo(tracker *fakeTrackerRepo, lines *fakeLineRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), nextID: 1, tracker: tracker, lines: lines}
}

func (f *fakeOrderRepo) CreateWithStatus(order *models.Order, actorID uint) error {
	f.mu.Lock()
	order.ID = f.nextID
	f.nextID++
	order.CreatedAt = time.Now()
	copied := *order
	f.orders[order.ID] = &copied
	f.mu.Unlock()
	return f.tracker.Append(&models.StatusTrackerEntry{
		OrderID:  order.ID,
		StatusID: order.CurrentStatusID,
		ActorID:  actorID,
	})
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetByIDWithLines(id uint) (*models.Order, error) {
	order, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f.lines != nil {
		order.Lines, _ = f.lines.GetByOrderID(id)
	}
	return order, nil
}

func (f *fakeOrderRepo) List(filter models.OrderFilter) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, o := range f.orders {
		if filter.StatusID != nil && o.CurrentStatusID != *filter.StatusID {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) SetStatus(orderID, statusID, actorID uint) error {
	f.mu.Lock()
	order, ok := f.orders[orderID]
	if !ok {
		f.mu.Unlock()
		return apperrors.NotFound("order %d not found", orderID)
	}
	order.CurrentStatusID = statusID
	f.mu.Unlock()
	return f.tracker.Append(&models.StatusTrackerEntry{OrderID: orderID, StatusID: statusID, ActorID: actorID})
}

func (f *fakeOrderRepo) CountByCurrentStatus(statusIDs []uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, o := range f.orders {
		for _, id := range statusIDs {
			if o.CurrentStatusID == id {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) TopSectionsByOrderCount(limit int) ([]repository.SectionOrderCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uint]int64)
	for _, o := range f.orders {
		if o.FactorySectionID != nil {
			counts[*o.FactorySectionID]++
		}
	}
	var result []repository.SectionOrderCount
	for sectionID, count := range counts {
		result = append(result, repository.SectionOrderCount{FactorySectionID: sectionID, OrderCount: count})
	}
	return result, nil
}

type fakeCatalogRepo struct {
	factories   map[uint]*models.Factory
	sections    map[uint]*models.FactorySection
	machines    map[uint]*models.Machine
	departments map[uint]*models.Department
	parts       map[uint]*models.Part
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		factories:   make(map[uint]*models.Factory),
		sections:    make(map[uint]*models.FactorySection),
		machines:    make(map[uint]*models.Machine),
		departments: make(map[uint]*models.Department),
		parts:       make(map[uint]*models.Part),
	}
}

func (f *fakeCatalogRepo) GetFactory(id uint) (*models.Factory, error) {
	if v, ok := f.factories[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("factory %d not found", id)
}

func (f *fakeCatalogRepo) GetFactorySection(id uint) (*models.FactorySection, error) {
	if v, ok := f.sections[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("factory section %d not found", id)
}

func (f *fakeCatalogRepo) GetMachine(id uint) (*models.Machine, error) {
	if v, ok := f.machines[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("machine %d not found", id)
}

func (f *fakeCatalogRepo) GetDepartment(id uint) (*models.Department, error) {
	if v, ok := f.departments[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("department %d not found", id)
}

func (f *fakeCatalogRepo) GetPart(id uint) (*models.Part, error) {
	if v, ok := f.parts[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("part %d not found", id)
}

func (f *fakeCatalogRepo) ListFactories() ([]models.Factory, error) {
	var out []models.Factory
	for _, v := range f.factories {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListSectionsByFactory(factoryID uint) ([]models.FactorySection, error) {
	var out []models.FactorySection
	for _, v := range f.sections {
		if v.FactoryID == factoryID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListMachinesBySection(sectionID uint) ([]models.Machine, error) {
	var out []models.Machine
	for _, v := range f.machines {
		if v.FactorySectionID == sectionID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListDepartments() ([]models.Department, error) {
	var out []models.Department
	for _, v := range f.departments {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListParts() ([]models.Part, error) {
	var out []models.Part
	for _, v := range f.parts {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeCatalogRepo) CountMachinesByRunning() (int64, int64, error) {
	var running, notRunning int64
	for _, m := range f.machines {
		if m.IsRunning {
			running++
		} else {
			notRunning++
		}
	}
	return running, notRunning, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) SetMetric(key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) GetMetric(key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return fmt.Errorf("cache miss")
	}
	return json.Unmarshal(b, dest)
}
