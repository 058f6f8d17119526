package services

import (
	"parts_manager/internal/apperrors"
	"parts_manager/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceivePartAddsMachineStock(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.inv.SetMachinePartCounts(3, 7, 5, 10))
	require.NoError(t, f.inv.AddStorageStock(1, 7, 20))

	order := f.machineOrder(t)
	line, err := f.lineSvc.AddLine(order.ID, 7, 8, false, "")
	require.NoError(t, err)

	received, err := f.invSvc.ReceivePart(line.ID, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, received.PartReceivedByFactoryDate)

	mp, err := f.invSvc.GetMachinePart(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 13, mp.Qty)
	assert.Equal(t, 10, mp.ReqQty)

	// A vendor receipt never touches storage
	sp, err := f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 20, sp.Qty)
}

func TestReceivePartStorageOrderSetsDateOnly(t *testing.T) {
	f := newFixture(t)
	order := f.storageOrder(t)
	line, err := f.lineSvc.AddLine(order.ID, 7, 8, false, "")
	require.NoError(t, err)

	received, err := f.invSvc.ReceivePart(line.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, received.PartReceivedByFactoryDate)

	_, err = f.invSvc.GetMachinePart(3, 7)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReceivePartAlreadyReceived(t *testing.T) {
	f := newFixture(t)
	order := f.machineOrder(t)
	line, err := f.lineSvc.AddLine(order.ID, 7, 8, false, "")
	require.NoError(t, err)

	_, err = f.invSvc.ReceivePart(line.ID, time.Now())
	require.NoError(t, err)

	_, err = f.invSvc.ReceivePart(line.ID, time.Now())
	assert.True(t, apperrors.IsState(err))
}

func TestTransferFromStorage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.inv.AddStorageStock(1, 7, 20))

	order := f.machineOrder(t)
	line, err := f.lineSvc.AddLine(order.ID, 7, 15, false, "")
	require.NoError(t, err)
	require.True(t, line.InStorage)

	transferred, err := f.invSvc.TransferFromStorage(line.ID)
	require.NoError(t, err)

	// Zero-sum: storage lost exactly what the machine gained
	sp, err := f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, sp.Qty)

	mp, err := f.invSvc.GetMachinePart(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 15, mp.Qty)

	assert.Equal(t, 15, transferred.QtyTakenFromStorage)
	assert.LessOrEqual(t, transferred.QtyTakenFromStorage, transferred.Qty)
	assert.Equal(t, models.LineStorageFulfilled, transferred.State())
}

func TestTransferFromStorageOverWithdrawal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.inv.AddStorageStock(1, 7, 20))

	order := f.machineOrder(t)
	first, err := f.lineSvc.AddLine(order.ID, 7, 15, false, "")
	require.NoError(t, err)
	second, err := f.lineSvc.AddLine(order.ID, 7, 15, false, "")
	require.NoError(t, err)

	// Both lines were flagged in_storage at add time, but combined they exceed
	// the pool. Stock is re-checked at commit: only one transfer succeeds.
	_, err = f.invSvc.TransferFromStorage(first.ID)
	require.NoError(t, err)

	_, err = f.invSvc.TransferFromStorage(second.ID)
	assert.True(t, apperrors.IsInsufficientStock(err))

	sp, err := f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, sp.Qty)

	// The failed line is untouched and can still go through procurement
	line, err := f.lineSvc.GetLine(second.ID)
	require.NoError(t, err)
	assert.Zero(t, line.QtyTakenFromStorage)
	assert.Equal(t, models.LineRequested, line.State())
}

func TestTransferFromStorageGuards(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.inv.AddStorageStock(1, 7, 50))

	storageOrder := f.storageOrder(t)
	line, err := f.lineSvc.AddLine(storageOrder.ID, 7, 5, false, "")
	require.NoError(t, err)

	_, err = f.invSvc.TransferFromStorage(line.ID)
	assert.True(t, apperrors.IsState(err))

	machineOrder := f.machineOrder(t)
	fulfilled, err := f.lineSvc.AddLine(machineOrder.ID, 7, 5, false, "")
	require.NoError(t, err)
	_, err = f.invSvc.TransferFromStorage(fulfilled.ID)
	require.NoError(t, err)

	_, err = f.invSvc.TransferFromStorage(fulfilled.ID)
	assert.True(t, apperrors.IsState(err))
}

func TestDamageMovesStockToDamagedGoods(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.inv.AddStorageStock(1, 7, 5))

	require.NoError(t, f.invSvc.Damage(1, 7, 3))

	sp, err := f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, sp.Qty)

	dg, err := f.inv.GetDamagedGoods(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, dg.Qty)

	// Remaining stock is below the requested amount: nothing moves
	err = f.invSvc.Damage(1, 7, 10)
	assert.True(t, apperrors.IsInsufficientStock(err))

	sp, err = f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, sp.Qty)

	err = f.invSvc.Damage(1, 7, 0)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMarkDefective(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.invSvc.MarkDefective(3, 7, 4))
	mp, err := f.invSvc.GetMachinePart(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, mp.DefectiveQty)
	assert.Zero(t, mp.Qty)

	require.NoError(t, f.invSvc.MarkDefective(3, 7, -3))
	mp, err = f.invSvc.GetMachinePart(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, mp.DefectiveQty)

	err = f.invSvc.MarkDefective(3, 7, -5)
	assert.True(t, apperrors.IsInsufficientStock(err))

	err = f.invSvc.MarkDefective(3, 7, 0)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdjustMachinePart(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.invSvc.AdjustMachinePart(3, 7, 11, 20))
	mp, err := f.invSvc.GetMachinePart(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 11, mp.Qty)
	assert.Equal(t, 20, mp.ReqQty)

	err = f.invSvc.AdjustMachinePart(3, 7, -1, 0)
	assert.True(t, apperrors.IsValidation(err))

	err = f.invSvc.AdjustMachinePart(99, 7, 1, 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRestockStorage(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.invSvc.RestockStorage(1, 7, 30))
	sp, err := f.inv.GetStoragePart(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 30, sp.Qty)

	err = f.invSvc.RestockStorage(1, 7, -1)
	assert.True(t, apperrors.IsValidation(err))

	err = f.invSvc.RestockStorage(99, 7, 5)
	assert.True(t, apperrors.IsNotFound(err))
}
