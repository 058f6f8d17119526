package models

import (
	"time"
)

type OrderedPart struct {
	ID                         uint       `json:"id" gorm:"primaryKey"`
	OrderID                    uint       `json:"order_id" gorm:"not null;index"`
	PartID                     uint       `json:"part_id" gorm:"not null;index"`
	Qty                        int        `json:"qty" gorm:"not null"`
	QtyTakenFromStorage        int        `json:"qty_taken_from_storage" gorm:"not null;default:0"`
	InStorage                  bool       `json:"in_storage" gorm:"not null;default:false"` // advisory flag set at creation
	IsSampleSentToOffice       bool       `json:"is_sample_sent_to_office" gorm:"not null;default:false"`
	SampleSentDate             *time.Time `json:"sample_sent_date"`
	IsSampleReceivedByOffice   bool       `json:"is_sample_received_by_office" gorm:"not null;default:false"`
	SampleReceivedDate         *time.Time `json:"sample_received_date"`
	Vendor                     string     `json:"vendor"`
	Brand                      string     `json:"brand"`
	UnitCost                   float64    `json:"unit_cost"`
	PartPurchasedDate          *time.Time `json:"part_purchased_date"`
	PartSentByOfficeDate       *time.Time `json:"part_sent_by_office_date"`
	PartReceivedByFactoryDate  *time.Time `json:"part_received_by_factory_date"`
	MRRNumber                  *string    `json:"mrr_number" gorm:"uniqueIndex"` // goods-received reference, unique across all lines
	Note                       string     `json:"note" gorm:"type:text"`
	OfficeNote                 string     `json:"office_note" gorm:"type:text"`
	ApprovedBudget             bool       `json:"approved_budget" gorm:"not null;default:false"`
	ApprovedPendingOrder       bool       `json:"approved_pending_order" gorm:"not null;default:false"`
	ApprovedOfficeOrder        bool       `json:"approved_office_order" gorm:"not null;default:false"`
	ApprovedStorageWithdrawal  bool       `json:"approved_storage_withdrawal" gorm:"not null;default:false"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

// ApprovalGate identifies one of the four independent approval booleans on a line.
type ApprovalGate string

const (
	GateBudget            ApprovalGate = "budget"
	GatePendingOrder      ApprovalGate = "pending_order"
	GateOfficeOrder       ApprovalGate = "office_order"
	GateStorageWithdrawal ApprovalGate = "storage_withdrawal"
)

// LineState is derived from a line's fields, never stored.
type LineState string

const (
	LineRequested        LineState = "requested"
	LineCosted           LineState = "costed"
	LineBudgetApproved   LineState = "budget_approved"
	LineOfficeApproved   LineState = "office_approved"
	LineReceived         LineState = "received"
	LineStorageFulfilled LineState = "storage_fulfilled"
)

// State derives the procurement state of a line. Terminal states win over
// approval states; approval states win over costing.
func (p *OrderedPart) State() LineState {
	switch {
	case p.QtyTakenFromStorage > 0:
		return LineStorageFulfilled
	case p.PartReceivedByFactoryDate != nil:
		return LineReceived
	case p.ApprovedOfficeOrder:
		return LineOfficeApproved
	case p.ApprovedBudget:
		return LineBudgetApproved
	case p.Costed():
		return LineCosted
	default:
		return LineRequested
	}
}

// Costed reports whether procurement costing has been recorded.
func (p *OrderedPart) Costed() bool {
	return p.Vendor != "" || p.Brand != "" || p.UnitCost > 0
}

// Fulfilled reports whether the line reached a terminal state. Fulfilled lines
// can no longer be deleted or requantified.
func (p *OrderedPart) Fulfilled() bool {
	s := p.State()
	return s == LineReceived || s == LineStorageFulfilled
}
