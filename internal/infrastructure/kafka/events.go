package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

type BreachEvent struct {
	BreachID   string          `json:"breach_id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BreachType string          `json:"breach_type"`
	Severity   string          `json:"severity"`
	CurrentOH  decimal.Decimal `json:"current_oh"`
	NetFlow    decimal.Decimal `json:"net_flow"`
	Threshold  int64           `json:"threshold"`
	DetectedAt time.Time       `json:"detected_at"`
}

type ReplenishmentEvent struct {
	OrderID       string          `json:"order_id"`
	Reference     string          `json:"reference"`
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id"`
	QtyRecommend  int64           `json:"qty_recommend"`
	NetFlow       decimal.Decimal `json:"net_flow"`
	TopOfGreen    int64           `json:"top_of_green"`
	TargetDueDate string          `json:"target_due_date"`
	BreachID      *string         `json:"breach_id,omitempty"`
	ProposalTS    time.Time       `json:"proposal_ts"`
}

type RecalculationEvent struct {
	RecordID     string          `json:"record_id"`
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	OldADU       decimal.Decimal `json:"old_adu"`
	NewADU       decimal.Decimal `json:"new_adu"`
	OldTOG       int64           `json:"old_tog"`
	NewTOG       int64           `json:"new_tog"`
	ChangeReason string          `json:"change_reason"`
	TriggeredBy  string          `json:"triggered_by"`
	RecalcTS     time.Time       `json:"recalc_ts"`
}

// OrderBookedEvent - входящее сообщение о заказе клиента.
type OrderBookedEvent struct {
	OrderID          string          `json:"order_id"`
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	Qty              decimal.Decimal `json:"qty"`
	ConfirmedDueDate string          `json:"confirmed_due_date"`
	BookedAt         time.Time       `json:"booked_at"`
}
