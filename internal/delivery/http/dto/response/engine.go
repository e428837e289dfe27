package response

import (
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type BreachResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	BreachType     string          `json:"breach_type"`
	Severity       string          `json:"severity"`
	CurrentOH      decimal.Decimal `json:"current_oh"`
	NetFlow        decimal.Decimal `json:"net_flow"`
	Threshold      int64           `json:"threshold"`
	DetectedAt     time.Time       `json:"detected_at"`
	Acknowledged   bool            `json:"acknowledged"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty"`
}

type ReplenishmentResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id"`
	QtyRecommend  int64           `json:"qty_recommend"`
	NetFlow       decimal.Decimal `json:"net_flow"`
	TopOfGreen    int64           `json:"top_of_green"`
	TargetDueDate string          `json:"target_due_date"`
	Status        string          `json:"status"`
	BreachID      *string         `json:"breach_id,omitempty"`
	ProposalTS    time.Time       `json:"proposal_ts"`
}

type RecalculationRecordResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	OldADU       decimal.Decimal `json:"old_adu"`
	NewADU       decimal.Decimal `json:"new_adu"`
	OldZones     domain.Zones    `json:"old_zones"`
	NewZones     domain.Zones    `json:"new_zones"`
	DAFApplied   decimal.Decimal `json:"daf_applied"`
	LTAFApplied  decimal.Decimal `json:"ltaf_applied"`
	TrendFactor  decimal.Decimal `json:"trend_factor"`
	ChangeReason string          `json:"change_reason"`
	TriggeredBy  string          `json:"triggered_by"`
	RecalcTS     time.Time       `json:"recalc_ts"`
}

type RecalculationResponse struct {
	Evaluated    int                           `json:"evaluated"`
	Recalculated int                           `json:"recalculated"`
	Records      []RecalculationRecordResponse `json:"records"`
	Failures     []domain.ItemFailure          `json:"failures,omitempty"`
}

type QualificationResponse struct {
	OrderID             string          `json:"order_id"`
	Revision            int             `json:"revision"`
	OrderQty            decimal.Decimal `json:"order_qty"`
	QualifiedQty        decimal.Decimal `json:"qualified_qty"`
	UnqualifiedQty      decimal.Decimal `json:"unqualified_qty"`
	IsSpike             bool            `json:"is_spike"`
	SpikeThresholdQty   decimal.Decimal `json:"spike_threshold_qty"`
	SpikeHorizonDays    decimal.Decimal `json:"spike_horizon_days"`
	QualificationReason string          `json:"qualification_reason"`
	QualifiedAt         time.Time       `json:"qualified_at"`
	Created             bool            `json:"created"`
}

type DecouplingResponse struct {
	ID            string                     `json:"id"`
	LocationID    string                     `json:"location_id"`
	Score         int                        `json:"score"`
	Contributions map[string]decimal.Decimal `json:"contributions"`
	Type          *string                    `json:"type"`
	Confidence    int                        `json:"confidence"`
	ScoredAt      time.Time                  `json:"scored_at"`
}
