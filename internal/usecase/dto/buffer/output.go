package bufferdto

import (
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/shopspring/decimal"
)

type BufferStatusOutput struct {
	ProductID             string                 `json:"product_id"`
	LocationID            string                 `json:"location_id"`
	ADU                   decimal.Decimal        `json:"adu"`
	DecoupledLeadTimeDays int                    `json:"decoupled_lead_time_days"`
	Zones                 domain.Zones           `json:"zones"`
	TOR                   int64                  `json:"tor"`
	TOY                   int64                  `json:"toy"`
	TOG                   int64                  `json:"tog"`
	NetFlow               domain.NetFlowSnapshot `json:"net_flow"`
	LastRecalculatedAt    *time.Time             `json:"last_recalculated_at,omitempty"`
}

// CycleOutput - итог полного планового цикла.
type CycleOutput struct {
	Requalified        int `json:"requalified"`
	Recalculated       int `json:"recalculated"`
	BreachesDetected   int `json:"breaches_detected"`
	OrdersCreated      int `json:"orders_created"`
	FailedRecalcItems  int `json:"failed_recalculation_items"`
	FailedBreachItems  int `json:"failed_breach_items"`
	FailedReplenishing int `json:"failed_replenishment_items"`
}
