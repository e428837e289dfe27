package notifier

import (
	"time"

	"github.com/shopspring/decimal"
)

type BreachAlert struct {
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
