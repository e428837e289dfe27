package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DecouplingType string

const (
	DecouplingNone          DecouplingType = ""
	DecouplingStrategic     DecouplingType = "strategic"
	DecouplingCustomerOrder DecouplingType = "customer_order"
	DecouplingStockPoint    DecouplingType = "stock_point"
	DecouplingIntermediate  DecouplingType = "intermediate"
)

// Идентификаторы факторов, участвующих в таблице решений.
const (
	FactorLeadTime          = "lead_time"
	FactorDemandVariability = "demand_variability"
	FactorCustomerService   = "customer_service"
)

type DecouplingFactor struct {
	ID     string
	Weight decimal.Decimal
	Score  decimal.Decimal
}

type DecouplingRecommendation struct {
	ID            string
	LocationID    string
	Score         int
	Contributions map[string]decimal.Decimal
	Type          DecouplingType
	Confidence    int
	ScoredAt      time.Time
}
