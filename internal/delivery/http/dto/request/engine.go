package request

import (
	"github.com/shopspring/decimal"
)

// ScopeRequest - пустые поля означают все пары.
type ScopeRequest struct {
	ProductID  string `json:"product_id" form:"product_id"`
	LocationID string `json:"location_id" form:"location_id"`
}

type RecalculateRequest struct {
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	TriggeredBy string `json:"triggered_by"`
}

type DecouplingFactorRequest struct {
	ID     string          `json:"id" binding:"required"`
	Weight decimal.Decimal `json:"weight"`
	Score  decimal.Decimal `json:"score"`
}

type ScoreDecouplingRequest struct {
	LocationID string                    `json:"location_id" binding:"required"`
	Factors    []DecouplingFactorRequest `json:"factors" binding:"required"`
}

type QualifyOrderRequest struct {
	OrderID          string          `json:"order_id" binding:"required"`
	ProductID        string          `json:"product_id" binding:"required"`
	LocationID       string          `json:"location_id" binding:"required"`
	Qty              decimal.Decimal `json:"qty"`
	ConfirmedDueDate string          `json:"confirmed_due_date" binding:"required"`
}
