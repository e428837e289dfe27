package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReplenishmentStatus string

const (
	ReplenishmentDraft    ReplenishmentStatus = "DRAFT"
	ReplenishmentApproved ReplenishmentStatus = "APPROVED"
	ReplenishmentSent     ReplenishmentStatus = "SENT"
)

// ReplenishmentOrder - рекомендация на пополнение. Переходы статусов
// выполняются вне движка.
type ReplenishmentOrder struct {
	ID            string
	Reference     string
	ProductID     string
	LocationID    string
	QtyRecommend  int64
	NetFlow       decimal.Decimal
	TopOfGreen    int64
	TargetDueDate time.Time
	Status        ReplenishmentStatus
	BreachID      *string
	ProposalTS    time.Time
}
