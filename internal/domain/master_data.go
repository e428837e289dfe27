package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationRole string

const (
	RoleMainHub            LocationRole = "MAIN_HUB"
	RoleDistributionCenter LocationRole = "DISTRIBUTION_CENTER"
	RoleStore              LocationRole = "STORE"
	RolePlant              LocationRole = "PLANT"
	RoleOther              LocationRole = "OTHER"
)

type Location struct {
	ID   string
	Name string
	Role LocationRole
}

// BufferProfile - именованный набор коэффициентов для класса позиций.
type BufferProfile struct {
	ID                   string
	Name                 string
	VariabilityFactor    decimal.Decimal
	SpikeHorizonFactor   decimal.Decimal
	SpikeThresholdFactor decimal.Decimal
}

// OnHandSnapshot - остаток на момент CapturedAt. Актуален последний.
type OnHandSnapshot struct {
	ProductID  string
	LocationID string
	Qty        decimal.Decimal
	CapturedAt time.Time
}

// SupplyOpen - единственный статус поставки, входящий в on-order.
const SupplyOpen = "OPEN"

// OpenSupplyOrder - открытый заказ поставки (закупка или перемещение).
type OpenSupplyOrder struct {
	ID         string
	ProductID  string
	LocationID string
	OpenQty    decimal.Decimal
	DueDate    time.Time
	Status     string
}

// DemandRecord - фактическое потребление за день.
type DemandRecord struct {
	ProductID  string
	LocationID string
	DemandDate time.Time
	Qty        decimal.Decimal
}

type AdjustmentType string

const (
	AdjustmentDemand   AdjustmentType = "DEMAND"
	AdjustmentLeadTime AdjustmentType = "LEAD_TIME"
	AdjustmentTrend    AdjustmentType = "TREND"
)

// PlannedAdjustment активна на интервале [StartsAt, EndsAt).
type PlannedAdjustment struct {
	ID         string
	ProductID  string
	LocationID string
	Type       AdjustmentType
	Factor     decimal.Decimal
	StartsAt   time.Time
	EndsAt     time.Time
	Note       string
}

func (a *PlannedAdjustment) ActiveAt(t time.Time) bool {
	return !t.Before(a.StartsAt) && t.Before(a.EndsAt)
}
