package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrderStatus string

const (
	SalesOrderOpen      SalesOrderStatus = "OPEN"
	SalesOrderShipped   SalesOrderStatus = "SHIPPED"
	SalesOrderCancelled SalesOrderStatus = "CANCELLED"
)

// SalesOrder - входящий заказ клиента, формирующий спрос.
type SalesOrder struct {
	ID               string
	ProductID        string
	LocationID       string
	Qty              decimal.Decimal
	ConfirmedDueDate time.Time
	Status           SalesOrderStatus
	BookedAt         time.Time
}

func (o *SalesOrder) Validate() error {
	if o.ID == "" || o.ProductID == "" || o.LocationID == "" {
		return ErrInvalidOrder
	}
	if o.Qty.IsNegative() {
		return ErrInvalidOrder
	}
	if o.ConfirmedDueDate.IsZero() {
		return ErrInvalidOrder
	}
	return nil
}

type QualificationReason string

const (
	ReasonOutsideHorizon  QualificationReason = "outside_horizon"
	ReasonSpikeCapped     QualificationReason = "spike_capped"
	ReasonWithinThreshold QualificationReason = "within_threshold"
)

// OrderQualification неизменяема. Повторная оценка добавляется
// новой записью с увеличенным Revision.
type OrderQualification struct {
	ID                  string
	OrderID             string
	ProductID           string
	LocationID          string
	Revision            int
	OrderQty            decimal.Decimal
	QualifiedQty        decimal.Decimal
	UnqualifiedQty      decimal.Decimal
	IsSpike             bool
	SpikeThresholdQty   decimal.Decimal
	SpikeHorizonDays    decimal.Decimal
	ADUAtQualification  decimal.Decimal
	ConfirmedDueDate    time.Time
	QualificationReason QualificationReason
	QualifiedAt         time.Time
}
