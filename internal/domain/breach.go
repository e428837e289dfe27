package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BreachType string

const (
	BreachBelowTOR BreachType = "BELOW_TOR"
	BreachBelowTOY BreachType = "BELOW_TOY"
	BreachAboveTOG BreachType = "ABOVE_TOG"
)

type BreachSeverity string

const (
	SeverityHigh   BreachSeverity = "HIGH"
	SeverityMedium BreachSeverity = "MEDIUM"
	SeverityLow    BreachSeverity = "LOW"
)

func (t BreachType) Severity() BreachSeverity {
	switch t {
	case BreachBelowTOR:
		return SeverityHigh
	case BreachBelowTOY:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// BreachTypeForStatus возвращает тип нарушения для статуса буфера.
// GREEN нарушением не является.
func BreachTypeForStatus(status BufferStatus) (BreachType, bool) {
	switch status {
	case BufferRed:
		return BreachBelowTOR, true
	case BufferYellow:
		return BreachBelowTOY, true
	case BufferBlue:
		return BreachAboveTOG, true
	default:
		return "", false
	}
}

// BreachEvent - запись аудита, никогда не удаляется.
// Единственная допустимая мутация - подтверждение.
type BreachEvent struct {
	ID             string
	ProductID      string
	LocationID     string
	BreachType     BreachType
	CurrentOH      decimal.Decimal
	NetFlow        decimal.Decimal
	Threshold      int64
	Severity       BreachSeverity
	DetectedAt     time.Time
	Acknowledged   bool
	AcknowledgedAt *time.Time
}

func (e *BreachEvent) IsOpen() bool {
	return !e.Acknowledged
}

func (e *BreachEvent) Demands() bool {
	return e.Severity == SeverityHigh || e.Severity == SeverityMedium
}
