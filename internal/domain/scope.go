package domain

import "time"

// Scope ограничивает пакетную операцию. Пустое поле означает "все".
type Scope struct {
	ProductID  string
	LocationID string
}

func (s Scope) Matches(productID, locationID string) bool {
	if s.ProductID != "" && s.ProductID != productID {
		return false
	}
	if s.LocationID != "" && s.LocationID != locationID {
		return false
	}
	return true
}

func (s Scope) IsAll() bool {
	return s.ProductID == "" && s.LocationID == ""
}

// ItemFailure описывает пропущенную в пакете пару product-location.
type ItemFailure struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Error      string `json:"error"`
}

// TruncateDay отбрасывает время суток, оставляя календарную дату в UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
