package kafka

import (
	"fmt"
	"time"
)

// parseDate принимает дату (2006-01-02) или RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid confirmed_due_date %q", s)
	}
	return t, nil
}
