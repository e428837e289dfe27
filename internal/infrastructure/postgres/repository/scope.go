package repository

import (
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"gorm.io/gorm"
)

func applyScope(q *gorm.DB, scope domain.Scope, prefix string) *gorm.DB {
	if scope.ProductID != "" {
		q = q.Where(prefix+"product_id = ?", scope.ProductID)
	}
	if scope.LocationID != "" {
		q = q.Where(prefix+"location_id = ?", scope.LocationID)
	}
	return q
}
