package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// последняя ревизия квалификации для каждого заказа
const latestQualificationJoin = `JOIN LATERAL (
	SELECT q.qualified_qty, q.qualification_reason
	FROM order_qualifications q
	WHERE q.order_id = o.id
	ORDER BY q.revision DESC
	LIMIT 1
) lq ON true`

type DefaultOrderRepo struct {
	DB *gorm.DB
}

func NewDefaultOrderRepo(db *gorm.DB) *DefaultOrderRepo {
	return &DefaultOrderRepo{DB: db}
}

var _ domain.OrderRepository = (*DefaultOrderRepo)(nil)

// SaveSalesOrder - upsert по id заказа.
func (r *DefaultOrderRepo) SaveSalesOrder(ctx context.Context, order *domain.SalesOrder) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"qty", "confirmed_due_date", "status"}),
		}).
		Create(mappers.ToGORMSalesOrder(order)).Error
}

func (r *DefaultOrderRepo) LatestQualification(ctx context.Context, orderID string) (*domain.OrderQualification, error) {
	var row models.OrderQualificationModel
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("revision DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQualificationNotFound
		}
		return nil, err
	}
	return mappers.ToDomainQualification(&row), nil
}

func (r *DefaultOrderRepo) AppendQualification(ctx context.Context, q *domain.OrderQualification) (bool, error) {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mappers.ToGORMQualification(q))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultOrderRepo) ListPendingRequalification(ctx context.Context, scope domain.Scope) ([]*domain.SalesOrder, error) {
	var rows []models.SalesOrderModel
	q := r.DB.WithContext(ctx).
		Table("sales_orders AS o").
		Select("o.*").
		Joins(latestQualificationJoin).
		Where("o.status = ?", string(domain.SalesOrderOpen)).
		Where("lq.qualification_reason = ?", string(domain.ReasonOutsideHorizon))
	q = applyScope(q, scope, "o.")
	if err := q.Order("o.id").Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.SalesOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, mappers.ToDomainSalesOrder(&rows[i]))
	}
	return orders, nil
}

func (r *DefaultOrderRepo) QualifiedDemand(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.WithContext(ctx).
		Table("sales_orders AS o").
		Select("COALESCE(SUM(lq.qualified_qty), 0)").
		Joins(latestQualificationJoin).
		Where("o.product_id = ? AND o.location_id = ? AND o.status = ?", productID, locationID, string(domain.SalesOrderOpen)).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
