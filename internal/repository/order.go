package repository

import (
	"context"
	"printwear-storefront/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// UpsertPaid records the order as paid, keyed by checkout session id.
	// Redelivery of the same event lands on the existing row.
	UpsertPaid(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, sessionID string, status model.OrderStatus) error
	RecordFulfillment(ctx context.Context, sessionID, printifyOrderID string, status model.OrderStatus) error
	RecordFulfillmentError(ctx context.Context, sessionID, message string, status model.OrderStatus) error
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) UpsertPaid(ctx context.Context, order *model.Order) error {
	order.Status = model.OrderStatusPaid
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"email":         order.Email,
			"shipping_json": order.ShippingJSON,
			"items_json":    order.ItemsJSON,
			"total_cents":   order.TotalCents,
			"currency":      order.Currency,
			"status":        model.OrderStatusPaid,
			"updated_at":    time.Now(),
		}),
	}).Create(order).Error
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, sessionID string, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepoImpl) RecordFulfillment(ctx context.Context, sessionID, printifyOrderID string, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"printify_order_id": printifyOrderID,
			"status":            status,
			"updated_at":        time.Now(),
		}).Error
}

func (r *orderRepoImpl) RecordFulfillmentError(ctx context.Context, sessionID, message string, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"fulfillment_error": message,
			"status":            status,
			"updated_at":        time.Now(),
		}).Error
}

func (r *orderRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}
