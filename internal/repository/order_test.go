package repository

import (
	"context"
	"fmt"
	"printwear-storefront/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Order{}, &model.Product{}, &model.ProductVariant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpsertPaidIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	order := &model.Order{
		SessionID:  "cs_test_1",
		Email:      "jane@example.com",
		ItemsJSON:  `[{"id":"prod-1","variantId":101,"quantity":2}]`,
		TotalCents: 2500,
		Currency:   "usd",
	}

	for i := 0; i < 2; i++ {
		if err := repo.UpsertPaid(ctx, &model.Order{
			SessionID:  order.SessionID,
			Email:      order.Email,
			ItemsJSON:  order.ItemsJSON,
			TotalCents: order.TotalCents,
			Currency:   order.Currency,
		}); err != nil {
			t.Fatalf("upsert %d: %v", i+1, err)
		}
	}

	stored, err := repo.FindBySessionID(ctx, "cs_test_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != model.OrderStatusPaid {
		t.Fatalf("status = %s, want %s", stored.Status, model.OrderStatusPaid)
	}

	var count int64
	if err := newSessionCount(repo, ctx, &count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one order row, got %d", count)
	}
}

func newSessionCount(repo OrderRepository, ctx context.Context, count *int64) error {
	return repo.(*orderRepoImpl).db.WithContext(ctx).Model(&model.Order{}).Count(count).Error
}

func TestUpsertPaidResetsStatusOnRedelivery(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	if err := repo.UpsertPaid(ctx, &model.Order{SessionID: "cs_1", Currency: "usd"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "cs_1", model.OrderStatusMissingProduct); err != nil {
		t.Fatalf("update status: %v", err)
	}

	// a redelivered event re-enters the pipeline from paid
	if err := repo.UpsertPaid(ctx, &model.Order{SessionID: "cs_1", Currency: "usd"}); err != nil {
		t.Fatalf("redelivery upsert: %v", err)
	}

	stored, err := repo.FindBySessionID(ctx, "cs_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != model.OrderStatusPaid {
		t.Fatalf("status = %s, want %s", stored.Status, model.OrderStatusPaid)
	}
}

func TestRecordFulfillmentBookkeeping(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	if err := repo.UpsertPaid(ctx, &model.Order{SessionID: "cs_1", Currency: "usd"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.RecordFulfillment(ctx, "cs_1", "po_42", model.OrderStatusOrderCreated); err != nil {
		t.Fatalf("record fulfillment: %v", err)
	}
	stored, err := repo.FindBySessionID(ctx, "cs_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PrintifyOrderID == nil || *stored.PrintifyOrderID != "po_42" {
		t.Fatalf("printify order id not stored: %+v", stored)
	}
	if stored.Status != model.OrderStatusOrderCreated {
		t.Fatalf("status = %s", stored.Status)
	}

	if err := repo.RecordFulfillmentError(ctx, "cs_1", "remote says no", model.OrderStatusPrintifyError); err != nil {
		t.Fatalf("record error: %v", err)
	}
	stored, err = repo.FindBySessionID(ctx, "cs_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.FulfillmentError == nil || *stored.FulfillmentError != "remote says no" {
		t.Fatalf("error message not stored: %+v", stored)
	}
}
