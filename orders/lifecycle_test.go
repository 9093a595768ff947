package orders

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/notify"
)

type recordedNotification struct {
	Type      notify.Type
	Recipient string
	Data      notify.Data
}

type mockNotifier struct {
	m    sync.Mutex
	sent []recordedNotification
	err  error
}

func (n *mockNotifier) Notify(_ context.Context, t notify.Type, recipientEmail, _ string, data notify.Data) error {
	n.m.Lock()
	defer n.m.Unlock()
	n.sent = append(n.sent, recordedNotification{Type: t, Recipient: recipientEmail, Data: data})
	return n.err
}

func (n *mockNotifier) last(t *testing.T) recordedNotification {
	t.Helper()
	n.m.Lock()
	defer n.m.Unlock()
	require.NotEmpty(t, n.sent)
	return n.sent[len(n.sent)-1]
}

func newTestLifecycle(t *testing.T) (*Lifecycle, *mockNotifier, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistoryEntry{},
		&models.OrderNote{},
	))

	user := models.User{ID: "user-1", Email: "jo@example.com", Name: "Jo"}
	require.NoError(t, db.Create(&user).Error)

	notifier := &mockNotifier{}
	return NewLifecycle(db, notifier), notifier, db
}

func ptr(f float64) *float64 { return &f }

func testCart() *models.Cart {
	return &models.Cart{
		Items: []models.CartLineItem{
			{
				ProductID:          1,
				ProductName:        "Alloy Wheel Set",
				Price:              100,
				DiscountPercentage: ptr(10),
				StockQuantity:      5,
				IsActive:           true,
				Quantity:           3,
				AddedAt:            time.Now(),
			},
		},
		Vehicles: []models.VehicleCartLineItem{
			{
				VehicleID: 7,
				Label:     "2021 Toyota Corolla",
				Price:     15000,
				AddedAt:   time.Now(),
			},
		},
	}
}

func testUser() models.User {
	return models.User{ID: "user-1", Email: "jo@example.com", Name: "Jo"}
}

func TestCreateOrderSnapshotsCart(t *testing.T) {
	l, notifier, db := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "12 High St", "call first")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 2)

	merch := order.Items[0]
	assert.Equal(t, models.OrderItemProduct, merch.Kind)
	assert.InDelta(t, 90, merch.UnitPrice, 1e-9)
	require.NotNil(t, merch.OriginalUnitPrice)
	assert.InDelta(t, 100, *merch.OriginalUnitPrice, 1e-9)
	assert.InDelta(t, 270, merch.TotalPrice, 1e-9)

	vehicle := order.Items[1]
	assert.Equal(t, models.OrderItemVehicle, vehicle.Kind)
	assert.Equal(t, 1, vehicle.Quantity)
	assert.InDelta(t, 15000, vehicle.TotalPrice, 1e-9)

	assert.InDelta(t, 15270, order.TotalAmount, 1e-9)

	// One audit entry with no prior status.
	history, err := l.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Empty(t, history[0].OldStatus)
	assert.Equal(t, models.OrderStatusPending, history[0].NewStatus)

	sent := notifier.last(t)
	assert.Equal(t, notify.TypeOrderCreated, sent.Type)
	assert.Equal(t, "jo@example.com", sent.Recipient)
	assert.Equal(t, "Q", order.OrderNumber[:1])

	// Items are rows of their own.
	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	_, err := l.CreateOrder(context.Background(), testUser(), &models.Cart{}, "", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestTransitionHappyPath(t *testing.T) {
	l, notifier, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)

	for _, step := range []struct {
		status models.OrderStatus
		notice notify.Type
	}{
		{models.OrderStatusConfirmed, notify.TypeOrderConfirmed},
		{models.OrderStatusProcessing, notify.TypeOrderProcessing},
		{models.OrderStatusShipped, notify.TypeOrderShipped},
		{models.OrderStatusDelivered, notify.TypeOrderDelivered},
	} {
		updated, err := l.Transition(ctx, order.ID, step.status, "")
		require.NoError(t, err)
		assert.Equal(t, step.status, updated.Status)
		assert.Equal(t, step.notice, notifier.last(t).Type)
	}

	history, err := l.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 5) // creation + four transitions

	// Newest first, and every entry's old status is the status right before it.
	assert.Equal(t, models.OrderStatusShipped, history[0].OldStatus)
	assert.Equal(t, models.OrderStatusDelivered, history[0].NewStatus)
	assert.Equal(t, models.OrderStatusPending, history[3].OldStatus)
	assert.Equal(t, models.OrderStatusConfirmed, history[3].NewStatus)
}

func TestTransitionForwardSkipAllowed(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)

	// pending -> shipped skips confirmed and processing.
	updated, err := l.Transition(ctx, order.ID, models.OrderStatusShipped, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
}

func TestTransitionBackwardRejected(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)
	_, err = l.Transition(ctx, order.ID, models.OrderStatusDelivered, "")
	require.NoError(t, err)

	_, err = l.Transition(ctx, order.ID, models.OrderStatusProcessing, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Status unchanged, no extra audit entry.
	var got models.Order
	require.NoError(t, l.db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	history, err := l.History(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestTransitionFromTerminalRejected(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)
	_, err = l.Transition(ctx, order.ID, models.OrderStatusCancelled, "changed my mind")
	require.NoError(t, err)

	_, err = l.Transition(ctx, order.ID, models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionConflictOnConcurrentChange(t *testing.T) {
	l, notifier, db := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)

	// A competing write changes the row between our read and the guarded
	// update, the way a second admin would.
	flipped := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("flip_status_once", func(tx *gorm.DB) {
		if flipped || tx.Statement.Table != "orders" {
			return
		}
		flipped = true
		flipErr := tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE orders SET status = ? WHERE id = ?", models.OrderStatusCancelled, order.ID).Error
		require.NoError(t, flipErr)
	}))

	_, err = l.Transition(ctx, order.ID, models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrConflict)

	// The lost transition appended no audit entry and sent no notification
	// beyond the creation one.
	history, err := l.History(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestTransitionRefreshesUpdatedAt(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)

	updated, err := l.Transition(ctx, order.ID, models.OrderStatusConfirmed, "")
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(order.UpdatedAt), "returned order carries the new update time")
}

func TestTransitionUnknownOrder(t *testing.T) {
	l, _, _ := newTestLifecycle(t)
	_, err := l.Transition(context.Background(), 999, models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	l, notifier, _ := newTestLifecycle(t)
	ctx := context.Background()

	order, err := l.CreateOrder(ctx, testUser(), testCart(), "", "")
	require.NoError(t, err)

	notifier.m.Lock()
	notifier.err = assert.AnError
	notifier.m.Unlock()

	updated, err := l.Transition(ctx, order.ID, models.OrderStatusConfirmed, "")
	require.NoError(t, err, "notification failure must not fail the transition")
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
}

func TestCanTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusShipped, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusDelivered))
	assert.False(t, CanTransition(models.OrderStatusDelivered, models.OrderStatusCancelled))
	assert.False(t, CanTransition(models.OrderStatusCancelled, models.OrderStatusPending))
	assert.False(t, CanTransition(models.OrderStatusShipped, models.OrderStatusConfirmed))
	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusPending))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("shipped")
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusShipped, s)

	_, ok = ParseStatus("returned")
	assert.False(t, ok)
}
