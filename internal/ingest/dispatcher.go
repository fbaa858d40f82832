// Package ingest drains the webhook task queue: classify, enrich,
// persist, broadcast. Handler failures are logged and never propagate;
// the HTTP acknowledgment was sent before processing started.
package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
	"github.com/fuyurina/sellerhub/internal/marketplace"
	"github.com/fuyurina/sellerhub/internal/metrics"
	"github.com/fuyurina/sellerhub/internal/models"
	"github.com/fuyurina/sellerhub/internal/retry"
	"github.com/fuyurina/sellerhub/internal/store"
)

// Storage is the persistence surface the handlers write through. All
// operations are idempotent by their natural keys.
type Storage interface {
	UpsertOrder(ctx context.Context, order *models.Order) error
	UpsertOrderItems(ctx context.Context, items []models.OrderItem) []store.ItemOutcome
	UpsertLogistics(ctx context.Context, packages []models.Logistic) error
	UpdateOrderStatus(ctx context.Context, shopID int64, orderSN, status string, updateTime int64) error
	FindOrderStatus(ctx context.Context, orderSN string) (string, bool, error)
	SetTracking(ctx context.Context, orderSN, packageNumber, trackingNo, documentStatus string) error
	MarkDocumentReady(ctx context.Context, orderSN, packageNumber string) error
	InsertNotification(ctx context.Context, n *models.ShopNotification) error
	MarkNotificationProcessed(ctx context.Context, id int64) error
}

// Broadcaster fans one event out to every connected subscriber
type Broadcaster interface {
	Broadcast(event interface{})
}

// Dispatcher routes one classified delivery to its handler
type Dispatcher struct {
	store     Storage
	client    marketplace.Client
	directory marketplace.Directory
	hub       Broadcaster
	policy    retry.Policy
	logger    *zap.Logger
}

func NewDispatcher(
	storage Storage,
	client marketplace.Client,
	directory marketplace.Directory,
	hub Broadcaster,
	policy retry.Policy,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		store:     storage,
		client:    client,
		directory: directory,
		hub:       hub,
		policy:    policy,
		logger:    logger,
	}
}

// Dispatch processes one delivery. Never returns an error: every
// failure is terminal here and only observable through logs/metrics.
func (d *Dispatcher) Dispatch(ctx context.Context, in event.Inbound) {
	kind := in.Kind()
	metrics.EventsReceived.WithLabelValues(kind.String()).Inc()

	var err error
	switch kind {
	case event.KindOrderStatus:
		err = d.handleOrderStatus(ctx, in)
	case event.KindTrackingUpdate:
		err = d.handleTrackingUpdate(ctx, in)
	case event.KindChatMessage:
		err = d.handleChatMessage(ctx, in)
	case event.KindDocumentStatus:
		err = d.handleDocumentStatus(ctx, in)
	case event.KindShopPenalty:
		err = d.handleShopPenalty(ctx, in)
	case event.KindPlatformUpdate:
		err = d.handlePlatformUpdate(ctx, in)
	case event.KindItemViolation:
		err = d.handleItemViolation(ctx, in)
	default:
		d.logger.Debug("Ignoring unmapped webhook code",
			zap.Int("code", in.Code),
			zap.Int64("shop_id", in.ShopID),
		)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		d.logger.Error("Webhook processing failed",
			zap.String("kind", kind.String()),
			zap.Int64("shop_id", in.ShopID),
			zap.Error(err),
		)
	}
	metrics.EventsProcessed.WithLabelValues(kind.String(), outcome).Inc()
}
