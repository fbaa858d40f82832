package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fuyurina/sellerhub/internal/event"
	"github.com/fuyurina/sellerhub/internal/marketplace"
	"github.com/fuyurina/sellerhub/internal/models"
	"github.com/fuyurina/sellerhub/internal/store"
)

// OrderEvent is the new_order broadcast frame payload
type OrderEvent struct {
	Type          string  `json:"type"`
	ShopID        int64   `json:"shop_id"`
	OrderSN       string  `json:"order_sn"`
	OrderStatus   string  `json:"order_status"`
	BuyerUsername string  `json:"buyer_username"`
	TotalAmount   float64 `json:"total_amount"`
	Timestamp     int64   `json:"timestamp"`
}

// handleOrderStatus processes an order-status push. TO_RETURN takes
// the narrow status-only path; every other status triggers a full
// detail re-fetch and three independent upserts.
func (d *Dispatcher) handleOrderStatus(ctx context.Context, in event.Inbound) error {
	payload, err := in.OrderStatus()
	if err != nil {
		return err
	}

	if payload.Status == models.OrderStatusToReturn {
		return d.store.UpdateOrderStatus(ctx, in.ShopID, payload.OrderSN, payload.Status, payload.UpdateTime)
	}

	var detail *marketplace.OrderDetail
	err = d.policy.Do(ctx, "get_order_detail", func() error {
		var fetchErr error
		detail, fetchErr = d.client.GetOrderDetail(ctx, in.ShopID, payload.OrderSN)
		return fetchErr
	})
	if err != nil {
		return fmt.Errorf("failed to fetch order detail for %s: %w", payload.OrderSN, err)
	}

	order := orderFromDetail(detail, in.ShopID)
	items := itemsFromDetail(detail)
	packages := logisticsFromDetail(detail)

	// The three writes hit independent tables keyed by the same
	// order_sn and run concurrently. Each is retried on its own;
	// failures are collected, not short-circuited.
	var (
		wg          sync.WaitGroup
		orderErr    error
		logisticErr error
		outcomes    []store.ItemOutcome
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		orderErr = d.store.UpsertOrder(ctx, order)
	}()
	go func() {
		defer wg.Done()
		outcomes = d.store.UpsertOrderItems(ctx, items)
	}()
	go func() {
		defer wg.Done()
		logisticErr = d.store.UpsertLogistics(ctx, packages)
	}()
	wg.Wait()

	if failed := store.Failed(outcomes); failed > 0 {
		d.logger.Warn("Some order items failed to persist",
			zap.String("order_sn", payload.OrderSN),
			zap.Int("failed", failed),
			zap.Int("total", len(outcomes)),
		)
	}

	if detail.OrderStatus == models.OrderStatusReadyToShip {
		d.hub.Broadcast(OrderEvent{
			Type:          "new_order",
			ShopID:        in.ShopID,
			OrderSN:       detail.OrderSN,
			OrderStatus:   detail.OrderStatus,
			BuyerUsername: detail.BuyerUsername,
			TotalAmount:   detail.TotalAmount,
			Timestamp:     detail.UpdateTime,
		})

		d.maybeAutoShip(in.ShopID, detail.OrderSN)
	}

	return errors.Join(orderErr, logisticErr)
}

// maybeAutoShip triggers shipment processing asynchronously when the
// shop has auto-ship enabled. Fire-and-forget: failures are retried
// then logged, never propagated to the handler.
func (d *Dispatcher) maybeAutoShip(shopID int64, orderSN string) {
	ctx := context.Background()

	enabled, err := d.directory.AutoShipEnabled(ctx, shopID)
	if err != nil {
		d.logger.Warn("Failed to read auto-ship setting",
			zap.Int64("shop_id", shopID),
			zap.Error(err),
		)
		return
	}
	if !enabled {
		return
	}

	go func() {
		err := d.policy.Do(ctx, "auto_ship", func() error {
			return d.client.ShipOrder(ctx, shopID, orderSN)
		})
		if err != nil {
			d.logger.Error("Auto-ship failed",
				zap.Int64("shop_id", shopID),
				zap.String("order_sn", orderSN),
				zap.Error(err),
			)
			return
		}
		d.logger.Info("Auto-ship triggered",
			zap.Int64("shop_id", shopID),
			zap.String("order_sn", orderSN),
		)
	}()
}

func orderFromDetail(detail *marketplace.OrderDetail, shopID int64) *models.Order {
	payTime := detail.PayTime
	if payTime == 0 {
		payTime = detail.CreateTime
	}
	return &models.Order{
		ShopID:                     shopID,
		OrderSN:                    detail.OrderSN,
		BuyerUserID:                detail.BuyerUserID,
		BuyerUsername:              detail.BuyerUsername,
		CreateTime:                 detail.CreateTime,
		PayTime:                    payTime,
		OrderStatus:                detail.OrderStatus,
		Currency:                   detail.Currency,
		TotalAmount:                detail.TotalAmount,
		ShippingCarrier:            detail.ShippingCarrier,
		EstimatedShippingFee:       detail.EstimatedShippingFee,
		ActualShippingFeeConfirmed: detail.ActualShippingFeeConfirmed,
		COD:                        detail.COD,
		DaysToShip:                 detail.DaysToShip,
		ShipByDate:                 detail.ShipByDate,
		PaymentMethod:              detail.PaymentMethod,
		FulfillmentFlag:            detail.FulfillmentFlag,
		MessageToSeller:            detail.MessageToSeller,
		Note:                       detail.Note,
		NoteUpdateTime:             detail.NoteUpdateTime,
		OrderChargeableWeightGram:  detail.OrderChargeableWeightGram,
		PickupDoneTime:             detail.PickupDoneTime,
		UpdateTime:                 detail.UpdateTime,
		CancelBy:                   detail.CancelBy,
		CancelReason:               detail.CancelReason,
	}
}

func itemsFromDetail(detail *marketplace.OrderDetail) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(detail.ItemList))
	for _, item := range detail.ItemList {
		items = append(items, models.OrderItem{
			OrderSN:                detail.OrderSN,
			OrderItemID:            item.OrderItemID,
			ModelID:                item.ModelID,
			ItemID:                 item.ItemID,
			ItemName:               item.ItemName,
			ItemSKU:                item.ItemSKU,
			ModelName:              item.ModelName,
			ModelSKU:               item.ModelSKU,
			ModelQuantityPurchased: item.ModelQuantityPurchased,
			ModelOriginalPrice:     item.ModelOriginalPrice,
			ModelDiscountedPrice:   item.ModelDiscountedPrice,
			Wholesale:              item.Wholesale,
			Weight:                 item.Weight,
			AddOnDeal:              item.AddOnDeal,
			MainItem:               item.MainItem,
			AddOnDealID:            item.AddOnDealID,
			PromotionType:          item.PromotionType,
			PromotionID:            item.PromotionID,
			PromotionGroupID:       item.PromotionGroupID,
			ImageURL:               item.ImageInfo.ImageURL,
		})
	}
	return items
}

func logisticsFromDetail(detail *marketplace.OrderDetail) []models.Logistic {
	packages := make([]models.Logistic, 0, len(detail.PackageList))
	for _, pkg := range detail.PackageList {
		packages = append(packages, models.Logistic{
			OrderSN:                    detail.OrderSN,
			PackageNumber:              pkg.PackageNumber,
			LogisticsStatus:            pkg.LogisticsStatus,
			ShippingCarrier:            pkg.ShippingCarrier,
			ParcelChargeableWeightGram: pkg.ParcelChargeableWeightGram,
			RecipientName:              detail.RecipientAddress.Name,
			RecipientPhone:             detail.RecipientAddress.Phone,
			RecipientTown:              detail.RecipientAddress.Town,
			RecipientDistrict:          detail.RecipientAddress.District,
			RecipientCity:              detail.RecipientAddress.City,
			RecipientState:             detail.RecipientAddress.State,
			RecipientRegion:            detail.RecipientAddress.Region,
			RecipientZipcode:           detail.RecipientAddress.Zipcode,
			RecipientFullAddress:       detail.RecipientAddress.FullAddress,
			DocumentStatus:             models.DocumentStatusPending,
		})
	}
	return packages
}
