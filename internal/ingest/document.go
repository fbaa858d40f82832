package ingest

import (
	"context"

	"github.com/fuyurina/sellerhub/internal/event"
)

// DocumentEvent is the document_status broadcast frame payload
type DocumentEvent struct {
	Type          string `json:"type"`
	ShopID        int64  `json:"shop_id"`
	OrderSN       string `json:"order_sn"`
	PackageNumber string `json:"package_number"`
	Status        string `json:"status"`
	Timestamp     int64  `json:"timestamp"`
}

// handleDocumentStatus flips the package's document status to READY
// and notifies connected dashboards that the label can be printed.
func (d *Dispatcher) handleDocumentStatus(ctx context.Context, in event.Inbound) error {
	payload, err := in.Document()
	if err != nil {
		return err
	}

	if err := d.store.MarkDocumentReady(ctx, payload.OrderSN, payload.PackageNumber); err != nil {
		return err
	}

	d.hub.Broadcast(DocumentEvent{
		Type:          "document_status",
		ShopID:        in.ShopID,
		OrderSN:       payload.OrderSN,
		PackageNumber: payload.PackageNumber,
		Status:        "READY",
		Timestamp:     in.Timestamp,
	})
	return nil
}
