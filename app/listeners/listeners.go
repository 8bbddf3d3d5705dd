// Package listeners wires domain events to their side effects: websocket
// broadcasts for the live dashboard and queued alerts for low stock.
package listeners

import (
	"encoding/json"

	"github.com/shashiranjanraj/tillpoint/app/jobs"
	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/event"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/queue"
	"github.com/shashiranjanraj/tillpoint/pkg/ws"
)

// DashboardHub feeds every connected register with stock changes.
var DashboardHub = ws.NewHub()

// Register hooks the listeners up. Call once at boot, after the queue driver
// is configured.
func Register() {
	go DashboardHub.Run()

	event.Listen(services.EventStockChanged, broadcastStockChange)
	event.Listen(services.EventStockLow, dispatchLowStockAlert)
	event.Listen("item.archived", broadcastArchive)
}

func broadcastStockChange(payload interface{}) {
	evt, ok := payload.(services.StockChangedEvent)
	if !ok {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"event":    "stock.changed",
		"itemId":   evt.Item.ID,
		"sku":      evt.Item.SKU,
		"type":     evt.TransactionType,
		"delta":    evt.Delta,
		"quantity": evt.Item.Quantity,
	})
	if err != nil {
		return
	}
	DashboardHub.Broadcast <- msg
}

func broadcastArchive(payload interface{}) {
	item, ok := payload.(models.InventoryItem)
	if !ok {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"event":  "item.archived",
		"itemId": item.ID,
		"sku":    item.SKU,
	})
	if err != nil {
		return
	}
	DashboardHub.Broadcast <- msg
}

func dispatchLowStockAlert(payload interface{}) {
	evt, ok := payload.(services.StockChangedEvent)
	if !ok {
		return
	}

	job := &jobs.LowStockAlert{
		ItemID:   evt.Item.ID,
		SKU:      evt.Item.SKU,
		Name:     evt.Item.Name,
		Quantity: evt.Item.Quantity,
		MinStock: evt.Item.MinStockLevel,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.Error("listeners: dispatch low stock alert", "sku", evt.Item.SKU, "error", err)
	}
}
