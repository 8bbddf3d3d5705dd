// Package jobs holds the queued background jobs.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/tillpoint/config"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/notification"
	"github.com/shashiranjanraj/tillpoint/pkg/queue"
)

func init() {
	queue.Register("jobs.LowStockAlert", func() queue.Job { return &LowStockAlert{} })
}

// LowStockAlert notifies the shop owner when an item hits its reorder
// threshold. Dispatched by the stock.low event listener; runs on the queue
// workers so a slow mail server never blocks a sale.
type LowStockAlert struct {
	ItemID   uint   `json:"itemId"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	MinStock int    `json:"minStock"`
}

func (j *LowStockAlert) Handle() error {
	address := config.Get("ALERT_EMAIL", "")
	if address == "" && config.Get("SLACK_WEBHOOK_URL", "") == "" {
		logger.Debug("jobs: low stock alert skipped, no recipients configured", "sku", j.SKU)
		return nil
	}

	errs := notification.Send(address, j)
	if len(errs) > 0 {
		return fmt.Errorf("jobs: low stock alert for %s: %v", j.SKU, errs[0])
	}
	return nil
}

// Via selects notification channels based on what is configured.
func (j *LowStockAlert) Via() []string {
	var channels []string
	if config.Get("ALERT_EMAIL", "") != "" {
		channels = append(channels, "mail")
	}
	if config.Get("SLACK_WEBHOOK_URL", "") != "" {
		channels = append(channels, "slack")
	}
	return channels
}

func (j *LowStockAlert) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Low stock: %s (%s)", j.Name, j.SKU),
		Body: fmt.Sprintf(
			"%s (%s) is down to %d on hand, at or below its reorder threshold of %d.",
			j.Name, j.SKU, j.Quantity, j.MinStock,
		),
	}
}

func (j *LowStockAlert) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf(":warning: Low stock: *%s* (`%s`) is at %d on hand (reorder at %d)",
			j.Name, j.SKU, j.Quantity, j.MinStock),
	}
}
