package controllers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/listeners"
	"github.com/shashiranjanraj/tillpoint/app/resources"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/resource"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
	"github.com/shashiranjanraj/tillpoint/pkg/ws"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{dashboard: services.NewDashboardService(db)}
}

// Stats returns the aggregate snapshot for the register home screen.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, stats)
}

// Activity returns the latest ledger rows. ?limit= caps the feed (default 20).
func (c *DashboardController) Activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	txs, err := c.dashboard.RecentActivity(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.CollectionOf(&resources.TransactionResource{}, txs).Respond(w)
}

// Feed upgrades to a websocket that streams stock changes as they commit.
func (c *DashboardController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, listeners.DashboardHub)
}
