// Package routes mounts the HTTP API onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/controllers"
	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/middleware"
	"github.com/shashiranjanraj/tillpoint/pkg/rbac"
	"github.com/shashiranjanraj/tillpoint/pkg/router"
)

// RegisterAPI wires every controller onto the router. db is the shared GORM
// handle the controllers build their services from.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	auth := controllers.NewAuthController(db)
	inventory := controllers.NewInventoryController(db)
	sales := controllers.NewSalesController(db)
	dashboard := controllers.NewDashboardController(db)
	categories := controllers.NewCategoryController(db)
	associates := controllers.NewAssociateController(db)
	suppliers := controllers.NewSupplierController(db)
	labels := controllers.NewLabelController(db)

	api := r.Group("/api")

	// Public surface: login and tokened label downloads.
	api.Post("/auth/login", "auth.login", auth.Login)
	api.Get("/labels/{token}", "labels.download", labels.Download)

	protected := api.Group("", middleware.Auth)

	protected.Get("/inventory", "inventory.list", inventory.List)
	protected.Post("/inventory", "inventory.create", inventory.Create)
	protected.Get("/inventory/low-stock", "inventory.lowStock", inventory.LowStock)
	protected.Get("/inventory/search/{term}", "inventory.search", inventory.Search)
	protected.Get("/inventory/{id}", "inventory.show", inventory.Show)
	protected.Put("/inventory/{id}", "inventory.update", inventory.Update)
	protected.Post("/inventory/{id}/add-stock", "inventory.addStock", inventory.AddStock)
	protected.Post("/inventory/{id}/adjust", "inventory.adjust", inventory.Adjust)
	protected.Patch("/inventory/{id}/archive", "inventory.archive", inventory.Archive)
	protected.Patch("/inventory/{id}/restore", "inventory.restore", inventory.Restore)
	protected.Get("/inventory/{id}/transactions", "inventory.transactions", inventory.Transactions)
	protected.Get("/inventory/{id}/qrcode", "inventory.qrcode", inventory.QRCode)
	protected.Post("/inventory/{id}/label-token", "labels.token", labels.Token)
	protected.Post("/labels/batch", "labels.batch", labels.Batch)

	protected.Post("/sales", "sales.create", sales.Create)
	protected.Get("/sales", "sales.list", sales.List)
	protected.Get("/sales/order/{orderNumber}", "sales.order", sales.ShowOrder)

	protected.Get("/dashboard/stats", "dashboard.stats", dashboard.Stats)
	protected.Get("/dashboard/activity", "dashboard.activity", dashboard.Activity)

	protected.Get("/categories", "categories.all", categories.All)
	protected.Get("/categories/type/{type}", "categories.byType", categories.ByType)

	// Admin-only management surface.
	admin := protected.Group("", rbac.HasRole(models.RoleAdmin))

	admin.Post("/categories", "categories.create", categories.Create)
	admin.Put("/categories/{id}", "categories.update", categories.Update)
	admin.Delete("/categories/{id}", "categories.delete", categories.Delete)
	admin.Post("/categories/type/{type}/reorder", "categories.reorder", categories.Reorder)

	admin.Get("/associates", "associates.list", associates.List)
	admin.Post("/associates", "associates.create", associates.Create)
	admin.Put("/associates/{id}", "associates.update", associates.Update)
	admin.Post("/associates/{id}/reset-code", "associates.resetCode", associates.ResetCode)
	admin.Delete("/associates/{id}", "associates.deactivate", associates.Deactivate)

	admin.Get("/suppliers", "suppliers.list", suppliers.List)
	admin.Post("/suppliers", "suppliers.create", suppliers.Create)
	admin.Put("/suppliers/{id}", "suppliers.update", suppliers.Update)
	admin.Delete("/suppliers/{id}", "suppliers.delete", suppliers.Delete)

	// Read-only GraphQL endpoint for reporting tools.
	if gql, err := controllers.NewGraphQLController(db); err == nil {
		protected.Post("/graphql", "graphql.query", gql.Query)
	} else {
		logger.Error("routes: graphql schema failed to build", "error", err)
	}

	// Live dashboard feed; token is checked on upgrade by middleware.Auth.
	protected.Get("/ws/dashboard", "dashboard.feed", dashboard.Feed)
}
