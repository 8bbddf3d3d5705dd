package migrations

import (
	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260401000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260401000001_create_suppliers_table", &CreateSuppliersTable{})
	migration.Register("20260401000002_create_associates_table", &CreateAssociatesTable{})
	migration.Register("20260401000003_create_inventory_items_table", &CreateInventoryItemsTable{})
	migration.Register("20260401000004_create_inventory_transactions_table", &CreateInventoryTransactionsTable{})
	migration.Register("20260401000005_create_sales_table", &CreateSalesTable{})
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

type CreateSuppliersTable struct{}

func (m *CreateSuppliersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Supplier{})
}

func (m *CreateSuppliersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("suppliers")
}

type CreateAssociatesTable struct{}

func (m *CreateAssociatesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Associate{})
}

func (m *CreateAssociatesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("associates")
}

type CreateInventoryItemsTable struct{}

func (m *CreateInventoryItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.InventoryItem{})
}

func (m *CreateInventoryItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("inventory_items")
}

type CreateInventoryTransactionsTable struct{}

func (m *CreateInventoryTransactionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.InventoryTransaction{})
}

func (m *CreateInventoryTransactionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("inventory_transactions")
}

type CreateSalesTable struct{}

func (m *CreateSalesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Sale{})
}

func (m *CreateSalesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sales")
}
