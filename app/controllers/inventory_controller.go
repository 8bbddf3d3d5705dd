package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/app/resources"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/middleware"
	"github.com/shashiranjanraj/tillpoint/pkg/resource"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type InventoryController struct {
	items   *repositories.ItemRepository
	ledger  *repositories.LedgerRepository
	catalog *services.CatalogService
	stock   *services.StockService
	labels  *services.LabelService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{
		items:   repositories.NewItemRepository(db),
		ledger:  repositories.NewLedgerRepository(db),
		catalog: services.NewCatalogService(db),
		stock:   services.NewStockService(db),
		labels:  services.NewLabelService(db),
	}
}

type itemBody struct {
	Name        string  `json:"name"        validate:"nullable,max=255"`
	SKU         string  `json:"sku"         validate:"nullable,max=64"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Type        string  `json:"type"        validate:"nullable,max=100"`
	Size        string  `json:"size"        validate:"nullable,max=50"`
	Color       string  `json:"color"       validate:"nullable,max=100"`
	Design      string  `json:"design"      validate:"nullable,max=100"`
	GroupType   string  `json:"groupType"   validate:"nullable,max=100"`
	StyleGroup  string  `json:"styleGroup"  validate:"nullable,max=100"`
	Price       string  `json:"price"       validate:"required,numeric"`
	Cost        *string `json:"cost"        validate:"nullable,numeric"`
	Quantity    int     `json:"quantity"    validate:"nullable,gte=0"`
	MinStock    int     `json:"minStockLevel" validate:"nullable,gte=0"`
	SupplierID  *uint   `json:"supplierId"`
}

func (b itemBody) toInput(actor *uint) (services.CreateItemInput, error) {
	price, err := decimal.NewFromString(b.Price)
	if err != nil {
		return services.CreateItemInput{}, err
	}

	var cost *decimal.Decimal
	if b.Cost != nil && *b.Cost != "" {
		c, err := decimal.NewFromString(*b.Cost)
		if err != nil {
			return services.CreateItemInput{}, err
		}
		cost = &c
	}

	return services.CreateItemInput{
		Name:        b.Name,
		SKU:         b.SKU,
		Description: b.Description,
		Type:        b.Type,
		Size:        b.Size,
		Color:       b.Color,
		Design:      b.Design,
		GroupType:   b.GroupType,
		StyleGroup:  b.StyleGroup,
		Price:       price,
		Cost:        cost,
		Quantity:    b.Quantity,
		MinStock:    b.MinStock,
		SupplierID:  b.SupplierID,
		CreatedBy:   actor,
	}, nil
}

// List returns a page of items. Query params: page, perPage, type, color,
// size, groupType, archived=true to include archived items.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ItemFilter{
		Type:            q.Get("type"),
		Color:           q.Get("color"),
		Size:            q.Get("size"),
		GroupType:       q.Get("groupType"),
		IncludeArchived: q.Get("archived") == "true",
	}

	page, perPage := pageParams(r)
	items, p, err := c.items.List(r.Context(), filter, page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resource.CollectionOf(&resources.ItemResource{}, items).WithPagination(p).Respond(w)
}

func (c *InventoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	item, err := c.items.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.New(&resources.ItemResource{}, *item).Respond(w)
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body itemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor := actorID(r)
	input, err := body.toInput(actor)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid price or cost")
		return
	}

	item, err := c.catalog.CreateItem(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Created(w, resource.New(&resources.ItemResource{}, *item))
}

func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body itemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	input, err := body.toInput(actorID(r))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid price or cost")
		return
	}

	item, err := c.catalog.UpdateItem(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, resource.New(&resources.ItemResource{}, *item))
}

// Search matches the term across SKU, name, and the descriptive attributes,
// capped at ten rows.
func (c *InventoryController) Search(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if term == "" {
		response.Success(w, []interface{}{})
		return
	}

	items, err := c.items.Search(r.Context(), term)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.CollectionOf(&resources.ItemResource{}, items).Respond(w)
}

func (c *InventoryController) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := c.items.LowStock(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.CollectionOf(&resources.ItemResource{}, items).Respond(w)
}

type stockBody struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason"   validate:"nullable,max=255"`
	Notes    string `json:"notes"    validate:"nullable,max=2000"`
}

// AddStock books a stock addition through the ledger.
func (c *InventoryController) AddStock(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body stockBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.stock.AddStock(r.Context(), id, body.Quantity, body.Reason, body.Notes, actorID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, resource.New(&resources.ItemResource{}, *item))
}

// Adjust deducts stock for damage, loss, or correction.
func (c *InventoryController) Adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body stockBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.stock.AdjustInventory(r.Context(), id, body.Quantity, body.Reason, body.Notes, actorID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, resource.New(&resources.ItemResource{}, *item))
}

func (c *InventoryController) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	item, err := c.stock.Archive(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, resource.New(&resources.ItemResource{}, *item))
}

func (c *InventoryController) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	item, err := c.stock.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, resource.New(&resources.ItemResource{}, *item))
}

// Transactions returns an item's ledger, newest first.
func (c *InventoryController) Transactions(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	page, perPage := pageParams(r)
	txs, p, err := c.ledger.ForItem(r.Context(), id, page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.CollectionOf(&resources.TransactionResource{}, txs).WithPagination(p).Respond(w)
}

// QRCode streams the item's label PNG.
func (c *InventoryController) QRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	png, err := c.labels.QRCode(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck
}

func actorID(r *http.Request) *uint {
	if id, ok := middleware.AssociateIDFromCtx(r); ok {
		return &id
	}
	return nil
}
