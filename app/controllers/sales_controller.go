package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/app/resources"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/middleware"
	"github.com/shashiranjanraj/tillpoint/pkg/resource"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type SalesController struct {
	sales *repositories.SaleRepository
	stock *services.StockService
}

func NewSalesController(db *gorm.DB) *SalesController {
	return &SalesController{
		sales: repositories.NewSaleRepository(db),
		stock: services.NewStockService(db),
	}
}

type saleLine struct {
	ItemID      uint   `json:"itemId"      validate:"required,gt=0"`
	Quantity    int    `json:"quantity"    validate:"required,gt=0"`
	UnitPrice   string `json:"unitPrice"   validate:"required,numeric"`
	TotalAmount string `json:"totalAmount" validate:"required,numeric"`
}

type saleBody struct {
	PaymentMethod string     `json:"paymentMethod" validate:"required,in=cash,venmo"`
	Lines         []saleLine `json:"lines"`

	// Single-line shorthand, used by the register for one-item sales.
	ItemID      uint   `json:"itemId"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TotalAmount string `json:"totalAmount"`
	OrderNumber string `json:"orderNumber"`
}

// Create records a register order. Each line is booked independently through
// the stock service; the response reports per-line success or rejection so a
// sold-out line does not void the rest of the basket.
func (c *SalesController) Create(w http.ResponseWriter, r *http.Request) {
	var body saleBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Lines) == 0 && body.ItemID != 0 {
		body.Lines = []saleLine{{
			ItemID:      body.ItemID,
			Quantity:    body.Quantity,
			UnitPrice:   body.UnitPrice,
			TotalAmount: body.TotalAmount,
		}}
	}
	if len(body.Lines) == 0 {
		response.Error(w, http.StatusBadRequest, "at least one line is required")
		return
	}

	associateID, ok := middleware.AssociateIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orderNumber := body.OrderNumber
	if orderNumber == "" {
		orderNumber = services.NewOrderNumber()
	}
	recorded := make([]models.Sale, 0, len(body.Lines))
	rejected := make([]map[string]interface{}, 0)

	for _, line := range body.Lines {
		unit, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			rejected = append(rejected, rejection(line.ItemID, "invalid unit price"))
			continue
		}
		total, err := decimal.NewFromString(line.TotalAmount)
		if err != nil {
			rejected = append(rejected, rejection(line.ItemID, "invalid total amount"))
			continue
		}

		sale, err := c.stock.RecordSale(r.Context(), services.SaleInput{
			ItemID:        line.ItemID,
			AssociateID:   associateID,
			Quantity:      line.Quantity,
			UnitPrice:     unit,
			TotalAmount:   total,
			PaymentMethod: body.PaymentMethod,
			OrderNumber:   orderNumber,
		})
		if err != nil {
			rejected = append(rejected, rejection(line.ItemID, err.Error()))
			continue
		}
		recorded = append(recorded, *sale)
	}

	payload := map[string]interface{}{
		"orderNumber": orderNumber,
		"sales":       recorded,
		"rejected":    rejected,
	}

	if len(recorded) == 0 {
		// Nothing sold: surface the whole order as a conflict.
		response.JSON(w, http.StatusConflict, payload)
		return
	}
	response.Created(w, payload)
}

func rejection(itemID uint, reason string) map[string]interface{} {
	return map[string]interface{}{"itemId": itemID, "reason": reason}
}

// List returns sales with optional filters: associateId, itemId,
// paymentMethod, from, to (RFC 3339).
func (c *SalesController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.SaleFilter{PaymentMethod: q.Get("paymentMethod")}
	if v := q.Get("associateId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.AssociateID = uint(id)
		}
	}
	if v := q.Get("itemId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.ItemID = uint(id)
		}
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = t
		}
	}

	page, perPage := pageParams(r)
	sales, p, err := c.sales.List(r.Context(), filter, page, perPage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resource.CollectionOf(&resources.SaleResource{}, sales).WithPagination(p).Respond(w)
}

// ShowOrder returns every line item in one register order.
func (c *SalesController) ShowOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	sales, err := c.sales.ByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(sales) == 0 {
		response.NotFound(w)
		return
	}
	resource.CollectionOf(&resources.SaleResource{}, sales).Respond(w)
}
