package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type SupplierController struct {
	suppliers *repositories.SupplierRepository
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{suppliers: repositories.NewSupplierRepository(db)}
}

func (c *SupplierController) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.suppliers.All(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, all)
}

type supplierBody struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Contact string `json:"contact" validate:"nullable,max=255"`
	Notes   string `json:"notes"   validate:"nullable,max=2000"`
}

func (c *SupplierController) Create(w http.ResponseWriter, r *http.Request) {
	var body supplierBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s := models.Supplier{Name: body.Name, Contact: body.Contact, Notes: body.Notes}
	if err := c.suppliers.Create(r.Context(), &s); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Created(w, s)
}

func (c *SupplierController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body supplierBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := c.suppliers.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.Name = body.Name
	s.Contact = body.Contact
	s.Notes = body.Notes
	if err := c.suppliers.Update(r.Context(), s); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, s)
}

func (c *SupplierController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := c.suppliers.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}
