package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type CategoryController struct {
	categories *repositories.CategoryRepository
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{categories: repositories.NewCategoryRepository(db)}
}

// All returns every active category value grouped by dimension.
func (c *CategoryController) All(w http.ResponseWriter, r *http.Request) {
	grouped, err := c.categories.All(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, grouped)
}

// ByType returns the values for one dimension in display order.
func (c *CategoryController) ByType(w http.ResponseWriter, r *http.Request) {
	categoryType := chi.URLParam(r, "type")
	if !validCategoryType(categoryType) {
		response.NotFound(w)
		return
	}

	cats, err := c.categories.ByType(r.Context(), categoryType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, cats)
}

type categoryBody struct {
	Type  string `json:"type"  validate:"required,in=type,color,size,design,groupType,styleGroup"`
	Value string `json:"value" validate:"required,max=100"`
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	existing, err := c.categories.ByType(r.Context(), body.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cat := models.Category{
		Type:         body.Type,
		Value:        body.Value,
		DisplayOrder: len(existing),
		IsActive:     true,
	}
	if err := c.categories.Create(r.Context(), &cat); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Created(w, cat)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Value string `json:"value" validate:"required,max=100"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.categories.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cat.Value = body.Value
	if err := c.categories.Update(r.Context(), cat); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, cat)
}

// Delete soft-deletes a value; surviving siblings are re-numbered so display
// order stays dense.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := c.categories.Deactivate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}

// Reorder rewrites the display order for one dimension.
func (c *CategoryController) Reorder(w http.ResponseWriter, r *http.Request) {
	categoryType := chi.URLParam(r, "type")
	if !validCategoryType(categoryType) {
		response.NotFound(w)
		return
	}

	var body struct {
		IDs []uint `json:"ids"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.IDs) == 0 {
		response.Error(w, http.StatusBadRequest, "ids is required")
		return
	}

	if err := c.categories.Reorder(r.Context(), categoryType, body.IDs); err != nil {
		writeDomainError(w, err)
		return
	}

	cats, err := c.categories.ByType(r.Context(), categoryType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, cats)
}

func validCategoryType(t string) bool {
	for _, v := range models.CategoryTypes {
		if v == t {
			return true
		}
	}
	return false
}
