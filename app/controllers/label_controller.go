package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type LabelController struct {
	labels *services.LabelService
}

func NewLabelController(db *gorm.DB) *LabelController {
	return &LabelController{labels: services.NewLabelService(db)}
}

// Token mints a short-lived download token for one item's label, so the
// client can embed the PNG in an <img> without an Authorization header.
func (c *LabelController) Token(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	token, err := c.labels.DownloadToken(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, map[string]string{"token": token})
}

// Download streams the label PNG named by a valid token. Unauthenticated by
// design; the token itself is the credential.
func (c *LabelController) Download(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	itemID, err := c.labels.ResolveToken(token)
	if err != nil {
		response.NotFound(w)
		return
	}

	png, err := c.labels.QRCode(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck
}

// Batch renders labels for a list of items on the worker pool and returns
// the storage paths.
func (c *LabelController) Batch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemIDs []uint `json:"itemIds"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.ItemIDs) == 0 {
		response.Error(w, http.StatusBadRequest, "itemIds is required")
		return
	}

	paths, err := c.labels.RenderBatch(r.Context(), body.ItemIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"paths": paths})
}
