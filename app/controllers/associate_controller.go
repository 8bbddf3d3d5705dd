package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
)

type AssociateController struct {
	associates *repositories.AssociateRepository
	auth       *services.AuthService
}

func NewAssociateController(db *gorm.DB) *AssociateController {
	return &AssociateController{
		associates: repositories.NewAssociateRepository(db),
		auth:       services.NewAuthService(db),
	}
}

func (c *AssociateController) List(w http.ResponseWriter, r *http.Request) {
	all, err := c.associates.All(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, all)
}

type associateBody struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,min=4,max=64"`
	Role string `json:"role" validate:"nullable,in=admin,associate"`
}

func (c *AssociateController) Create(w http.ResponseWriter, r *http.Request) {
	var body associateBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.auth.CreateAssociate(r.Context(), body.Name, body.Code, body.Role)
	if err != nil {
		response.Error(w, http.StatusConflict, err.Error())
		return
	}
	response.Created(w, a)
}

func (c *AssociateController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Name string `json:"name" validate:"required,max=255"`
		Role string `json:"role" validate:"nullable,in=admin,associate"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := c.associates.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	a.Name = body.Name
	if body.Role != "" {
		a.Role = body.Role
	}
	if err := c.associates.Update(r.Context(), a); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, a)
}

// ResetCode replaces an associate's login code.
func (c *AssociateController) ResetCode(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Code string `json:"code" validate:"required,min=4,max=64"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.ResetCode(r.Context(), id, body.Code); err != nil {
		response.Error(w, http.StatusConflict, err.Error())
		return
	}
	response.Success(w, map[string]bool{"reset": true})
}

// Deactivate blocks future logins but keeps the row for historical sales.
func (c *AssociateController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	if err := c.associates.Deactivate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deactivated": true})
}
