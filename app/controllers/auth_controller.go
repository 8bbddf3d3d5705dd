package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/bind"
	"github.com/shashiranjanraj/tillpoint/pkg/response"
	"gorm.io/gorm"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

// Login exchanges an associate code for a bearer token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
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

	token, associate, err := c.auth.Login(r.Context(), body.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":     token,
		"associate": associate,
	})
}
