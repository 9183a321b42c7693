package controllers

import (
	"github.com/kipngetich-lab/TukoShop-App/app/services"
	"github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,in=buyer,seller"`
}

// Signup handles POST /api/auth/signup.
func (ac *AuthController) Signup(c *ctx.Context) {
	var req signupRequest
	if !c.BindJSON(&req) {
		return
	}

	account, err := ac.auth.Signup(c.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(account)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	token, err := ac.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"token": token})
}
