// controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup, authenticated gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", ac.Login)
		authGroup.POST("/register", ac.Register)
		authGroup.GET("/me", authenticated, ac.Me)
	}
}

func (ac *AuthController) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Valid email and password are required", err)
		return
	}
	res, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}
	util.RespondOK(c, http.StatusOK, res, "Login successful")
}

func (ac *AuthController) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name, valid email and a password of at least 8 characters are required", err)
		return
	}
	res, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Registration failed")
		return
	}
	util.RespondOK(c, http.StatusCreated, res, "Registration successful")
}

func (ac *AuthController) Me(c *gin.Context) {
	author, err := ac.authService.Me(c.Request.Context(), principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}
	util.RespondOK(c, http.StatusOK, author, "")
}
