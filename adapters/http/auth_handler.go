package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/haanhpham/autopress/internal/application/usecase/auth"
)

type AuthHandler struct {
	loginUseCase *authUC.LoginUseCase
}

func NewAuthHandler(loginUC *authUC.LoginUseCase) *AuthHandler {
	return &AuthHandler{loginUseCase: loginUC}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'password' is required"})
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}
