package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/apperrors"
	"clubhub/internal/auth"
	"clubhub/internal/logger"
)

type AuthHandler struct {
	authenticator *auth.Authenticator
	log           *logger.Logger
}

func NewAuthHandler(authenticator *auth.Authenticator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, log: log}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "username and password are required"))
		return
	}

	token, err := h.authenticator.Login(req.Username, req.Password)
	if err != nil {
		h.log.Warn("failed admin login attempt", "username", req.Username)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
