package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoconnect/ecoconnect-backend/internal/dto"
	"github.com/ecoconnect/ecoconnect-backend/internal/http/handlers/common"
	"github.com/ecoconnect/ecoconnect-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginZalo POST /auth/zalo
func (h *AuthHandler) LoginZalo(c *gin.Context) {
	var req dto.ZaloLoginRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "access_token обязателен")
		return
	}

	result, err := h.auth.LoginWithZalo(c.Request.Context(), req.AccessToken)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// LoginAdmin POST /auth/admin
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "email и пароль обязательны")
		return
	}

	result, err := h.auth.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
