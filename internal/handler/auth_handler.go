package handler

import (
	"idolagency/internal/infrastructure/security"
	"idolagency/internal/service"
	"idolagency/pkg/response"

	"github.com/gin-gonic/gin"
)

// Register creates an account and its starting agency.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, result)
}

// Login exchanges credentials for a bearer token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, result)
}

// Me returns the authenticated account and its agency profile.
// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	result, err := h.authService.Me(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

// Logout revokes the presented token for the remainder of its life.
// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	claims, err := security.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}

	if err := h.tokenDenylist.Revoke(c.Request.Context(), token, claims.ExpiresAt.Time); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, nil)
}
