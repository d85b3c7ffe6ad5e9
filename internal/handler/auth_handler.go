package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/internal/middleware"
	"github.com/noah-isme/sma-leave-gateway/pkg/response"
)

type redirectService interface {
	Resolve(ctx context.Context, token string) dto.RedirectResponse
}

// AuthHandler serves the post-login redirect decision.
type AuthHandler struct {
	redirects redirectService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(redirects redirectService) *AuthHandler {
	return &AuthHandler{redirects: redirects}
}

// Redirect godoc
// @Summary Dashboard to open after sign-in
// @Tags Auth
// @Produce json
// @Param token query string false "Access token when no Authorization header is sent"
// @Success 200 {object} response.Envelope
// @Router /auth/redirect [get]
func (h *AuthHandler) Redirect(c *gin.Context) {
	out := h.redirects.Resolve(c.Request.Context(), middleware.BearerFromContext(c))
	response.JSON(c, http.StatusOK, out)
}
