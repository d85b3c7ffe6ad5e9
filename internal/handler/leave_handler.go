package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	appErrors "github.com/noah-isme/sma-leave-gateway/pkg/errors"
	"github.com/noah-isme/sma-leave-gateway/pkg/response"
)

type leaveService interface {
	List(ctx context.Context, query dto.ListLeaveQuery) (*dto.LeaveListResponse, error)
}

// LeaveHandler proxies admin leave listings to the leave backend.
type LeaveHandler struct {
	service leaveService
}

// NewLeaveHandler builds a new handler.
func NewLeaveHandler(service leaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// List godoc
// @Summary List leave requests for admins
// @Tags Leave
// @Produce json
// @Param role query string false "all, teacher or student"
// @Param status query string false "pending, approved, rejected, cancelled or all"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /leave/requests [get]
func (h *LeaveHandler) List(c *gin.Context) {
	var query dto.ListLeaveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Items, map[string]interface{}{
		"count":  result.Count,
		"source": result.Source,
	})
}
