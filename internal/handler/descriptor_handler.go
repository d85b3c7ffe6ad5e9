package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/internal/service"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
	appErrors "github.com/noah-isme/sma-leave-gateway/pkg/errors"
	"github.com/noah-isme/sma-leave-gateway/pkg/response"
)

type descriptorService interface {
	ListDescriptor(ctx context.Context, query dto.ListLeaveQuery) (descriptor.RequestDescriptor, error)
}

// DescriptorHandler exposes the request descriptors the gateway builds.
type DescriptorHandler struct {
	service descriptorService
}

// NewDescriptorHandler builds a new handler.
func NewDescriptorHandler(service descriptorService) *DescriptorHandler {
	return &DescriptorHandler{service: service}
}

// ListRequests godoc
// @Summary Describe the admin leave list request
// @Tags Descriptors
// @Produce json
// @Param role query string false "all, teacher or student"
// @Param status query string false "pending, approved, rejected, cancelled or all"
// @Success 200 {object} response.Envelope
// @Router /descriptors/requests [get]
func (h *DescriptorHandler) ListRequests(c *gin.Context) {
	var query dto.ListLeaveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	d, err := h.service.ListDescriptor(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := service.Describe(d)
	response.JSON(c, http.StatusOK, out)
}
