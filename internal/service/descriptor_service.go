package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
	appErrors "github.com/noah-isme/sma-leave-gateway/pkg/errors"
)

const redactedBearer = "Bearer ***"

// DescriptorService builds admin list descriptors against the configured leave
// backend. The caller's own bearer always wins; store is only consulted behind
// it and may be nil.
type DescriptorService struct {
	apiBase   string
	store     credentials.Store
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewDescriptorService resolves the API base once from the backend sources.
func NewDescriptorService(backend config.BackendConfig, store credentials.Store, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *DescriptorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	base := descriptor.ResolveBackendBase(descriptor.BackendSources{
		Env:     backend.EnvURL,
		Runtime: backend.RuntimeURL,
		Meta:    backend.MetaURL,
	})
	return &DescriptorService{
		apiBase:   descriptor.ResolveAPIBase(base),
		store:     store,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// APIBase returns the leave API root every descriptor is built against.
func (s *DescriptorService) APIBase() string {
	return s.apiBase
}

// ListDescriptor validates the filters and builds the list descriptor.
func (s *DescriptorService) ListDescriptor(ctx context.Context, query dto.ListLeaveQuery) (descriptor.RequestDescriptor, error) {
	query.Role = strings.ToLower(strings.TrimSpace(query.Role))
	query.Status = strings.ToLower(strings.TrimSpace(query.Status))
	if err := s.validator.Struct(query); err != nil {
		return descriptor.RequestDescriptor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role must be one of all, teacher, student and status one of pending, approved, rejected, cancelled, all")
	}

	role, err := descriptor.ParseRoleFilter(query.Role)
	if err != nil {
		return descriptor.RequestDescriptor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role filter")
	}
	status, err := descriptor.ParseStatusFilter(query.Status)
	if err != nil {
		return descriptor.RequestDescriptor{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status filter")
	}

	store := credentials.ForCaller(credentials.CallerToken(ctx), s.store)
	d := descriptor.BuildListDescriptor(ctx, s.apiBase, role, status, store)
	route := d.Route()
	s.metrics.RecordDescriptor(route, d.TokenSlot())
	s.logger.Debug("descriptor built",
		zap.String("route", route),
		zap.String("role", string(role)),
		zap.String("status", string(status)),
		zap.Bool("authenticated", d.Authenticated()),
		zap.String("token_slot", d.TokenSlot()),
	)
	return d, nil
}

// Describe renders a descriptor for API output with the bearer value redacted.
func Describe(d descriptor.RequestDescriptor) dto.DescriptorResponse {
	headers := make(map[string]string)
	for name, values := range d.Headers() {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		if name == "Authorization" {
			value = redactedBearer
		}
		headers[name] = value
	}
	return dto.DescriptorResponse{
		Method:        d.Method(),
		URL:           d.URL(),
		Headers:       headers,
		Authenticated: d.Authenticated(),
		Route:         d.Route(),
	}
}
