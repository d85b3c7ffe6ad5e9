package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/internal/models"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
	appErrors "github.com/noah-isme/sma-leave-gateway/pkg/errors"
)

const maxUpstreamBody = 4 << 20

type descriptorBuilder interface {
	ListDescriptor(ctx context.Context, query dto.ListLeaveQuery) (descriptor.RequestDescriptor, error)
}

// LeaveService executes list descriptors against the leave backend.
type LeaveService struct {
	descriptors descriptorBuilder
	client      *http.Client
	logger      *zap.Logger
	metrics     *MetricsService
}

// NewLeaveService constructs a LeaveService with its own HTTP client.
func NewLeaveService(descriptors descriptorBuilder, cfg config.UpstreamConfig, logger *zap.Logger, metrics *MetricsService) *LeaveService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		descriptors: descriptors,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
		metrics:     metrics,
	}
}

// List fetches the leave requests matching the query.
func (s *LeaveService) List(ctx context.Context, query dto.ListLeaveQuery) (*dto.LeaveListResponse, error) {
	d, err := s.descriptors.ListDescriptor(ctx, query)
	if err != nil {
		return nil, err
	}
	if !d.Authenticated() {
		return nil, appErrors.Clone(appErrors.ErrCredentialMissing, "send a bearer token to list leave requests")
	}
	items, err := s.Execute(ctx, d)
	if err != nil {
		return nil, err
	}
	return &dto.LeaveListResponse{Items: items, Count: len(items), Source: d.Route()}, nil
}

// Execute sends the descriptor and decodes the listed leave requests.
func (s *LeaveService) Execute(ctx context.Context, d descriptor.RequestDescriptor) ([]models.LeaveRequest, error) {
	route := d.Route()

	req, err := d.NewRequest(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid leave backend URL")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		s.metrics.ObserveUpstream(route, 0, duration)
		s.logger.Warn("leave backend request failed", zap.String("route", route), zap.Duration("latency", duration), zap.Error(err))
		if isTimeout(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, appErrors.ErrUpstreamTimeout.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "leave backend unreachable")
	}
	defer resp.Body.Close()
	s.metrics.ObserveUpstream(route, resp.StatusCode, duration)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read leave backend response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "leave backend rejected the credential")
	case resp.StatusCode == http.StatusForbidden:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "leave backend denied access")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		s.logger.Warn("leave backend returned error status", zap.String("route", route), zap.Int("status", resp.StatusCode))
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("leave backend returned status %d", resp.StatusCode))
	}

	items, err := decodeLeaveList(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode leave backend response")
	}
	if items == nil {
		items = []models.LeaveRequest{}
	}
	return items, nil
}

// UnwrapLeaveList returns the raw JSON list from a leave backend response body.
// The list may be the whole body or sit under "data", "requests" or "items".
// An empty body is an empty list.
func UnwrapLeaveList(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "requests", "items"} {
		if raw, ok := envelope[key]; ok {
			return raw, nil
		}
	}
	return nil, errors.New("no leave request list in response")
}

func decodeLeaveList(body []byte) ([]models.LeaveRequest, error) {
	raw, err := UnwrapLeaveList(body)
	if err != nil {
		return nil, err
	}
	var items []models.LeaveRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("leave request list: %w", err)
	}
	return items, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
