package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
	appErrors "github.com/noah-isme/sma-leave-gateway/pkg/errors"
)

func TestDescriptorServiceAPIBase(t *testing.T) {
	svc := NewDescriptorService(config.BackendConfig{}, nil, nil, nil, nil)
	assert.Equal(t, "/leave", svc.APIBase())

	svc = NewDescriptorService(config.BackendConfig{RuntimeURL: "https://rt.example.edu/", MetaURL: "https://meta.example.edu"}, nil, nil, nil, nil)
	assert.Equal(t, "https://rt.example.edu/leave", svc.APIBase())
}

func TestDescriptorServiceListDescriptor(t *testing.T) {
	store := credentials.NewMemoryStore(map[string]string{"teacher_token": "t-123"})
	metrics := NewMetricsService()
	svc := NewDescriptorService(config.BackendConfig{EnvURL: "https://api.example.edu"}, store, nil, zap.NewNop(), metrics)

	d, err := svc.ListDescriptor(context.Background(), dto.ListLeaveQuery{Role: " Teacher", Status: "PENDING"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.edu/leave/admin/pending?role=teacher", d.URL())
	assert.Equal(t, "Bearer t-123", d.Headers().Get("Authorization"))
	assert.Equal(t, "teacher_token", d.TokenSlot())

	d, err = svc.ListDescriptor(context.Background(), dto.ListLeaveQuery{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.edu/leave/admin/requests", d.URL())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.descriptorBuilds.WithLabelValues("pending")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.descriptorBuilds.WithLabelValues("requests")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.tokenResolutions.WithLabelValues("teacher_token")))
}

func TestDescriptorServiceRejectsUnknownFilters(t *testing.T) {
	svc := NewDescriptorService(config.BackendConfig{}, nil, nil, nil, nil)

	_, err := svc.ListDescriptor(context.Background(), dto.ListLeaveQuery{Role: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ListDescriptor(context.Background(), dto.ListLeaveQuery{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDescribeRedactsBearer(t *testing.T) {
	store := credentials.NewMemoryStore(map[string]string{"token": "secret"})
	d := descriptor.BuildListDescriptor(context.Background(), "/leave", descriptor.RoleAll, descriptor.StatusApproved, store)

	out := Describe(d)
	assert.Equal(t, "GET", out.Method)
	assert.Equal(t, "/leave/admin/requests?status=approved", out.URL)
	assert.Equal(t, "Bearer ***", out.Headers["Authorization"])
	assert.Equal(t, "application/json", out.Headers["Content-Type"])
	assert.True(t, out.Authenticated)
	assert.Equal(t, "requests", out.Route)
}

func TestDescriptorServiceCallerTokenShadowsStore(t *testing.T) {
	store := credentials.NewMemoryStore(map[string]string{"admin_token": "stored-admin"})
	svc := NewDescriptorService(config.BackendConfig{}, store, nil, nil, nil)

	ctx := credentials.WithCallerToken(context.Background(), "student-own")
	d, err := svc.ListDescriptor(ctx, dto.ListLeaveQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer student-own", d.Headers().Get("Authorization"))
	assert.Equal(t, credentials.CallerSlot, d.TokenSlot())

	svc = NewDescriptorService(config.BackendConfig{}, nil, nil, nil, nil)
	d, err = svc.ListDescriptor(context.Background(), dto.ListLeaveQuery{})
	require.NoError(t, err)
	assert.False(t, d.Authenticated())
	assert.Empty(t, d.Headers().Get("Authorization"))
}
