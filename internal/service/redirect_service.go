package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/internal/dto"
	"github.com/noah-isme/sma-leave-gateway/internal/models"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
	"github.com/noah-isme/sma-leave-gateway/pkg/descriptor"
)

const defaultLoginPath = "/login"

var dashboardPaths = map[models.UserRole]string{
	models.RoleSuperAdmin: "/admin/dashboard",
	models.RoleAdmin:      "/admin/dashboard",
	models.RoleTeacher:    "/teacher/dashboard",
	models.RoleStudent:    "/student/dashboard",
}

// RedirectService picks the dashboard a session lands on after sign-in. It only
// decodes the token payload; verification belongs to the backend.
type RedirectService struct {
	loginPath string
	store     credentials.Store
	parser    *jwt.Parser
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
}

// NewRedirectService constructs a RedirectService. store is the shared slot
// store used when the caller sends no token; nil disables that fallback.
func NewRedirectService(cfg config.AuthConfig, store credentials.Store, logger *zap.Logger, metrics *MetricsService) *RedirectService {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = defaultLoginPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedirectService{
		loginPath: loginPath,
		store:     store,
		parser:    jwt.NewParser(),
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Resolve returns the redirect for the caller's token. Without one, the stored
// slots are only consulted when the service was given a shared store.
func (s *RedirectService) Resolve(ctx context.Context, token string) dto.RedirectResponse {
	token, ok := descriptor.ResolveAuthToken(ctx, credentials.ForCaller(token, s.store))
	if !ok {
		return s.login("no_token")
	}

	claims := &models.SessionClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		s.logger.Debug("token payload not decodable", zap.Error(err))
		return s.login("undecodable")
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now()) {
		return s.login("expired")
	}

	role, ok := models.ParseUserRole(claims.RoleClaim())
	if !ok {
		return s.login("unknown_role")
	}

	path := dashboardPaths[role]
	s.metrics.RecordRedirect(strings.ToLower(string(role)))
	return dto.RedirectResponse{Path: path, Role: strings.ToLower(string(role))}
}

func (s *RedirectService) login(reason string) dto.RedirectResponse {
	s.metrics.RecordRedirect("login")
	s.logger.Debug("redirecting to login", zap.String("reason", reason))
	return dto.RedirectResponse{Path: s.loginPath}
}
