package services

import (
	"context"
	"log/slog"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user holds the required permission within an organization
func (s *BaseService) AuthorizeUser(ctx context.Context, organizationID, userID string, required domain.Permission) error {
	if s.Authorizer != nil {
		return s.Authorizer.Authorize(ctx, organizationID, userID, required)
	}
	// No authorizer wired means access is granted by default, which only
	// happens in tests that exercise logic below the permission gate.
	s.LogDebug(ctx, "No authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("organization_id", organizationID),
		slog.String("required_permission", string(required)))
	return nil
}
