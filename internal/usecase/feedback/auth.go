package feedback

import (
	"context"

	"feedbackdesk/internal/bootstrap/logging"
)

// Login compares password with the configured admin password in plaintext
// and marks the session authenticated on a match. This is not a security
// boundary.
func (s *Service) Login(ctx context.Context, password string) error {
	logCtx := logging.WithComponent(ctx, "usecase.feedback")

	if s.adminPassword == "" || password != s.adminPassword {
		logging.Warn(logCtx, "admin login rejected")
		return ErrInvalidPassword
	}

	s.SetAuthenticated(ctx, true)
	logging.Info(logCtx, "admin logged in")
	return nil
}

func (s *Service) Logout(ctx context.Context) {
	s.SetAuthenticated(ctx, false)
	logging.Info(logging.WithComponent(ctx, "usecase.feedback"), "admin logged out")
}

// RequireAuthenticated guards admin-only operations.
func (s *Service) RequireAuthenticated() error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
