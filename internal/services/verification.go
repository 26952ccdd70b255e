package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tikeria/internal/models"
)

// VerificationService carries admin review decisions for events and
// organizer registrations to the marketplace API. Whether the acting user
// actually holds the admin role is decided upstream; the token is only
// forwarded.
type VerificationService struct {
	api    VerificationAPI
	logger *zap.SugaredLogger
}

// NewVerificationService creates a verification service
func NewVerificationService(api VerificationAPI, logger *zap.SugaredLogger) *VerificationService {
	return &VerificationService{api: api, logger: logger}
}

// OrganizerProfile fetches the organizer under review
func (s *VerificationService) OrganizerProfile(ctx context.Context, token string, userID int) (*models.User, error) {
	return s.api.GetUser(ctx, token, userID)
}

// ReviewEvent records an approve/reject decision on a pending event. A
// rejection without a comment is refused; the organizer must be told why.
func (s *VerificationService) ReviewEvent(ctx context.Context, token string, eventID int, approve bool, comment string) error {
	status := models.EventApproved
	if !approve {
		if strings.TrimSpace(comment) == "" {
			return models.ErrInvalidInput
		}
		status = models.EventRejected
	}

	s.logger.Infow("event review", "event_id", eventID, "status", status)
	return s.api.VerifyEvent(ctx, token, eventID, models.VerifyEventRequest{
		Status:          status,
		ApprovalComment: comment,
	})
}

// ReviewOrganizer records an approve/reject decision on an organizer
// registration, with the same comment rule as event reviews
func (s *VerificationService) ReviewOrganizer(ctx context.Context, token string, userID int, approve bool, comment string) error {
	status := models.RegisterApproved
	if !approve {
		if strings.TrimSpace(comment) == "" {
			return models.ErrInvalidInput
		}
		status = models.RegisterRejected
	}

	s.logger.Infow("organizer review", "user_id", userID, "status", status)
	return s.api.VerifyUser(ctx, token, userID, models.VerifyUserRequest{
		Status:  status,
		Comment: comment,
	})
}
