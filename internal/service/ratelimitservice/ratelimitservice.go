package ratelimitservice

import (
	"math"
	"time"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/domain"
)

// Service enforces a minimum spacing between consecutive reward-granting
// requests per user. It only checks: the caller stamps last_activity as part
// of its own reward write, so the check and the stamp land in one store call.
type Service struct {
	spacing time.Duration
}

func New(spacing time.Duration) *Service {
	return &Service{spacing: spacing}
}

func (s *Service) Check(user *domain.User) error {
	if user.LastActivity == nil {
		return nil
	}

	elapsed := time.Since(*user.LastActivity)
	if elapsed >= s.spacing {
		return nil
	}

	retryAfter := int(math.Ceil((s.spacing - elapsed).Seconds()))
	if retryAfter < 0 {
		retryAfter = 0
	}
	return apperrors.RateLimited(retryAfter)
}
