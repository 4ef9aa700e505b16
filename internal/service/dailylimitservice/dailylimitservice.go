package dailylimitservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/domain"
)

type UserRepo interface {
	Update(ctx context.Context, userID int64, patch domain.UserPatch) error
}

// Service tracks the per-user ad-view and spin counters against their caps.
// The cooldown is anchored to the moment a cap was hit, not to a wall-clock
// day boundary: each user unlocks exactly one cooldown after filling a cap.
type Service struct {
	userRepo UserRepo
	adsCap   int
	spinsCap int
	cooldown time.Duration
}

func New(userRepo UserRepo, adsCap, spinsCap int, cooldown time.Duration) *Service {
	return &Service{
		userRepo: userRepo,
		adsCap:   adsCap,
		spinsCap: spinsCap,
		cooldown: cooldown,
	}
}

// ResetIfExpired zeroes whichever counters have served out their cooldown.
// Each counter is handled independently; nothing is written when neither
// needs a reset. On success the passed-in user reflects the new state.
func (s *Service) ResetIfExpired(ctx context.Context, user *domain.User) error {
	patch := domain.UserPatch{}
	var zeroAds, zeroSpins int

	resetAds := user.AdsLimitReachedAt != nil &&
		user.AdsWatchedToday >= s.adsCap &&
		time.Since(*user.AdsLimitReachedAt) > s.cooldown
	if resetAds {
		patch.AdsWatchedToday = &zeroAds
		patch.ClearAdsLimitReachedAt = true
	}

	resetSpins := user.SpinsLimitReachedAt != nil &&
		user.SpinsToday >= s.spinsCap &&
		time.Since(*user.SpinsLimitReachedAt) > s.cooldown
	if resetSpins {
		patch.SpinsToday = &zeroSpins
		patch.ClearSpinsLimitReachedAt = true
	}

	if !resetAds && !resetSpins {
		return nil
	}

	if err := s.userRepo.Update(ctx, user.ID, patch); err != nil {
		return err
	}

	if resetAds {
		user.AdsWatchedToday = 0
		user.AdsLimitReachedAt = nil
	}
	if resetSpins {
		user.SpinsToday = 0
		user.SpinsLimitReachedAt = nil
	}
	zap.L().Info("daily limits reset",
		zap.Int64("userID", user.ID),
		zap.Bool("ads", resetAds),
		zap.Bool("spins", resetSpins),
	)
	return nil
}

func (s *Service) CheckAds(user *domain.User) error {
	if user.AdsWatchedToday >= s.adsCap {
		return apperrors.New(apperrors.Forbidden, "daily ads limit reached")
	}
	return nil
}

func (s *Service) CheckSpins(user *domain.User) error {
	if user.SpinsToday >= s.spinsCap {
		return apperrors.New(apperrors.Forbidden, "daily spins limit reached")
	}
	return nil
}

func (s *Service) AdsCap() int {
	return s.adsCap
}

func (s *Service) SpinsCap() int {
	return s.spinsCap
}
