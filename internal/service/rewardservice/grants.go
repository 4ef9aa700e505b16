package rewardservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/pkg/validate"
)

type AdViewResult struct {
	Reward          decimal.Decimal
	Balance         decimal.Decimal
	AdsWatchedToday int
	LimitReached    bool
}

// WatchAd credits the fixed ad reward exactly once per consumed token.
func (s *Service) WatchAd(ctx context.Context, userID int64, token string) (*AdViewResult, error) {
	if err := s.tokens.Consume(ctx, userID, token, domain.TokenAdView); err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.limits.ResetIfExpired(ctx, user); err != nil {
		return nil, err
	}
	if err := s.limits.CheckAds(user); err != nil {
		return nil, err
	}
	if err := s.rates.Check(user); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := user.Balance.Add(s.eco.AdReward)
	newCount := user.AdsWatchedToday + 1

	patch := domain.UserPatch{
		Balance:         &newBalance,
		AdsWatchedToday: &newCount,
		LastActivity:    &now,
	}
	limitReached := newCount >= s.eco.AdsDailyCap
	if limitReached && user.AdsLimitReachedAt == nil {
		// stamp only on the first crossing; at-cap repeats are rejected above
		patch.AdsLimitReachedAt = &now
	}

	if err := s.userRepo.Update(ctx, userID, patch); err != nil {
		return nil, err
	}

	s.enqueueCommission(ctx, user, s.eco.AdReward)

	return &AdViewResult{
		Reward:          s.eco.AdReward,
		Balance:         newBalance,
		AdsWatchedToday: newCount,
		LimitReached:    limitReached,
	}, nil
}

// PreSpin validates eligibility before the client commits to the wheel
// animation. It consumes its own token but grants nothing, and deliberately
// leaves last_activity alone so the follow-up result call is not rate-limited
// by its own pre-check.
func (s *Service) PreSpin(ctx context.Context, userID int64, token string) error {
	if err := s.tokens.Consume(ctx, userID, token, domain.TokenPreSpin); err != nil {
		return err
	}

	user, err := s.loadActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.limits.ResetIfExpired(ctx, user); err != nil {
		return err
	}
	if err := s.limits.CheckSpins(user); err != nil {
		return err
	}
	return s.rates.Check(user)
}

type SpinOutcome struct {
	Prize        decimal.Decimal
	PrizeIndex   int
	Balance      decimal.Decimal
	SpinsToday   int
	LimitReached bool
}

// SpinResult commits the outcome. Eligibility is re-checked from scratch:
// the pre-spin verdict is not trusted across the gap.
func (s *Service) SpinResult(ctx context.Context, userID int64, token string) (*SpinOutcome, error) {
	if err := s.tokens.Consume(ctx, userID, token, domain.TokenSpinResult); err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.limits.ResetIfExpired(ctx, user); err != nil {
		return nil, err
	}
	if err := s.limits.CheckSpins(user); err != nil {
		return nil, err
	}
	if err := s.rates.Check(user); err != nil {
		return nil, err
	}

	idx, prize := drawPrize(s.eco.SpinPayouts, s.intn)

	now := time.Now().UTC()
	newBalance := user.Balance.Add(prize)
	newCount := user.SpinsToday + 1

	patch := domain.UserPatch{
		Balance:      &newBalance,
		SpinsToday:   &newCount,
		LastActivity: &now,
	}
	limitReached := newCount >= s.eco.SpinsDailyCap
	if limitReached && user.SpinsLimitReachedAt == nil {
		patch.SpinsLimitReachedAt = &now
	}

	if err := s.userRepo.Update(ctx, userID, patch); err != nil {
		return nil, err
	}

	zap.L().Info("spin settled",
		zap.Int64("userID", userID),
		zap.Int("prizeIndex", idx),
		zap.String("prize", prize.String()),
	)
	s.enqueueCommission(ctx, user, prize)

	return &SpinOutcome{
		Prize:        prize,
		PrizeIndex:   idx,
		Balance:      newBalance,
		SpinsToday:   newCount,
		LimitReached: limitReached,
	}, nil
}

type TaskResult struct {
	Reward  decimal.Decimal
	Balance decimal.Decimal
}

func (s *Service) CompleteTask(ctx context.Context, userID, taskID int64, token string) (*TaskResult, error) {
	if err := s.tokens.Consume(ctx, userID, token, domain.TokenTaskComplete); err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rates.Check(user); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.New(apperrors.NotFound, "task not found")
	}
	if !task.IsActive {
		return nil, apperrors.New(apperrors.Forbidden, "task is not active")
	}
	if task.CurrentUsers >= task.MaxUsers {
		return nil, apperrors.New(apperrors.Forbidden, "task is full")
	}

	done, err := s.taskRepo.HasCompletion(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, apperrors.New(apperrors.Conflict, "task already completed")
	}

	if task.RequiresSubscription != "" {
		if !s.membership.IsChannelMember(ctx, userID, task.RequiresSubscription) {
			return nil, apperrors.New(apperrors.Forbidden, "channel subscription required")
		}
	}

	if err := s.taskRepo.CreateCompletion(ctx, userID, taskID); err != nil {
		return nil, err
	}

	newCount := task.CurrentUsers + 1
	taskPatch := domain.TaskPatch{CurrentUsers: &newCount}
	if newCount >= task.MaxUsers {
		// best-effort close against the capacity race
		inactive := false
		taskPatch.IsActive = &inactive
	}
	if err := s.taskRepo.Update(ctx, taskID, taskPatch); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := user.Balance.Add(task.Reward)
	if err := s.userRepo.Update(ctx, userID, domain.UserPatch{
		Balance:      &newBalance,
		LastActivity: &now,
	}); err != nil {
		return nil, err
	}

	zap.L().Info("task completed",
		zap.Int64("userID", userID),
		zap.Int64("taskID", taskID),
		zap.String("reward", task.Reward.String()),
	)
	s.enqueueCommission(ctx, user, task.Reward)

	return &TaskResult{Reward: task.Reward, Balance: newBalance}, nil
}

// Withdraw debits immediately and appends a pending record for out-of-band
// fulfillment. If the append fails after the debit, the debit stands and the
// error surfaces; there is no compensating write.
func (s *Service) Withdraw(ctx context.Context, userID int64, destination string, amount decimal.Decimal, token string) (*domain.Withdrawal, error) {
	if err := s.tokens.Consume(ctx, userID, token, domain.TokenWithdraw); err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.rates.Check(user); err != nil {
		return nil, err
	}

	if amount.LessThan(s.eco.MinWithdrawal) {
		return nil, apperrors.Newf(apperrors.Validation, "minimum withdrawal is %s", s.eco.MinWithdrawal.String())
	}
	if !validate.IsDestination(destination) {
		return nil, apperrors.New(apperrors.Validation, "invalid destination")
	}
	if user.Balance.LessThan(amount) {
		return nil, apperrors.New(apperrors.Validation, "insufficient balance")
	}

	now := time.Now().UTC()
	newBalance := user.Balance.Sub(amount)
	if err := s.userRepo.Update(ctx, userID, domain.UserPatch{
		Balance:      &newBalance,
		LastActivity: &now,
	}); err != nil {
		return nil, err
	}

	withdrawal, err := s.withdrawalRepo.Create(ctx, &domain.Withdrawal{
		UserID:      userID,
		Destination: destination,
		Amount:      amount,
		Status:      domain.WithdrawalStatusPending,
		CreatedAt:   now,
	})
	if err != nil {
		zap.L().Error("withdrawal record append failed after debit",
			zap.Int64("userID", userID),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.Int64("userID", userID),
		zap.String("amount", amount.String()),
	)
	return withdrawal, nil
}
