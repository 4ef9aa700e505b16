package rewardservice

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/config"
	"github.com/makremffff/index.html-bota/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, userID int64, patch domain.UserPatch) error
}

type TaskRepo interface {
	GetByID(ctx context.Context, taskID int64) (*domain.Task, error)
	ListActive(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, taskID int64, patch domain.TaskPatch) error
	HasCompletion(ctx context.Context, userID, taskID int64) (bool, error)
	CreateCompletion(ctx context.Context, userID, taskID int64) error
	ListCompletedTaskIDs(ctx context.Context, userID int64) ([]int64, error)
}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.Withdrawal, error)
}

type TokenManager interface {
	Consume(ctx context.Context, userID int64, value string, kind domain.TokenKind) error
}

type RateLimiter interface {
	Check(user *domain.User) error
}

type DailyLimits interface {
	ResetIfExpired(ctx context.Context, user *domain.User) error
	CheckAds(user *domain.User) error
	CheckSpins(user *domain.User) error
}

type CommissionQueue interface {
	Enqueue(ctx context.Context, referrerID, refereeID int64, source decimal.Decimal)
}

type MembershipChecker interface {
	IsChannelMember(ctx context.Context, userID int64, channel string) bool
}

// Service holds the per-action business rules for granting balance and
// advancing counters. Every granting operation runs the same linear gauntlet:
// consume the action token, then ban, limit and rate checks, and only then
// the mutation. A failed token consumption aborts with no side effects.
type Service struct {
	userRepo       UserRepo
	taskRepo       TaskRepo
	withdrawalRepo WithdrawalRepo
	tokens         TokenManager
	rates          RateLimiter
	limits         DailyLimits
	commissions    CommissionQueue
	membership     MembershipChecker
	eco            config.Economy

	intn func(n int) int
}

func New(
	userRepo UserRepo,
	taskRepo TaskRepo,
	withdrawalRepo WithdrawalRepo,
	tokens TokenManager,
	rates RateLimiter,
	limits DailyLimits,
	commissions CommissionQueue,
	membership MembershipChecker,
	eco config.Economy,
) *Service {
	return &Service{
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		withdrawalRepo: withdrawalRepo,
		tokens:         tokens,
		rates:          rates,
		limits:         limits,
		commissions:    commissions,
		membership:     membership,
		eco:            eco,
		intn:           rand.Intn,
	}
}

// Register creates the user on first contact. Repeat calls return the
// existing row untouched, so the referrer link can never be reassigned.
func (s *Service) Register(ctx context.Context, userID int64, username string, referrerID *int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, apperrors.New(apperrors.Validation, "invalid user id")
	}

	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if referrerID != nil {
		if *referrerID == userID {
			referrerID = nil
		} else {
			referrer, err := s.userRepo.GetByID(ctx, *referrerID)
			if err != nil {
				return nil, err
			}
			if referrer == nil {
				referrerID = nil
			}
		}
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		ID:         userID,
		Username:   username,
		Balance:    decimal.Zero,
		ReferrerID: referrerID,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.Int64("userID", userID), zap.Bool("referred", referrerID != nil))
	return user, nil
}

// Profile returns the user with any served-out daily limits already reset,
// so the client always sees current counters.
func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.limits.ResetIfExpired(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type TaskStatus struct {
	Task      domain.Task
	Completed bool
}

func (s *Service) Tasks(ctx context.Context, userID int64) ([]TaskStatus, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	completedIDs, err := s.taskRepo.ListCompletedTaskIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[int64]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	statuses := make([]TaskStatus, len(tasks))
	for i, task := range tasks {
		statuses[i] = TaskStatus{Task: task, Completed: completed[task.ID]}
	}
	return statuses, nil
}

func (s *Service) Withdrawals(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.withdrawalRepo.ListByUserID(ctx, userID)
}

func (s *Service) loadUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}
	return user, nil
}

func (s *Service) loadActiveUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, apperrors.New(apperrors.Forbidden, "user is banned")
	}
	return user, nil
}

func (s *Service) enqueueCommission(ctx context.Context, user *domain.User, source decimal.Decimal) {
	if user.ReferrerID == nil {
		return
	}
	s.commissions.Enqueue(ctx, *user.ReferrerID, user.ID, source)
}

func drawPrize(payouts []decimal.Decimal, intn func(n int) int) (int, decimal.Decimal) {
	idx := intn(len(payouts))
	return idx, payouts[idx]
}
