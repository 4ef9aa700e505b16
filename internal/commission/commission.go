package commission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	Update(ctx context.Context, userID int64, patch domain.UserPatch) error
}

type CommissionRepo interface {
	Create(ctx context.Context, commission *domain.Commission) error
}

type Job struct {
	ID         string
	ReferrerID int64
	RefereeID  int64
	Source     decimal.Decimal
}

// Service credits referrers a fixed share of their referees' rewards. It runs
// decoupled from the reward path: reward operations enqueue and move on, and
// a failed credit is logged, never propagated and never rolled back against
// the already-granted reward.
type Service struct {
	userRepo       UserRepo
	commissionRepo CommissionRepo
	rate           decimal.Decimal
	floor          decimal.Decimal

	jobs       chan Job
	workerPool WorkerPoolI
}

func New(userRepo UserRepo, commissionRepo CommissionRepo, rate, floor decimal.Decimal) *Service {
	return &Service{
		userRepo:       userRepo,
		commissionRepo: commissionRepo,
		rate:           rate,
		floor:          floor,
		jobs:           make(chan Job, 256),
		workerPool:     NewWorkerPool(4),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("commission service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping commission service")
			s.workerPool.Close()
			s.workerPool.Wait()
			return
		case job := <-s.jobs:
			err := s.workerPool.AddTask(ctx, func() error {
				return s.process(context.WithoutCancel(ctx), job)
			})
			if err != nil {
				zap.L().Warn("dropped commission job", zap.String("jobID", job.ID), zap.Error(err))
			}
		}
	}
}

// Enqueue hands a commission over to the background workers. The caller's
// success never depends on the outcome.
func (s *Service) Enqueue(ctx context.Context, referrerID, refereeID int64, source decimal.Decimal) {
	job := Job{
		ID:         uuid.NewString(),
		ReferrerID: referrerID,
		RefereeID:  refereeID,
		Source:     source,
	}

	select {
	case s.jobs <- job:
	case <-ctx.Done():
		zap.L().Warn("dropped commission job, context canceled", zap.String("jobID", job.ID))
	}
}

func (s *Service) process(ctx context.Context, job Job) error {
	amount := job.Source.Mul(s.rate)
	if amount.LessThan(s.floor) {
		zap.L().Debug("commission below floor, skipping",
			zap.String("jobID", job.ID),
			zap.String("amount", amount.String()),
		)
		return nil
	}

	referrer, err := s.userRepo.GetByID(ctx, job.ReferrerID)
	if err != nil {
		return fmt.Errorf("commission %s: get referrer %d: %w", job.ID, job.ReferrerID, err)
	}
	if referrer == nil || referrer.IsBanned {
		zap.L().Debug("commission skipped, referrer unknown or banned",
			zap.String("jobID", job.ID),
			zap.Int64("referrerID", job.ReferrerID),
		)
		return nil
	}

	newBalance := referrer.Balance.Add(amount)
	if err := s.userRepo.Update(ctx, referrer.ID, domain.UserPatch{Balance: &newBalance}); err != nil {
		return fmt.Errorf("commission %s: credit referrer %d: %w", job.ID, referrer.ID, err)
	}

	err = s.commissionRepo.Create(ctx, &domain.Commission{
		ReferrerID:   job.ReferrerID,
		RefereeID:    job.RefereeID,
		Amount:       amount,
		SourceAmount: job.Source,
	})
	if err != nil {
		// the credit stands; the audit trail is best effort
		return fmt.Errorf("commission %s: audit record: %w", job.ID, err)
	}

	zap.L().Info("commission credited",
		zap.String("jobID", job.ID),
		zap.Int64("referrerID", job.ReferrerID),
		zap.Int64("refereeID", job.RefereeID),
		zap.String("amount", amount.String()),
	)
	return nil
}
