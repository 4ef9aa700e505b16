package service

import (
	"context"

	"github.com/makremffff/index.html-bota/internal/commission"
	"github.com/makremffff/index.html-bota/internal/config"
	"github.com/makremffff/index.html-bota/internal/handlers/actions"
	"github.com/makremffff/index.html-bota/internal/repo"
	"github.com/makremffff/index.html-bota/internal/service/dailylimitservice"
	"github.com/makremffff/index.html-bota/internal/service/ratelimitservice"
	"github.com/makremffff/index.html-bota/internal/service/rewardservice"
	"github.com/makremffff/index.html-bota/internal/service/tokenservice"
)

type Services struct {
	TokenService    actions.TokenService
	RewardService   actions.RewardService
	CommissionQueue actions.CommissionQueue

	tokenService *tokenservice.Service
	commissions  *commission.Service
}

func New(repo *repo.Repositories, cfg *config.Config, membership rewardservice.MembershipChecker) *Services {
	eco := cfg.Economy

	tokenService := tokenservice.New(repo.UserRepo, repo.TokenRepo, eco.TokenTTL)
	rateLimiter := ratelimitservice.New(eco.RequestSpacing)
	dailyLimits := dailylimitservice.New(repo.UserRepo, eco.AdsDailyCap, eco.SpinsDailyCap, eco.LimitCooldown)
	commissions := commission.New(repo.UserRepo, repo.CommissionRepo, eco.CommissionRate, eco.CommissionFloor)

	rewardService := rewardservice.New(
		repo.UserRepo,
		repo.TaskRepo,
		repo.WithdrawalRepo,
		tokenService,
		rateLimiter,
		dailyLimits,
		commissions,
		membership,
		eco,
	)

	return &Services{
		TokenService:    tokenService,
		RewardService:   rewardService,
		CommissionQueue: commissions,
		tokenService:    tokenService,
		commissions:     commissions,
	}
}

// Run starts the background loops: the commission worker pool and the
// expired-token sweeper. Both stop when ctx is cancelled.
func (s *Services) Run(ctx context.Context) {
	s.commissions.Start(ctx)
	go s.tokenService.RunSweeper(ctx)
}
