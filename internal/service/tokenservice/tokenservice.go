package tokenservice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
}

type TokenRepo interface {
	Create(ctx context.Context, token *domain.ActionToken) (*domain.ActionToken, error)
	Find(ctx context.Context, userID int64, value string, kind domain.TokenKind) (*domain.ActionToken, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.ActionToken, error)
}

var (
	ErrTokenInvalid = apperrors.New(apperrors.Conflict, "invalid or already used token")
	ErrTokenExpired = apperrors.New(apperrors.TokenExpired, "token expired")
)

const sweepBatchSize = 500

type Service struct {
	userRepo  UserRepo
	tokenRepo TokenRepo
	ttl       time.Duration
}

func New(userRepo UserRepo, tokenRepo TokenRepo, ttl time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		ttl:       ttl,
	}
}

// Issue creates a fresh single-use token for one reward-granting action.
func (s *Service) Issue(ctx context.Context, userID int64, kind domain.TokenKind) (*domain.ActionToken, error) {
	if !kind.Valid() {
		return nil, apperrors.Newf(apperrors.Validation, "unknown action kind: %s", kind)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}
	if user.IsBanned {
		return nil, apperrors.New(apperrors.Forbidden, "user is banned")
	}

	value, err := randomValue()
	if err != nil {
		return nil, err
	}

	token, err := s.tokenRepo.Create(ctx, &domain.ActionToken{
		UserID:    userID,
		Kind:      kind,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Consume looks up the token by all three factors and deletes it. The delete
// is the consumption: when the store reports the row already gone, a
// concurrent request won and this call fails the same way as a token that
// never existed. Callers must abort on any error before mutating anything.
func (s *Service) Consume(ctx context.Context, userID int64, value string, kind domain.TokenKind) error {
	token, err := s.tokenRepo.Find(ctx, userID, value, kind)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenInvalid
	}

	if time.Since(token.CreatedAt) > s.ttl {
		if _, err := s.tokenRepo.DeleteByID(ctx, token.ID); err != nil {
			return err
		}
		return ErrTokenExpired
	}

	deleted, err := s.tokenRepo.DeleteByID(ctx, token.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenInvalid
	}
	return nil
}

// Sweep removes tokens past the expiry window that were never consumed.
func (s *Service) Sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.ttl)
	tokens, err := s.tokenRepo.ListOlderThan(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return fmt.Errorf("sweep expired tokens: %w", err)
	}

	for _, token := range tokens {
		if _, err := s.tokenRepo.DeleteByID(ctx, token.ID); err != nil {
			return fmt.Errorf("sweep expired tokens: %w", err)
		}
	}
	if len(tokens) > 0 {
		zap.L().Info("swept expired action tokens", zap.Int("count", len(tokens)))
	}
	return nil
}

// RunSweeper periodically sweeps until the context is cancelled.
func (s *Service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("token sweeper stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				zap.L().Error("token sweep failed", zap.Error(err))
			}
		}
	}
}

func randomValue() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token value: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
