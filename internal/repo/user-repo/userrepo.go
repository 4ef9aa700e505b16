package userrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/store"
)

const collection = "users"

type Repository struct {
	db store.Client
}

func New(db store.Client) *Repository {
	return &Repository{db: db}
}

// GetByID returns nil, nil when the user does not exist.
func (r *Repository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	records, err := r.db.List(ctx, collection, store.NewQuery().Eq("id", userID).Limit(1))
	if err != nil {
		zap.L().Error("failed to get user", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return decode(records[0]), nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	fields := store.Fields{
		"id":                user.ID,
		"username":          user.Username,
		"balance":           user.Balance,
		"is_banned":         false,
		"ads_watched_today": 0,
		"spins_today":       0,
		"created_at":        time.Now().UTC().Format(time.RFC3339),
	}
	if user.ReferrerID != nil {
		fields["referrer_id"] = *user.ReferrerID
	}

	rec, err := r.db.Create(ctx, collection, fields)
	if err != nil {
		zap.L().Error("failed to create user", zap.Int64("userID", user.ID), zap.Error(err))
		return nil, err
	}
	return decode(rec), nil
}

// Update applies a partial update in a single store call, so counter, balance
// and last-activity changes land together.
func (r *Repository) Update(ctx context.Context, userID int64, patch domain.UserPatch) error {
	fields := store.Fields{}
	if patch.Balance != nil {
		fields["balance"] = *patch.Balance
	}
	if patch.AdsWatchedToday != nil {
		fields["ads_watched_today"] = *patch.AdsWatchedToday
	}
	if patch.SpinsToday != nil {
		fields["spins_today"] = *patch.SpinsToday
	}
	if patch.AdsLimitReachedAt != nil {
		fields["ads_limit_reached_at"] = patch.AdsLimitReachedAt.UTC().Format(time.RFC3339)
	} else if patch.ClearAdsLimitReachedAt {
		fields["ads_limit_reached_at"] = nil
	}
	if patch.SpinsLimitReachedAt != nil {
		fields["spins_limit_reached_at"] = patch.SpinsLimitReachedAt.UTC().Format(time.RFC3339)
	} else if patch.ClearSpinsLimitReachedAt {
		fields["spins_limit_reached_at"] = nil
	}
	if patch.LastActivity != nil {
		fields["last_activity"] = patch.LastActivity.UTC().Format(time.RFC3339)
	}
	if len(fields) == 0 {
		return nil
	}

	if err := r.db.Update(ctx, collection, userID, fields); err != nil {
		zap.L().Error("failed to update user", zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func decode(rec store.Record) *domain.User {
	return &domain.User{
		ID:                  rec.Int64("id"),
		Username:            rec.String("username"),
		Balance:             rec.Decimal("balance"),
		IsBanned:            rec.Bool("is_banned"),
		AdsWatchedToday:     rec.Int("ads_watched_today"),
		SpinsToday:          rec.Int("spins_today"),
		AdsLimitReachedAt:   rec.OptTime("ads_limit_reached_at"),
		SpinsLimitReachedAt: rec.OptTime("spins_limit_reached_at"),
		ReferrerID:          rec.OptInt64("referrer_id"),
		LastActivity:        rec.OptTime("last_activity"),
		CreatedAt:           rec.Time("created_at"),
	}
}
