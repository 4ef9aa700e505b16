package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                  int64           `json:"id"`
	Username            string          `json:"username"`
	Balance             decimal.Decimal `json:"balance"`
	IsBanned            bool            `json:"is_banned"`
	AdsWatchedToday     int             `json:"ads_watched_today"`
	SpinsToday          int             `json:"spins_today"`
	AdsLimitReachedAt   *time.Time      `json:"ads_limit_reached_at"`
	SpinsLimitReachedAt *time.Time      `json:"spins_limit_reached_at"`
	ReferrerID          *int64          `json:"referrer_id"`
	LastActivity        *time.Time      `json:"last_activity"`
	CreatedAt           time.Time       `json:"created_at"`
}

// UserPatch carries a partial update; nil fields stay untouched. The Clear
// flags write explicit nulls for the cooldown stamps.
type UserPatch struct {
	Balance         *decimal.Decimal
	AdsWatchedToday *int
	SpinsToday      *int

	AdsLimitReachedAt        *time.Time
	ClearAdsLimitReachedAt   bool
	SpinsLimitReachedAt      *time.Time
	ClearSpinsLimitReachedAt bool

	LastActivity *time.Time
}

type TokenKind string

const (
	TokenAdView       TokenKind = "ad_view"
	TokenPreSpin      TokenKind = "pre_spin"
	TokenSpinResult   TokenKind = "spin_result"
	TokenWithdraw     TokenKind = "withdraw"
	TokenTaskComplete TokenKind = "task_complete"
)

func (k TokenKind) Valid() bool {
	switch k {
	case TokenAdView, TokenPreSpin, TokenSpinResult, TokenWithdraw, TokenTaskComplete:
		return true
	}
	return false
}

type ActionToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      TokenKind `json:"kind"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Link                 string          `json:"link"`
	Reward               decimal.Decimal `json:"reward"`
	MaxUsers             int             `json:"max_users"`
	CurrentUsers         int             `json:"current_users"`
	IsActive             bool            `json:"is_active"`
	RequiresSubscription string          `json:"requires_subscription"`
}

type TaskPatch struct {
	CurrentUsers *int
	IsActive     *bool
}

type TaskCompletion struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TaskID    int64     `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

const WithdrawalStatusPending = "pending"

type Withdrawal struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Commission struct {
	ID           int64           `json:"id"`
	ReferrerID   int64           `json:"referrer_id"`
	RefereeID    int64           `json:"referee_id"`
	Amount       decimal.Decimal `json:"amount"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}
