package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionRequestDTO is the single request shape of the action endpoint. The
// Type field selects the operation; the rest of the fields are read per type.
type ActionRequestDTO struct {
	Type     string `json:"type" example:"watch_ad"`
	UserID   int64  `json:"user_id" example:"123456789"`
	InitData string `json:"init_data"`

	Token string `json:"token,omitempty" example:"9f86d081884c7d659a2feaa0c55ad015"`
	Kind  string `json:"kind,omitempty" example:"ad_view"`

	Username   string `json:"username,omitempty" example:"durov"`
	ReferrerID *int64 `json:"referrer_id,omitempty" example:"987654321"`

	TaskID int64 `json:"task_id,omitempty" example:"5"`

	Destination string          `json:"destination,omitempty" example:"4561261212345467"`
	Amount      decimal.Decimal `json:"amount,omitempty" example:"25"`

	RefereeID int64           `json:"referee_id,omitempty" example:"123456789"`
	Source    decimal.Decimal `json:"source,omitempty" example:"0.3"`
}

type ProfileResponseDTO struct {
	ID                  int64           `json:"id" example:"123456789"`
	Username            string          `json:"username" example:"durov"`
	Balance             decimal.Decimal `json:"balance" example:"12.6"`
	AdsWatchedToday     int             `json:"ads_watched_today" example:"17"`
	SpinsToday          int             `json:"spins_today" example:"4"`
	AdsLimitReachedAt   *time.Time      `json:"ads_limit_reached_at,omitempty"`
	SpinsLimitReachedAt *time.Time      `json:"spins_limit_reached_at,omitempty"`
	ReferrerID          *int64          `json:"referrer_id,omitempty" example:"987654321"`
}

type TokenResponseDTO struct {
	Token     string `json:"token" example:"9f86d081884c7d659a2feaa0c55ad015"`
	ExpiresIn int    `json:"expires_in" example:"60"`
}

type AdViewResponseDTO struct {
	Reward          decimal.Decimal `json:"reward" example:"0.3"`
	Balance         decimal.Decimal `json:"balance" example:"12.9"`
	AdsWatchedToday int             `json:"ads_watched_today" example:"18"`
	LimitReached    bool            `json:"limit_reached" example:"false"`
}

type PreSpinResponseDTO struct {
	Eligible bool `json:"eligible" example:"true"`
}

type SpinResponseDTO struct {
	Prize        decimal.Decimal `json:"prize" example:"15"`
	PrizeIndex   int             `json:"prize_index" example:"2"`
	Balance      decimal.Decimal `json:"balance" example:"27.9"`
	SpinsToday   int             `json:"spins_today" example:"5"`
	LimitReached bool            `json:"limit_reached" example:"false"`
}

type TaskResponseDTO struct {
	ID                   int64           `json:"id" example:"5"`
	Name                 string          `json:"name" example:"Join our channel"`
	Link                 string          `json:"link" example:"https://t.me/rewards_channel"`
	Reward               decimal.Decimal `json:"reward" example:"2"`
	RequiresSubscription string          `json:"requires_subscription,omitempty" example:"@rewards_channel"`
	Completed            bool            `json:"completed" example:"false"`
}

type TaskCompleteResponseDTO struct {
	Reward  decimal.Decimal `json:"reward" example:"2"`
	Balance decimal.Decimal `json:"balance" example:"14.9"`
}

type WithdrawalResponseDTO struct {
	ID          int64           `json:"id" example:"9"`
	Destination string          `json:"destination" example:"4561261212345467"`
	Amount      decimal.Decimal `json:"amount" example:"25"`
	Status      string          `json:"status" example:"pending"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-11-02T10:00:00Z"`
}

type RetryResponseDTO struct {
	RetryAfter int `json:"retry_after" example:"3"`
}

type CommissionResponseDTO struct {
	Queued bool `json:"queued" example:"true"`
}
