package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/internal/apperrors"
	"github.com/makremffff/index.html-bota/internal/domain"
	"github.com/makremffff/index.html-bota/internal/dto"
	"github.com/makremffff/index.html-bota/internal/service/rewardservice"
	"github.com/makremffff/index.html-bota/pkg/telegram"
	"github.com/makremffff/index.html-bota/pkg/utils"
)

type RewardService interface {
	Register(ctx context.Context, userID int64, username string, referrerID *int64) (*domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	Tasks(ctx context.Context, userID int64) ([]rewardservice.TaskStatus, error)
	Withdrawals(ctx context.Context, userID int64) ([]domain.Withdrawal, error)
	WatchAd(ctx context.Context, userID int64, token string) (*rewardservice.AdViewResult, error)
	PreSpin(ctx context.Context, userID int64, token string) error
	SpinResult(ctx context.Context, userID int64, token string) (*rewardservice.SpinOutcome, error)
	CompleteTask(ctx context.Context, userID, taskID int64, token string) (*rewardservice.TaskResult, error)
	Withdraw(ctx context.Context, userID int64, destination string, amount decimal.Decimal, token string) (*domain.Withdrawal, error)
}

type TokenService interface {
	Issue(ctx context.Context, userID int64, kind domain.TokenKind) (*domain.ActionToken, error)
}

type CommissionQueue interface {
	Enqueue(ctx context.Context, referrerID, refereeID int64, source decimal.Decimal)
}

type ActionHandler struct {
	rewardService RewardService
	tokenService  TokenService
	commissions   CommissionQueue

	botToken    string
	internalKey string
	authTTL     time.Duration
	tokenTTL    time.Duration
}

func New(
	rewardService RewardService,
	tokenService TokenService,
	commissions CommissionQueue,
	botToken, internalKey string,
	authTTL, tokenTTL time.Duration,
) *ActionHandler {
	return &ActionHandler{
		rewardService: rewardService,
		tokenService:  tokenService,
		commissions:   commissions,
		botToken:      botToken,
		internalKey:   internalKey,
		authTTL:       authTTL,
		tokenTTL:      tokenTTL,
	}
}

// HandleAction godoc
//
//	@Summary		Execute a rewards action
//	@Description	Single dispatch endpoint of the Mini App backend. The type field selects the operation: register, profile, tasks, issue_token, watch_ad, pre_spin, spin_result, complete_task, withdraw, withdrawals, commission. Every user-facing type carries signed Telegram init data; commission is internal and authenticated by the X-Api-Key header instead.
//	@Tags			Actions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ActionRequestDTO	true	"Action payload"
//	@Success		200		{object}	utils.Response			"Action result in the data field"
//	@Failure		400		{object}	utils.Response			"Malformed request or unknown action type"
//	@Failure		401		{object}	utils.Response			"Init data missing, stale or forged"
//	@Failure		403		{object}	utils.Response			"Banned user or exhausted daily limit"
//	@Failure		404		{object}	utils.Response			"Unknown user or task"
//	@Failure		408		{object}	utils.Response			"Action token expired"
//	@Failure		409		{object}	utils.Response			"Token already used or task already completed"
//	@Failure		429		{object}	utils.Response			"Too many requests, retry_after seconds in data"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/ [post]
func (h *ActionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Type == "commission" {
		h.handleCommission(w, r, req)
		return
	}

	auth, ok := h.authenticate(w, r, req)
	if !ok {
		return
	}

	ctx := r.Context()
	switch req.Type {
	case "register":
		username := auth.User.Username
		if username == "" {
			username = req.Username
		}
		user, err := h.rewardService.Register(ctx, req.UserID, username, req.ReferrerID)
		h.respond(w, profileDTO(user), err)
	case "profile":
		user, err := h.rewardService.Profile(ctx, req.UserID)
		h.respond(w, profileDTO(user), err)
	case "tasks":
		statuses, err := h.rewardService.Tasks(ctx, req.UserID)
		h.respond(w, taskDTOs(statuses), err)
	case "issue_token":
		token, err := h.tokenService.Issue(ctx, req.UserID, domain.TokenKind(req.Kind))
		var payload interface{}
		if token != nil {
			payload = dto.TokenResponseDTO{
				Token:     token.Value,
				ExpiresIn: int(h.tokenTTL.Seconds()),
			}
		}
		h.respond(w, payload, err)
	case "watch_ad":
		res, err := h.rewardService.WatchAd(ctx, req.UserID, req.Token)
		var payload interface{}
		if res != nil {
			payload = dto.AdViewResponseDTO{
				Reward:          res.Reward,
				Balance:         res.Balance,
				AdsWatchedToday: res.AdsWatchedToday,
				LimitReached:    res.LimitReached,
			}
		}
		h.respond(w, payload, err)
	case "pre_spin":
		err := h.rewardService.PreSpin(ctx, req.UserID, req.Token)
		h.respond(w, dto.PreSpinResponseDTO{Eligible: true}, err)
	case "spin_result":
		res, err := h.rewardService.SpinResult(ctx, req.UserID, req.Token)
		var payload interface{}
		if res != nil {
			payload = dto.SpinResponseDTO{
				Prize:        res.Prize,
				PrizeIndex:   res.PrizeIndex,
				Balance:      res.Balance,
				SpinsToday:   res.SpinsToday,
				LimitReached: res.LimitReached,
			}
		}
		h.respond(w, payload, err)
	case "complete_task":
		res, err := h.rewardService.CompleteTask(ctx, req.UserID, req.TaskID, req.Token)
		var payload interface{}
		if res != nil {
			payload = dto.TaskCompleteResponseDTO{Reward: res.Reward, Balance: res.Balance}
		}
		h.respond(w, payload, err)
	case "withdraw":
		withdrawal, err := h.rewardService.Withdraw(ctx, req.UserID, req.Destination, req.Amount, req.Token)
		var payload interface{}
		if withdrawal != nil {
			payload = withdrawalDTO(*withdrawal)
		}
		h.respond(w, payload, err)
	case "withdrawals":
		list, err := h.rewardService.Withdrawals(ctx, req.UserID)
		h.respond(w, withdrawalDTOs(list), err)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "unknown action type")
	}
}

// authenticate verifies the signed init data and pins it to the claimed user
// id, so a valid payload cannot be replayed for someone else's account.
func (h *ActionHandler) authenticate(w http.ResponseWriter, r *http.Request, req dto.ActionRequestDTO) (*telegram.InitData, bool) {
	if req.InitData == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing init data")
		return nil, false
	}

	auth, err := telegram.ValidateInitData(req.InitData, h.botToken, h.authTTL)
	if err != nil {
		if errors.Is(err, telegram.ErrStaleData) {
			utils.RespondWithError(w, http.StatusUnauthorized, "init data expired")
			return nil, false
		}
		zap.L().Warn("init data rejected", zap.Int64("userID", req.UserID), zap.Error(err))
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid init data")
		return nil, false
	}
	if auth.User.ID != req.UserID {
		utils.RespondWithError(w, http.StatusUnauthorized, "init data user mismatch")
		return nil, false
	}
	return auth, true
}

func (h *ActionHandler) handleCommission(w http.ResponseWriter, r *http.Request, req dto.ActionRequestDTO) {
	if h.internalKey == "" || r.Header.Get("X-Api-Key") != h.internalKey {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	if req.ReferrerID == nil || *req.ReferrerID <= 0 || req.RefereeID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "referrer_id and referee_id are required")
		return
	}
	if !req.Source.IsPositive() {
		utils.RespondWithError(w, http.StatusBadRequest, "source must be positive")
		return
	}

	h.commissions.Enqueue(r.Context(), *req.ReferrerID, req.RefereeID, req.Source)
	utils.RespondWithJSON(w, http.StatusOK, dto.CommissionResponseDTO{Queued: true})
}

func (h *ActionHandler) respond(w http.ResponseWriter, payload interface{}, err error) {
	if err != nil {
		status := apperrors.StatusCode(err)
		message := apperrors.UserMessage(err)

		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.RateLimit {
			utils.RespondWithErrorData(w, status, message, dto.RetryResponseDTO{RetryAfter: appErr.RetryAfter})
			return
		}
		if status == http.StatusInternalServerError {
			zap.L().Error("action failed", zap.Error(err))
		}
		utils.RespondWithError(w, status, message)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func profileDTO(user *domain.User) interface{} {
	if user == nil {
		return nil
	}
	return dto.ProfileResponseDTO{
		ID:                  user.ID,
		Username:            user.Username,
		Balance:             user.Balance,
		AdsWatchedToday:     user.AdsWatchedToday,
		SpinsToday:          user.SpinsToday,
		AdsLimitReachedAt:   user.AdsLimitReachedAt,
		SpinsLimitReachedAt: user.SpinsLimitReachedAt,
		ReferrerID:          user.ReferrerID,
	}
}

func taskDTOs(statuses []rewardservice.TaskStatus) []dto.TaskResponseDTO {
	out := make([]dto.TaskResponseDTO, len(statuses))
	for i, st := range statuses {
		out[i] = dto.TaskResponseDTO{
			ID:                   st.Task.ID,
			Name:                 st.Task.Name,
			Link:                 st.Task.Link,
			Reward:               st.Task.Reward,
			RequiresSubscription: st.Task.RequiresSubscription,
			Completed:            st.Completed,
		}
	}
	return out
}

func withdrawalDTO(w domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:          w.ID,
		Destination: w.Destination,
		Amount:      w.Amount,
		Status:      w.Status,
		CreatedAt:   w.CreatedAt,
	}
}

func withdrawalDTOs(list []domain.Withdrawal) []dto.WithdrawalResponseDTO {
	out := make([]dto.WithdrawalResponseDTO, len(list))
	for i, w := range list {
		out[i] = withdrawalDTO(w)
	}
	return out
}
