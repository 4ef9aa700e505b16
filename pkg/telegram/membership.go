package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/makremffff/index.html-bota/pkg/clients"
)

const defaultAPIURL = "https://api.telegram.org"

type MembershipChecker struct {
	apiURL   string
	botToken string
	client   clients.HTTPClientI
}

func NewMembershipChecker(botToken string, client clients.HTTPClientI) *MembershipChecker {
	return &MembershipChecker{
		apiURL:   defaultAPIURL,
		botToken: botToken,
		client:   client,
	}
}

// SetAPIURL overrides the Bot API base URL, used in tests.
func (c *MembershipChecker) SetAPIURL(apiURL string) {
	c.apiURL = apiURL
}

// IsChannelMember reduces the getChatMember tri-state to a boolean:
// member, administrator and creator count; anything else, including a failed
// call, does not.
func (c *MembershipChecker) IsChannelMember(ctx context.Context, userID int64, channel string) bool {
	params := url.Values{}
	params.Set("chat_id", channel)
	params.Set("user_id", strconv.FormatInt(userID, 10))
	reqURL := c.apiURL + "/bot" + c.botToken + "/getChatMember?" + params.Encode()

	status, body, err := c.client.DoJSON(ctx, http.MethodGet, reqURL, nil, nil)
	if err != nil {
		zap.L().Warn("getChatMember call failed", zap.String("channel", channel), zap.Error(err))
		return false
	}
	if status != http.StatusOK {
		zap.L().Warn("getChatMember returned non-OK status", zap.String("channel", channel), zap.Int("status", status))
		return false
	}

	var resp struct {
		OK     bool `json:"ok"`
		Result struct {
			Status string `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || !resp.OK {
		return false
	}

	switch resp.Result.Status {
	case "member", "administrator", "creator":
		return true
	}
	return false
}
