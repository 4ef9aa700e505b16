package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHash  = errors.New("init data: missing hash")
	ErrBadAuthDate  = errors.New("init data: invalid auth_date")
	ErrStaleData    = errors.New("init data: auth_date outside freshness window")
	ErrHashMismatch = errors.New("init data: hash mismatch")
)

type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type InitData struct {
	QueryID  string
	User     WebAppUser
	AuthDate time.Time
}

// ValidateInitData checks the signed payload the Mini App client sends on
// every request. Signature recipe per Telegram: secret key is
// HMAC-SHA256("WebAppData", botToken), the data-check string is all key=value
// pairs except hash, sorted by key, joined with newlines.
func ValidateInitData(initData, botToken string, maxAge time.Duration) (*InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, err
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrMissingHash
	}

	authDateUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, ErrBadAuthDate
	}
	authDate := time.Unix(authDateUnix, 0)
	if time.Since(authDate) > maxAge {
		return nil, ErrStaleData
	}

	values.Del("hash")
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(parts, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return nil, ErrHashMismatch
	}

	data := &InitData{
		QueryID:  values.Get("query_id"),
		AuthDate: authDate,
	}
	if userJSON := values.Get("user"); userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &data.User); err != nil {
			return nil, err
		}
	}

	return data, nil
}
