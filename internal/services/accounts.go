// Platform account connections and the browser-based OAuth flow.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	"golang.org/x/time/rate"
)

// AccountService wraps the account connection endpoints. Connection state is
// never assumed: it always mirrors the most recent explicit status fetch.
type AccountService struct {
	api    *APIService
	logger *log.Logger
}

// NewAccountService creates an account service on top of the raw API client.
func NewAccountService(api *APIService, logger *log.Logger) *AccountService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AccountService{api: api, logger: logger}
}

// ConnectResult reports the outcome of a connect attempt. Success false with
// a populated Message is an application-level rejection, not a transport
// error; the caller decides how to present it.
type ConnectResult struct {
	Success bool
	Message string
}

// Connect posts platform credentials to the backend. The credential map is
// flattened into the JSON payload alongside the platform identifier.
func (a *AccountService) Connect(ctx context.Context, platform models.Platform, credentials map[string]string) (*ConnectResult, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownPlatform, platform)
	}

	payload := map[string]any{"platform": string(platform)}
	for k, v := range credentials {
		payload[k] = v
	}

	resp, err := a.api.Post(ctx, "/api/accounts/connect", payload)
	if err != nil {
		// The backend answers credential rejections with a 400 carrying the
		// same success/message envelope; fold those into a ConnectResult so
		// the caller gets the server's message either way.
		if reqErr, ok := err.(*RequestError); ok && reqErr.Status == 400 {
			var env envelope
			if jsonErr := json.Unmarshal([]byte(reqErr.Body), &env); jsonErr == nil && (env.Message != "" || env.Error != "") {
				msg := env.Message
				if msg == "" {
					msg = env.Error
				}
				return &ConnectResult{Success: false, Message: msg}, nil
			}
		}
		return nil, err
	}

	var env envelope
	if err := a.api.DecodeInto(resp, &env); err != nil {
		return nil, err
	}

	msg := env.Message
	if msg == "" && !env.Success {
		msg = env.Error
	}

	a.logger.Info("connect attempt", "platform", platform, "success", env.Success)
	return &ConnectResult{Success: env.Success, Message: msg}, nil
}

// accountState tolerates both shapes the backend has been seen to emit:
// {"status":"connected"} and {"connected":true}.
type accountState struct {
	Status    string `json:"status"`
	Connected *bool  `json:"connected"`
}

// Status fetches the connection state of every platform. Unknown platform
// keys in the response are ignored.
func (a *AccountService) Status(ctx context.Context) (map[models.Platform]models.AccountStatus, error) {
	resp, err := a.api.Get(ctx, "/api/accounts/status", nil)
	if err != nil {
		return nil, err
	}
	if err := a.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Accounts map[string]accountState `json:"accounts"`
	}
	if err := a.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}

	statuses := make(map[models.Platform]models.AccountStatus, len(body.Accounts))
	for name, state := range body.Accounts {
		platform, err := models.ParsePlatform(name)
		if err != nil {
			continue
		}
		connected := strings.EqualFold(state.Status, "connected")
		if state.Connected != nil {
			connected = connected || *state.Connected
		}
		detail := state.Status
		if detail == "" {
			if connected {
				detail = "connected"
			} else {
				detail = "disconnected"
			}
		}
		statuses[platform] = models.AccountStatus{
			Platform:  platform,
			Connected: connected,
			Detail:    detail,
		}
	}

	return statuses, nil
}

// StartOAuth asks the backend for the authorization URL of a platform's
// OAuth flow. Code exchange and token storage are entirely server-side; the
// client only opens this URL and re-polls status afterwards.
func (a *AccountService) StartOAuth(ctx context.Context, platform models.Platform) (string, error) {
	if platform != models.YouTube {
		return "", fmt.Errorf("%w: no OAuth flow for %s", shared.ErrNotImplemented, platform)
	}

	resp, err := a.api.Get(ctx, "/oauth/youtube/start", nil)
	if err != nil {
		return "", err
	}

	var body struct {
		AuthURL string `json:"auth_url"`
	}
	if err := a.api.DecodeInto(resp, &body); err != nil {
		return "", err
	}
	if body.AuthURL == "" {
		return "", fmt.Errorf("%w: no auth_url in response", shared.ErrAPIRequest)
	}
	return body.AuthURL, nil
}

// AwaitConnection polls the status endpoint, rate-limited, until the platform
// reports connected or the timeout elapses. Used after the browser-based
// authorization has been opened.
func (a *AccountService) AwaitConnection(ctx context.Context, platform models.Platform, pollsPerSecond float64, timeout time.Duration) error {
	if pollsPerSecond <= 0 {
		pollsPerSecond = 0.5
	}
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(pollsPerSecond), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return shared.ErrOAuthTimeout
		}

		statuses, err := a.Status(ctx)
		if err != nil {
			// Transient poll failures are logged and retried until timeout.
			a.logger.Warn("status poll failed", "platform", platform, "err", err)
			continue
		}

		if st, ok := statuses[platform]; ok && st.Connected {
			a.logger.Info("platform connected", "platform", platform)
			return nil
		}
	}
}
