package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	tu "github.com/wilkerbruno/videos-automacoes/internal/testing"
)

func TestAccountService(t *testing.T) {
	t.Run("Connect", func(t *testing.T) {
		t.Run("Successful Connection", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/accounts/connect" {
					t.Errorf("expected path '/api/accounts/connect', got %s", r.URL.Path)
				}

				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if body["platform"] != "instagram" {
					t.Errorf("expected platform 'instagram', got %s", body["platform"])
				}
				if body["username"] != "creator" {
					t.Errorf("expected username 'creator', got %s", body["username"])
				}
				if body["access_token"] != "tok123" {
					t.Errorf("expected access_token 'tok123', got %s", body["access_token"])
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "message": "Connected"}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			result, err := svc.Connect(context.Background(), models.Instagram, map[string]string{
				"username":     "creator",
				"access_token": "tok123",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !result.Success {
				t.Error("expected success")
			}
		})

		t.Run("Rejected Credentials", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": false, "message": "bad token"}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			result, err := svc.Connect(context.Background(), models.TikTok, map[string]string{"accessToken": "bad"})
			if err != nil {
				t.Fatalf("expected no transport error, got %v", err)
			}
			if result.Success {
				t.Error("expected success to be false")
			}
			if result.Message != "bad token" {
				t.Errorf("expected message 'bad token', got %s", result.Message)
			}
		})

		t.Run("Rejection Via 400 Status", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusBadRequest, `{"success": false, "message": "missing credentials"}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			result, err := svc.Connect(context.Background(), models.Kawai, map[string]string{})
			if err != nil {
				t.Fatalf("expected rejection result, got error %v", err)
			}
			if result.Success {
				t.Error("expected success to be false")
			}
			if result.Message != "missing credentials" {
				t.Errorf("expected message 'missing credentials', got %s", result.Message)
			}
		})

		t.Run("Unknown Platform", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewAccountService(api, nil)

			_, err := svc.Connect(context.Background(), models.Platform("myspace"), nil)
			if !errors.Is(err, shared.ErrUnknownPlatform) {
				t.Errorf("expected ErrUnknownPlatform, got %v", err)
			}
		})
	})

	t.Run("Status", func(t *testing.T) {
		t.Run("Mixed Response Shapes", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{
				"success": true,
				"accounts": {
					"youtube": {"status": "connected"},
					"instagram": {"connected": true},
					"tiktok": {"status": "disconnected"},
					"kawai": {"connected": false}
				}
			}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			statuses, err := svc.Status(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !statuses[models.YouTube].Connected {
				t.Error("expected youtube to be connected")
			}
			if !statuses[models.Instagram].Connected {
				t.Error("expected instagram to be connected")
			}
			if statuses[models.TikTok].Connected {
				t.Error("expected tiktok to be disconnected")
			}
			if statuses[models.Kawai].Connected {
				t.Error("expected kawai to be disconnected")
			}
		})

		t.Run("Unknown Platforms Ignored", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{
				"success": true,
				"accounts": {"vine": {"status": "connected"}}
			}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			statuses, err := svc.Status(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(statuses) != 0 {
				t.Errorf("expected empty status map, got %v", statuses)
			}
		})
	})

	t.Run("StartOAuth", func(t *testing.T) {
		t.Run("Returns Auth URL", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"auth_url": "https://accounts.google.com/o/oauth2/auth?state=xyz"}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			authURL, err := svc.StartOAuth(context.Background(), models.YouTube)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if authURL == "" {
				t.Error("expected auth URL")
			}
		})

		t.Run("Unsupported Platform", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewAccountService(api, nil)

			_, err := svc.StartOAuth(context.Background(), models.TikTok)
			if !errors.Is(err, shared.ErrNotImplemented) {
				t.Errorf("expected ErrNotImplemented, got %v", err)
			}
		})

		t.Run("Missing Auth URL", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			_, err := svc.StartOAuth(context.Background(), models.YouTube)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("AwaitConnection", func(t *testing.T) {
		t.Run("Connects After Polls", func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if calls.Add(1) < 3 {
					w.Write([]byte(`{"success": true, "accounts": {"youtube": {"status": "pending"}}}`))
					return
				}
				w.Write([]byte(`{"success": true, "accounts": {"youtube": {"status": "connected"}}}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			if err := svc.AwaitConnection(context.Background(), models.YouTube, 100, 5*time.Second); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if calls.Load() < 3 {
				t.Errorf("expected at least 3 polls, got %d", calls.Load())
			}
		})

		t.Run("Times Out", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": true, "accounts": {"youtube": {"status": "pending"}}}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAccountService(api, nil)

			err := svc.AwaitConnection(context.Background(), models.YouTube, 100, 150*time.Millisecond)
			if !errors.Is(err, shared.ErrOAuthTimeout) {
				t.Errorf("expected ErrOAuthTimeout, got %v", err)
			}
		})
	})
}
