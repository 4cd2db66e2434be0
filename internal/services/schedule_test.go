package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	tu "github.com/wilkerbruno/videos-automacoes/internal/testing"
)

func TestScheduleService(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		t.Run("Unfiltered", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/schedule" {
					t.Errorf("expected path '/api/schedule', got %s", r.URL.Path)
				}
				if len(r.URL.Query()) != 0 {
					t.Errorf("expected no query parameters, got %v", r.URL.Query())
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"success": true,
					"posts": [
						{"id": "1", "title": "First", "platforms": ["youtube"], "schedule_time": "2026-09-01T10:00:00", "status": "pending"},
						{"id": "2", "title": "Second", "platforms": ["tiktok"], "scheduledTime": "2026-09-02T12:00:00", "status": "pending"}
					]
				}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewScheduleService(api, nil)

			posts, err := svc.List(context.Background(), "", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(posts) != 2 {
				t.Fatalf("expected 2 posts, got %d", len(posts))
			}
			if posts[1].ScheduleTime != "2026-09-02T12:00:00" {
				t.Errorf("expected scheduledTime spelling to be accepted, got %q", posts[1].ScheduleTime)
			}
			if _, ok := posts[0].When(); !ok {
				t.Error("expected first post's timestamp to parse")
			}
		})

		t.Run("Platform Filter With No Matches", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("platform"); got != "tiktok" {
					t.Errorf("expected platform=tiktok, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "posts": []}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewScheduleService(api, nil)

			posts, err := svc.List(context.Background(), "tiktok", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(posts) != 0 {
				t.Errorf("expected empty list, got %d posts", len(posts))
			}
		})

		t.Run("Date Filter", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("date"); got != "2026-09-01" {
					t.Errorf("expected date=2026-09-01, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "posts": []}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewScheduleService(api, nil)

			if _, err := svc.List(context.Background(), "", "2026-09-01"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Cancel", func(t *testing.T) {
		t.Run("Successful Delete", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				if r.URL.Path != "/api/schedule/p42" {
					t.Errorf("expected path '/api/schedule/p42', got %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "message": "Post cancelled"}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewScheduleService(api, nil)

			if err := svc.Cancel(context.Background(), "p42"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Empty ID", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewScheduleService(api, nil)

			if err := svc.Cancel(context.Background(), ""); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Server Rejection", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": false, "error": "Post not found"}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewScheduleService(api, nil)

			err := svc.Cancel(context.Background(), "missing")
			if !errors.Is(err, shared.ErrServerRejected) {
				t.Errorf("expected ErrServerRejected, got %v", err)
			}
		})
	})
}
