package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	tu "github.com/wilkerbruno/videos-automacoes/internal/testing"
)

func TestContentService(t *testing.T) {
	t.Run("Generate", func(t *testing.T) {
		t.Run("Successful Generation", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/generate-content" {
					t.Errorf("expected path '/api/generate-content', got %s", r.URL.Path)
				}

				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if body["title"] != "Cat Video" {
					t.Errorf("expected title 'Cat Video', got %v", body["title"])
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"success": true,
					"content": {
						"description": "A viral cat moment",
						"hashtags": ["#cats", "#viral"],
						"viral_score": 88
					}
				}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			content, err := svc.Generate(context.Background(), "Cat Video", "pets", []models.Platform{models.YouTube, models.TikTok})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if content.ViralScore != 88 {
				t.Errorf("expected viral score 88, got %d", content.ViralScore)
			}
			if len(content.Hashtags) != 2 {
				t.Errorf("expected 2 hashtags, got %v", content.Hashtags)
			}
		})

		t.Run("Missing Title", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.Generate(context.Background(), "", "pets", []models.Platform{models.YouTube})
			if !errors.Is(err, shared.ErrMissingTitle) {
				t.Errorf("expected ErrMissingTitle, got %v", err)
			}
		})

		t.Run("No Platforms", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.Generate(context.Background(), "Cat Video", "pets", nil)
			if !errors.Is(err, shared.ErrNoPlatforms) {
				t.Errorf("expected ErrNoPlatforms, got %v", err)
			}
		})

		t.Run("Service Unavailable", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": false, "error": "AI service not configured"}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.Generate(context.Background(), "Cat Video", "pets", []models.Platform{models.YouTube})
			if !errors.Is(err, shared.ErrServerRejected) {
				t.Errorf("expected ErrServerRejected, got %v", err)
			}
		})
	})

	t.Run("Analyze", func(t *testing.T) {
		t.Run("Returns Full Analysis", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{
				"success": true,
				"viral_score": 64,
				"strengths": ["strong hook"],
				"improvements": ["add trending audio", "shorter intro"],
				"trending_elements": {"tiktok": ["dance", "duet"]},
				"optimal_timing": {"tiktok": ["18:00", "21:00"]}
			}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{
				Title:     "My Draft",
				Category:  "entertainment",
				Platforms: []string{"tiktok"},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if analysis.ViralScore != 64 {
				t.Errorf("expected viral score 64, got %d", analysis.ViralScore)
			}
			if len(analysis.Improvements) != 2 {
				t.Errorf("expected 2 improvements, got %v", analysis.Improvements)
			}
			if len(analysis.TrendingElements["tiktok"]) != 2 {
				t.Errorf("expected trending elements for tiktok, got %v", analysis.TrendingElements)
			}
		})

		t.Run("Missing Title", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.Analyze(context.Background(), AnalyzeRequest{})
			if !errors.Is(err, shared.ErrMissingTitle) {
				t.Errorf("expected ErrMissingTitle, got %v", err)
			}
		})
	})

	t.Run("Regenerate", func(t *testing.T) {
		t.Run("Nil Analysis", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.Regenerate(context.Background(), nil, true)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Returns Improved Content", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{
				"success": true,
				"content": {"description": "Improved", "hashtags": ["#new"], "viral_score": 91}
			}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			content, err := svc.Regenerate(context.Background(), &models.ViralAnalysis{ViralScore: 64}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if content.ViralScore != 91 {
				t.Errorf("expected viral score 91, got %d", content.ViralScore)
			}
		})
	})

	t.Run("Templates", func(t *testing.T) {
		t.Run("Sorted And IDs Filled", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{
				"success": true,
				"templates": {
					"tutorial": {"name": "Tutorial", "viral_score": 70},
					"challenge": {"name": "Challenge", "viral_score": 90}
				}
			}`)

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			templates, err := svc.Templates(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(templates) != 2 {
				t.Fatalf("expected 2 templates, got %d", len(templates))
			}
			if templates[0].ID != "challenge" || templates[1].ID != "tutorial" {
				t.Errorf("expected sorted ids [challenge tutorial], got [%s %s]", templates[0].ID, templates[1].ID)
			}
		})
	})

	t.Run("FromTemplate", func(t *testing.T) {
		t.Run("Missing Template ID", func(t *testing.T) {
			api := NewAPIService("http://example.com", nil, nil)
			svc := NewContentService(api, nil)

			_, err := svc.FromTemplate(context.Background(), "", nil, nil)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Sends Variables", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					TemplateID string            `json:"template_id"`
					Variables  map[string]string `json:"variables"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if body.TemplateID != "challenge" {
					t.Errorf("expected template_id 'challenge', got %s", body.TemplateID)
				}
				if body.Variables["topic"] != "cooking" {
					t.Errorf("expected variable topic=cooking, got %v", body.Variables)
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "content": {"description": "Filled", "hashtags": [], "viral_score": 80}}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewContentService(api, nil)

			content, err := svc.FromTemplate(context.Background(), "challenge", map[string]string{"topic": "cooking"}, []models.Platform{models.TikTok})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if content.Description != "Filled" {
				t.Errorf("expected description 'Filled', got %s", content.Description)
			}
		})
	})
}

func TestAnalyticsService(t *testing.T) {
	t.Run("Summary", func(t *testing.T) {
		t.Run("Default Range", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("range"); got != "30d" {
					t.Errorf("expected range=30d, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"success": true,
					"summary": {"views": 2500000, "likes": 1500, "shares": 999, "posts": 12},
					"chartData": {"labels": ["Mon"], "views": [100], "engagement": [5.5]},
					"platformBreakdown": {"youtube": {"views": 2000000, "engagement": 4.2}},
					"insights": [{"type": "tip", "title": "Post more", "description": "d", "action": "a"}]
				}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAnalyticsService(api, nil)

			summary, err := svc.Summary(context.Background(), "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if summary.Summary.Views != 2500000 {
				t.Errorf("expected 2500000 views, got %d", summary.Summary.Views)
			}
			if len(summary.Chart.Labels) != 1 {
				t.Errorf("expected 1 chart label, got %v", summary.Chart.Labels)
			}
			if summary.PlatformBreakdown["youtube"].Views != 2000000 {
				t.Errorf("expected youtube views, got %v", summary.PlatformBreakdown)
			}
			if len(summary.Insights) != 1 {
				t.Errorf("expected 1 insight, got %d", len(summary.Insights))
			}
		})

		t.Run("Explicit Range", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("range"); got != "7d" {
					t.Errorf("expected range=7d, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true, "summary": {}, "chartData": {}, "platformBreakdown": {}, "insights": []}`))
			}))
			defer server.Close()

			api := NewAPIService(server.URL, nil, nil)
			svc := NewAnalyticsService(api, nil)

			if _, err := svc.Summary(context.Background(), "7d"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})
}
