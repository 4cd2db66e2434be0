package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	tu "github.com/wilkerbruno/videos-automacoes/internal/testing"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com", customClient, nil)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil, nil)

			if srv.baseURL != "http://localhost:5000" {
				t.Errorf("expected default baseURL 'http://localhost:5000', got %s", srv.baseURL)
			}
		})

		t.Run("Trailing Slash Trimmed", func(t *testing.T) {
			srv := NewAPIService("http://example.com/", nil, nil)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected trimmed baseURL, got %s", srv.baseURL)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/test" {
					t.Errorf("expected path '/test', got %s", r.URL.Path)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			resp, err := srv.Get(context.Background(), "/test", nil)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
			if resp.JSONData == nil {
				t.Error("expected JSONData to be populated")
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			resp, err := srv.Get(context.Background(), "/test", nil)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if resp.JSONData != nil {
				t.Error("expected JSONData to be nil")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Query Parameters Are Encoded", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("platform"); got != "tiktok" {
					t.Errorf("expected platform=tiktok, got %s", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true}`))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			query := url.Values{}
			query.Set("platform", "tiktok")

			if _, err := srv.Get(context.Background(), "/api/schedule", query); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil, nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid", nil)

			if err == nil {
				t.Error("expected error for invalid URL")
			}
			if !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client, nil)
			_, err := srv.Get(context.Background(), "/test", nil)

			if err == nil {
				t.Fatal("expected error for failed request")
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Non-2xx Response Becomes RequestError", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			_, err := srv.Get(context.Background(), "/test", nil)

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected *RequestError, got %v", err)
			}
			if reqErr.Status != http.StatusInternalServerError {
				t.Errorf("expected status 500, got %d", reqErr.Status)
			}
			if reqErr.Body != "boom" {
				t.Errorf("expected body 'boom', got %s", reqErr.Body)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Sends JSON Content Type", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected application/json, got %s", ct)
				}

				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if body["title"] != "My Video" {
					t.Errorf("expected title 'My Video', got %s", body["title"])
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true}`))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			_, err := srv.Post(context.Background(), "/api/test", map[string]string{"title": "My Video"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Unencodable Body", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil, nil)
			_, err := srv.Post(context.Background(), "/api/test", func() {})

			if err == nil {
				t.Error("expected error for unencodable body")
			}
		})
	})

	t.Run("UploadFile", func(t *testing.T) {
		t.Run("Preserves Multipart Content Type", func(t *testing.T) {
			contentType := "multipart/form-data; boundary=xyz"
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != contentType {
					t.Errorf("expected %s, got %s", contentType, ct)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true}`))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			_, err := srv.UploadFile(context.Background(), "/api/upload", strings.NewReader("data"), contentType)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Request Headers", func(t *testing.T) {
		t.Run("Custom Headers Override Defaults", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != "application/xml" {
					t.Errorf("expected application/xml, got %s", ct)
				}
				if got := r.Header.Get("X-Request-ID"); got != "abc" {
					t.Errorf("expected X-Request-ID 'abc', got %s", got)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil, nil)
			_, err := srv.Request(context.Background(), http.MethodGet, "/test", RequestOptions{
				Headers: map[string]string{
					"Content-Type": "application/xml",
					"X-Request-ID": "abc",
				},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("CheckSuccess", func(t *testing.T) {
		t.Run("Success False Maps To ErrServerRejected", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": false, "message": "bad token"}`)
			srv := NewAPIService(server.URL, nil, nil)

			resp, err := srv.Get(context.Background(), "/api/test", nil)
			if err != nil {
				t.Fatalf("expected no transport error, got %v", err)
			}

			err = srv.checkSuccess(resp)
			if !errors.Is(err, shared.ErrServerRejected) {
				t.Fatalf("expected ErrServerRejected, got %v", err)
			}
			if got := RejectionMessage(err, "fallback"); got != "bad token" {
				t.Errorf("expected server message 'bad token', got %s", got)
			}
		})

		t.Run("Success True Passes", func(t *testing.T) {
			server := tu.JSONServer(t, http.StatusOK, `{"success": true}`)
			srv := NewAPIService(server.URL, nil, nil)

			resp, err := srv.Get(context.Background(), "/api/test", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := srv.checkSuccess(resp); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})
}
