// API client for making raw HTTP requests to the publishing backend.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// APIService provides methods for making raw HTTP requests to the backend.
// Every non-2xx response becomes a [*RequestError]; failures are logged here
// and returned to the caller, never swallowed.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewAPIService creates a new API service instance for the publishing backend.
func NewAPIService(baseURL string, client *http.Client, logger *log.Logger) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// RequestError carries the status of a failed HTTP request.
type RequestError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// RequestOptions configures a single request.
type RequestOptions struct {
	Body        io.Reader
	Query       url.Values
	Headers     map[string]string
	ContentType string // replaces the default application/json; "" with SkipJSON leaves the header unset
	SkipJSON    bool   // omit the default Content-Type (multipart bodies)
}

// Request performs an HTTP request against the backend. The default
// Content-Type: application/json header is merged with per-call headers;
// multipart callers set SkipJSON and supply the writer's boundary-bearing
// content type instead. Non-2xx responses return a *RequestError. On success
// the body is parsed as JSON when the response declares it, otherwise kept
// as raw text.
func (a *APIService) Request(ctx context.Context, method, path string, opts RequestOptions) (*APIResponse, error) {
	fullURL := a.baseURL + path
	if len(opts.Query) > 0 {
		fullURL += "?" + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, opts.Body)
	if err != nil {
		a.logger.Error("failed to create request", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	switch {
	case opts.ContentType != "":
		req.Header.Set("Content-Type", opts.ContentType)
	case !opts.SkipJSON:
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("request failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error("failed to read response", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
		a.logger.Error("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return nil, reqErr
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var jsonData any
		if err := json.Unmarshal(body, &jsonData); err == nil {
			apiResp.IsJSON = true
			apiResp.JSONData = jsonData
		}
	}

	return apiResp, nil
}

// Get performs a GET request with optional query parameters.
func (a *APIService) Get(ctx context.Context, path string, query url.Values) (*APIResponse, error) {
	return a.Request(ctx, http.MethodGet, path, RequestOptions{Query: query})
}

// Post performs a POST request with a JSON-encoded body.
func (a *APIService) Post(ctx context.Context, path string, body any) (*APIResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return a.Request(ctx, http.MethodPost, path, RequestOptions{Body: bytes.NewReader(data)})
}

// Put performs a PUT request with a JSON-encoded body.
func (a *APIService) Put(ctx context.Context, path string, body any) (*APIResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return a.Request(ctx, http.MethodPut, path, RequestOptions{Body: bytes.NewReader(data)})
}

// Delete performs a DELETE request.
func (a *APIService) Delete(ctx context.Context, path string) (*APIResponse, error) {
	return a.Request(ctx, http.MethodDelete, path, RequestOptions{})
}

// UploadFile posts a multipart body. contentType must be the multipart
// writer's FormDataContentType so the transport boundary survives; the
// default JSON header is never applied here.
func (a *APIService) UploadFile(ctx context.Context, path string, body io.Reader, contentType string) (*APIResponse, error) {
	return a.Request(ctx, http.MethodPost, path, RequestOptions{
		Body:        body,
		ContentType: contentType,
		SkipJSON:    true,
	})
}

// DecodeInto unmarshals a JSON response body into v.
func (a *APIService) DecodeInto(resp *APIResponse, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// envelope is the common success/error wrapper on backend JSON responses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// checkSuccess inspects the success flag of a 200 response. A success:false
// payload maps to [shared.ErrServerRejected] carrying the server's message.
func (a *APIService) checkSuccess(resp *APIResponse) error {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = "request failed"
		}
		return fmt.Errorf("%w: %s", shared.ErrServerRejected, msg)
	}
	return nil
}

// RejectionMessage extracts the server-supplied message from a
// [shared.ErrServerRejected] error, or falls back to the given default.
func RejectionMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	msg := err.Error()
	prefix := shared.ErrServerRejected.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return fallback
}
