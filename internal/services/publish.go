// Multipart upload of videos and post metadata.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// PublishService submits posts to /api/upload.
type PublishService struct {
	api    *APIService
	logger *log.Logger
}

// NewPublishService creates a publish service on top of the raw API client.
func NewPublishService(api *APIService, logger *log.Logger) *PublishService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PublishService{api: api, logger: logger}
}

// UploadRequest is one submission: files, form fields, and optional AI content.
type UploadRequest struct {
	Files           []models.FileRef
	Title           string
	Category        string
	Platforms       []models.Platform
	GenerateContent bool
	ScheduleTime    string // empty means post immediately; the field is omitted
	Content         *models.GeneratedContent
}

// Validate enforces the submission preconditions before any network call.
func (r UploadRequest) Validate() error {
	if r.Title == "" {
		return shared.ErrMissingTitle
	}
	if len(r.Platforms) == 0 {
		return shared.ErrNoPlatforms
	}
	if len(r.Files) == 0 {
		return shared.ErrNoFiles
	}
	if r.ScheduleTime != "" {
		when, ok := models.ParseScheduleTime(r.ScheduleTime)
		if !ok {
			return fmt.Errorf("%w: unrecognized format %q", shared.ErrInvalidSchedule, r.ScheduleTime)
		}
		if !when.After(time.Now()) {
			return fmt.Errorf("%w: must be in the future", shared.ErrInvalidSchedule)
		}
	}
	return nil
}

// Upload assembles the multipart payload (video_N file parts plus the form
// fields the server expects) and submits it. The request is validated first;
// validation failures never reach the network.
func (p *PublishService) Upload(ctx context.Context, req UploadRequest) (*models.UploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, file := range req.Files {
		part, err := w.CreateFormFile(fmt.Sprintf("video_%d", i), file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		f, err := os.Open(file.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrFileRejected, err)
		}
		_, err = io.Copy(part, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
	}

	platformsJSON, err := json.Marshal(models.PlatformStrings(req.Platforms))
	if err != nil {
		return nil, fmt.Errorf("failed to encode platforms: %w", err)
	}

	fields := map[string]string{
		"title":           req.Title,
		"category":        req.Category,
		"platforms":       string(platformsJSON),
		"generateContent": strconv.FormatBool(req.GenerateContent),
	}
	if req.ScheduleTime != "" {
		fields["scheduleTime"] = req.ScheduleTime
	}
	if req.Content != nil {
		hashtagsJSON, err := json.Marshal(req.Content.Hashtags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode hashtags: %w", err)
		}
		contentJSON, err := json.Marshal(req.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to encode ai content: %w", err)
		}
		fields["description"] = req.Content.Description
		fields["hashtags"] = string(hashtagsJSON)
		fields["aiContent"] = string(contentJSON)
	}

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	p.logger.Info("submitting post", "title", req.Title, "files", len(req.Files), "platforms", len(req.Platforms), "scheduled", req.ScheduleTime != "")

	resp, err := p.api.UploadFile(ctx, "/api/upload", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if err := p.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var result models.UploadResult
	if err := p.api.DecodeInto(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
