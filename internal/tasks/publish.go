package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// PublishOpts contains configuration for a submission run.
type PublishOpts struct {
	Title           string
	Category        string
	Platforms       []models.Platform
	Files           []string // Local file paths, verified before any network call
	GenerateContent bool     // Request AI content and attach it to the upload
	ScheduleTime    string   // Empty means post immediately
	MaxFileBytes    int64    // Per-file size cap (default: shared.MaxVideoBytes)
	Content         *models.GeneratedContent
}

// PublishRunResult contains all data from a full submission run.
type PublishRunResult struct {
	Files   []models.FileRef         // Verified files included in the upload
	Content *models.GeneratedContent // AI content attached, nil when not requested
	Result  *models.UploadResult     // Server's response
}

// Engine defines the post submission pipeline.
type Engine interface {
	// Publish performs a full submission: verifies files, optionally
	// generates AI content, uploads, and records local history.
	Publish(ctx context.Context, progress chan<- ProgressUpdate, opts PublishOpts) (*PublishRunResult, error)
}

// Publisher is the upload surface of [services.PublishService].
type Publisher interface {
	Upload(ctx context.Context, req services.UploadRequest) (*models.UploadResult, error)
}

// Generator is the content-generation surface of [services.ContentService].
type Generator interface {
	Generate(ctx context.Context, title, category string, platforms []models.Platform) (*models.GeneratedContent, error)
}

// HistoryRecorder persists submitted posts locally. Recording failures never
// fail the submission.
type HistoryRecorder interface {
	Create(post *models.PostRecord) error
}

// PublishEngine implements [Engine].
// Contains dependencies on the publish and content services plus an optional history recorder.
type PublishEngine struct {
	publisher Publisher
	generator Generator
	history   HistoryRecorder
	logger    *log.Logger
}

// NewPublishEngine creates a new PublishEngine with the provided services.
// history may be nil to skip local persistence.
func NewPublishEngine(publisher Publisher, generator Generator, history HistoryRecorder, logger *log.Logger) *PublishEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PublishEngine{
		publisher: publisher,
		generator: generator,
		history:   history,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PublishEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Publish performs a full submission run.
func (e *PublishEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, opts PublishOpts) (*PublishRunResult, error) {
	if e.publisher == nil {
		return nil, fmt.Errorf("%w: publish service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Title == "" {
		return nil, shared.ErrMissingTitle
	}
	if len(opts.Platforms) == 0 {
		return nil, shared.ErrNoPlatforms
	}
	if len(opts.Files) == 0 {
		return nil, shared.ErrNoFiles
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = shared.MaxVideoBytes
	}

	result := &PublishRunResult{}

	total := len(opts.Files)
	files := make([]models.FileRef, 0, total)
	for i, path := range opts.Files {
		e.sendProgress(progress, verifyFileUpdate(i+1, total, path))

		info, err := shared.VerifyVideoFile(path, opts.MaxFileBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, models.FileRef{
			Name: info.Name,
			Path: info.Path,
			Size: info.Size,
			MIME: info.MIME,
		})
	}
	result.Files = files

	content := opts.Content
	if opts.GenerateContent && content == nil {
		if e.generator == nil {
			return nil, fmt.Errorf("%w: content service not initialized", shared.ErrServiceUnavailable)
		}

		e.sendProgress(progress, generatingContentUpdate())
		generated, err := e.generator.Generate(ctx, opts.Title, opts.Category, opts.Platforms)
		if err != nil {
			return nil, err
		}
		content = generated
		e.sendProgress(progress, contentReadyUpdate(content))
	}
	result.Content = content

	e.sendProgress(progress, uploadingUpdate(len(files), len(opts.Platforms)))

	uploadResult, err := e.publisher.Upload(ctx, services.UploadRequest{
		Files:           files,
		Title:           opts.Title,
		Category:        opts.Category,
		Platforms:       opts.Platforms,
		GenerateContent: opts.GenerateContent,
		ScheduleTime:    opts.ScheduleTime,
		Content:         content,
	})
	if err != nil {
		return result, err
	}
	result.Result = uploadResult

	e.sendProgress(progress, uploadedUpdate(uploadResult))

	if e.history != nil {
		record := HistoryRecord(opts.Title, opts.Category, opts.Platforms, opts.ScheduleTime, content, uploadResult)
		if err := e.history.Create(record); err != nil {
			e.logger.Warn("failed to record post history", "error", err)
		} else {
			e.sendProgress(progress, recordedUpdate())
		}
	}

	return result, nil
}

// HistoryRecord builds the local history row for a completed submission.
func HistoryRecord(title, category string, platforms []models.Platform, scheduleTime string, content *models.GeneratedContent, result *models.UploadResult) *models.PostRecord {
	status := result.Data.Status
	if status == "" {
		if scheduleTime != "" {
			status = "scheduled"
		} else {
			status = "published"
		}
	}

	record := models.NewPostRecord(title, category, models.PlatformStrings(platforms), status)
	record.SetViralScore(result.ViralScore)
	record.SetScheduleTime(scheduleTime)
	if content != nil {
		record.SetDescription(content.Description)
		record.SetHashtags(content.Hashtags)
		if record.ViralScore() == 0 {
			record.SetViralScore(content.ViralScore)
		}
	}
	return record
}
