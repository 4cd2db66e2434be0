package ui

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/repositories"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
	"github.com/wilkerbruno/videos-automacoes/internal/tasks"
)

// Backend is the server surface the dashboard talks to. Grouping it behind
// one interface lets the views run headless in tests.
type Backend interface {
	// Accounts
	Status(ctx context.Context) (map[models.Platform]models.AccountStatus, error)
	Connect(ctx context.Context, platform models.Platform, credentials map[string]string) (*services.ConnectResult, error)
	StartOAuth(ctx context.Context, platform models.Platform) (string, error)

	// Upload
	Upload(ctx context.Context, req services.UploadRequest) (*models.UploadResult, error)

	// AI content
	Generate(ctx context.Context, title, category string, platforms []models.Platform) (*models.GeneratedContent, error)
	Analyze(ctx context.Context, req services.AnalyzeRequest) (*models.ViralAnalysis, error)
	Regenerate(ctx context.Context, analysis *models.ViralAnalysis, applyImprovements bool) (*models.GeneratedContent, error)
	Templates(ctx context.Context) ([]models.ContentTemplate, error)
	FromTemplate(ctx context.Context, templateID string, variables map[string]string, platforms []models.Platform) (*models.GeneratedContent, error)

	// Schedule
	ListScheduled(ctx context.Context, platform, date string) ([]models.ScheduledPost, error)
	CancelScheduled(ctx context.Context, id string) error

	// Analytics
	Analytics(ctx context.Context, timeRange string) (*models.AnalyticsSummary, error)
}

// ServiceBackend implements [Backend] by delegating to the concrete services.
// History and Logger are optional; when History is set, successful uploads
// are appended to the local post history.
type ServiceBackend struct {
	Accounts *services.AccountService
	Publish  *services.PublishService
	Content  *services.ContentService
	Schedule *services.ScheduleService
	Stats    *services.AnalyticsService
	History  *repositories.PostRepository
	Logger   *log.Logger
}

var _ Backend = (*ServiceBackend)(nil)

// NewServiceBackend wires every service onto one API client.
func NewServiceBackend(accounts *services.AccountService, publish *services.PublishService, content *services.ContentService, schedule *services.ScheduleService, analytics *services.AnalyticsService) *ServiceBackend {
	return &ServiceBackend{
		Accounts: accounts,
		Publish:  publish,
		Content:  content,
		Schedule: schedule,
		Stats:    analytics,
	}
}

func (b *ServiceBackend) Status(ctx context.Context) (map[models.Platform]models.AccountStatus, error) {
	return b.Accounts.Status(ctx)
}

func (b *ServiceBackend) Connect(ctx context.Context, platform models.Platform, credentials map[string]string) (*services.ConnectResult, error) {
	return b.Accounts.Connect(ctx, platform, credentials)
}

func (b *ServiceBackend) StartOAuth(ctx context.Context, platform models.Platform) (string, error) {
	return b.Accounts.StartOAuth(ctx, platform)
}

func (b *ServiceBackend) Upload(ctx context.Context, req services.UploadRequest) (*models.UploadResult, error) {
	result, err := b.Publish.Upload(ctx, req)
	if err != nil {
		return nil, err
	}
	if b.History != nil {
		record := tasks.HistoryRecord(req.Title, req.Category, req.Platforms, req.ScheduleTime, req.Content, result)
		if recordErr := b.History.Create(record); recordErr != nil && b.Logger != nil {
			b.Logger.Warn("failed to record post history", "error", recordErr)
		}
	}
	return result, nil
}

func (b *ServiceBackend) Generate(ctx context.Context, title, category string, platforms []models.Platform) (*models.GeneratedContent, error) {
	return b.Content.Generate(ctx, title, category, platforms)
}

func (b *ServiceBackend) Analyze(ctx context.Context, req services.AnalyzeRequest) (*models.ViralAnalysis, error) {
	return b.Content.Analyze(ctx, req)
}

func (b *ServiceBackend) Regenerate(ctx context.Context, analysis *models.ViralAnalysis, applyImprovements bool) (*models.GeneratedContent, error) {
	return b.Content.Regenerate(ctx, analysis, applyImprovements)
}

func (b *ServiceBackend) Templates(ctx context.Context) ([]models.ContentTemplate, error) {
	return b.Content.Templates(ctx)
}

func (b *ServiceBackend) FromTemplate(ctx context.Context, templateID string, variables map[string]string, platforms []models.Platform) (*models.GeneratedContent, error) {
	return b.Content.FromTemplate(ctx, templateID, variables, platforms)
}

func (b *ServiceBackend) ListScheduled(ctx context.Context, platform, date string) ([]models.ScheduledPost, error) {
	return b.Schedule.List(ctx, platform, date)
}

func (b *ServiceBackend) CancelScheduled(ctx context.Context, id string) error {
	return b.Schedule.Cancel(ctx, id)
}

func (b *ServiceBackend) Analytics(ctx context.Context, timeRange string) (*models.AnalyticsSummary, error) {
	return b.Stats.Summary(ctx, timeRange)
}
