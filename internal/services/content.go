// AI content generation, viral analysis, and template endpoints.
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// ContentService wraps the generation and analysis endpoints.
type ContentService struct {
	api    *APIService
	logger *log.Logger
}

// NewContentService creates a content service on top of the raw API client.
func NewContentService(api *APIService, logger *log.Logger) *ContentService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ContentService{api: api, logger: logger}
}

// Generate requests AI captions, hashtags, and a viral score for the given
// title/category/platform combination.
func (c *ContentService) Generate(ctx context.Context, title, category string, platforms []models.Platform) (*models.GeneratedContent, error) {
	if title == "" {
		return nil, shared.ErrMissingTitle
	}
	if len(platforms) == 0 {
		return nil, shared.ErrNoPlatforms
	}

	payload := map[string]any{
		"title":     title,
		"category":  category,
		"platforms": models.PlatformStrings(platforms),
	}

	resp, err := c.api.Post(ctx, "/api/generate-content", payload)
	if err != nil {
		return nil, err
	}
	if err := c.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Content models.GeneratedContent `json:"content"`
	}
	if err := c.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}

	c.logger.Debug("content generated", "title", title, "score", body.Content.ViralScore)
	return &body.Content, nil
}

// AnalyzeRequest holds the form fields sent to the viral analyzer.
type AnalyzeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Platforms   []string `json:"platforms"`
}

// Analyze scores the draft's viral potential and returns the server's
// strengths/improvements breakdown.
func (c *ContentService) Analyze(ctx context.Context, req AnalyzeRequest) (*models.ViralAnalysis, error) {
	if req.Title == "" {
		return nil, shared.ErrMissingTitle
	}

	resp, err := c.api.Post(ctx, "/api/analyze-viral-potential", req)
	if err != nil {
		return nil, err
	}
	if err := c.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var analysis models.ViralAnalysis
	if err := c.api.DecodeInto(resp, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Regenerate asks the server to rewrite content applying the analyzer's
// suggested improvements.
func (c *ContentService) Regenerate(ctx context.Context, analysis *models.ViralAnalysis, applyImprovements bool) (*models.GeneratedContent, error) {
	if analysis == nil {
		return nil, fmt.Errorf("%w: analysis required", shared.ErrInvalidInput)
	}

	payload := map[string]any{
		"analysis":           analysis,
		"apply_improvements": applyImprovements,
	}

	resp, err := c.api.Post(ctx, "/api/regenerate-viral-content", payload)
	if err != nil {
		return nil, err
	}
	if err := c.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Content models.GeneratedContent `json:"content"`
	}
	if err := c.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}
	return &body.Content, nil
}

// Templates fetches the available content templates, sorted by id for a
// stable listing.
func (c *ContentService) Templates(ctx context.Context) ([]models.ContentTemplate, error) {
	resp, err := c.api.Get(ctx, "/api/content-templates", nil)
	if err != nil {
		return nil, err
	}
	if err := c.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Templates map[string]models.ContentTemplate `json:"templates"`
	}
	if err := c.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}

	templates := make([]models.ContentTemplate, 0, len(body.Templates))
	for id, tpl := range body.Templates {
		if tpl.ID == "" {
			tpl.ID = id
		}
		templates = append(templates, tpl)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })

	return templates, nil
}

// FromTemplate fills a template's variables server-side and returns the
// generated content.
func (c *ContentService) FromTemplate(ctx context.Context, templateID string, variables map[string]string, platforms []models.Platform) (*models.GeneratedContent, error) {
	if templateID == "" {
		return nil, fmt.Errorf("%w: template id required", shared.ErrInvalidInput)
	}

	payload := map[string]any{
		"template_id": templateID,
		"variables":   variables,
		"platforms":   models.PlatformStrings(platforms),
	}

	resp, err := c.api.Post(ctx, "/api/generate-from-template", payload)
	if err != nil {
		return nil, err
	}
	if err := c.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Content models.GeneratedContent `json:"content"`
	}
	if err := c.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}
	return &body.Content, nil
}
