package services

import (
	"context"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// AnalyticsService fetches aggregated performance data.
type AnalyticsService struct {
	api    *APIService
	logger *log.Logger
}

// NewAnalyticsService creates an analytics service on top of the raw API client.
func NewAnalyticsService(api *APIService, logger *log.Logger) *AnalyticsService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AnalyticsService{api: api, logger: logger}
}

// Summary fetches the analytics summary for a time range ("7d", "30d",
// "90d"). An empty range defaults to 30 days.
func (s *AnalyticsService) Summary(ctx context.Context, timeRange string) (*models.AnalyticsSummary, error) {
	if timeRange == "" {
		timeRange = "30d"
	}

	// Older server builds read "period", current ones read "range".
	query := url.Values{}
	query.Set("range", timeRange)
	query.Set("period", timeRange)

	resp, err := s.api.Get(ctx, "/api/analytics", query)
	if err != nil {
		return nil, err
	}
	if err := s.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var summary models.AnalyticsSummary
	if err := s.api.DecodeInto(resp, &summary); err != nil {
		return nil, err
	}

	s.logger.Debug("fetched analytics", "range", timeRange, "posts", summary.Summary.Posts)
	return &summary, nil
}
