// Scheduled post listing and cancellation.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// ScheduleService wraps the /api/schedule endpoints.
type ScheduleService struct {
	api    *APIService
	logger *log.Logger
}

// NewScheduleService creates a schedule service on top of the raw API client.
func NewScheduleService(api *APIService, logger *log.Logger) *ScheduleService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ScheduleService{api: api, logger: logger}
}

// List fetches pending scheduled posts. The platform and date filters are
// carried as query parameters whenever set; every call is a fresh fetch.
func (s *ScheduleService) List(ctx context.Context, platform, date string) ([]models.ScheduledPost, error) {
	query := url.Values{}
	if platform != "" {
		query.Set("platform", platform)
	}
	if date != "" {
		query.Set("date", date)
	}

	resp, err := s.api.Get(ctx, "/api/schedule", query)
	if err != nil {
		return nil, err
	}
	if err := s.api.checkSuccess(resp); err != nil {
		return nil, err
	}

	var body struct {
		Posts []models.ScheduledPost `json:"posts"`
	}
	if err := s.api.DecodeInto(resp, &body); err != nil {
		return nil, err
	}
	return body.Posts, nil
}

// Cancel removes a scheduled post server-side. Callers reload the list on
// success; on failure the cached list stays as-is.
func (s *ScheduleService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: post id required", shared.ErrInvalidInput)
	}

	resp, err := s.api.Delete(ctx, "/api/schedule/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	if err := s.api.checkSuccess(resp); err != nil {
		return err
	}

	s.logger.Info("scheduled post cancelled", "id", id)
	return nil
}
