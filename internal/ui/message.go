package ui

import (
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
)

// Server responses arrive as typed messages produced by tea.Cmd closures.

type statusFetchedMsg struct {
	statuses map[models.Platform]models.AccountStatus
	err      error
}

type connectDoneMsg struct {
	platform models.Platform
	result   *services.ConnectResult
	err      error
}

type oauthStartedMsg struct {
	platform models.Platform
	authURL  string
	err      error
}

type scheduleFetchedMsg struct {
	posts []models.ScheduledPost
	err   error
}

type cancelDoneMsg struct {
	id  string
	err error
}

type analyticsFetchedMsg struct {
	summary *models.AnalyticsSummary
	err     error
}

type contentGeneratedMsg struct {
	content *models.GeneratedContent
	err     error
}

type analysisDoneMsg struct {
	analysis *models.ViralAnalysis
	err      error
}

type templatesFetchedMsg struct {
	templates []models.ContentTemplate
	err       error
}

type uploadDoneMsg struct {
	result *models.UploadResult
	err    error
}

// notifyExpiredMsg dismisses the notification with the matching id. Stale
// timers carry old ids and are ignored.
type notifyExpiredMsg struct {
	id int
}
