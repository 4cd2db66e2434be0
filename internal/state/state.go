// package state holds the client-side session state shared across sections.
//
// The store is the single source of truth for what the dashboard renders.
// Server-derived fields (connected platforms, scheduled posts, analytics) are
// replaced wholesale on every fetch; nothing here is persisted.
package state

import (
	"sync"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

// Section identifies one of the dashboard's top-level views.
type Section string

const (
	SectionUpload    Section = "upload"
	SectionAccounts  Section = "accounts"
	SectionSchedule  Section = "schedule"
	SectionAnalytics Section = "analytics"
)

// Sections lists the navigable sections in display order.
func Sections() []Section {
	return []Section{SectionUpload, SectionAccounts, SectionSchedule, SectionAnalytics}
}

// Store is the shared client state. All methods are safe for concurrent use;
// background fetch commands write results here while the view reads.
type Store struct {
	mu sync.RWMutex

	section       Section
	connected     map[models.Platform]bool
	selectedFiles []models.FileRef
	scheduled     []models.ScheduledPost
	analytics     *models.AnalyticsSummary
	pendingAI     *models.GeneratedContent
}

// NewStore creates a store with the upload section active and no connections
// assumed.
func NewStore() *Store {
	return &Store{
		section:   SectionUpload,
		connected: make(map[models.Platform]bool),
	}
}

// Section returns the active section.
func (s *Store) Section() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.section
}

// SetSection activates a section. Exactly one section is active at a time;
// switching never carries stale data because callers re-fetch on entry.
func (s *Store) SetSection(section Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = section
}

// Connected reports whether a platform was connected at the last status fetch.
func (s *Store) Connected(p models.Platform) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected[p]
}

// ConnectedPlatforms returns the connected platforms in canonical order.
func (s *Store) ConnectedPlatforms() []models.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Platform
	for _, p := range models.AllPlatforms() {
		if s.connected[p] {
			out = append(out, p)
		}
	}
	return out
}

// ReplaceConnections replaces the full connection map from a status fetch.
// Platforms absent from the statuses map are treated as disconnected.
func (s *Store) ReplaceConnections(statuses map[models.Platform]models.AccountStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = make(map[models.Platform]bool, len(statuses))
	for p, st := range statuses {
		s.connected[p] = st.Connected
	}
}

// SelectedFiles returns a copy of the validated files queued for upload.
func (s *Store) SelectedFiles() []models.FileRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FileRef, len(s.selectedFiles))
	copy(out, s.selectedFiles)
	return out
}

// AddFile appends a validated file to the upload queue.
func (s *Store) AddFile(f models.FileRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFiles = append(s.selectedFiles, f)
}

// ClearFiles empties the upload queue, part of the post-submit form reset.
func (s *Store) ClearFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFiles = nil
}

// ScheduledPosts returns the cached scheduled post list.
func (s *Store) ScheduledPosts() []models.ScheduledPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScheduledPost, len(s.scheduled))
	copy(out, s.scheduled)
	return out
}

// ReplaceScheduledPosts swaps in a freshly fetched list.
func (s *Store) ReplaceScheduledPosts(posts []models.ScheduledPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = posts
}

// Analytics returns the cached analytics payload, nil before the first fetch.
func (s *Store) Analytics() *models.AnalyticsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analytics
}

// ReplaceAnalytics swaps in a freshly fetched analytics payload.
func (s *Store) ReplaceAnalytics(summary *models.AnalyticsSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = summary
}

// PendingContent returns the AI content attached to the current upload form.
func (s *Store) PendingContent() *models.GeneratedContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingAI
}

// SetPendingContent replaces the pending AI content wholesale. Passing nil
// clears it.
func (s *Store) SetPendingContent(content *models.GeneratedContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingAI = content
}

// ResetUploadForm clears the file queue and pending AI content after a
// successful submission.
func (s *Store) ResetUploadForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFiles = nil
	s.pendingAI = nil
}
