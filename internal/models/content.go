package models

import (
	"encoding/json"
	"time"
)

// FileRef is a validated local video file selected for upload.
type FileRef struct {
	Name string
	Path string
	Size int64
	MIME string
}

// PlatformContent holds per-platform overrides of the generated content.
type PlatformContent struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Caption     string   `json:"caption,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
}

// GeneratedContent is the server-produced AI content for one upload session.
// It is replaced wholesale on regenerate and cleared on form reset.
type GeneratedContent struct {
	Title            string                     `json:"title,omitempty"`
	Description      string                     `json:"description"`
	Hashtags         []string                   `json:"hashtags"`
	ViralScore       int                        `json:"viral_score"`
	PlatformSpecific map[string]PlatformContent `json:"platform_specific,omitempty"`
}

// ViralAnalysis is the response of the viral-potential analyzer.
type ViralAnalysis struct {
	ViralScore       int                 `json:"viral_score"`
	Strengths        []string            `json:"strengths"`
	Improvements     []string            `json:"improvements"`
	TrendingElements map[string][]string `json:"trending_elements"`
	OptimalTiming    map[string][]string `json:"optimal_timing"`
}

// ContentTemplate is a server-defined content pattern with fillable variables.
type ContentTemplate struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	ViralScore         int      `json:"viral_score"`
	AvgViews           string   `json:"avg_views"`
	AvgEngagement      string   `json:"avg_engagement"`
	BestPlatforms      []string `json:"best_platforms"`
	TitleExample       string   `json:"title_example"`
	DescriptionExample string   `json:"description_example"`
	Variables          []string `json:"variables"`
}

// ScheduledPost is the client's read-only copy of a pending server-side post.
type ScheduledPost struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Platforms    []string `json:"platforms"`
	ScheduleTime string   `json:"schedule_time"`
	Status       string   `json:"status"`
}

// UnmarshalJSON accepts both schedule_time and scheduledTime spellings.
func (s *ScheduledPost) UnmarshalJSON(data []byte) error {
	type alias ScheduledPost
	aux := struct {
		*alias
		ScheduledTime string `json:"scheduledTime"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.ScheduleTime == "" {
		s.ScheduleTime = aux.ScheduledTime
	}
	return nil
}

// When parses the schedule timestamp, trying RFC 3339 first then common
// fallbacks. The second return is false when the timestamp is absent or
// unparseable.
func (s ScheduledPost) When() (time.Time, bool) {
	return ParseScheduleTime(s.ScheduleTime)
}

// ParseScheduleTime parses a schedule timestamp in any of the spellings the
// server emits. The second return is false when the timestamp is absent or
// unparseable.
func ParseScheduleTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AnalyticsCounters are the aggregate totals shown in the summary row.
type AnalyticsCounters struct {
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
	Posts  int64 `json:"posts"`
}

// ChartData holds the time-series rendered in the analytics section.
type ChartData struct {
	Labels     []string  `json:"labels"`
	Views      []float64 `json:"views"`
	Engagement []float64 `json:"engagement"`
}

// PlatformStats is one row of the per-platform breakdown.
type PlatformStats struct {
	Views      int64   `json:"views"`
	Engagement float64 `json:"engagement"`
}

// Insight is an actionable suggestion returned with the analytics payload.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// AnalyticsSummary is the full analytics payload, always replaced wholesale.
type AnalyticsSummary struct {
	Summary           AnalyticsCounters        `json:"summary"`
	Chart             ChartData                `json:"chartData"`
	PlatformBreakdown map[string]PlatformStats `json:"platformBreakdown"`
	Insights          []Insight                `json:"insights"`
}

// UploadData is the post summary echoed back by a successful upload.
type UploadData struct {
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Platforms   []string `json:"platforms"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
}

// UploadResult is the full response of a submission.
type UploadResult struct {
	Message    string     `json:"message"`
	PostID     string     `json:"post_id"`
	ViralScore int        `json:"viral_score"`
	Data       UploadData `json:"data"`
}

// AccountStatus reflects the last explicit status fetch for one platform.
type AccountStatus struct {
	Platform  Platform
	Connected bool
	Detail    string
}
